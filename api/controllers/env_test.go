package controllers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	testutils "github.com/tharindraj/ctrl-alt-rock-voting/api/controllers/testing"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

const testAdminToken = "secret"

type testEnv struct {
	router      *gin.Engine
	tokens      *transport.TokenIssuer
	categories  *storage.DocumentCategoryStorage
	contestants *storage.DocumentContestantStorage
	judges      *storage.DocumentJudgeStorage
	admins      *storage.DocumentAdminStorage
	audience    *storage.DocumentAudienceStorage
	scores      *storage.DocumentScoreStorage
	settings    *storage.DocumentSettingsStorage
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()

	store, err := storage.NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		tokens:      transport.NewTokenIssuer("test-secret", time.Hour, testAdminToken),
		categories:  storage.NewCategoryStorage(store),
		contestants: storage.NewContestantStorage(store),
		judges:      storage.NewJudgeStorage(store),
		admins:      storage.NewAdminStorage(store),
		audience:    storage.NewAudienceStorage(store),
		scores:      &storage.DocumentScoreStorage{Store: store},
		settings:    &storage.DocumentSettingsStorage{Store: store},
	}

	metrics := transport.NewMetrics()
	env.router = transport.NewRouter(gin.TestMode, metrics)

	judgeEngine := scoring.NewJudgeEngine(env.scores, env.contestants, env.categories, env.settings)
	recorder := scoring.NewVoteRecorder(env.scores, env.contestants, env.settings)
	aggregator := scoring.NewAggregator(env.categories, env.contestants, env.scores, env.settings)
	publisher := scoring.NewPublisher(env.settings, env.scores, env.categories, aggregator)

	NewAuthController(env.admins, env.judges, env.audience, env.tokens, transport.NewRateLimiter(1000, 1000)).RegisterRoutes(env.router)
	NewCatalogController(env.categories, env.contestants, env.settings, env.tokens).RegisterRoutes(env.router)
	NewAdminController(env.judges, env.audience, env.tokens).RegisterRoutes(env.router)
	NewSettingsController(env.settings, env.tokens).RegisterRoutes(env.router)
	NewJudgeController(judgeEngine, env.judges, env.categories, env.contestants, env.scores, env.tokens, metrics).RegisterRoutes(env.router)
	NewVotingController(recorder, publisher, env.categories, env.contestants, env.scores, env.tokens, metrics).RegisterRoutes(env.router)
	NewResultsController(aggregator, publisher, env.judges, env.audience, env.tokens).RegisterRoutes(env.router)

	return env
}

func (e *testEnv) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	return testutils.PerformRequest(e.router, method, path, body, headers)
}

func adminHeaders() map[string]string {
	return map[string]string{"x-admin-token": testAdminToken}
}

func (e *testEnv) tokenFor(t *testing.T, id string, role models.Role) map[string]string {
	t.Helper()
	token, err := e.tokens.Issue(transport.Identity{ID: id, Role: role})
	require.NoError(t, err)
	return testutils.Bearer(token)
}

// seedBand creates category "band" with two criteria (60/40, max 10) and the given contestants.
func (e *testEnv) seedBand(t *testing.T, contestants ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.categories.Create(ctx, &storage.Category{ID: "band", Name: "Band"}))

	settings, err := e.settings.Read(ctx)
	require.NoError(t, err)
	settings.CategoryScoringCriteria["band"] = []*storage.Criterion{
		{ID: "music", Name: "Music", Weight: 60, MaxScore: 10},
		{ID: "stage", Name: "Stage", Weight: 40, MaxScore: 10},
	}
	require.NoError(t, e.settings.Write(ctx, settings))

	for _, id := range contestants {
		require.NoError(t, e.contestants.Create(ctx, &storage.Contestant{ID: id, Name: "Contestant " + id, CategoryID: "band"}))
	}
}

func (e *testEnv) setVoting(t *testing.T, open bool) {
	t.Helper()
	ctx := context.Background()
	settings, err := e.settings.Read(ctx)
	require.NoError(t, err)
	settings.VotingOpen = open
	require.NoError(t, e.settings.Write(ctx, settings))
}
