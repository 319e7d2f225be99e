package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutils "github.com/tharindraj/ctrl-alt-rock-voting/api/controllers/testing"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

func setupLogger() {
	logging.Log = logrus.New()
}

func testConfig(dir string) *Config {
	return &Config{
		StorageConfig: StorageConfig{Backend: "file", DataDir: dir},
		ServerConfig:  ServerConfig{Mode: gin.TestMode},
		AuthConfig: AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			AdminUsername: "admin",
			AdminPassword: "admin123",
			LoginRate:     100,
			LoginBurst:    100,
		},
		EventConfig: EventConfig{JudgesWeight: 60, AudienceWeight: 40},
	}
}

func login(t *testing.T, r *gin.Engine, path string, body any) map[string]string {
	t.Helper()
	w := testutils.PerformRequest(r, http.MethodPost, path, body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.LoginResponse
	require.NoError(t, testutils.Decode(w, &resp))
	return testutils.Bearer(resp.Token)
}

func TestNewDocumentStore(t *testing.T) {
	setupLogger()

	s := NewServer(&Config{StorageConfig: StorageConfig{Backend: "ftp"}})
	_, err := s.newDocumentStore(context.Background())
	assert.Error(t, err)

	s = NewServer(testConfig(t.TempDir()))
	store, err := s.newDocumentStore(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &storage.FileDocumentStore{}, store)

	conf := testConfig(t.TempDir())
	conf.Backend = "sqlite"
	store, err = NewServer(conf).newDocumentStore(context.Background())
	require.NoError(t, err)
	require.IsType(t, &storage.SQLDocumentStore{}, store)
	store.(*storage.SQLDocumentStore).Close()

	conf.Backend = "s3"
	_, err = NewServer(conf).newDocumentStore(context.Background())
	assert.ErrorContains(t, err, "storage.bucket")
}

func TestBootstrapAdminOnlyOnce(t *testing.T) {
	setupLogger()
	ctx := context.Background()
	dir := t.TempDir()
	s := NewServer(testConfig(dir))

	store, err := s.newDocumentStore(ctx)
	require.NoError(t, err)
	_, err = s.Build(ctx, store)
	require.NoError(t, err)
	_, err = s.Build(ctx, store)
	require.NoError(t, err)

	admins, err := storage.NewAdminStorage(store).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

// TestEventFlow drives a whole event through the wired router: setup, scoring,
// voting, results and publication.
func TestEventFlow(t *testing.T) {
	setupLogger()
	ctx := context.Background()
	s := NewServer(testConfig(t.TempDir()))
	store, err := s.newDocumentStore(ctx)
	require.NoError(t, err)
	r, err := s.Build(ctx, store)
	require.NoError(t, err)

	do := func(method, path string, body any, headers map[string]string) int {
		return testutils.PerformRequest(r, method, path, body, headers).Code
	}

	admin := login(t, r, "/api/auth/admin/login", models.LoginRequest{Username: "admin", Password: "admin123"})

	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/admin/categories", models.CategoryCreateRequest{ID: "band", Name: "Band"}, admin))
	require.Equal(t, http.StatusOK, do(http.MethodPut, "/api/admin/categories/band/criteria", models.CriteriaUpdateRequest{Criteria: []models.CriterionRequest{
		{ID: "music", Name: "Music", Weight: 60, MaxScore: 10},
		{ID: "stage", Name: "Stage", Weight: 40, MaxScore: 10},
	}}, admin))
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/admin/contestants", models.ContestantCreateRequest{ID: "c1", Name: "Byte Riders", CategoryID: "band"}, admin))
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/admin/contestants", models.ContestantCreateRequest{ID: "c2", Name: "Night Owls", CategoryID: "band"}, admin))
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/admin/judges", models.JudgeCreateRequest{Name: "Ozzy", Username: "ozzy", Password: "rockon"}, admin))

	w := testutils.PerformRequest(r, http.MethodPost, "/api/admin/audience", models.AudienceCreateRequest{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	var member models.AudienceResponse
	require.NoError(t, testutils.Decode(w, &member))

	judge := login(t, r, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "rockon"})
	audience := login(t, r, "/api/auth/audience/login", models.AudienceLoginRequest{LoginCode: member.LoginCode})

	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/judge/contestants/c1/score", models.SubmitScoreRequest{CriteriaScores: map[string]float64{"music": 8, "stage": 5}}, judge))
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/judge/contestants/c2/score", models.SubmitScoreRequest{CriteriaScores: map[string]float64{"music": 9, "stage": 9}}, judge))
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/judge/categories/band/finalize", nil, judge))

	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/audience/contestants/c1/vote", nil, audience))
	require.Equal(t, http.StatusOK, do(http.MethodPut, "/api/admin/settings/voting", models.VotingToggleRequest{VotingOpen: ptr(true)}, admin))
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/audience/contestants/c1/vote", nil, audience))

	// c1: 68% * 0.6 + 100% * 0.4 = 80.8, c2: 90% * 0.6 = 54
	w = testutils.PerformRequest(r, http.MethodGet, "/api/admin/results", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var results models.AdminResultsResponse
	require.NoError(t, testutils.Decode(w, &results))
	require.Len(t, results.Results, 1)
	ranked := results.Results[0].Results
	require.Len(t, ranked, 2)
	assert.Equal(t, "c1", ranked[0].Contestant.ID)
	assert.InDelta(t, 80.8, ranked[0].FinalScore, 1e-9)
	assert.InDelta(t, 54.0, ranked[1].FinalScore, 1e-9)

	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/admin/results/publish/band", nil, admin))

	w = testutils.PerformRequest(r, http.MethodGet, "/api/audience/results", nil, audience)
	require.Equal(t, http.StatusOK, w.Code)
	var view scoring.PublishedView
	require.NoError(t, testutils.Decode(w, &view))
	require.True(t, view.Published)
	band := view.Results["band"]
	assert.Equal(t, scoring.ResultTypeCalculated, band.Type)
	require.NotNil(t, band.Winners.First)
	assert.Equal(t, "c1", band.Winners.First.ContestantID)
	assert.Equal(t, "c2", band.Winners.Second.ContestantID)
}

func ptr[T any](v T) *T { return &v }
