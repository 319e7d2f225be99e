package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type fixture struct {
	categories  *storage.DocumentCategoryStorage
	contestants *storage.DocumentContestantStorage
	scores      *storage.DocumentScoreStorage
	settings    *storage.DocumentSettingsStorage
	clock       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logging.Log = logrus.New()

	store, err := storage.NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		categories:  storage.NewCategoryStorage(store),
		contestants: storage.NewContestantStorage(store),
		scores:      &storage.DocumentScoreStorage{Store: store},
		settings:    &storage.DocumentSettingsStorage{Store: store},
		clock:       time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) now() time.Time { return f.clock }

func (f *fixture) engine() *JudgeEngine {
	e := NewJudgeEngine(f.scores, f.contestants, f.categories, f.settings)
	e.now = f.now
	return e
}

func (f *fixture) recorder() *VoteRecorder {
	r := NewVoteRecorder(f.scores, f.contestants, f.settings)
	r.now = f.now
	return r
}

func (f *fixture) publisher() *Publisher {
	p := NewPublisher(f.settings, f.scores, f.categories, NewAggregator(f.categories, f.contestants, f.scores, f.settings))
	p.now = f.now
	return p
}

func (f *fixture) addCategory(t *testing.T, id string, criteria ...*storage.Criterion) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.categories.Create(ctx, &storage.Category{ID: id, Name: "Category " + id}))
	if len(criteria) == 0 {
		return
	}
	settings, err := f.settings.Read(ctx)
	require.NoError(t, err)
	settings.CategoryScoringCriteria[id] = criteria
	require.NoError(t, f.settings.Write(ctx, settings))
}

func (f *fixture) addContestant(t *testing.T, id, name, categoryID string) {
	t.Helper()
	require.NoError(t, f.contestants.Create(context.Background(), &storage.Contestant{ID: id, Name: name, CategoryID: categoryID}))
}

func (f *fixture) setVoting(t *testing.T, open bool) {
	t.Helper()
	ctx := context.Background()
	settings, err := f.settings.Read(ctx)
	require.NoError(t, err)
	settings.VotingOpen = open
	require.NoError(t, f.settings.Write(ctx, settings))
}

func (f *fixture) setWeights(t *testing.T, judges, audience float64) {
	t.Helper()
	ctx := context.Background()
	settings, err := f.settings.Read(ctx)
	require.NoError(t, err)
	settings.ScoreWeights = storage.ScoreWeights{Judges: judges, Audience: audience}
	require.NoError(t, f.settings.Write(ctx, settings))
}

func twoCriteria() []*storage.Criterion {
	return []*storage.Criterion{
		{ID: "music", Name: "Music", Weight: 60, MaxScore: 10},
		{ID: "stage", Name: "Stage", Weight: 40, MaxScore: 10},
	}
}
