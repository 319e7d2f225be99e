package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

func TestJudgePanel(t *testing.T) {
	contestants := []*storage.Contestant{
		{ID: "c1", Name: "One", CategoryID: "band"},
		{ID: "c2", Name: "Two", CategoryID: "band"},
		{ID: "c3", Name: "Three", CategoryID: "band"},
		{ID: "c4", Name: "Four", CategoryID: "band"},
	}
	judges := []string{"j1", "j2"}

	put := func(doc *storage.ScoresDocument, contestantID, judgeID string, total float64, finalized bool) {
		doc.PutScore(contestantID, judgeID, &storage.JudgeScore{TotalScore: total, Finalized: finalized, SubmittedAt: time.Unix(0, 0).UTC()})
	}
	fullPanel := func() *storage.ScoresDocument {
		doc := storage.EmptyScores()
		for id, totals := range map[string][2]float64{"c1": {6, 8}, "c2": {9, 9}, "c3": {2, 4}, "c4": {7, 7}} {
			put(doc, id, "j1", totals[0], true)
			put(doc, id, "j2", totals[1], true)
		}
		return doc
	}

	t.Run("every score finalized shows the top three", func(t *testing.T) {
		r := JudgePanel("band", contestants, judges, fullPanel())

		assert.True(t, r.AllJudged)
		assert.Equal(t, 4, r.TotalContestants)
		assert.Equal(t, 2, r.TotalJudges)
		require.Len(t, r.Results, 3)
		assert.Equal(t, "c2", r.Results[0].Contestant.ID)
		assert.InDelta(t, 9.0, r.Results[0].AverageScore, 1e-9)
		assert.Equal(t, "c1", r.Results[1].Contestant.ID)
		assert.Equal(t, "c4", r.Results[2].Contestant.ID)
		assert.Equal(t, 2, r.Results[0].JudgeCount)
	})

	t.Run("an unfinalized score hides the podium", func(t *testing.T) {
		doc := fullPanel()
		put(doc, "c3", "j2", 10, false)

		r := JudgePanel("band", contestants, judges, doc)
		assert.False(t, r.AllJudged)
		assert.Empty(t, r.Results)
		assert.Equal(t, 4, r.TotalContestants)
	})

	t.Run("a missing judge hides the podium", func(t *testing.T) {
		r := JudgePanel("band", contestants, []string{"j1", "j2", "j3"}, fullPanel())
		assert.False(t, r.AllJudged)
		assert.Empty(t, r.Results)
		assert.Equal(t, 3, r.TotalJudges)
	})

	t.Run("no judges", func(t *testing.T) {
		r := JudgePanel("band", contestants, nil, fullPanel())
		assert.False(t, r.AllJudged)
		assert.Empty(t, r.Results)
	})
}
