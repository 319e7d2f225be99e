package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

func TestWeightedTotal(t *testing.T) {
	t.Run("weighted example", func(t *testing.T) {
		total, maxPossible := WeightedTotal(twoCriteria(), map[string]float64{"music": 8, "stage": 5})
		assert.InDelta(t, 6.8, total, 1e-9)
		assert.InDelta(t, 10.0, maxPossible, 1e-9)
	})

	t.Run("max possible ignores entered scores", func(t *testing.T) {
		_, a := WeightedTotal(twoCriteria(), map[string]float64{})
		_, b := WeightedTotal(twoCriteria(), map[string]float64{"music": 1, "stage": 9, "unknown": 4})
		assert.Equal(t, a, b)
	})

	t.Run("missing criterion counts as zero", func(t *testing.T) {
		total, _ := WeightedTotal(twoCriteria(), map[string]float64{"music": 10})
		assert.InDelta(t, 6.0, total, 1e-9)
	})

	t.Run("no criteria", func(t *testing.T) {
		total, maxPossible := WeightedTotal(nil, map[string]float64{"music": 10})
		assert.Zero(t, total)
		assert.Zero(t, maxPossible)
	})
}

func TestJudgeEngineSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCategory(t, "band", twoCriteria()...)
	f.addContestant(t, "c1", "The Rockers", "band")
	engine := f.engine()

	t.Run("stores weighted total", func(t *testing.T) {
		score, err := engine.Submit(ctx, ScoreSubmission{
			ContestantID:   "c1",
			JudgeID:        "j1",
			CriteriaScores: map[string]float64{"music": 8, "stage": 5},
			Comments:       "tight rhythm section",
		})
		require.NoError(t, err)
		assert.InDelta(t, 6.8, score.TotalScore, 1e-9)
		assert.InDelta(t, 10.0, score.MaxPossibleScore, 1e-9)
		assert.False(t, score.Finalized)
		assert.Equal(t, "band", score.CategoryID)

		doc, err := f.scores.Read(ctx)
		require.NoError(t, err)
		stored := doc.Score("c1", "j1")
		require.NotNil(t, stored)
		assert.Equal(t, "tight rhythm section", stored.Comments)
	})

	t.Run("resubmitting identical scores is idempotent", func(t *testing.T) {
		sub := ScoreSubmission{ContestantID: "c1", JudgeID: "j2", CriteriaScores: map[string]float64{"music": 7, "stage": 7}}
		first, err := engine.Submit(ctx, sub)
		require.NoError(t, err)
		second, err := engine.Submit(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, first.TotalScore, second.TotalScore)
		assert.False(t, second.Finalized)
	})

	t.Run("unknown contestant", func(t *testing.T) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "nope", JudgeID: "j1", CriteriaScores: map[string]float64{}})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "contestant", nf.Entity)
	})

	t.Run("missing criteria scores", func(t *testing.T) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "c1", JudgeID: "j1"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("score above max is rejected", func(t *testing.T) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "c1", JudgeID: "j1", CriteriaScores: map[string]float64{"music": 11}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("category without criteria scores zero", func(t *testing.T) {
		f.addCategory(t, "solo")
		f.addContestant(t, "c9", "Solo Act", "solo")
		score, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "c9", JudgeID: "j1", CriteriaScores: map[string]float64{"x": 9}})
		require.NoError(t, err)
		assert.Zero(t, score.TotalScore)
		assert.Zero(t, score.MaxPossibleScore)
	})
}

func TestJudgeEngineFinalize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCategory(t, "band", twoCriteria()...)
	f.addContestant(t, "c1", "The Rockers", "band")
	f.addContestant(t, "c2", "Night Owls", "band")
	engine := f.engine()

	submit := func(contestantID, judgeID string) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: contestantID, JudgeID: judgeID, CriteriaScores: map[string]float64{"music": 6, "stage": 6}})
		require.NoError(t, err)
	}

	t.Run("incomplete coverage fails without mutation", func(t *testing.T) {
		submit("c1", "j1")
		before, err := f.scores.Read(ctx)
		require.NoError(t, err)

		_, err = engine.Finalize(ctx, "j1", "band")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Night Owls"}, ve.Missing)

		after, err := f.scores.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.False(t, after.Score("c1", "j1").Finalized)
	})

	t.Run("complete coverage finalizes only this judge", func(t *testing.T) {
		submit("c2", "j1")
		submit("c1", "j2")

		n, err := engine.Finalize(ctx, "j1", "band")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		doc, err := f.scores.Read(ctx)
		require.NoError(t, err)
		for _, id := range []string{"c1", "c2"} {
			s := doc.Score(id, "j1")
			assert.True(t, s.Finalized)
			require.NotNil(t, s.FinalizedAt)
			assert.Equal(t, f.clock, *s.FinalizedAt)
		}
		assert.False(t, doc.Score("c1", "j2").Finalized)
	})

	t.Run("finalized score cannot be resubmitted", func(t *testing.T) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "c1", JudgeID: "j1", CriteriaScores: map[string]float64{"music": 1}})
		var se *StateError
		require.ErrorAs(t, err, &se)
		assert.True(t, errors.Is(err, ErrScoreFinalized))

		doc, err := f.scores.Read(ctx)
		require.NoError(t, err)
		assert.True(t, doc.Score("c1", "j1").Finalized)
	})

	t.Run("finalized lock wins over out of range scores", func(t *testing.T) {
		_, err := engine.Submit(ctx, ScoreSubmission{ContestantID: "c1", JudgeID: "j1", CriteriaScores: map[string]float64{"music": 99}})
		assert.ErrorIs(t, err, ErrScoreFinalized)

		var ve *ValidationError
		assert.False(t, errors.As(err, &ve))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := engine.Finalize(ctx, "j1", "missing")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("category scores view", func(t *testing.T) {
		scores, contestants, finalized, err := engine.CategoryScores(ctx, "j1", "band")
		require.NoError(t, err)
		assert.Len(t, scores, 2)
		assert.Len(t, contestants, 2)
		assert.True(t, finalized)

		_, _, finalized, err = engine.CategoryScores(ctx, "j2", "band")
		require.NoError(t, err)
		assert.False(t, finalized)
	})
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(storage.ScoreWeights{Judges: 70, Audience: 30}))
	assert.NoError(t, ValidateWeights(storage.ScoreWeights{Judges: 100, Audience: 0}))
	assert.Error(t, ValidateWeights(storage.ScoreWeights{Judges: 70, Audience: 40}))
	assert.Error(t, ValidateWeights(storage.ScoreWeights{Judges: 120, Audience: -20}))
}

func TestValidateCriteria(t *testing.T) {
	assert.NoError(t, ValidateCriteria(twoCriteria()))
	assert.Error(t, ValidateCriteria([]*storage.Criterion{{Name: "", Weight: 50, MaxScore: 10}}))
	assert.Error(t, ValidateCriteria([]*storage.Criterion{{Name: "a", Weight: 0, MaxScore: 10}}))
	assert.Error(t, ValidateCriteria([]*storage.Criterion{{Name: "a", Weight: 10, MaxScore: 0}}))
	assert.Error(t, ValidateCriteria([]*storage.Criterion{
		{ID: "x", Name: "a", Weight: 10, MaxScore: 5},
		{ID: "x", Name: "b", Weight: 10, MaxScore: 5},
	}))
}
