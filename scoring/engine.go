package scoring

import (
	"context"
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// WeightedTotal applies criterion weights (percentages) to raw scores.
// Criteria without a raw score count as 0. maxPossible depends only on the criteria.
func WeightedTotal(criteria []*storage.Criterion, raw map[string]float64) (total, maxPossible float64) {
	for _, c := range criteria {
		weight := c.Weight / 100
		total += raw[c.ID] * weight
		maxPossible += c.MaxScore * weight
	}
	return total, maxPossible
}

// ScoreSubmission is one judge's input for one contestant.
type ScoreSubmission struct {
	ContestantID   string
	JudgeID        string
	CriteriaScores map[string]float64
	Comments       string
}

// JudgeEngine submits and finalizes judge scores.
//
// Per judge and contestant a score moves Unscored -> Scored -> Finalized. Re-submitting a
// Scored pair overwrites it. A Finalized pair rejects further submissions with a StateError.
type JudgeEngine struct {
	scores      storage.ScoreStorage
	contestants storage.ContestantStorage
	categories  storage.CategoryStorage
	settings    storage.SettingsStorage
	now         func() time.Time
}

func NewJudgeEngine(scores storage.ScoreStorage, contestants storage.ContestantStorage, categories storage.CategoryStorage, settings storage.SettingsStorage) *JudgeEngine {
	return &JudgeEngine{
		scores:      scores,
		contestants: contestants,
		categories:  categories,
		settings:    settings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores the weighted score of a judge for a contestant.
func (e *JudgeEngine) Submit(ctx context.Context, sub ScoreSubmission) (*storage.JudgeScore, error) {
	if sub.JudgeID == "" {
		return nil, NewValidationError("judge id is required")
	}
	if sub.ContestantID == "" {
		return nil, NewValidationError("contestant id is required")
	}
	if sub.CriteriaScores == nil {
		return nil, NewValidationError("criteriaScores are required")
	}

	contestant, err := e.contestants.Get(ctx, sub.ContestantID)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionContestants), err)
	}
	if contestant == nil {
		return nil, &NotFoundError{Entity: "contestant", ID: sub.ContestantID}
	}

	settings, err := e.settings.Read(ctx)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionSettings), err)
	}
	// The finalize lock wins over input errors.
	doc, err := e.scores.Read(ctx)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionScores), err)
	}
	if existing := doc.Score(sub.ContestantID, sub.JudgeID); existing != nil && existing.Finalized {
		logging.Log.Warnf("JUDGE: %s tried to re-score finalized contestant %s", sub.JudgeID, sub.ContestantID)
		return nil, NewStateError(ErrScoreFinalized, contestant.Name)
	}

	criteria := settings.Criteria(contestant.CategoryID)
	for _, c := range criteria {
		raw, ok := sub.CriteriaScores[c.ID]
		if !ok {
			continue
		}
		if raw < 0 || raw > c.MaxScore {
			return nil, NewValidationError("score for %q must be between 0 and %g", c.Name, c.MaxScore)
		}
	}

	total, maxPossible := WeightedTotal(criteria, sub.CriteriaScores)
	score := &storage.JudgeScore{
		CriteriaScores:   sub.CriteriaScores,
		Comments:         sub.Comments,
		CategoryID:       contestant.CategoryID,
		TotalScore:       total,
		MaxPossibleScore: maxPossible,
		SubmittedAt:      e.now(),
		Finalized:        false,
	}
	doc.PutScore(sub.ContestantID, sub.JudgeID, score)

	if err := e.scores.Write(ctx, doc); err != nil {
		return nil, persistenceError("write", string(storage.CollectionScores), err)
	}
	logging.Log.Infof("JUDGE: %s scored contestant %s: %.2f / %.2f", sub.JudgeID, sub.ContestantID, total, maxPossible)
	return score, nil
}

// Finalize locks every score judgeID has in the category. It is all-or-nothing: if any
// contestant of the category lacks a score from this judge nothing is written.
func (e *JudgeEngine) Finalize(ctx context.Context, judgeID, categoryID string) (int, error) {
	if judgeID == "" {
		return 0, NewValidationError("judge id is required")
	}
	if categoryID == "" {
		return 0, NewValidationError("category id is required")
	}

	category, err := e.categories.Get(ctx, categoryID)
	if err != nil {
		return 0, persistenceError("read", string(storage.CollectionCategories), err)
	}
	if category == nil {
		return 0, &NotFoundError{Entity: "category", ID: categoryID}
	}

	contestants, err := e.contestants.GetByCategory(ctx, categoryID)
	if err != nil {
		return 0, persistenceError("read", string(storage.CollectionContestants), err)
	}
	doc, err := e.scores.Read(ctx)
	if err != nil {
		return 0, persistenceError("read", string(storage.CollectionScores), err)
	}

	var missing []string
	for _, c := range contestants {
		if doc.Score(c.ID, judgeID) == nil {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		logging.Log.Warnf("JUDGE: %s cannot finalize %s, %d contestants unscored", judgeID, categoryID, len(missing))
		return 0, &ValidationError{Message: "please score all contestants first. Missing scores for", Missing: missing}
	}

	at := e.now()
	for _, c := range contestants {
		score := doc.Score(c.ID, judgeID)
		score.Finalized = true
		score.FinalizedAt = &at
	}
	if err := e.scores.Write(ctx, doc); err != nil {
		return 0, persistenceError("write", string(storage.CollectionScores), err)
	}
	logging.Log.Infof("JUDGE: %s finalized %d scores in category %s", judgeID, len(contestants), categoryID)
	return len(contestants), nil
}

// CategoryScores returns the scores judgeID has in a category keyed by contestant ID,
// and whether any of them is finalized.
func (e *JudgeEngine) CategoryScores(ctx context.Context, judgeID, categoryID string) (map[string]*storage.JudgeScore, []*storage.Contestant, bool, error) {
	contestants, err := e.contestants.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, false, persistenceError("read", string(storage.CollectionContestants), err)
	}
	doc, err := e.scores.Read(ctx)
	if err != nil {
		return nil, nil, false, persistenceError("read", string(storage.CollectionScores), err)
	}

	scores := make(map[string]*storage.JudgeScore)
	finalized := false
	for _, c := range contestants {
		if s := doc.Score(c.ID, judgeID); s != nil {
			scores[c.ID] = s
			finalized = finalized || s.Finalized
		}
	}
	return scores, contestants, finalized, nil
}
