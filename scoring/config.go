package scoring

import "github.com/tharindraj/ctrl-alt-rock-voting/storage"

// Config is the admin-controlled state the scoring services depend on.
// It is read from settings per request and passed in explicitly.
type Config struct {
	VotingOpen bool
	Weights    storage.ScoreWeights
}

func ConfigFromSettings(s *storage.Settings) Config {
	return Config{
		VotingOpen: s.VotingOpen,
		Weights:    s.ScoreWeights,
	}
}

// ValidateWeights enforces judges + audience == 100 with both in [0, 100].
func ValidateWeights(w storage.ScoreWeights) error {
	if w.Judges < 0 || w.Judges > 100 || w.Audience < 0 || w.Audience > 100 {
		return NewValidationError("judge and audience weights must be between 0 and 100")
	}
	if w.Judges+w.Audience != 100 {
		return NewValidationError("judge and audience weights must total 100%%")
	}
	return nil
}

// ValidateCriteria checks a category's criteria list before it is stored.
func ValidateCriteria(criteria []*storage.Criterion) error {
	seen := make(map[string]bool, len(criteria))
	for i, c := range criteria {
		if c == nil || c.Name == "" {
			return NewValidationError("criterion %d requires a name", i)
		}
		if c.Weight <= 0 || c.Weight > 100 {
			return NewValidationError("criterion %q weight must be in (0, 100]", c.Name)
		}
		if c.MaxScore <= 0 {
			return NewValidationError("criterion %q maxScore must be positive", c.Name)
		}
		if c.ID != "" {
			if seen[c.ID] {
				return NewValidationError("duplicate criterion id %q", c.ID)
			}
			seen[c.ID] = true
		}
	}
	return nil
}
