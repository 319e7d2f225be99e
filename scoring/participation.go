package scoring

import (
	"context"
	"slices"
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// DistinctVoters counts audience members who voted at least once.
func DistinctVoters(doc *storage.ScoresDocument) int {
	return len(doc.UserVotes)
}

// ParticipationRatio is a contestant's votes over all distinct voters, not over the
// votes cast in its category.
func ParticipationRatio(doc *storage.ScoresDocument, contestantID string) float64 {
	voters := max(1, DistinctVoters(doc))
	return float64(doc.AudienceVotes[contestantID]) / float64(voters)
}

// VoteResult is returned after a vote was recorded.
type VoteResult struct {
	Contestant *storage.Contestant
	TotalVotes int
}

// VoteRecorder records audience votes: one per audience member and contestant, any
// number of distinct contestants per member.
type VoteRecorder struct {
	scores      storage.ScoreStorage
	contestants storage.ContestantStorage
	settings    storage.SettingsStorage
	now         func() time.Time
}

func NewVoteRecorder(scores storage.ScoreStorage, contestants storage.ContestantStorage, settings storage.SettingsStorage) *VoteRecorder {
	return &VoteRecorder{
		scores:      scores,
		contestants: contestants,
		settings:    settings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (r *VoteRecorder) config(ctx context.Context) (Config, error) {
	settings, err := r.settings.Read(ctx)
	if err != nil {
		return Config{}, persistenceError("read", string(storage.CollectionSettings), err)
	}
	return ConfigFromSettings(settings), nil
}

// Record counts a vote of audienceID for contestantID.
func (r *VoteRecorder) Record(ctx context.Context, audienceID, contestantID string) (*VoteResult, error) {
	if audienceID == "" {
		return nil, NewValidationError("audience id is required")
	}
	if contestantID == "" {
		return nil, NewValidationError("contestant id is required")
	}

	cfg, err := r.config(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.VotingOpen {
		return nil, NewStateError(ErrVotingClosed, "")
	}

	contestant, err := r.contestants.Get(ctx, contestantID)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionContestants), err)
	}
	if contestant == nil {
		return nil, &NotFoundError{Entity: "contestant", ID: contestantID}
	}

	doc, err := r.scores.Read(ctx)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionScores), err)
	}
	if slices.Contains(doc.UserVotes[audienceID], contestantID) {
		logging.Log.Warnf("AUDIENCE: %s already voted for %s", audienceID, contestantID)
		return nil, NewStateError(ErrDuplicateVote, contestant.Name)
	}

	doc.AudienceVotes[contestantID]++
	doc.UserVotes[audienceID] = append(doc.UserVotes[audienceID], contestantID)
	doc.VoteLogs = append(doc.VoteLogs, storage.VoteLogEntry{
		AudienceID:   audienceID,
		ContestantID: contestantID,
		VotedAt:      r.now(),
	})

	if err := r.scores.Write(ctx, doc); err != nil {
		return nil, persistenceError("write", string(storage.CollectionScores), err)
	}
	logging.Log.Infof("AUDIENCE: %s voted for %s (%d votes)", audienceID, contestantID, doc.AudienceVotes[contestantID])
	return &VoteResult{Contestant: contestant, TotalVotes: doc.AudienceVotes[contestantID]}, nil
}

// CanVote reports whether Record would accept the vote, with the reason when it would not.
func (r *VoteRecorder) CanVote(ctx context.Context, audienceID, contestantID string) (bool, string, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return false, "", err
	}
	if !cfg.VotingOpen {
		return false, "Voting is currently closed", nil
	}
	doc, err := r.scores.Read(ctx)
	if err != nil {
		return false, "", persistenceError("read", string(storage.CollectionScores), err)
	}
	if slices.Contains(doc.UserVotes[audienceID], contestantID) {
		return false, "Already voted for this contestant", nil
	}
	return true, "", nil
}

// VotesOf returns the contestant IDs audienceID voted for, in voting order.
func (r *VoteRecorder) VotesOf(ctx context.Context, audienceID string) ([]string, error) {
	doc, err := r.scores.Read(ctx)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionScores), err)
	}
	votes := doc.UserVotes[audienceID]
	if votes == nil {
		votes = []string{}
	}
	return votes, nil
}

// VotingOpen reports the admin voting toggle.
func (r *VoteRecorder) VotingOpen(ctx context.Context) (bool, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return false, err
	}
	return cfg.VotingOpen, nil
}
