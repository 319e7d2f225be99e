package storage

import (
	"context"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// ScoreStorage is pure load/replace access to the scores document.
type ScoreStorage interface {
	Read(ctx context.Context) (*ScoresDocument, error)
	Write(ctx context.Context, doc *ScoresDocument) error
}

func (d *ScoresDocument) normalize() {
	if d.JudgeScores == nil {
		d.JudgeScores = map[string]map[string]*JudgeScore{}
	}
	for id, byJudge := range d.JudgeScores {
		if byJudge == nil {
			d.JudgeScores[id] = map[string]*JudgeScore{}
		}
	}
	if d.AudienceVotes == nil {
		d.AudienceVotes = map[string]int{}
	}
	if d.UserVotes == nil {
		d.UserVotes = map[string][]string{}
	}
	if d.VoteLogs == nil {
		d.VoteLogs = []VoteLogEntry{}
	}
}

// EmptyScores returns a document with every map initialised.
func EmptyScores() *ScoresDocument {
	doc := &ScoresDocument{}
	doc.normalize()
	return doc
}

// Score returns the stored score of judgeID for contestantID, or nil.
func (d *ScoresDocument) Score(contestantID, judgeID string) *JudgeScore {
	return d.JudgeScores[contestantID][judgeID]
}

// PutScore upserts the score of judgeID for contestantID.
func (d *ScoresDocument) PutScore(contestantID, judgeID string, score *JudgeScore) {
	byJudge, ok := d.JudgeScores[contestantID]
	if !ok || byJudge == nil {
		byJudge = map[string]*JudgeScore{}
		d.JudgeScores[contestantID] = byJudge
	}
	byJudge[judgeID] = score
}

type DocumentScoreStorage struct {
	Store DocumentStore
}

func (s *DocumentScoreStorage) Read(ctx context.Context) (*ScoresDocument, error) {
	doc := &ScoresDocument{}
	if err := readDocument(ctx, s.Store, CollectionScores, doc); err != nil {
		logging.Log.Errorf("SCORES: failed to load scores: %v", err)
		return nil, err
	}
	return doc, nil
}

func (s *DocumentScoreStorage) Write(ctx context.Context, doc *ScoresDocument) error {
	doc.normalize()
	if err := s.Store.Write(ctx, CollectionScores, doc); err != nil {
		logging.Log.Errorf("SCORES: failed to write scores: %v", err)
		return err
	}
	return nil
}
