package scoring

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// JudgeScaleMax is the raw judge scale the average is normalized against.
const JudgeScaleMax = 10.0

type JudgeBreakdown struct {
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
	Finalized   bool      `json:"finalized"`
}

// ContestantResult is the full score breakdown of one contestant.
type ContestantResult struct {
	Contestant                 *storage.Contestant       `json:"contestant"`
	JudgeScore                 float64                   `json:"judgeScore"`
	JudgePercentage            float64                   `json:"judgePercentage"`
	AudienceVotes              int                       `json:"audienceVotes"`
	TotalActiveVoters          int                       `json:"totalActiveVoters"`
	AudienceParticipationRatio float64                   `json:"audienceParticipationRatio"`
	AudiencePercentage         float64                   `json:"audiencePercentage"`
	WeightedJudgeScore         float64                   `json:"weightedJudgeScore"`
	WeightedAudienceScore      float64                   `json:"weightedAudienceScore"`
	FinalScore                 float64                   `json:"finalScore"`
	JudgeCount                 int                       `json:"judgeCount"`
	JudgeBreakdown             map[string]JudgeBreakdown `json:"judgeBreakdown"`
}

type CategoryResult struct {
	Category *storage.Category `json:"category"`
	Results  []ContestantResult `json:"results"`
}

// ScoreContestant merges both scoring streams of one contestant. Every stored judge
// score counts, finalized or not.
func ScoreContestant(contestant *storage.Contestant, doc *storage.ScoresDocument, weights storage.ScoreWeights) ContestantResult {
	byJudge := doc.JudgeScores[contestant.ID]

	judgeIDs := make([]string, 0, len(byJudge))
	for id, s := range byJudge {
		if s != nil {
			judgeIDs = append(judgeIDs, id)
		}
	}
	// Fixed summation order keeps repeated computations bit-identical.
	sort.Strings(judgeIDs)

	breakdown := make(map[string]JudgeBreakdown, len(judgeIDs))
	var sum float64
	for _, id := range judgeIDs {
		s := byJudge[id]
		sum += s.TotalScore
		breakdown[id] = JudgeBreakdown{Score: s.TotalScore, SubmittedAt: s.SubmittedAt, Finalized: s.Finalized}
	}

	var avg float64
	if len(judgeIDs) > 0 {
		avg = sum / float64(len(judgeIDs))
	}

	judgePercentage := (avg / JudgeScaleMax) * 100
	weightedJudge := judgePercentage * weights.Judges / 100

	ratio := ParticipationRatio(doc, contestant.ID)
	audiencePercentage := ratio * 100
	weightedAudience := audiencePercentage * weights.Audience / 100

	return ContestantResult{
		Contestant:                 contestant,
		JudgeScore:                 avg,
		JudgePercentage:            judgePercentage,
		AudienceVotes:              doc.AudienceVotes[contestant.ID],
		TotalActiveVoters:          DistinctVoters(doc),
		AudienceParticipationRatio: ratio,
		AudiencePercentage:         audiencePercentage,
		WeightedJudgeScore:         weightedJudge,
		WeightedAudienceScore:      weightedAudience,
		FinalScore:                 weightedJudge + weightedAudience,
		JudgeCount:                 len(judgeIDs),
		JudgeBreakdown:             breakdown,
	}
}

// RankCategory scores the contestants and sorts them by final score, highest first.
// Exact ties keep the contestant list order.
func RankCategory(category *storage.Category, contestants []*storage.Contestant, doc *storage.ScoresDocument, weights storage.ScoreWeights) CategoryResult {
	results := make([]ContestantResult, 0, len(contestants))
	for _, c := range contestants {
		results = append(results, ScoreContestant(c, doc, weights))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return CategoryResult{Category: category, Results: results}
}

// Snapshot is everything a results computation reads, loaded once.
type Snapshot struct {
	Categories  []*storage.Category
	Contestants []*storage.Contestant
	Scores      *storage.ScoresDocument
	Settings    *storage.Settings
}

// Aggregator recomputes results on every call; nothing is cached.
type Aggregator struct {
	categories  storage.CategoryStorage
	contestants storage.ContestantStorage
	scores      storage.ScoreStorage
	settings    storage.SettingsStorage
}

func NewAggregator(categories storage.CategoryStorage, contestants storage.ContestantStorage, scores storage.ScoreStorage, settings storage.SettingsStorage) *Aggregator {
	return &Aggregator{
		categories:  categories,
		contestants: contestants,
		scores:      scores,
		settings:    settings,
	}
}

// Snapshot loads the four documents a results computation reads concurrently.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := a.categories.GetAll(gctx)
		if err != nil {
			return persistenceError("read", string(storage.CollectionCategories), err)
		}
		snap.Categories = categories
		return nil
	})
	g.Go(func() error {
		contestants, err := a.contestants.GetAll(gctx)
		if err != nil {
			return persistenceError("read", string(storage.CollectionContestants), err)
		}
		snap.Contestants = contestants
		return nil
	})
	g.Go(func() error {
		scores, err := a.scores.Read(gctx)
		if err != nil {
			return persistenceError("read", string(storage.CollectionScores), err)
		}
		snap.Scores = scores
		return nil
	})
	g.Go(func() error {
		settings, err := a.settings.Read(gctx)
		if err != nil {
			return persistenceError("read", string(storage.CollectionSettings), err)
		}
		snap.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Compute ranks one category, or every category when categoryID is empty, in
// category list order.
func (a *Aggregator) Compute(ctx context.Context, categoryID string) ([]CategoryResult, *Snapshot, error) {
	snap, err := a.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	results, err := snap.Rank(categoryID)
	if err != nil {
		return nil, nil, err
	}
	logging.Log.Debugf("RESULTS: computed %d categories", len(results))
	return results, snap, nil
}

// Rank computes results from the snapshot with its current score weights.
func (s *Snapshot) Rank(categoryID string) ([]CategoryResult, error) {
	weights := ConfigFromSettings(s.Settings).Weights
	results := make([]CategoryResult, 0, len(s.Categories))
	for _, category := range s.Categories {
		if categoryID != "" && category.ID != categoryID {
			continue
		}
		contestants := storage.FilterByCategory(s.Contestants, category.ID)
		results = append(results, RankCategory(category, contestants, s.Scores, weights))
	}
	if categoryID != "" && len(results) == 0 {
		return nil, &NotFoundError{Entity: "category", ID: categoryID}
	}
	return results, nil
}

// ActiveJudges returns the sorted IDs of judges with at least one stored score.
func ActiveJudges(doc *storage.ScoresDocument) []string {
	seen := map[string]bool{}
	for _, byJudge := range doc.JudgeScores {
		for id := range byJudge {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
