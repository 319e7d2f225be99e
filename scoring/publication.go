package scoring

import (
	"context"
	"sort"
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

const (
	ResultTypeDeclared   = "declared"
	ResultTypeCalculated = "calculated"
)

// Placement holds contestant IDs for the podium of one category.
type Placement struct {
	First  string `json:"first,omitempty"`
	Second string `json:"second,omitempty"`
	Third  string `json:"third,omitempty"`
}

func (p Placement) empty() bool {
	return p.First == "" && p.Second == "" && p.Third == ""
}

type PlacedContestant struct {
	ContestantID string              `json:"contestantId"`
	Contestant   *storage.Contestant `json:"contestant"`
}

type PublishedWinners struct {
	First  *PlacedContestant `json:"first"`
	Second *PlacedContestant `json:"second"`
	Third  *PlacedContestant `json:"third"`
}

type PublishedScore struct {
	Contestant    *storage.Contestant `json:"contestant"`
	FinalScore    float64             `json:"finalScore"`
	JudgeScore    float64             `json:"judgeScore"`
	AudienceVotes int                 `json:"audienceVotes"`
}

type PublishedCategory struct {
	Category    *storage.Category `json:"category"`
	Winners     PublishedWinners  `json:"winners"`
	Scores      []PublishedScore  `json:"scores,omitempty"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
	Type        string            `json:"type"`
}

// PublishedView is what the audience sees.
type PublishedView struct {
	Published bool                         `json:"published"`
	Message   string                       `json:"message,omitempty"`
	Results   map[string]PublishedCategory `json:"results,omitempty"`
}

// Publisher owns declared winners and the global published gate.
// Declared places override the computed ranking for the audience; a published category
// without declared places shows the live top three instead.
type Publisher struct {
	settings   storage.SettingsStorage
	scores     storage.ScoreStorage
	categories storage.CategoryStorage
	aggregator *Aggregator
	now        func() time.Time
}

func NewPublisher(settings storage.SettingsStorage, scores storage.ScoreStorage, categories storage.CategoryStorage, aggregator *Aggregator) *Publisher {
	return &Publisher{
		settings:   settings,
		scores:     scores,
		categories: categories,
		aggregator: aggregator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) load(ctx context.Context, categoryID string) (*storage.Settings, error) {
	if categoryID == "" {
		return nil, NewValidationError("category id is required")
	}
	category, err := p.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionCategories), err)
	}
	if category == nil {
		return nil, &NotFoundError{Entity: "category", ID: categoryID}
	}
	settings, err := p.settings.Read(ctx)
	if err != nil {
		return nil, persistenceError("read", string(storage.CollectionSettings), err)
	}
	return settings, nil
}

func (p *Publisher) save(ctx context.Context, settings *storage.Settings) error {
	if err := p.settings.Write(ctx, settings); err != nil {
		return persistenceError("write", string(storage.CollectionSettings), err)
	}
	return nil
}

// Declare stores explicit places for a category verbatim. It does not publish.
func (p *Publisher) Declare(ctx context.Context, categoryID string, places Placement) (*storage.WinnerEntry, error) {
	if places.empty() {
		return nil, NewValidationError("at least one winner is required")
	}
	settings, err := p.load(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	at := p.now()
	entry := &storage.WinnerEntry{
		First:      places.First,
		Second:     places.Second,
		Third:      places.Third,
		DeclaredAt: &at,
	}
	if prev := settings.Results.Winners[categoryID]; prev != nil {
		entry.PublishedAt = prev.PublishedAt
	}
	settings.Results.Winners[categoryID] = entry

	if err := p.save(ctx, settings); err != nil {
		return nil, err
	}
	logging.Log.Infof("RESULTS: declared winners for category %s", categoryID)
	return entry, nil
}

// Publish opens the audience results view and lists the category in it. Places given
// here replace declared ones; without them declared places are kept.
func (p *Publisher) Publish(ctx context.Context, categoryID string, places *Placement) (*storage.WinnerEntry, error) {
	settings, err := p.load(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	entry := settings.Results.Winners[categoryID]
	if entry == nil {
		entry = &storage.WinnerEntry{}
	}
	at := p.now()
	if places != nil && !places.empty() {
		entry.First, entry.Second, entry.Third = places.First, places.Second, places.Third
		entry.DeclaredAt = &at
	}
	entry.PublishedAt = &at
	settings.Results.Winners[categoryID] = entry
	settings.Results.Published = true

	if err := p.save(ctx, settings); err != nil {
		return nil, err
	}
	logging.Log.Infof("RESULTS: published category %s", categoryID)
	return entry, nil
}

// Unpublish closes the audience results view. Declared winners are kept.
func (p *Publisher) Unpublish(ctx context.Context) error {
	settings, err := p.settings.Read(ctx)
	if err != nil {
		return persistenceError("read", string(storage.CollectionSettings), err)
	}
	settings.Results.Published = false
	if err := p.save(ctx, settings); err != nil {
		return err
	}
	logging.Log.Info("RESULTS: unpublished results")
	return nil
}

// ClearVotes empties both scoring streams, drops declared winners and unpublishes.
// Both documents are built before the first write. Settings are saved first so a failed
// scores write leaves results unpublished with every score still in place.
func (p *Publisher) ClearVotes(ctx context.Context) error {
	settings, err := p.settings.Read(ctx)
	if err != nil {
		return persistenceError("read", string(storage.CollectionSettings), err)
	}
	settings.Results = storage.ResultsState{Published: false, Winners: map[string]*storage.WinnerEntry{}}

	doc := storage.EmptyScores()
	at := p.now()
	doc.LastUpdated = &at

	if err := p.save(ctx, settings); err != nil {
		return err
	}
	if err := p.scores.Write(ctx, doc); err != nil {
		return persistenceError("write", string(storage.CollectionScores), err)
	}
	logging.Log.Warn("RESULTS: cleared all votes and scores")
	return nil
}

// PublishedResults builds the audience view from the current state.
func (p *Publisher) PublishedResults(ctx context.Context) (*PublishedView, error) {
	snap, err := p.aggregator.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.Settings.Results.Published {
		return &PublishedView{Published: false, Message: "Results have not been published yet"}, nil
	}

	contestantByID := make(map[string]*storage.Contestant, len(snap.Contestants))
	for _, c := range snap.Contestants {
		contestantByID[c.ID] = c
	}
	categoryByID := make(map[string]*storage.Category, len(snap.Categories))
	for _, c := range snap.Categories {
		categoryByID[c.ID] = c
	}

	categoryIDs := make([]string, 0, len(snap.Settings.Results.Winners))
	for id := range snap.Settings.Results.Winners {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Strings(categoryIDs)

	weights := ConfigFromSettings(snap.Settings).Weights
	results := make(map[string]PublishedCategory, len(categoryIDs))
	for _, id := range categoryIDs {
		category, ok := categoryByID[id]
		if !ok {
			continue
		}
		entry := snap.Settings.Results.Winners[id]

		if entry.HasPlaces() {
			results[id] = PublishedCategory{
				Category: category,
				Winners: PublishedWinners{
					First:  place(entry.First, contestantByID),
					Second: place(entry.Second, contestantByID),
					Third:  place(entry.Third, contestantByID),
				},
				PublishedAt: publishedAt(entry),
				Type:        ResultTypeDeclared,
			}
			continue
		}

		ranked := RankCategory(category, storage.FilterByCategory(snap.Contestants, id), snap.Scores, weights)
		view := PublishedCategory{
			Category:    category,
			Scores:      make([]PublishedScore, 0, len(ranked.Results)),
			PublishedAt: publishedAt(entry),
			Type:        ResultTypeCalculated,
		}
		podium := []**PlacedContestant{&view.Winners.First, &view.Winners.Second, &view.Winners.Third}
		for i, r := range ranked.Results {
			if i < len(podium) {
				*podium[i] = &PlacedContestant{ContestantID: r.Contestant.ID, Contestant: r.Contestant}
			}
			view.Scores = append(view.Scores, PublishedScore{
				Contestant:    r.Contestant,
				FinalScore:    r.FinalScore,
				JudgeScore:    r.JudgeScore,
				AudienceVotes: r.AudienceVotes,
			})
		}
		results[id] = view
	}

	return &PublishedView{Published: true, Results: results}, nil
}

func place(id string, contestants map[string]*storage.Contestant) *PlacedContestant {
	if id == "" {
		return nil
	}
	return &PlacedContestant{ContestantID: id, Contestant: contestants[id]}
}

func publishedAt(entry *storage.WinnerEntry) *time.Time {
	if entry == nil {
		return nil
	}
	return entry.PublishedAt
}
