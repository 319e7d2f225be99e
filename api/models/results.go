package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type DeclareWinnersRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	First      string `json:"first"`
	Second     string `json:"second"`
	Third      string `json:"third"`
}

func (r DeclareWinnersRequest) Placement() scoring.Placement {
	return scoring.Placement{First: r.First, Second: r.Second, Third: r.Third}
}

// PublishRequest is optional; places given here replace declared ones.
type PublishRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

func (r PublishRequest) Placement() *scoring.Placement {
	return &scoring.Placement{First: r.First, Second: r.Second, Third: r.Third}
}

type WinnerResponse struct {
	Message    string               `json:"message"`
	CategoryID string               `json:"categoryId"`
	Winners    *storage.WinnerEntry `json:"winners"`
}

type JudgeStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HasScored bool   `json:"hasScored"`
}

type AdminResultsResponse struct {
	Results      []scoring.CategoryResult        `json:"results"`
	Published    bool                            `json:"published"`
	Winners      map[string]*storage.WinnerEntry `json:"winners"`
	ScoreWeights storage.ScoreWeights            `json:"scoreWeights"`
	Judges       []JudgeStatus                   `json:"judges"`
	TotalVoters  int                             `json:"totalVoters"`
}

type ExportResponse struct {
	ExportedAt    time.Time                `json:"exportedAt"`
	Settings      SettingsResponse         `json:"settings"`
	Categories    []CategoryResponse       `json:"categories"`
	Contestants   []ContestantResponse     `json:"contestants"`
	Judges        []JudgeResponse          `json:"judges"`
	AudienceCount int                      `json:"audienceCount"`
	Results       []scoring.CategoryResult `json:"results"`
	Scores        *storage.ScoresDocument  `json:"scores"`
}
