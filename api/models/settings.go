package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type VotingToggleRequest struct {
	VotingOpen *bool `json:"votingOpen" binding:"required"`
}

type ScoreWeightsRequest struct {
	Judges   *float64 `json:"judges" binding:"required"`
	Audience *float64 `json:"audience" binding:"required"`
}

type EventInfoRequest struct {
	EventName        string `json:"eventName" binding:"required"`
	EventDescription string `json:"eventDescription"`
}

type SettingsResponse struct {
	EventName             string               `json:"eventName,omitempty"`
	EventDescription      string               `json:"eventDescription,omitempty"`
	VotingOpen            bool                 `json:"votingOpen"`
	VotingStatusUpdatedAt *time.Time           `json:"votingStatusUpdatedAt,omitempty"`
	ScoreWeights          storage.ScoreWeights `json:"scoreWeights"`
	ScoreWeightsUpdatedAt *time.Time           `json:"scoreWeightsUpdatedAt,omitempty"`
	ResultsPublished      bool                 `json:"resultsPublished"`
	UpdatedAt             *time.Time           `json:"updatedAt,omitempty"`
}

func TransformSettingsFromStorage(s *storage.Settings) SettingsResponse {
	return SettingsResponse{
		EventName:             s.EventName,
		EventDescription:      s.EventDescription,
		VotingOpen:            s.VotingOpen,
		VotingStatusUpdatedAt: s.VotingStatusUpdatedAt,
		ScoreWeights:          s.ScoreWeights,
		ScoreWeightsUpdatedAt: s.ScoreWeightsUpdatedAt,
		ResultsPublished:      s.Results.Published,
		UpdatedAt:             s.UpdatedAt,
	}
}
