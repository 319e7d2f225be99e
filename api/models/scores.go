package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type SubmitScoreRequest struct {
	CriteriaScores map[string]float64 `json:"criteriaScores" binding:"required,dive,gte=0"`
	Comments       string             `json:"comments"`
}

type SubmitScoreResponse struct {
	Message          string  `json:"message"`
	TotalScore       float64 `json:"totalScore"`
	MaxPossibleScore float64 `json:"maxPossibleScore"`
}

type FinalizeResponse struct {
	Message        string `json:"message"`
	FinalizedCount int    `json:"finalizedCount"`
}

type CategoryScoresResponse struct {
	CategoryID  string                         `json:"categoryId"`
	Scores      map[string]*storage.JudgeScore `json:"scores"`
	Contestants []ContestantResponse           `json:"contestants"`
	IsFinalized bool                           `json:"isFinalized"`
}

type MyScoreEntry struct {
	ContestantID   string             `json:"contestantId"`
	ContestantName string             `json:"contestantName"`
	CategoryID     string             `json:"categoryId"`
	CategoryName   string             `json:"categoryName"`
	CriteriaScores map[string]float64 `json:"criteriaScores"`
	Comments       string             `json:"comments,omitempty"`
	TotalScore     float64            `json:"totalScore"`
	MaxScore       float64            `json:"maxPossibleScore"`
	SubmittedAt    time.Time          `json:"submittedAt"`
	Finalized      bool               `json:"finalized"`
}

type OtherScoreEntry struct {
	JudgeID        string             `json:"judgeId"`
	JudgeName      string             `json:"judgeName"`
	CriteriaScores map[string]float64 `json:"criteriaScores"`
	Comments       string             `json:"comments,omitempty"`
	TotalScore     float64            `json:"totalScore"`
	FinalizedAt    *time.Time         `json:"finalizedAt,omitempty"`
}

type OtherScoresResponse struct {
	ContestantID string            `json:"contestantId"`
	Scores       []OtherScoreEntry `json:"scores"`
}

type CategoryCompletion struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Scored       int     `json:"scored"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	Finalized    bool    `json:"finalized"`
}

type JudgeCompletion struct {
	JudgeID    string               `json:"judgeId"`
	JudgeName  string               `json:"judgeName"`
	Categories []CategoryCompletion `json:"categories"`
}
