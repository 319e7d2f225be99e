package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type ContestantCreateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Company     string `json:"company"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId" binding:"required"`
	Image       string `json:"image"`
}

type ContestantUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Company     string `json:"company"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId" binding:"required"`
	Image       string `json:"image"`
}

type ContestantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"categoryId"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func TransformContestantFromStorage(c *storage.Contestant) ContestantResponse {
	return ContestantResponse{
		ID:          c.ID,
		Name:        c.Name,
		Company:     c.Company,
		Description: c.Description,
		CategoryID:  c.CategoryID,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
	}
}
