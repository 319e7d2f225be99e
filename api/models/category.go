package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type CategoryCreateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CategoryUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func TransformCategoryFromStorage(c *storage.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
	}
}

type CriterionRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight" binding:"gt=0,lte=100"`
	MaxScore    float64 `json:"maxScore" binding:"gt=0"`
}

type CriteriaUpdateRequest struct {
	Criteria []CriterionRequest `json:"criteria" binding:"required,dive"`
}

type CriteriaResponse struct {
	CategoryID  string               `json:"categoryId"`
	Criteria    []*storage.Criterion `json:"criteria"`
	TotalWeight float64              `json:"totalWeight"`
}
