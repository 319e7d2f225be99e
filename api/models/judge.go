package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type JudgeCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username" binding:"required,alphanum"`
	Password    string `json:"password" binding:"required,min=6"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// JudgeUpdateRequest leaves the password unchanged; use the reset endpoint for that.
type JudgeUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username" binding:"required,alphanum"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type JudgeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func TransformJudgeFromStorage(j *storage.Judge) JudgeResponse {
	return JudgeResponse{
		ID:          j.ID,
		Name:        j.Name,
		Username:    j.Username,
		Description: j.Description,
		Image:       j.Image,
		CreatedAt:   j.CreatedAt,
	}
}
