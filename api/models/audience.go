package models

import (
	"time"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type AudienceCreateRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile"`
	Company   string `json:"company"`
}

type AudienceUpdateRequest = AudienceCreateRequest

type AudienceResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	Company   string    `json:"company,omitempty"`
	LoginCode string    `json:"loginCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransformAudienceFromStorage hides the login code unless withCode is set.
func TransformAudienceFromStorage(m *storage.AudienceMember, withCode bool) AudienceResponse {
	r := AudienceResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Mobile:    m.Mobile,
		Company:   m.Company,
		CreatedAt: m.CreatedAt,
	}
	if withCode {
		r.LoginCode = m.LoginCode
	}
	return r
}
