package models

import "github.com/tharindraj/ctrl-alt-rock-voting/storage"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AudienceLoginRequest struct {
	LoginCode string `json:"loginCode" binding:"required,logincode"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func TransformAdminToUser(a *storage.Admin) UserResponse {
	return UserResponse{
		ID:       a.ID,
		Role:     RoleAdmin,
		Username: a.Username,
		Name:     a.FirstName + " " + a.LastName,
		Email:    a.Email,
	}
}

func TransformJudgeToUser(j *storage.Judge) UserResponse {
	return UserResponse{
		ID:       j.ID,
		Role:     RoleJudge,
		Username: j.Username,
		Name:     j.Name,
	}
}

func TransformAudienceToUser(m *storage.AudienceMember) UserResponse {
	return UserResponse{
		ID:    m.ID,
		Role:  RoleAudience,
		Name:  m.FirstName + " " + m.LastName,
		Email: m.Email,
	}
}
