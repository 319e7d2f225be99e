package models

type ErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
