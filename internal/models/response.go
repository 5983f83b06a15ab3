package models

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of the fixed informational endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
