package models

// --- Request Structs ---

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageRequest defines the body for posting or editing a message.
// Message is a pointer so that a missing field can be told apart from empty text.
type MessageRequest struct {
	Message *string `json:"message" validate:"required"`
}

// --- Response Structs ---

// TokenResponse defines the response body for a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// StatusResponse acknowledges a successful mutation.
type StatusResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
