// ABOUTME: Auth request/response models for the BFF session flow
// ABOUTME: Defines login credentials, upstream token pair, and client-facing bodies

package models

// LoginRequest represents credentials submitted by the login form
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the upstream response to a credential exchange
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// MessageResponse is the success body returned to the browser
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the only error shape returned to the browser
type ErrorResponse struct {
	Error string `json:"error"`
}
