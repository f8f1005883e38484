package dto

// Auth Request DTOs

// RegisterRequest contains user registration data sent to POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
}

// LoginRequest contains login credentials. The token endpoint expects
// form encoding with the email sent under the "username" key, so this
// struct never serializes to JSON.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Auth Response DTOs

// TokenResponse contains the bearer credential issued at login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
