package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type registerRequest struct {
	Email             string `json:"email"              validate:"required,email"`
	Password          string `json:"password"           validate:"required,min=8"`
	Role              string `json:"role"               validate:"required,oneof=admin consultant client user"`
	PreferredLanguage string `json:"preferred_language" validate:"omitempty,oneof=es en it fr de pt-br"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type userResponse struct {
	ID                    string `json:"id"`
	Email                 string `json:"email"`
	Role                  string `json:"role"`
	IsActive              bool   `json:"is_active"`
	PreferredLanguage     string `json:"preferred_language"`
	RequiresPasswordReset bool   `json:"requires_password_reset"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type loginResponse struct {
	tokenResponse
	User userResponse `json:"user"`
}
