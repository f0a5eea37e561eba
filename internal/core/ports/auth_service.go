package ports

import (
	"context"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// RegisterInput carries new-account data.
type RegisterInput struct {
	Email             string
	Password          string
	Role              domain.Role
	PreferredLanguage string
}

// AuthTokens is the access/refresh pair returned by login and refresh.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "bearer"
	ExpiresIn    int    // access token lifetime in seconds
}

// PublicUser is the projection of a User safe to return to callers.
type PublicUser struct {
	ID                    string
	Email                 string
	Role                  domain.Role
	IsActive              bool
	PreferredLanguage     string
	RequiresPasswordReset bool
}

// AuthService implements login, registration, and token rotation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*PublicUser, error)
	Login(ctx context.Context, email, password string) (*AuthTokens, *PublicUser, error)
	// Refresh requires a token whose type tag is exactly "refresh"; an access
	// token here fails with invalid-credentials.
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	// Logout revokes the refresh token for its remaining lifetime.
	Logout(ctx context.Context, refreshToken string) error
}
