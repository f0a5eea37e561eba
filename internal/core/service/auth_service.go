package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// TokenRevoker is the revocation store for refresh tokens (Redis-backed).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements registration, login, and token rotation.
type AuthService struct {
	users   ports.UserRepository
	tokens  *TokenService
	revoker TokenRevoker
	audit   AuditRecorder
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, revoker TokenRevoker, audit AuditRecorder, log zerolog.Logger) *AuthService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &AuthService{users: users, tokens: tokens, revoker: revoker, audit: audit, log: log}
}

// Register creates a new account. A duplicate email fails with
// duplicate-entity naming the email field.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.PublicUser, error) {
	if input.Password == "" {
		return nil, domain.NewValidationError("password is required", "password")
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateEntity("User", "email", input.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(uuid.NewString(), input.Email, string(hash), input.Role, input.PreferredLanguage, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", saved.ID).Str("role", string(saved.Role)).Msg("user registered")
	s.audit.Record(domain.AuditLog{
		UserID: saved.ID, Action: domain.AuditCreate, EntityType: "User", EntityID: saved.ID,
		Timestamp: time.Now().UTC(),
	})

	return publicUser(saved), nil
}

// Login verifies credentials and issues an access/refresh pair. Unknown
// email, wrong password, and inactive account all collapse to the same
// invalid-credentials outcome to prevent user enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthTokens, *ports.PublicUser, error) {
	if email == "" || password == "" {
		return nil, nil, domain.NewInvalidCredentials()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.NewInvalidCredentials()
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, nil, domain.NewInvalidCredentials()
	}
	if !user.IsActive {
		return nil, nil, domain.NewInvalidCredentials()
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	s.audit.Record(domain.AuditLog{
		UserID: user.ID, Action: domain.AuditLogin, EntityType: "User", EntityID: user.ID,
		Timestamp: time.Now().UTC(),
	})

	return tokens, publicUser(user), nil
}

// Refresh rotates the token pair. The presented token must carry the
// "refresh" type tag and must not be revoked; the user must still exist and
// be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthTokens, error) {
	claims, err := s.tokens.VerifyToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if s.revoker != nil && claims.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			s.log.Warn().Err(err).Msg("revocation check failed, rejecting token")
			return nil, domain.NewInvalidCredentials()
		}
		if revoked {
			return nil, domain.NewInvalidCredentials()
		}
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewEntityNotFound("User", claims.UserID)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.NewInvalidCredentials()
	}

	return s.issueTokens(user)
}

// Logout revokes the refresh token for its remaining lifetime. An invalid
// token is treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.VerifyToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil
	}
	if s.revoker == nil || claims.TokenID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return err
	}

	s.audit.Record(domain.AuditLog{
		UserID: claims.UserID, Action: domain.AuditLogout, EntityType: "User", EntityID: claims.UserID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *AuthService) issueTokens(user *domain.User) (*ports.AuthTokens, error) {
	access, err := s.tokens.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func publicUser(u *domain.User) *ports.PublicUser {
	return &ports.PublicUser{
		ID:                    u.ID,
		Email:                 u.Email,
		Role:                  u.Role,
		IsActive:              u.IsActive,
		PreferredLanguage:     u.PreferredLanguage,
		RequiresPasswordReset: u.RequiresPasswordReset(),
	}
}
