package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenClaims is the verified content of a platform token.
type TokenClaims struct {
	UserID    string
	Role      domain.Role // empty on refresh tokens
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and verifies the HS256 access/refresh token pair.
// Access tokens carry the role claim; refresh tokens do not.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL returns the access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// CreateAccessToken issues a short-lived token with a role claim.
func (s *TokenService) CreateAccessToken(userID string, role domain.Role) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":  userID,
		"typ":  tokenTypeAccess,
		"role": string(role),
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(s.accessTTL).Unix(),
	})
}

// CreateRefreshToken issues a longer-lived token without a role claim.
func (s *TokenService) CreateRefreshToken(userID string) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub": userID,
		"typ": tokenTypeRefresh,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(s.refreshTTL).Unix(),
	})
}

func (s *TokenService) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a token and enforces its type tag. Every
// failure collapses to invalid-credentials so callers cannot distinguish
// a bad signature from an expired or mistyped token.
func (s *TokenService) VerifyToken(token, wantType string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.NewInvalidCredentials()
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, domain.NewInvalidCredentials()
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.NewInvalidCredentials()
	}

	out := &TokenClaims{UserID: sub}
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.Role(role)
	}
	if jti, ok := claims["jti"].(string); ok {
		out.TokenID = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
