package domain

import (
	"strings"
	"time"
)

// Role is the user's position in the three-tier tenancy.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleConsultant Role = "consultant"
	RoleClient     Role = "client"
	RoleUser       Role = "user" // anonymous one-shot chart calculation
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleConsultant, RoleClient, RoleUser:
		return true
	}
	return false
}

// SupportedLanguages is the fixed interpretation language set.
var SupportedLanguages = []string{"es", "en", "it", "fr", "de", "pt-br"}

// IsLanguageSupported reports whether code belongs to the supported set.
func IsLanguageSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// User models an authenticated actor.
type User struct {
	ID             string `json:"id" bson:"_id"`
	Email          string `json:"email" bson:"email"`
	HashedPassword string `json:"-" bson:"hashed_password"`
	Role           Role   `json:"role" bson:"role"`
	IsActive       bool   `json:"is_active" bson:"is_active"`
	IsFirstLogin   bool   `json:"is_first_login" bson:"is_first_login"`

	// ConsultantID links a client-role user back to its owning consultant.
	ConsultantID      string `json:"consultant_id,omitempty" bson:"consultant_id,omitempty"`
	PreferredLanguage string `json:"preferred_language" bson:"preferred_language"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewUser validates and builds a User with a fresh audit trail.
func NewUser(id, email, hashedPassword string, role Role, language string, now time.Time) (*User, error) {
	if email == "" {
		return nil, NewValidationError("email is required", "email")
	}
	if !strings.Contains(email, "@") {
		return nil, NewValidationError("invalid email format", "email")
	}
	if !role.IsValid() {
		return nil, NewValidationError("invalid role: "+string(role), "role")
	}
	if language == "" {
		language = "en"
	}
	if !IsLanguageSupported(language) {
		return nil, NewUnsupportedLanguage(language)
	}
	return &User{
		ID:                id,
		Email:             email,
		HashedPassword:    hashedPassword,
		Role:              role,
		IsActive:          true,
		IsFirstLogin:      true,
		PreferredLanguage: language,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// CanManageConsultants is true only for admins.
func (u *User) CanManageConsultants() bool { return u.Role == RoleAdmin }

// CanManageClients is true for admins and consultants.
func (u *User) CanManageClients() bool {
	return u.Role == RoleAdmin || u.Role == RoleConsultant
}

// CanCalculateCharts deliberately excludes the bare client role.
func (u *User) CanCalculateCharts() bool {
	return u.Role == RoleAdmin || u.Role == RoleConsultant || u.Role == RoleUser
}

// RequiresPasswordReset is true for a client-role user on first login.
func (u *User) RequiresPasswordReset() bool {
	return u.IsFirstLogin && u.Role == RoleClient
}

func (u *User) Activate(now time.Time) {
	u.IsActive = true
	u.UpdatedAt = now
}

func (u *User) Deactivate(now time.Time) {
	u.IsActive = false
	u.UpdatedAt = now
}

func (u *User) CompleteFirstLogin(now time.Time) {
	u.IsFirstLogin = false
	u.UpdatedAt = now
}

// ChangeLanguage switches the preferred interpretation language.
func (u *User) ChangeLanguage(language string, now time.Time) error {
	if !IsLanguageSupported(language) {
		return NewUnsupportedLanguage(language)
	}
	u.PreferredLanguage = language
	u.UpdatedAt = now
	return nil
}
