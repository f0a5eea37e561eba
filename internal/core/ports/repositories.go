package ports

import (
	"context"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// UserRepository persists User entities. Save is an upsert keyed by entity id.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByRole(ctx context.Context, role domain.Role, skip, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ClientSearchFilter carries list/search parameters for clients.
// ConsultantID empty means no tenant filter (admin view).
type ClientSearchFilter struct {
	ConsultantID string
	Query        string // partial match on name or email
	Skip         int
	Limit        int
}

// ClientRepository persists Client entities.
type ClientRepository interface {
	Save(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns a page of clients matching filter and the count of the
	// filtered universe, not the global table.
	List(ctx context.Context, filter ClientSearchFilter) ([]*domain.Client, int64, error)
	Delete(ctx context.Context, id string) error
}

// NatalChartRepository persists NatalChart aggregates.
type NatalChartRepository interface {
	Save(ctx context.Context, chart *domain.NatalChart) (*domain.NatalChart, error)
	FindByID(ctx context.Context, id string) (*domain.NatalChart, error)
	// FindByClient returns charts newest first.
	FindByClient(ctx context.Context, clientID string, skip, limit int) ([]*domain.NatalChart, error)
	Delete(ctx context.Context, id string) error
}

// TransitRepository persists Transit aggregates.
type TransitRepository interface {
	Save(ctx context.Context, transit *domain.Transit) (*domain.Transit, error)
	FindByID(ctx context.Context, id string) (*domain.Transit, error)
	FindByChart(ctx context.Context, natalChartID string, skip, limit int) ([]*domain.Transit, error)
}

// SolarReturnRepository persists SolarReturn aggregates.
type SolarReturnRepository interface {
	Save(ctx context.Context, sr *domain.SolarReturn) (*domain.SolarReturn, error)
	FindByID(ctx context.Context, id string) (*domain.SolarReturn, error)
	FindByChart(ctx context.Context, natalChartID string, skip, limit int) ([]*domain.SolarReturn, error)
}

// AuditRepository records user actions for compliance.
type AuditRepository interface {
	Log(ctx context.Context, entry *domain.AuditLog) error
	FindByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.AuditLog, error)
}
