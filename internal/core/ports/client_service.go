package ports

import (
	"context"
	"time"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// BirthDataInput carries birth details from the transport layer.
type BirthDataInput struct {
	Date      time.Time
	City      string
	Country   string
	Timezone  string
	Latitude  *float64
	Longitude *float64
}

// CreateClientInput carries new-client data. Birth data is optional; charts
// are recorded separately.
type CreateClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string
	Birth     *BirthDataInput
}

// UpdateClientInput updates only the fields that are non-nil.
type UpdateClientInput struct {
	ClientID  string
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Notes     *string
}

// ClientList is a page of clients plus the filtered total.
type ClientList struct {
	Clients []*domain.Client
	Total   int64
	Skip    int
	Limit   int
}

// ClientService defines the client-management use cases. Every operation
// evaluates the actor's capability and tenancy before touching data.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput, actor *domain.User) (*domain.Client, error)
	Get(ctx context.Context, clientID string, actor *domain.User) (*domain.Client, error)
	Update(ctx context.Context, input UpdateClientInput, actor *domain.User) (*domain.Client, error)
	List(ctx context.Context, actor *domain.User, skip, limit int) (*ClientList, error)
	Search(ctx context.Context, query string, actor *domain.User, skip, limit int) (*ClientList, error)
	Delete(ctx context.Context, clientID string, actor *domain.User) error
}
