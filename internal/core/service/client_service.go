package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

const maxPageLimit = 100

// ClientService implements the client-management use cases with the tenancy
// rule: admins see everything, consultants only their own clients.
type ClientService struct {
	clients ports.ClientRepository
	audit   AuditRecorder
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, audit AuditRecorder, log zerolog.Logger) *ClientService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &ClientService{clients: clients, audit: audit, log: log}
}

// Create makes a new client owned by the acting consultant.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput, actor *domain.User) (*domain.Client, error) {
	if !actor.CanManageClients() {
		return nil, domain.NewUnauthorizedAccess("only consultants can create clients")
	}

	now := time.Now().UTC()
	client, err := domain.NewClient(uuid.NewString(), actor.ID, input.FirstName, input.LastName, now)
	if err != nil {
		return nil, err
	}
	client.Email = input.Email
	client.Phone = input.Phone
	client.Notes = input.Notes

	if input.Birth != nil {
		birth, err := domain.NewBirthData(input.Birth.Date, input.Birth.City, input.Birth.Country,
			input.Birth.Timezone, input.Birth.Latitude, input.Birth.Longitude)
		if err != nil {
			return nil, err
		}
		client.SetBirthData(birth, now)
	}

	saved, err := s.clients.Save(ctx, client)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", saved.ID).Str("consultant_id", actor.ID).Msg("client created")
	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditCreate, EntityType: "Client", EntityID: saved.ID,
		Timestamp: now,
	})
	return saved, nil
}

// Get returns one client after the ownership check.
func (s *ClientService) Get(ctx context.Context, clientID string, actor *domain.User) (*domain.Client, error) {
	client, err := s.findAuthorized(ctx, clientID, actor, "you cannot view this client")
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Update applies the provided fields to an owned client.
func (s *ClientService) Update(ctx context.Context, input ports.UpdateClientInput, actor *domain.User) (*domain.Client, error) {
	client, err := s.findAuthorized(ctx, input.ClientID, actor, "you cannot update this client")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.Email != nil || input.Phone != nil {
		client.UpdateContactInfo(input.Email, input.Phone, now)
	}
	if input.Notes != nil {
		client.UpdateNotes(*input.Notes, now)
	}

	saved, err := s.clients.Save(ctx, client)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditUpdate, EntityType: "Client", EntityID: saved.ID,
		Timestamp: now,
	})
	return saved, nil
}

// List returns the actor's client page. Admins see all clients; the total
// always reflects the filtered universe.
func (s *ClientService) List(ctx context.Context, actor *domain.User, skip, limit int) (*ports.ClientList, error) {
	if !actor.CanManageClients() {
		return nil, domain.NewUnauthorizedAccess("only consultants can view clients")
	}
	return s.page(ctx, "", actor, skip, limit)
}

// Search matches name or email within the actor's tenant scope.
func (s *ClientService) Search(ctx context.Context, query string, actor *domain.User, skip, limit int) (*ports.ClientList, error) {
	if !actor.CanManageClients() {
		return nil, domain.NewUnauthorizedAccess("only consultants can search clients")
	}
	return s.page(ctx, query, actor, skip, limit)
}

// Delete removes an owned client.
func (s *ClientService) Delete(ctx context.Context, clientID string, actor *domain.User) error {
	if _, err := s.findAuthorized(ctx, clientID, actor, "you cannot delete this client"); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, clientID); err != nil {
		return err
	}
	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditDelete, EntityType: "Client", EntityID: clientID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *ClientService) page(ctx context.Context, query string, actor *domain.User, skip, limit int) (*ports.ClientList, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}
	if skip < 0 {
		skip = 0
	}

	filter := ports.ClientSearchFilter{Query: query, Skip: skip, Limit: limit}
	if actor.Role != domain.RoleAdmin {
		filter.ConsultantID = actor.ID
	}

	clients, total, err := s.clients.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ClientList{Clients: clients, Total: total, Skip: skip, Limit: limit}, nil
}

// findAuthorized resolves the client and runs the uniform authorization state
// machine: admin passes, the owning consultant passes, everyone else gets
// unauthorized-access. The check runs before any mutation.
func (s *ClientService) findAuthorized(ctx context.Context, clientID string, actor *domain.User, reason string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !client.BelongsToConsultant(actor.ID) {
		return nil, domain.NewUnauthorizedAccess(reason)
	}
	return client, nil
}
