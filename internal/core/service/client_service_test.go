package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

func newClientFixture() (*ClientService, *stubClientRepo, *recordingAudit) {
	repo := newStubClientRepo()
	audit := &recordingAudit{}
	return NewClientService(repo, audit, zerolog.Nop()), repo, audit
}

func seedClient(t *testing.T, repo *stubClientRepo, id, consultantID, firstName string) *domain.Client {
	t.Helper()
	client, err := domain.NewClient(id, consultantID, firstName, "Test", time.Now().UTC())
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if _, err := repo.Save(context.Background(), client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func TestCreateClientOwnedByActor(t *testing.T) {
	svc, _, audit := newClientFixture()
	actor := makeUser(t, "consultant-1", domain.RoleConsultant)

	lat, lon := -34.6, -58.4
	client, err := svc.Create(context.Background(), ports.CreateClientInput{
		FirstName: "Maria",
		LastName:  "Lopez",
		Email:     "maria@example.com",
		Birth: &ports.BirthDataInput{
			Date:      time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC),
			City:      "Buenos Aires",
			Country:   "Argentina",
			Timezone:  "America/Argentina/Buenos_Aires",
			Latitude:  &lat,
			Longitude: &lon,
		},
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if client.ConsultantID != actor.ID {
		t.Errorf("consultant id = %q, want %q", client.ConsultantID, actor.ID)
	}
	if client.BirthData == nil || !client.BirthData.HasCoordinates() {
		t.Error("expected birth data with coordinates")
	}
	if audit.count() != 1 || audit.last().Action != domain.AuditCreate {
		t.Error("expected one create audit entry")
	}
}

func TestCreateClientRejectsClientRole(t *testing.T) {
	svc, _, _ := newClientFixture()
	actor := makeUser(t, "client-1", domain.RoleClient)

	_, err := svc.Create(context.Background(), ports.CreateClientInput{FirstName: "Maria"}, actor)
	if !domain.IsUnauthorized(err) {
		t.Errorf("err = %v, want unauthorized", err)
	}
}

func TestCreateClientRejectsInvalidBirthData(t *testing.T) {
	svc, _, _ := newClientFixture()
	actor := makeUser(t, "consultant-1", domain.RoleConsultant)

	lat := 200.0
	_, err := svc.Create(context.Background(), ports.CreateClientInput{
		FirstName: "Maria",
		Birth: &ports.BirthDataInput{
			Date:     time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC),
			City:     "Buenos Aires",
			Country:  "Argentina",
			Timezone: "America/Argentina/Buenos_Aires",
			Latitude: &lat,
		},
	}, actor)
	if domain.CodeOf(err) != domain.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestGetClientAuthorization(t *testing.T) {
	svc, repo, _ := newClientFixture()
	owner := makeUser(t, "consultant-1", domain.RoleConsultant)
	other := makeUser(t, "consultant-2", domain.RoleConsultant)
	admin := makeUser(t, "admin-1", domain.RoleAdmin)
	seedClient(t, repo, "client-1", owner.ID, "Maria")

	if _, err := svc.Get(context.Background(), "client-1", owner); err != nil {
		t.Errorf("owner denied: %v", err)
	}
	if _, err := svc.Get(context.Background(), "client-1", admin); err != nil {
		t.Errorf("admin denied: %v", err)
	}
	if _, err := svc.Get(context.Background(), "client-1", other); !domain.IsUnauthorized(err) {
		t.Errorf("foreign consultant got err = %v, want unauthorized", err)
	}
	if _, err := svc.Get(context.Background(), "missing", owner); !domain.IsNotFound(err) {
		t.Errorf("missing client got err = %v, want not found", err)
	}
}

func TestUpdateClientAppliesOnlyProvidedFields(t *testing.T) {
	svc, repo, _ := newClientFixture()
	owner := makeUser(t, "consultant-1", domain.RoleConsultant)
	seeded := seedClient(t, repo, "client-1", owner.ID, "Maria")
	seeded.Email = "old@example.com"
	if _, err := repo.Save(context.Background(), seeded); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	notes := "prefers evening sessions"
	updated, err := svc.Update(context.Background(), ports.UpdateClientInput{
		ClientID: "client-1",
		Notes:    &notes,
	}, owner)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q, want %q", updated.Notes, notes)
	}
	if updated.Email != "old@example.com" {
		t.Errorf("email changed unexpectedly to %q", updated.Email)
	}
	if updated.FirstName != "Maria" {
		t.Errorf("first name changed unexpectedly to %q", updated.FirstName)
	}
}

func TestUpdateClientDeniedBeforeMutation(t *testing.T) {
	svc, repo, _ := newClientFixture()
	owner := makeUser(t, "consultant-1", domain.RoleConsultant)
	intruder := makeUser(t, "consultant-2", domain.RoleConsultant)
	seedClient(t, repo, "client-1", owner.ID, "Maria")

	name := "Hacked"
	_, err := svc.Update(context.Background(), ports.UpdateClientInput{ClientID: "client-1", FirstName: &name}, intruder)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	current, err := repo.FindByID(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if current.FirstName != "Maria" {
		t.Errorf("client mutated despite denial: %q", current.FirstName)
	}
}

func TestListScopesToConsultant(t *testing.T) {
	svc, repo, _ := newClientFixture()
	one := makeUser(t, "consultant-1", domain.RoleConsultant)
	two := makeUser(t, "consultant-2", domain.RoleConsultant)
	admin := makeUser(t, "admin-1", domain.RoleAdmin)
	seedClient(t, repo, "client-1", one.ID, "Maria")
	seedClient(t, repo, "client-2", one.ID, "Juan")
	seedClient(t, repo, "client-3", two.ID, "Sofia")

	page, err := svc.List(context.Background(), one, 0, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Clients) != 2 || page.Total != 2 {
		t.Errorf("consultant sees %d/%d, want 2/2", len(page.Clients), page.Total)
	}

	page, err = svc.List(context.Background(), admin, 0, 50)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(page.Clients) != 3 || page.Total != 3 {
		t.Errorf("admin sees %d/%d, want 3/3", len(page.Clients), page.Total)
	}
}

func TestListClampsPageLimit(t *testing.T) {
	svc, repo, _ := newClientFixture()
	one := makeUser(t, "consultant-1", domain.RoleConsultant)
	seedClient(t, repo, "client-1", one.ID, "Maria")

	page, err := svc.List(context.Background(), one, -5, 10000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Limit != maxPageLimit {
		t.Errorf("limit = %d, want %d", page.Limit, maxPageLimit)
	}
	if page.Skip != 0 {
		t.Errorf("skip = %d, want 0", page.Skip)
	}
}

func TestSearchMatchesNameWithinTenant(t *testing.T) {
	svc, repo, _ := newClientFixture()
	one := makeUser(t, "consultant-1", domain.RoleConsultant)
	two := makeUser(t, "consultant-2", domain.RoleConsultant)
	seedClient(t, repo, "client-1", one.ID, "Maria")
	seedClient(t, repo, "client-2", two.ID, "Mariana")

	page, err := svc.Search(context.Background(), "mari", one, 0, 50)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Clients) != 1 || page.Total != 1 {
		t.Fatalf("got %d/%d results, want 1/1", len(page.Clients), page.Total)
	}
	if page.Clients[0].ID != "client-1" {
		t.Errorf("matched %q, want client-1", page.Clients[0].ID)
	}
}

func TestDeleteClientAuthorization(t *testing.T) {
	svc, repo, audit := newClientFixture()
	owner := makeUser(t, "consultant-1", domain.RoleConsultant)
	intruder := makeUser(t, "consultant-2", domain.RoleConsultant)
	seedClient(t, repo, "client-1", owner.ID, "Maria")

	if err := svc.Delete(context.Background(), "client-1", intruder); !domain.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if err := svc.Delete(context.Background(), "client-1", owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "client-1"); !domain.IsNotFound(err) {
		t.Error("client still present after delete")
	}
	if audit.last().Action != domain.AuditDelete {
		t.Errorf("last audit action = %q, want delete", audit.last().Action)
	}
}
