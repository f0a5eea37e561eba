package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewEntityNotFound("User", id)
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.NewEntityNotFound("User", email)
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role, _, _ int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type stubClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
	order   []string
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: map[string]*domain.Client{}}
}

func (r *stubClientRepo) Save(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		r.order = append(r.order, client.ID)
	}
	clone := *client
	r.clients[client.ID] = &clone
	return client, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.NewEntityNotFound("Client", id)
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context, filter ports.ClientSearchFilter) ([]*domain.Client, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Client
	for _, id := range r.order {
		c := r.clients[id]
		if filter.ConsultantID != "" && c.ConsultantID != filter.ConsultantID {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			name := strings.ToLower(c.FullName())
			if !strings.Contains(name, q) && !strings.Contains(strings.ToLower(c.Email), q) {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if filter.Skip < len(matched) {
		matched = matched[filter.Skip:]
	} else {
		matched = nil
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return domain.NewEntityNotFound("Client", id)
	}
	delete(r.clients, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubChartRepo struct {
	mu     sync.Mutex
	charts map[string]*domain.NatalChart
}

func newStubChartRepo() *stubChartRepo {
	return &stubChartRepo{charts: map[string]*domain.NatalChart{}}
}

func (r *stubChartRepo) Save(_ context.Context, chart *domain.NatalChart) (*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *chart
	r.charts[chart.ID] = &clone
	return chart, nil
}

func (r *stubChartRepo) FindByID(_ context.Context, id string) (*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.charts[id]
	if !ok {
		return nil, domain.NewEntityNotFound("NatalChart", id)
	}
	clone := *c
	return &clone, nil
}

func (r *stubChartRepo) FindByClient(_ context.Context, clientID string, _, _ int) ([]*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.NatalChart
	for _, c := range r.charts {
		if c.ClientID == clientID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubChartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.charts, id)
	return nil
}

type stubTransitRepo struct {
	mu       sync.Mutex
	transits map[string]*domain.Transit
}

func newStubTransitRepo() *stubTransitRepo {
	return &stubTransitRepo{transits: map[string]*domain.Transit{}}
}

func (r *stubTransitRepo) Save(_ context.Context, t *domain.Transit) (*domain.Transit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.transits[t.ID] = &clone
	return t, nil
}

func (r *stubTransitRepo) FindByID(_ context.Context, id string) (*domain.Transit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transits[id]
	if !ok {
		return nil, domain.NewEntityNotFound("Transit", id)
	}
	clone := *t
	return &clone, nil
}

func (r *stubTransitRepo) FindByChart(_ context.Context, natalChartID string, _, _ int) ([]*domain.Transit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transit
	for _, t := range r.transits {
		if t.NatalChartID == natalChartID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubSolarReturnRepo struct {
	mu      sync.Mutex
	returns map[string]*domain.SolarReturn
}

func newStubSolarReturnRepo() *stubSolarReturnRepo {
	return &stubSolarReturnRepo{returns: map[string]*domain.SolarReturn{}}
}

func (r *stubSolarReturnRepo) Save(_ context.Context, sr *domain.SolarReturn) (*domain.SolarReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *sr
	r.returns[sr.ID] = &clone
	return sr, nil
}

func (r *stubSolarReturnRepo) FindByID(_ context.Context, id string) (*domain.SolarReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.returns[id]
	if !ok {
		return nil, domain.NewEntityNotFound("SolarReturn", id)
	}
	clone := *sr
	return &clone, nil
}

func (r *stubSolarReturnRepo) FindByChart(_ context.Context, natalChartID string, _, _ int) ([]*domain.SolarReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SolarReturn
	for _, sr := range r.returns {
		if sr.NatalChartID == natalChartID {
			clone := *sr
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubCalculator struct {
	natalFn       func(domain.BirthData, ports.NatalChartOptions) (domain.ChartPayload, error)
	solarSetFn    func(domain.ChartPayload) (domain.SolarSet, error)
	transitsFn    func(domain.ChartPayload, time.Time) (domain.TransitPayload, error)
	solarReturnFn func(domain.BirthData, int) (domain.SolarReturnPayload, error)
	svgFn         func(domain.BirthData, domain.ChartPayload) (string, error)
}

func (c *stubCalculator) CalculateNatalChart(_ context.Context, birth domain.BirthData, opts ports.NatalChartOptions) (domain.ChartPayload, error) {
	if c.natalFn != nil {
		return c.natalFn(birth, opts)
	}
	return samplePayload(), nil
}

func (c *stubCalculator) CalculateSolarSet(_ context.Context, payload domain.ChartPayload) (domain.SolarSet, error) {
	if c.solarSetFn != nil {
		return c.solarSetFn(payload)
	}
	return domain.DeriveSolarSet(payload)
}

func (c *stubCalculator) CalculateTransits(_ context.Context, payload domain.ChartPayload, targetDate time.Time, _ map[domain.AspectType]float64) (domain.TransitPayload, error) {
	if c.transitsFn != nil {
		return c.transitsFn(payload, targetDate)
	}
	return domain.TransitPayload{Date: targetDate.Format("2006-01-02")}, nil
}

func (c *stubCalculator) CalculateSolarReturn(_ context.Context, birth domain.BirthData, year int) (domain.SolarReturnPayload, error) {
	if c.solarReturnFn != nil {
		return c.solarReturnFn(birth, year)
	}
	return domain.SolarReturnPayload{
		Year:       year,
		ReturnDate: time.Date(year, 4, 12, 9, 30, 0, 0, time.UTC).Format(time.RFC3339),
		Chart:      samplePayload(),
	}, nil
}

func (c *stubCalculator) GenerateChartSVG(_ context.Context, birth domain.BirthData, payload domain.ChartPayload, _, _ string) (string, error) {
	if c.svgFn != nil {
		return c.svgFn(birth, payload)
	}
	return "<svg/>", nil
}

func (c *stubCalculator) GetSupportedAspects() []domain.AspectType {
	return []domain.AspectType{domain.Conjunction, domain.Opposition, domain.Trine, domain.Square, domain.Sextile}
}

func (c *stubCalculator) GetDefaultOrbs() map[domain.AspectType]float64 {
	return map[domain.AspectType]float64{domain.Conjunction: 8}
}

type stubInterpreter struct {
	fail bool
}

func (i *stubInterpreter) text() (map[string]string, error) {
	if i.fail {
		return nil, domain.NewInterpretationError("translations unavailable", "en", nil)
	}
	return map[string]string{"overall": "a steady year"}, nil
}

func (i *stubInterpreter) InterpretNatalChart(_ context.Context, _ *domain.NatalChart, _ string, _ ports.DetailLevel) (map[string]string, error) {
	return i.text()
}

func (i *stubInterpreter) InterpretPlanetInSign(_ context.Context, _, _, _ string) (string, error) {
	if i.fail {
		return "", domain.NewInterpretationError("translations unavailable", "en", nil)
	}
	return "placement text", nil
}

func (i *stubInterpreter) InterpretPlanetInHouse(_ context.Context, _ string, _ int, _ string) (string, error) {
	if i.fail {
		return "", domain.NewInterpretationError("translations unavailable", "en", nil)
	}
	return "placement text", nil
}

func (i *stubInterpreter) InterpretAspect(_ context.Context, _, _ string, _ domain.AspectType, _ string) (string, error) {
	if i.fail {
		return "", domain.NewInterpretationError("translations unavailable", "en", nil)
	}
	return "aspect text", nil
}

func (i *stubInterpreter) InterpretSolarSet(_ context.Context, _ domain.SolarSet, _ string) (string, error) {
	if i.fail {
		return "", domain.NewInterpretationError("translations unavailable", "en", nil)
	}
	return "solar set text", nil
}

func (i *stubInterpreter) InterpretTransit(_ context.Context, _ *domain.Transit, _ string, _ ports.DetailLevel) (map[string]string, error) {
	return i.text()
}

func (i *stubInterpreter) InterpretSolarReturn(_ context.Context, _ *domain.SolarReturn, _ string, _ ports.DetailLevel) (map[string]string, error) {
	return i.text()
}

func (i *stubInterpreter) GetSupportedLanguages() []string { return domain.SupportedLanguages }

func (i *stubInterpreter) IsLanguageSupported(language string) bool {
	return domain.IsLanguageSupported(language)
}

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
	failOn  bool
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: map[string]bool{}}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn {
		return false, context.DeadlineExceeded
	}
	return r.revoked[tokenID], nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (a *recordingAudit) Record(entry domain.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *recordingAudit) last() domain.AuditLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[len(a.entries)-1]
}

func samplePayload() domain.ChartPayload {
	return domain.ChartPayload{
		Planets: []domain.PlanetRecord{
			{Name: "Sun", Sign: "Taurus", House: 12, Degree: 18.5, Longitude: 48.5},
			{Name: "Moon", Sign: "Cancer", House: 2, Degree: 3.2, Longitude: 93.2},
			{Name: "Mars", Sign: "Leo", House: 3, Degree: 20.1, Longitude: 140.1},
		},
		Houses: []domain.HouseRecord{
			{Number: 1, Sign: "Gemini", Degree: 5},
			{Number: 2, Sign: "Cancer", Degree: 2},
			{Number: 3, Sign: "Leo", Degree: 1},
			{Number: 4, Sign: "Virgo", Degree: 0},
			{Number: 5, Sign: "Virgo", Degree: 28},
			{Number: 6, Sign: "Scorpio", Degree: 3},
			{Number: 7, Sign: "Sagittarius", Degree: 5},
			{Number: 8, Sign: "Capricorn", Degree: 2},
			{Number: 9, Sign: "Aquarius", Degree: 1},
			{Number: 10, Sign: "Pisces", Degree: 0},
			{Number: 11, Sign: "Pisces", Degree: 28},
			{Number: 12, Sign: "Taurus", Degree: 3},
		},
		Aspects: []domain.AspectRecord{
			{Planet1: "Sun", Planet2: "Mars", AspectType: domain.Square, Orb: 1.6},
			{Planet1: "Moon", Planet2: "Mars", AspectType: domain.Trine, Orb: 2.0},
		},
	}
}

func makeUser(t interface{ Fatalf(string, ...interface{}) }, id string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := domain.NewUser(id, id+"@example.com", string(hash), role, "en", time.Now().UTC())
	if err != nil {
		t.Fatalf("build user: %v", err)
	}
	return user
}
