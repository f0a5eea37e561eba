package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

type stubChartService struct {
	calculateNatalFn func(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error)
	quickFn          func(ctx context.Context, input ports.QuickCalculateInput) (*ports.QuickChartResult, error)
	getFn            func(ctx context.Context, chartID string, actor *domain.User) (*domain.NatalChart, error)
	listFn           func(ctx context.Context, clientID string, actor *domain.User, skip, limit int) ([]*domain.NatalChart, error)
	transitsFn       func(ctx context.Context, input ports.CalculateTransitsInput, actor *domain.User) (*domain.Transit, error)
	solarReturnFn    func(ctx context.Context, input ports.CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error)
}

func (s *stubChartService) CalculateNatal(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error) {
	return s.calculateNatalFn(ctx, input, actor)
}

func (s *stubChartService) QuickCalculate(ctx context.Context, input ports.QuickCalculateInput) (*ports.QuickChartResult, error) {
	return s.quickFn(ctx, input)
}

func (s *stubChartService) GetChart(ctx context.Context, chartID string, actor *domain.User) (*domain.NatalChart, error) {
	return s.getFn(ctx, chartID, actor)
}

func (s *stubChartService) ListClientCharts(ctx context.Context, clientID string, actor *domain.User, skip, limit int) ([]*domain.NatalChart, error) {
	return s.listFn(ctx, clientID, actor, skip, limit)
}

func (s *stubChartService) CalculateTransits(ctx context.Context, input ports.CalculateTransitsInput, actor *domain.User) (*domain.Transit, error) {
	return s.transitsFn(ctx, input, actor)
}

func (s *stubChartService) CalculateSolarReturn(ctx context.Context, input ports.CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error) {
	return s.solarReturnFn(ctx, input, actor)
}

func sampleChart() *domain.NatalChart {
	return &domain.NatalChart{
		ID:       "ch1",
		ClientID: "c1",
		Name:     "Birth Chart",
		Data: domain.ChartPayload{
			Planets: []domain.PlanetRecord{{Name: "Sun", Sign: "Taurus", House: 12, Degree: 18.5}},
		},
		SolarSet: domain.SolarSet{
			SunSign:        "Taurus",
			SunHouse:       12,
			SunDegree:      18.5,
			FifthHouseSign: "Virgo",
		},
		HouseSystem:     "placidus",
		Interpretations: domain.Interpretations{},
	}
}

func TestChartHandler_CalculateNatal_Success(t *testing.T) {
	svc := &stubChartService{
		calculateNatalFn: func(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error) {
			if input.ClientID != "c1" || input.Language != "es" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Options.HouseSystem != "koch" {
				t.Fatalf("options not forwarded: %+v", input.Options)
			}
			return sampleChart(), nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	body := `{"client_id":"c1","language":"es","options":{"house_system":"koch"}}`
	c, rec := authedContext(t, http.MethodPost, "/api/charts/natal", body)

	if err := h.CalculateNatal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	set, ok := resp["solar_set"].(map[string]any)
	if !ok || set["sun_sign"] != "Taurus" || set["fifth_house_sign"] != "Virgo" {
		t.Fatalf("unexpected solar set: %+v", resp)
	}
}

func TestChartHandler_CalculateNatal_MissingClientID(t *testing.T) {
	svc := &stubChartService{
		calculateNatalFn: func(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, _ := authedContext(t, http.MethodPost, "/api/charts/natal", `{"language":"es"}`)

	err := h.CalculateNatal(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestChartHandler_CalculateNatal_EngineFailure(t *testing.T) {
	svc := &stubChartService{
		calculateNatalFn: func(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error) {
			return nil, domain.NewCalculationError("engine unreachable", domain.StageNatalChart, nil)
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, _ := authedContext(t, http.MethodPost, "/api/charts/natal", `{"client_id":"c1"}`)

	err := h.CalculateNatal(c)
	if domain.CodeOf(err) != domain.CodeCalculation {
		t.Fatalf("expected calculation error, got %v", err)
	}
}

func TestChartHandler_QuickCalculate_NoActorRequired(t *testing.T) {
	svc := &stubChartService{
		quickFn: func(ctx context.Context, input ports.QuickCalculateInput) (*ports.QuickChartResult, error) {
			if input.Name != "Walk-in" || input.Birth.City != "Madrid" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.QuickChartResult{
				Name:        input.Name,
				SunSign:     "Taurus",
				SVG:         "<svg/>",
				HouseSystem: "placidus",
			}, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	body := `{
		"name": "Walk-in",
		"birth_data": {
			"date": "1990-05-15T14:30:00Z",
			"city": "Madrid",
			"country": "ES",
			"timezone": "Europe/Madrid"
		}
	}`
	// No user_id claim: quick calculation does not resolve an actor.
	c, rec := newTestContext(t, http.MethodPost, "/api/charts/quick-calculate", body)

	if err := h.QuickCalculate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["svg"] != "<svg/>" || resp["sun_sign"] != "Taurus" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestChartHandler_Get(t *testing.T) {
	svc := &stubChartService{
		getFn: func(ctx context.Context, chartID string, actor *domain.User) (*domain.NatalChart, error) {
			if chartID != "ch1" {
				t.Fatalf("chart id not taken from path, got %q", chartID)
			}
			return sampleChart(), nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, rec := authedContext(t, http.MethodGet, "/api/charts/natal/ch1", "")
	c.SetParamNames("id")
	c.SetParamValues("ch1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestChartHandler_ListForClient(t *testing.T) {
	svc := &stubChartService{
		listFn: func(ctx context.Context, clientID string, actor *domain.User, skip, limit int) ([]*domain.NatalChart, error) {
			if clientID != "c1" || skip != 0 || limit != 5 {
				t.Fatalf("unexpected args: %s %d %d", clientID, skip, limit)
			}
			return []*domain.NatalChart{sampleChart()}, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, rec := authedContext(t, http.MethodGet, "/api/charts/client/c1/charts?limit=5", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.ListForClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected one chart, got %+v", resp)
	}
}

func TestChartHandler_CalculateTransits_ConvertsOrbOverrides(t *testing.T) {
	svc := &stubChartService{
		transitsFn: func(ctx context.Context, input ports.CalculateTransitsInput, actor *domain.User) (*domain.Transit, error) {
			if input.NatalChartID != "ch1" {
				t.Fatalf("chart id not taken from path")
			}
			if input.OrbOverrides[domain.Square] != 5 {
				t.Fatalf("orb overrides not converted: %+v", input.OrbOverrides)
			}
			return &domain.Transit{
				ID:           "t1",
				ClientID:     "c1",
				NatalChartID: input.NatalChartID,
				TransitDate:  input.TargetDate,
				SignificantAspects: []domain.TransitAspect{
					{TransitingPlanet: "Saturn", NatalPlanet: "Sun", AspectType: domain.Square, Orb: 0.8},
				},
				Interpretations: domain.Interpretations{},
			}, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	body := `{"target_date":"2026-06-15T00:00:00Z","orb_overrides":{"square":5}}`
	c, rec := authedContext(t, http.MethodPost, "/api/charts/natal/ch1/transits", body)
	c.SetParamNames("id")
	c.SetParamValues("ch1")

	if err := h.CalculateTransits(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	aspects, ok := resp["significant_aspects"].([]any)
	if !ok || len(aspects) != 1 {
		t.Fatalf("expected one significant aspect, got %+v", resp)
	}
}

func TestChartHandler_CalculateSolarReturn(t *testing.T) {
	returnAt := time.Date(2026, 5, 15, 3, 12, 0, 0, time.UTC)
	svc := &stubChartService{
		solarReturnFn: func(ctx context.Context, input ports.CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error) {
			if input.NatalChartID != "ch1" || input.Year != 2026 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.SolarReturn{
				ID:              "sr1",
				ClientID:        "c1",
				NatalChartID:    input.NatalChartID,
				ReturnYear:      input.Year,
				ReturnDatetime:  returnAt,
				LocationCity:    "Buenos Aires",
				LocationCountry: "AR",
				HouseSystem:     "placidus",
				Interpretations: domain.Interpretations{},
			}, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, rec := authedContext(t, http.MethodPost, "/api/charts/natal/ch1/solar-return", `{"year":2026}`)
	c.SetParamNames("id")
	c.SetParamValues("ch1")

	if err := h.CalculateSolarReturn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["return_year"] != float64(2026) || resp["location_city"] != "Buenos Aires" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestChartHandler_CalculateSolarReturn_YearOutOfRange(t *testing.T) {
	svc := &stubChartService{
		solarReturnFn: func(ctx context.Context, input ports.CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewChartHandler(svc, consultantRepo())

	c, _ := authedContext(t, http.MethodPost, "/api/charts/natal/ch1/solar-return", `{"year":1500}`)
	c.SetParamNames("id")
	c.SetParamValues("ch1")

	err := h.CalculateSolarReturn(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
