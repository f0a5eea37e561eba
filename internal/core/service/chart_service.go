package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// ChartService implements the chart-calculation use cases on top of the
// external calculator and interpreter collaborators.
type ChartService struct {
	clients      ports.ClientRepository
	charts       ports.NatalChartRepository
	transits     ports.TransitRepository
	solarReturns ports.SolarReturnRepository
	calculator   ports.Calculator
	interpreter  ports.Interpreter
	audit        AuditRecorder
	log          zerolog.Logger
}

func NewChartService(
	clients ports.ClientRepository,
	charts ports.NatalChartRepository,
	transits ports.TransitRepository,
	solarReturns ports.SolarReturnRepository,
	calculator ports.Calculator,
	interpreter ports.Interpreter,
	audit AuditRecorder,
	log zerolog.Logger,
) *ChartService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &ChartService{
		clients:      clients,
		charts:       charts,
		transits:     transits,
		solarReturns: solarReturns,
		calculator:   calculator,
		interpreter:  interpreter,
		audit:        audit,
		log:          log,
	}
}

// CalculateNatal resolves the client, authorizes the actor, runs the external
// calculation, derives the Solar Set, attaches interpretations, and persists
// the chart. Interpretation failure degrades to an empty map; it never aborts
// a successful calculation.
func (s *ChartService) CalculateNatal(ctx context.Context, input ports.CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error) {
	client, err := s.authorizedClient(ctx, input.ClientID, actor, "you cannot calculate charts for this client")
	if err != nil {
		return nil, err
	}
	if client.BirthData == nil {
		return nil, domain.NewValidationError("client has no birth data recorded", "birth_data")
	}
	if input.Language != "" && !domain.IsLanguageSupported(input.Language) {
		return nil, domain.NewUnsupportedLanguage(input.Language)
	}

	payload, err := s.calculator.CalculateNatalChart(ctx, *client.BirthData, input.Options)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate natal chart", domain.StageNatalChart, err)
	}

	solarSet, err := s.calculator.CalculateSolarSet(ctx, payload)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate solar set", domain.StageSolarSet, err)
	}

	now := time.Now().UTC()
	chart, err := domain.NewNatalChart(uuid.NewString(), client.ID, payload, solarSet, input.Options.HouseSystem, now)
	if err != nil {
		return nil, err
	}

	language := input.Language
	if language == "" {
		language = actor.PreferredLanguage
	}
	text, err := s.interpreter.InterpretNatalChart(ctx, chart, language, ports.DetailStandard)
	if err != nil {
		s.log.Warn().Err(err).Str("language", language).Str("client_id", client.ID).
			Msg("interpretation failed, continuing with empty interpretations")
		text = map[string]string{}
	}
	if err := chart.AddInterpretation(language, text, now); err != nil {
		return nil, err
	}

	saved, err := s.charts.Save(ctx, chart)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("chart_id", saved.ID).Str("client_id", client.ID).
		Str("sun_sign", saved.SunSign()).Msg("natal chart calculated")
	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditCalculate, EntityType: "NatalChart", EntityID: saved.ID,
		Timestamp: now,
	})
	return saved, nil
}

// QuickCalculate runs a stateless calculation from raw birth data. Nothing is
// persisted; an SVG rendering is part of the result.
func (s *ChartService) QuickCalculate(ctx context.Context, input ports.QuickCalculateInput) (*ports.QuickChartResult, error) {
	birth, err := domain.NewBirthData(input.Birth.Date, input.Birth.City, input.Birth.Country,
		input.Birth.Timezone, input.Birth.Latitude, input.Birth.Longitude)
	if err != nil {
		return nil, err
	}
	if input.Language != "" && !domain.IsLanguageSupported(input.Language) {
		return nil, domain.NewUnsupportedLanguage(input.Language)
	}

	payload, err := s.calculator.CalculateNatalChart(ctx, birth, input.Options)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate natal chart", domain.StageNatalChart, err)
	}

	solarSet, err := s.calculator.CalculateSolarSet(ctx, payload)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate solar set", domain.StageSolarSet, err)
	}

	svg, err := s.calculator.GenerateChartSVG(ctx, birth, payload, input.Name, input.Language)
	if err != nil {
		return nil, domain.NewCalculationError("failed to generate SVG", domain.StageExport, err)
	}

	houseSystem := input.Options.HouseSystem
	if houseSystem == "" {
		houseSystem = "placidus"
	}
	return &ports.QuickChartResult{
		Name:         input.Name,
		SunSign:      solarSet.SunSign,
		Data:         payload,
		SolarSet:     solarSet,
		SVG:          svg,
		HouseSystem:  houseSystem,
		CalculatedAt: time.Now().UTC(),
	}, nil
}

// GetChart returns a chart after authorizing against its owning client.
func (s *ChartService) GetChart(ctx context.Context, chartID string, actor *domain.User) (*domain.NatalChart, error) {
	chart, err := s.charts.FindByID(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizedClient(ctx, chart.ClientID, actor, "you cannot view this chart"); err != nil {
		return nil, err
	}
	return chart, nil
}

// ListClientCharts returns a client's charts newest first.
func (s *ChartService) ListClientCharts(ctx context.Context, clientID string, actor *domain.User, skip, limit int) ([]*domain.NatalChart, error) {
	if _, err := s.authorizedClient(ctx, clientID, actor, "you cannot view charts for this client"); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.charts.FindByClient(ctx, clientID, skip, limit)
}

// CalculateTransits computes transits against an existing natal chart and
// persists the result. Interpretation failure degrades to an empty map.
func (s *ChartService) CalculateTransits(ctx context.Context, input ports.CalculateTransitsInput, actor *domain.User) (*domain.Transit, error) {
	chart, err := s.charts.FindByID(ctx, input.NatalChartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizedClient(ctx, chart.ClientID, actor, "you cannot calculate transits for this client"); err != nil {
		return nil, err
	}

	payload, err := s.calculator.CalculateTransits(ctx, chart.Data, input.TargetDate, input.OrbOverrides)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate transits", domain.StageTransit, err)
	}

	now := time.Now().UTC()
	transit, err := domain.NewTransit(uuid.NewString(), chart.ClientID, chart.ID, input.TargetDate, payload, now)
	if err != nil {
		return nil, err
	}
	for _, a := range payload.Transits {
		if domain.QualityOf(a.AspectType) == domain.QualityHard {
			if err := transit.AddSignificantAspect(a, now); err != nil {
				return nil, err
			}
		}
	}

	if input.Language != "" {
		text, err := s.interpreter.InterpretTransit(ctx, transit, input.Language, ports.DetailStandard)
		if err != nil {
			s.log.Warn().Err(err).Str("language", input.Language).Msg("transit interpretation failed")
			text = map[string]string{}
		}
		if err := transit.AddInterpretation(input.Language, text, now); err != nil {
			return nil, err
		}
	}

	saved, err := s.transits.Save(ctx, transit)
	if err != nil {
		return nil, err
	}
	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditCalculate, EntityType: "Transit", EntityID: saved.ID,
		Timestamp: now,
	})
	return saved, nil
}

// CalculateSolarReturn computes the annual return chart for one year.
func (s *ChartService) CalculateSolarReturn(ctx context.Context, input ports.CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error) {
	chart, err := s.charts.FindByID(ctx, input.NatalChartID)
	if err != nil {
		return nil, err
	}
	client, err := s.authorizedClient(ctx, chart.ClientID, actor, "you cannot calculate solar returns for this client")
	if err != nil {
		return nil, err
	}
	if client.BirthData == nil {
		return nil, domain.NewValidationError("client has no birth data recorded", "birth_data")
	}

	payload, err := s.calculator.CalculateSolarReturn(ctx, *client.BirthData, input.Year)
	if err != nil {
		return nil, domain.NewCalculationError("failed to calculate solar return", domain.StageSolarReturn, err)
	}

	solarSet, err := domain.DeriveSolarSet(payload.Chart)
	if err != nil {
		return nil, err
	}

	returnAt, err := time.Parse(time.RFC3339, payload.ReturnDate)
	if err != nil {
		returnAt, err = time.Parse("2006-01-02T15:04:05", payload.ReturnDate)
		if err != nil {
			return nil, domain.NewCalculationError("invalid return date in payload", domain.StageSolarReturn, err)
		}
	}

	now := time.Now().UTC()
	sr, err := domain.NewSolarReturn(uuid.NewString(), chart.ClientID, chart.ID, input.Year, returnAt,
		client.BirthData.City, client.BirthData.Country, payload.Chart, solarSet, now)
	if err != nil {
		return nil, err
	}

	if input.Language != "" {
		text, err := s.interpreter.InterpretSolarReturn(ctx, sr, input.Language, ports.DetailStandard)
		if err != nil {
			s.log.Warn().Err(err).Str("language", input.Language).Msg("solar return interpretation failed")
			text = map[string]string{}
		}
		if err := sr.AddInterpretation(input.Language, text, now); err != nil {
			return nil, err
		}
	}

	saved, err := s.solarReturns.Save(ctx, sr)
	if err != nil {
		return nil, err
	}
	s.audit.Record(domain.AuditLog{
		UserID: actor.ID, Action: domain.AuditCalculate, EntityType: "SolarReturn", EntityID: saved.ID,
		Timestamp: now,
	})
	return saved, nil
}

// authorizedClient applies the uniform tenancy state machine before any chart
// operation touches a client's data.
func (s *ChartService) authorizedClient(ctx context.Context, clientID string, actor *domain.User, reason string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !client.BelongsToConsultant(actor.ID) {
		return nil, domain.NewUnauthorizedAccess(reason)
	}
	return client, nil
}
