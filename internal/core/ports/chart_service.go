package ports

import (
	"context"
	"time"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// CalculateNatalChartInput requests a persisted natal chart for a client.
type CalculateNatalChartInput struct {
	ClientID string
	Options  NatalChartOptions
	Language string
}

// QuickCalculateInput requests a stateless chart from raw birth data.
// Nothing is persisted; the result includes the rendered SVG.
type QuickCalculateInput struct {
	Name     string
	Birth    BirthDataInput
	Options  NatalChartOptions
	Language string
}

// QuickChartResult is the transient outcome of a quick calculation.
type QuickChartResult struct {
	Name         string
	SunSign      string
	Data         domain.ChartPayload
	SolarSet     domain.SolarSet
	SVG          string
	HouseSystem  string
	CalculatedAt time.Time
}

// CalculateTransitsInput requests transits against an existing natal chart.
type CalculateTransitsInput struct {
	NatalChartID string
	TargetDate   time.Time
	OrbOverrides map[domain.AspectType]float64
	Language     string
}

// CalculateSolarReturnInput requests a solar return against an existing chart.
type CalculateSolarReturnInput struct {
	NatalChartID string
	Year         int
	Language     string
}

// ChartService defines the chart-calculation use cases. Client-scoped
// operations authorize the actor against the owning consultant first.
type ChartService interface {
	CalculateNatal(ctx context.Context, input CalculateNatalChartInput, actor *domain.User) (*domain.NatalChart, error)
	QuickCalculate(ctx context.Context, input QuickCalculateInput) (*QuickChartResult, error)
	GetChart(ctx context.Context, chartID string, actor *domain.User) (*domain.NatalChart, error)
	ListClientCharts(ctx context.Context, clientID string, actor *domain.User, skip, limit int) ([]*domain.NatalChart, error)
	CalculateTransits(ctx context.Context, input CalculateTransitsInput, actor *domain.User) (*domain.Transit, error)
	CalculateSolarReturn(ctx context.Context, input CalculateSolarReturnInput, actor *domain.User) (*domain.SolarReturn, error)
}
