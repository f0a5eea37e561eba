package ports

import (
	"context"
	"time"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// NatalChartOptions selects which optional bodies the engine includes.
type NatalChartOptions struct {
	IncludeChiron bool
	IncludeLilith bool
	IncludeNodes  bool
	HouseSystem   string // placidus, koch, equal, whole_sign
}

// Calculator is the contract for the external ephemeris engine. The core
// never performs astronomical math itself; it delegates here and only derives
// summaries from the returned payloads.
type Calculator interface {
	CalculateNatalChart(ctx context.Context, birth domain.BirthData, opts NatalChartOptions) (domain.ChartPayload, error)

	// CalculateSolarSet derives the Solar Set from a completed natal payload.
	CalculateSolarSet(ctx context.Context, payload domain.ChartPayload) (domain.SolarSet, error)

	// CalculateTransits compares current positions against the natal payload
	// for targetDate. orbOverrides replaces default orbs per aspect name.
	CalculateTransits(ctx context.Context, payload domain.ChartPayload, targetDate time.Time, orbOverrides map[domain.AspectType]float64) (domain.TransitPayload, error)

	CalculateSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.SolarReturnPayload, error)

	// GenerateChartSVG renders the chart wheel in-memory and returns the SVG text.
	GenerateChartSVG(ctx context.Context, birth domain.BirthData, payload domain.ChartPayload, name, language string) (string, error)

	// GetSupportedAspects returns the eight fixed aspect names.
	GetSupportedAspects() []domain.AspectType

	// GetDefaultOrbs returns the per-aspect orb allowances in degrees.
	GetDefaultOrbs() map[domain.AspectType]float64
}
