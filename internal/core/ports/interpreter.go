package ports

import (
	"context"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// DetailLevel controls how much interpretation text is produced.
type DetailLevel string

const (
	DetailBasic    DetailLevel = "basic"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

// Interpreter produces natural-language interpretation text for calculated
// charts. Implementations may be rule-based (translation files) or model-backed.
// Requesting a language outside domain.SupportedLanguages fails with
// UNSUPPORTED_LANGUAGE.
type Interpreter interface {
	InterpretNatalChart(ctx context.Context, chart *domain.NatalChart, language string, level DetailLevel) (map[string]string, error)

	InterpretPlanetInSign(ctx context.Context, planet, sign, language string) (string, error)
	InterpretPlanetInHouse(ctx context.Context, planet string, house int, language string) (string, error)
	InterpretAspect(ctx context.Context, planet1, planet2 string, aspectType domain.AspectType, language string) (string, error)
	InterpretSolarSet(ctx context.Context, set domain.SolarSet, language string) (string, error)

	InterpretTransit(ctx context.Context, transit *domain.Transit, language string, level DetailLevel) (map[string]string, error)
	InterpretSolarReturn(ctx context.Context, sr *domain.SolarReturn, language string, level DetailLevel) (map[string]string, error)

	GetSupportedLanguages() []string
	IsLanguageSupported(code string) bool
}
