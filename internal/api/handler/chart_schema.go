package handler

import (
	"time"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

type chartOptionsRequest struct {
	IncludeChiron bool   `json:"include_chiron"`
	IncludeLilith bool   `json:"include_lilith"`
	IncludeNodes  bool   `json:"include_nodes"`
	HouseSystem   string `json:"house_system" validate:"omitempty,oneof=placidus koch equal whole_sign"`
}

type calculateNatalRequest struct {
	ClientID string              `json:"client_id" validate:"required"`
	Options  chartOptionsRequest `json:"options"`
	Language string              `json:"language"  validate:"omitempty,oneof=es en it fr de pt-br"`
}

type quickCalculateRequest struct {
	Name     string              `json:"name"       validate:"required"`
	Birth    birthDataRequest    `json:"birth_data" validate:"required"`
	Options  chartOptionsRequest `json:"options"`
	Language string              `json:"language"   validate:"omitempty,oneof=es en it fr de pt-br"`
}

type calculateTransitsRequest struct {
	TargetDate   time.Time          `json:"target_date" validate:"required"`
	OrbOverrides map[string]float64 `json:"orb_overrides,omitempty"`
	Language     string             `json:"language" validate:"omitempty,oneof=es en it fr de pt-br"`
}

type calculateSolarReturnRequest struct {
	Year     int    `json:"year"     validate:"required,gte=1900,lte=2200"`
	Language string `json:"language" validate:"omitempty,oneof=es en it fr de pt-br"`
}

type solarSetResponse struct {
	SunSign        string              `json:"sun_sign"`
	SunHouse       int                 `json:"sun_house"`
	SunDegree      float64             `json:"sun_degree"`
	FifthHouseSign string              `json:"fifth_house_sign"`
	HardAspects    []domain.HardAspect `json:"hard_aspects"`
}

type chartResponse struct {
	ID              string                 `json:"id"`
	ClientID        string                 `json:"client_id"`
	Name            string                 `json:"name"`
	Data            domain.ChartPayload    `json:"data"`
	SolarSet        solarSetResponse       `json:"solar_set"`
	HouseSystem     string                 `json:"house_system"`
	CalculatedAt    time.Time              `json:"calculated_at"`
	Interpretations domain.Interpretations `json:"interpretations"`
	SVGURL          string                 `json:"svg_url,omitempty"`
	PDFURL          string                 `json:"pdf_url,omitempty"`
}

type quickChartResponse struct {
	Name         string              `json:"name"`
	SunSign      string              `json:"sun_sign"`
	Data         domain.ChartPayload `json:"data"`
	SolarSet     solarSetResponse    `json:"solar_set"`
	SVG          string              `json:"svg"`
	HouseSystem  string              `json:"house_system"`
	CalculatedAt time.Time           `json:"calculated_at"`
}

type listChartsResponse struct {
	Data []chartResponse `json:"data"`
}

type transitResponse struct {
	ID                 string                 `json:"id"`
	ClientID           string                 `json:"client_id"`
	NatalChartID       string                 `json:"natal_chart_id"`
	TransitDate        time.Time              `json:"transit_date"`
	Data               domain.TransitPayload  `json:"data"`
	SignificantAspects []domain.TransitAspect `json:"significant_aspects"`
	Interpretations    domain.Interpretations `json:"interpretations"`
	CalculatedAt       time.Time              `json:"calculated_at"`
}

type solarReturnResponse struct {
	ID              string                 `json:"id"`
	ClientID        string                 `json:"client_id"`
	NatalChartID    string                 `json:"natal_chart_id"`
	ReturnYear      int                    `json:"return_year"`
	ReturnDatetime  time.Time              `json:"return_datetime"`
	LocationCity    string                 `json:"location_city"`
	LocationCountry string                 `json:"location_country"`
	Data            domain.ChartPayload    `json:"data"`
	SolarSet        solarSetResponse       `json:"solar_set"`
	HouseSystem     string                 `json:"house_system"`
	IsRelocated     bool                   `json:"is_relocated"`
	Interpretations domain.Interpretations `json:"interpretations"`
	CalculatedAt    time.Time              `json:"calculated_at"`
}
