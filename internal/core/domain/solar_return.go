package domain

import "time"

// SolarReturn is the annual chart for the moment the Sun returns to its natal
// position, optionally relocated to the client's current residence.
type SolarReturn struct {
	ID           string `json:"id" bson:"_id"`
	ClientID     string `json:"client_id" bson:"client_id"`
	NatalChartID string `json:"natal_chart_id" bson:"natal_chart_id"`

	ReturnYear     int       `json:"return_year" bson:"return_year"`
	ReturnDatetime time.Time `json:"return_datetime" bson:"return_datetime"`

	LocationCity      string   `json:"location_city" bson:"location_city"`
	LocationCountry   string   `json:"location_country" bson:"location_country"`
	LocationLatitude  *float64 `json:"location_latitude,omitempty" bson:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty" bson:"location_longitude,omitempty"`

	Data     ChartPayload `json:"data" bson:"data"`
	SolarSet SolarSet     `json:"solar_set" bson:"solar_set"`

	HouseSystem  string    `json:"house_system" bson:"house_system"`
	IsRelocated  bool      `json:"is_relocated" bson:"is_relocated"`
	CalculatedAt time.Time `json:"calculated_at" bson:"calculated_at"`

	Interpretations Interpretations `json:"interpretations" bson:"interpretations"`

	SVGURL string `json:"svg_url,omitempty" bson:"svg_url,omitempty"`
	PDFURL string `json:"pdf_url,omitempty" bson:"pdf_url,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewSolarReturn validates the aggregate's required references and location.
func NewSolarReturn(id, clientID, natalChartID string, year int, returnAt time.Time, city, country string, data ChartPayload, solarSet SolarSet, now time.Time) (*SolarReturn, error) {
	if clientID == "" {
		return nil, NewValidationError("solar return must be associated with a client", "client_id")
	}
	if natalChartID == "" {
		return nil, NewValidationError("solar return must be associated with a natal chart", "natal_chart_id")
	}
	if year == 0 {
		return nil, NewValidationError("return year is required", "return_year")
	}
	if returnAt.IsZero() {
		return nil, NewValidationError("return datetime is required", "return_datetime")
	}
	if city == "" {
		return nil, NewValidationError("location city is required", "location_city")
	}
	if country == "" {
		return nil, NewValidationError("location country is required", "location_country")
	}
	if data.IsEmpty() {
		return nil, NewValidationError("chart data is required", "data")
	}
	return &SolarReturn{
		ID:              id,
		ClientID:        clientID,
		NatalChartID:    natalChartID,
		ReturnYear:      year,
		ReturnDatetime:  returnAt,
		LocationCity:    city,
		LocationCountry: country,
		Data:            data,
		SolarSet:        solarSet,
		HouseSystem:     "placidus",
		CalculatedAt:    now,
		Interpretations: Interpretations{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (s *SolarReturn) MarkAsRelocated(now time.Time) {
	s.IsRelocated = true
	s.UpdatedAt = now
}

func (s *SolarReturn) HasInterpretation(language string) bool {
	_, ok := s.Interpretations[language]
	return ok
}

func (s *SolarReturn) AddInterpretation(language string, text map[string]string, now time.Time) error {
	if !IsLanguageSupported(language) {
		return NewUnsupportedLanguage(language)
	}
	if s.Interpretations == nil {
		s.Interpretations = Interpretations{}
	}
	s.Interpretations[language] = text
	s.UpdatedAt = now
	return nil
}

func (s *SolarReturn) SetSVGExport(url string, now time.Time) {
	s.SVGURL = url
	s.UpdatedAt = now
}

func (s *SolarReturn) SetPDFExport(url string, now time.Time) {
	s.PDFURL = url
	s.UpdatedAt = now
}
