package domain

import "time"

// Transit holds planetary transits against a natal chart for one target date.
type Transit struct {
	ID           string `json:"id" bson:"_id"`
	ClientID     string `json:"client_id" bson:"client_id"`
	NatalChartID string `json:"natal_chart_id" bson:"natal_chart_id"`

	TransitDate time.Time      `json:"transit_date" bson:"transit_date"`
	Data        TransitPayload `json:"data" bson:"data"`

	SignificantAspects []TransitAspect `json:"significant_aspects" bson:"significant_aspects"`

	CalculatedAt    time.Time       `json:"calculated_at" bson:"calculated_at"`
	Interpretations Interpretations `json:"interpretations" bson:"interpretations"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewTransit requires the owning client, the baseline natal chart, and a date.
func NewTransit(id, clientID, natalChartID string, transitDate time.Time, data TransitPayload, now time.Time) (*Transit, error) {
	if clientID == "" {
		return nil, NewValidationError("transit must be associated with a client", "client_id")
	}
	if natalChartID == "" {
		return nil, NewValidationError("transit must be associated with a natal chart", "natal_chart_id")
	}
	if transitDate.IsZero() {
		return nil, NewValidationError("transit date is required", "transit_date")
	}
	return &Transit{
		ID:              id,
		ClientID:        clientID,
		NatalChartID:    natalChartID,
		TransitDate:     transitDate,
		Data:            data,
		CalculatedAt:    now,
		Interpretations: Interpretations{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AddSignificantAspect records an important transit aspect.
func (t *Transit) AddSignificantAspect(a TransitAspect, now time.Time) error {
	if a.TransitingPlanet == "" || a.NatalPlanet == "" || a.AspectType == "" {
		return NewValidationError("aspect must name both planets and an aspect type", "significant_aspects")
	}
	t.SignificantAspects = append(t.SignificantAspects, a)
	t.UpdatedAt = now
	return nil
}

func (t *Transit) HasInterpretation(language string) bool {
	_, ok := t.Interpretations[language]
	return ok
}

func (t *Transit) AddInterpretation(language string, text map[string]string, now time.Time) error {
	if !IsLanguageSupported(language) {
		return NewUnsupportedLanguage(language)
	}
	if t.Interpretations == nil {
		t.Interpretations = Interpretations{}
	}
	t.Interpretations[language] = text
	t.UpdatedAt = now
	return nil
}

func (t *Transit) HasSignificantAspects() bool { return len(t.SignificantAspects) > 0 }

// IsForDate compares the calendar day only.
func (t *Transit) IsForDate(date time.Time) bool {
	y1, m1, d1 := t.TransitDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
