package domain

import "time"

// Interpretations maps language code to rendered interpretation text keyed by
// interpretation section (sun_in_sign, aspects, overall, ...).
type Interpretations map[string]map[string]string

// NatalChart is a birth-moment snapshot owned by exactly one client.
// Immutable after calculation except for adding interpretations and exports.
type NatalChart struct {
	ID       string `json:"id" bson:"_id"`
	ClientID string `json:"client_id" bson:"client_id"`

	Name string `json:"name" bson:"name"`

	Data     ChartPayload `json:"data" bson:"data"`
	SolarSet SolarSet     `json:"solar_set" bson:"solar_set"`

	HouseSystem  string    `json:"house_system" bson:"house_system"` // placidus, koch, equal, whole_sign
	CalculatedAt time.Time `json:"calculated_at" bson:"calculated_at"`

	Interpretations Interpretations `json:"interpretations" bson:"interpretations"`

	SVGURL string `json:"svg_url,omitempty" bson:"svg_url,omitempty"`
	PDFURL string `json:"pdf_url,omitempty" bson:"pdf_url,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewNatalChart requires a non-empty payload and an owning client.
func NewNatalChart(id, clientID string, data ChartPayload, solarSet SolarSet, houseSystem string, now time.Time) (*NatalChart, error) {
	if clientID == "" {
		return nil, NewValidationError("chart must be associated with a client", "client_id")
	}
	if data.IsEmpty() {
		return nil, NewValidationError("chart data is required", "data")
	}
	if houseSystem == "" {
		houseSystem = "placidus"
	}
	return &NatalChart{
		ID:              id,
		ClientID:        clientID,
		Name:            "Birth Chart",
		Data:            data,
		SolarSet:        solarSet,
		HouseSystem:     houseSystem,
		CalculatedAt:    now,
		Interpretations: Interpretations{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (n *NatalChart) HasInterpretation(language string) bool {
	_, ok := n.Interpretations[language]
	return ok
}

// AddInterpretation attaches rendered text for one language.
func (n *NatalChart) AddInterpretation(language string, text map[string]string, now time.Time) error {
	if !IsLanguageSupported(language) {
		return NewUnsupportedLanguage(language)
	}
	if n.Interpretations == nil {
		n.Interpretations = Interpretations{}
	}
	n.Interpretations[language] = text
	n.UpdatedAt = now
	return nil
}

func (n *NatalChart) SetSVGExport(url string, now time.Time) {
	n.SVGURL = url
	n.UpdatedAt = now
}

func (n *NatalChart) SetPDFExport(url string, now time.Time) {
	n.PDFURL = url
	n.UpdatedAt = now
}

func (n *NatalChart) SunSign() string { return n.SolarSet.SunSign }

func (n *NatalChart) HasExports() bool { return n.SVGURL != "" || n.PDFURL != "" }
