package domain

// ChartPayload is the raw calculation result produced by the external
// calculation engine. The core never computes these values; it only derives
// summaries from them.
type ChartPayload struct {
	Planets  []PlanetRecord     `json:"planets" bson:"planets"`
	Houses   []HouseRecord      `json:"houses" bson:"houses"`
	Aspects  []AspectRecord     `json:"aspects" bson:"aspects"`
	Angles   map[string]float64 `json:"angles,omitempty" bson:"angles,omitempty"` // Ascendant, MC, ...
	Metadata map[string]string  `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// IsEmpty reports whether the payload carries no calculated bodies at all.
func (p ChartPayload) IsEmpty() bool {
	return len(p.Planets) == 0 && len(p.Houses) == 0 && len(p.Aspects) == 0
}

// PlanetRecord is one calculated body placement inside a payload.
type PlanetRecord struct {
	Name         string  `json:"name" bson:"name"`
	Sign         string  `json:"sign" bson:"sign"`
	House        int     `json:"house" bson:"house"`
	Degree       float64 `json:"degree" bson:"degree"` // within sign
	Longitude    float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Speed        float64 `json:"speed,omitempty" bson:"speed,omitempty"`
	IsRetrograde bool    `json:"is_retrograde,omitempty" bson:"is_retrograde,omitempty"`
}

// HouseRecord is one house cusp inside a payload, ordered house 1 first.
type HouseRecord struct {
	Number int     `json:"number" bson:"number"`
	Sign   string  `json:"sign" bson:"sign"`
	Degree float64 `json:"degree" bson:"degree"`
}

// AspectRecord is one calculated aspect inside a payload.
type AspectRecord struct {
	Planet1    string     `json:"planet1" bson:"planet1"`
	Planet2    string     `json:"planet2" bson:"planet2"`
	AspectType AspectType `json:"aspect_type" bson:"aspect_type"`
	Orb        float64    `json:"orb" bson:"orb"`
}

// TransitPayload is the raw transit calculation for a target date.
type TransitPayload struct {
	Date     string          `json:"date" bson:"date"`
	Transits []TransitAspect `json:"transits" bson:"transits"`
}

// TransitAspect relates a transiting planet to a natal one.
type TransitAspect struct {
	TransitingPlanet string     `json:"transiting_planet" bson:"transiting_planet"`
	NatalPlanet      string     `json:"natal_planet" bson:"natal_planet"`
	AspectType       AspectType `json:"aspect_type" bson:"aspect_type"`
	Orb              float64    `json:"orb" bson:"orb"`
	IsApplying       bool       `json:"is_applying" bson:"is_applying"`
}

// SolarReturnPayload is the raw solar-return calculation for one year.
type SolarReturnPayload struct {
	Year       int          `json:"year" bson:"year"`
	ReturnDate string       `json:"return_date" bson:"return_date"`
	Chart      ChartPayload `json:"chart" bson:"chart"`
}
