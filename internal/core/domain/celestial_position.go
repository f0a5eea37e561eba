package domain

import (
	"fmt"
	"math"
)

// degreeTolerance absorbs float rounding when comparing a stated degree
// against the one derivable from the absolute longitude.
const degreeTolerance = 1e-6

// CelestialPosition is the immutable placement of one body in the zodiac.
type CelestialPosition struct {
	Name      string  `json:"name" bson:"name"`
	Longitude float64 `json:"longitude" bson:"longitude"` // absolute, [0,360)
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Speed     float64 `json:"speed" bson:"speed"` // daily motion; negative = retrograde

	Sign   string  `json:"sign" bson:"sign"`
	Degree float64 `json:"degree" bson:"degree"` // within sign, [0,30)
	Minute int     `json:"minute" bson:"minute"`
	Second int     `json:"second" bson:"second"`

	House int `json:"house" bson:"house"` // 1-12

	IsRetrograde bool   `json:"is_retrograde" bson:"is_retrograde"`
	Dignity      string `json:"dignity,omitempty" bson:"dignity,omitempty"` // domicile, exaltation, detriment, fall
}

// NewCelestialPosition validates ranges and checks that sign and degree are
// consistent with the absolute longitude.
func NewCelestialPosition(p CelestialPosition) (CelestialPosition, error) {
	if p.Name == "" {
		return CelestialPosition{}, NewValidationError("body name is required", "name")
	}
	if p.Longitude < 0 || p.Longitude >= 360 {
		return CelestialPosition{}, NewValidationError("longitude must be between 0 and 360", "longitude")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return CelestialPosition{}, NewValidationError("latitude must be between -90 and 90", "latitude")
	}
	if p.House < 1 || p.House > 12 {
		return CelestialPosition{}, NewValidationError("house must be between 1 and 12", "house")
	}
	if p.Degree < 0 || p.Degree >= 30 {
		return CelestialPosition{}, NewValidationError("degree must be at least 0 and below 30", "degree")
	}
	if p.Minute < 0 || p.Minute >= 60 {
		return CelestialPosition{}, NewValidationError("minute must be between 0 and 59", "minute")
	}
	if p.Second < 0 || p.Second >= 60 {
		return CelestialPosition{}, NewValidationError("second must be between 0 and 59", "second")
	}
	if p.Sign != SignFromLongitude(p.Longitude) {
		return CelestialPosition{}, NewValidationError(
			fmt.Sprintf("sign %s does not match longitude %.4f", p.Sign, p.Longitude), "sign")
	}
	if math.Abs(p.Degree-DegreeInSign(p.Longitude)) > degreeTolerance {
		return CelestialPosition{}, NewValidationError(
			fmt.Sprintf("degree %.4f does not match longitude %.4f", p.Degree, p.Longitude), "degree")
	}
	return p, nil
}

// PositionFromRecord lifts a raw engine planet record into a validated
// CelestialPosition. Engines may omit the absolute longitude, in which case it
// is reconstructed from sign and degree; minute and second are derived from
// the fractional degree.
func PositionFromRecord(r PlanetRecord) (CelestialPosition, error) {
	lon := r.Longitude
	if lon == 0 {
		if idx := SignIndex(r.Sign); idx >= 0 {
			lon = float64(idx)*30 + r.Degree
		}
	}

	minutes := (r.Degree - math.Floor(r.Degree)) * 60
	minute := int(minutes)
	second := int((minutes - float64(minute)) * 60)

	return NewCelestialPosition(CelestialPosition{
		Name:         r.Name,
		Longitude:    lon,
		Speed:        r.Speed,
		Sign:         r.Sign,
		Degree:       r.Degree,
		Minute:       minute,
		Second:       second,
		House:        r.House,
		IsRetrograde: r.IsRetrograde || r.Speed < 0,
	})
}

// FormattedPosition renders the position as e.g. `15°32'45" Aries`.
func (p CelestialPosition) FormattedPosition() string {
	return fmt.Sprintf("%d°%d'%d\" %s", int(p.Degree), p.Minute, p.Second, p.Sign)
}

func (p CelestialPosition) IsInSign(sign string) bool { return p.Sign == sign }

func (p CelestialPosition) IsInHouse(house int) bool { return p.House == house }
