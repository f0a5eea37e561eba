package domain

import "fmt"

// HardAspect is one hard aspect touching the Sun inside a SolarSet. Planet is
// the participant other than the Sun.
type HardAspect struct {
	Planet     string     `json:"planet" bson:"planet"`
	AspectType AspectType `json:"aspect_type" bson:"aspect_type"`
	Orb        float64    `json:"orb" bson:"orb"`
}

// SolarSet is the derived chart summary: the Sun's sign, house and degree, the
// sign on the 5th-house cusp, and the hard aspects to the Sun. Immutable once
// derived.
type SolarSet struct {
	SunSign        string       `json:"sun_sign" bson:"sun_sign"`
	SunHouse       int          `json:"sun_house" bson:"sun_house"`
	SunDegree      float64      `json:"sun_degree" bson:"sun_degree"`
	FifthHouseSign string       `json:"fifth_house_sign" bson:"fifth_house_sign"`
	HardAspects    []HardAspect `json:"hard_aspects" bson:"hard_aspects"`
}

// NewSolarSet validates the vocabulary and the hard-aspect restriction:
// only conjunction, square, and opposition may appear.
func NewSolarSet(s SolarSet) (SolarSet, error) {
	if !IsValidSign(s.SunSign) {
		return SolarSet{}, NewValidationError("invalid sun sign: "+s.SunSign, "sun_sign")
	}
	if !IsValidSign(s.FifthHouseSign) {
		return SolarSet{}, NewValidationError("invalid 5th house sign: "+s.FifthHouseSign, "fifth_house_sign")
	}
	if s.SunHouse < 1 || s.SunHouse > 12 {
		return SolarSet{}, NewValidationError("sun house must be between 1 and 12", "sun_house")
	}
	if s.SunDegree < 0 || s.SunDegree >= 30 {
		return SolarSet{}, NewValidationError("sun degree must be at least 0 and below 30", "sun_degree")
	}
	for _, a := range s.HardAspects {
		switch a.AspectType {
		case Conjunction, Square, Opposition:
		default:
			return SolarSet{}, NewValidationError(
				"only hard aspects allowed, got: "+string(a.AspectType), "hard_aspects")
		}
	}
	return s, nil
}

// DeriveSolarSet builds the SolarSet from a completed chart payload. The
// derivation is pure and deterministic: the same payload always yields the
// same value.
func DeriveSolarSet(payload ChartPayload) (SolarSet, error) {
	var sun *PlanetRecord
	for i := range payload.Planets {
		if payload.Planets[i].Name == "Sun" {
			sun = &payload.Planets[i]
			break
		}
	}
	if sun == nil {
		return SolarSet{}, NewCalculationError("Sun position not found in chart data", StageSolarSet, nil)
	}

	if len(payload.Houses) < 5 {
		return SolarSet{}, NewCalculationError("5th house not found in chart data", StageSolarSet, nil)
	}
	fifth := payload.Houses[4]

	hard := make([]HardAspect, 0, 2)
	for _, a := range payload.Aspects {
		if a.Planet1 != "Sun" && a.Planet2 != "Sun" {
			continue
		}
		switch a.AspectType {
		case Conjunction, Square, Opposition:
		default:
			continue
		}
		other := a.Planet2
		if other == "Sun" {
			other = a.Planet1
		}
		hard = append(hard, HardAspect{Planet: other, AspectType: a.AspectType, Orb: a.Orb})
	}

	return NewSolarSet(SolarSet{
		SunSign:        sun.Sign,
		SunHouse:       sun.House,
		SunDegree:      sun.Degree,
		FifthHouseSign: fifth.Sign,
		HardAspects:    hard,
	})
}

func (s SolarSet) HasHardAspects() bool { return len(s.HardAspects) > 0 }

func (s SolarSet) AspectCount() int { return len(s.HardAspects) }

func (s SolarSet) Conjunctions() []HardAspect { return s.aspectsOf(Conjunction) }

func (s SolarSet) Squares() []HardAspect { return s.aspectsOf(Square) }

func (s SolarSet) Oppositions() []HardAspect { return s.aspectsOf(Opposition) }

func (s SolarSet) aspectsOf(t AspectType) []HardAspect {
	var out []HardAspect
	for _, a := range s.HardAspects {
		if a.AspectType == t {
			out = append(out, a)
		}
	}
	return out
}

// HasAspectToPlanet reports whether the Sun has a hard aspect to the named body.
func (s SolarSet) HasAspectToPlanet(name string) bool {
	for _, a := range s.HardAspects {
		if a.Planet == name {
			return true
		}
	}
	return false
}

// FormattedSunPosition renders e.g. "15° Taurus in 12th house".
func (s SolarSet) FormattedSunPosition() string {
	return fmt.Sprintf("%d° %s in %dth house", int(s.SunDegree), s.SunSign, s.SunHouse)
}

// InterpretationKey is the lookup key used by the interpreter:
// SunSign_5thHouseSign_AspectCount.
func (s SolarSet) InterpretationKey() string {
	return fmt.Sprintf("%s_%s_%d", s.SunSign, s.FifthHouseSign, s.AspectCount())
}
