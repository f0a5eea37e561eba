package domain

// AspectType names one of the eight supported angular relationships.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"    // 0°
	Opposition     AspectType = "opposition"     // 180°
	Trine          AspectType = "trine"          // 120°
	Square         AspectType = "square"         // 90°
	Sextile        AspectType = "sextile"        // 60°
	Semisquare     AspectType = "semisquare"     // 45°
	Sesquiquadrate AspectType = "sesquiquadrate" // 135°
	Quincunx       AspectType = "quincunx"       // 150°
)

// AspectQuality classifies an aspect's traditional character.
type AspectQuality string

const (
	QualityHard    AspectQuality = "hard"
	QualitySoft    AspectQuality = "soft"
	QualityNeutral AspectQuality = "neutral"
	QualityMinor   AspectQuality = "minor"
)

// exactAngles gives the exact angle per aspect type.
var exactAngles = map[AspectType]float64{
	Conjunction:    0,
	Opposition:     180,
	Trine:          120,
	Square:         90,
	Sextile:        60,
	Semisquare:     45,
	Sesquiquadrate: 135,
	Quincunx:       150,
}

// defaultOrbs gives the allowed deviation from exact, in degrees.
var defaultOrbs = map[AspectType]float64{
	Conjunction:    8,
	Opposition:     8,
	Trine:          8,
	Square:         7,
	Sextile:        6,
	Semisquare:     3,
	Sesquiquadrate: 3,
	Quincunx:       3,
}

var aspectSymbols = map[AspectType]string{
	Conjunction:    "☌",
	Opposition:     "☍",
	Trine:          "△",
	Square:         "□",
	Sextile:        "⚹",
	Semisquare:     "∠",
	Sesquiquadrate: "⚼",
	Quincunx:       "⚻",
}

// IsValid reports whether t is one of the eight supported kinds.
func (t AspectType) IsValid() bool {
	_, ok := exactAngles[t]
	return ok
}

// ExactAngle returns the exact angle for the aspect type, 0 for unknown types.
func (t AspectType) ExactAngle() float64 { return exactAngles[t] }

// Symbol returns the Unicode glyph for the aspect type.
func (t AspectType) Symbol() string { return aspectSymbols[t] }

// DefaultOrb returns the default orb allowance for the aspect type.
// Unknown types fall back to 1 degree.
func DefaultOrb(t AspectType) float64 {
	if orb, ok := defaultOrbs[t]; ok {
		return orb
	}
	return 1
}

// QualityOf classifies deterministically: square/opposition are hard,
// trine/sextile soft, conjunction neutral, everything else minor.
func QualityOf(t AspectType) AspectQuality {
	switch t {
	case Square, Opposition:
		return QualityHard
	case Trine, Sextile:
		return QualitySoft
	case Conjunction:
		return QualityNeutral
	default:
		return QualityMinor
	}
}

// Aspect is an immutable angular relationship between two distinct bodies.
type Aspect struct {
	Planet1    string     `json:"planet1" bson:"planet1"`
	Planet2    string     `json:"planet2" bson:"planet2"`
	AspectType AspectType `json:"aspect_type" bson:"aspect_type"`
	Angle      float64    `json:"angle" bson:"angle"` // measured, [0,180]
	Orb        float64    `json:"orb" bson:"orb"`     // deviation from exact, >= 0
	IsApplying bool       `json:"is_applying" bson:"is_applying"`

	Quality  AspectQuality `json:"quality,omitempty" bson:"quality,omitempty"`
	Strength *float64      `json:"strength,omitempty" bson:"strength,omitempty"` // [0,1]
}

// NewAspect validates and builds an Aspect. Quality is derived from the type
// when not supplied.
func NewAspect(a Aspect) (Aspect, error) {
	if a.Planet1 == a.Planet2 {
		return Aspect{}, NewValidationError("aspect must be between two different bodies", "planet2")
	}
	if !a.AspectType.IsValid() {
		return Aspect{}, NewValidationError("unknown aspect type: "+string(a.AspectType), "aspect_type")
	}
	if a.Angle < 0 || a.Angle > 180 {
		return Aspect{}, NewValidationError("angle must be between 0 and 180", "angle")
	}
	if a.Orb < 0 {
		return Aspect{}, NewValidationError("orb cannot be negative", "orb")
	}
	if a.Strength != nil && (*a.Strength < 0 || *a.Strength > 1) {
		return Aspect{}, NewValidationError("strength must be between 0 and 1", "strength")
	}
	if a.Quality == "" {
		a.Quality = QualityOf(a.AspectType)
	}
	return a, nil
}

func (a Aspect) IsHard() bool { return QualityOf(a.AspectType) == QualityHard }

func (a Aspect) IsSoft() bool { return QualityOf(a.AspectType) == QualitySoft }

func (a Aspect) IsMajor() bool {
	switch a.AspectType {
	case Conjunction, Opposition, Trine, Square, Sextile:
		return true
	}
	return false
}

// InvolvesPlanet reports whether name is one of the two participants.
func (a Aspect) InvolvesPlanet(name string) bool {
	return a.Planet1 == name || a.Planet2 == name
}
