package domain

import "math"

// Signs is the fixed zodiac vocabulary, in longitude order starting at 0° Aries.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// IsValidSign reports whether name belongs to the zodiac vocabulary.
func IsValidSign(name string) bool {
	return SignIndex(name) >= 0
}

// SignIndex returns the position of name in the zodiac order, or -1 when the
// name is not a sign.
func SignIndex(name string) int {
	for i, s := range Signs {
		if s == name {
			return i
		}
	}
	return -1
}

// SignFromLongitude maps an absolute ecliptic longitude to its zodiac sign.
// Each sign spans exactly 30 degrees.
func SignFromLongitude(longitude float64) string {
	idx := int(math.Floor(longitude/30)) % 12
	if idx < 0 {
		idx += 12
	}
	return Signs[idx]
}

// DegreeInSign returns the position within the sign, in [0,30).
func DegreeInSign(longitude float64) float64 {
	d := math.Mod(longitude, 30)
	if d < 0 {
		d += 30
	}
	return d
}
