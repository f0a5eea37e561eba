package domain

import "time"

// BirthData is the immutable birth instant and location a chart is calculated
// from. Construct it with NewBirthData; a zero value is not valid.
type BirthData struct {
	Date     time.Time `json:"date" bson:"date"`
	City     string    `json:"city" bson:"city"`
	Country  string    `json:"country" bson:"country"` // ISO code, e.g. "AR"
	Timezone string    `json:"timezone" bson:"timezone"`

	// Optional manual coordinates overriding city lookup. Each is validated
	// independently; the original accepts one without the other.
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// NewBirthData validates and builds a BirthData value.
func NewBirthData(date time.Time, city, country, timezone string, lat, lon *float64) (BirthData, error) {
	if date.IsZero() {
		return BirthData{}, NewValidationError("birth date is required", "date")
	}
	if city == "" {
		return BirthData{}, NewValidationError("city is required", "city")
	}
	if country == "" {
		return BirthData{}, NewValidationError("country is required", "country")
	}
	if timezone == "" {
		return BirthData{}, NewValidationError("timezone is required", "timezone")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return BirthData{}, NewValidationError("latitude must be between -90 and 90", "latitude")
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return BirthData{}, NewValidationError("longitude must be between -180 and 180", "longitude")
	}
	return BirthData{
		Date:      date,
		City:      city,
		Country:   country,
		Timezone:  timezone,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// HasCoordinates reports whether both manual coordinates are present.
func (b BirthData) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}
