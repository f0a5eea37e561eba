package domain

import (
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestNewBirthData(t *testing.T) {
	date := time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC)

	b, err := NewBirthData(date, "Buenos Aires", "AR", "America/Argentina/Buenos_Aires", f64(-34.6), f64(-58.4))
	if err != nil {
		t.Fatalf("valid birth data rejected: %v", err)
	}
	if !b.HasCoordinates() {
		t.Error("expected coordinates to be present")
	}
	if b.City != "Buenos Aires" || b.Country != "AR" {
		t.Errorf("unexpected location: %s %s", b.City, b.Country)
	}
}

func TestNewBirthData_Invalid(t *testing.T) {
	date := time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name      string
		date      time.Time
		city      string
		country   string
		timezone  string
		lat, lon  *float64
		wantField string
	}{
		{"zero date", time.Time{}, "Madrid", "ES", "Europe/Madrid", nil, nil, "date"},
		{"missing city", date, "", "ES", "Europe/Madrid", nil, nil, "city"},
		{"missing country", date, "Madrid", "", "Europe/Madrid", nil, nil, "country"},
		{"missing timezone", date, "Madrid", "ES", "", nil, nil, "timezone"},
		{"latitude out of range", date, "Madrid", "ES", "Europe/Madrid", f64(200), nil, "latitude"},
		{"longitude out of range", date, "Madrid", "ES", "Europe/Madrid", nil, f64(-181), "longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBirthData(tc.date, tc.city, tc.country, tc.timezone, tc.lat, tc.lon)
			if err == nil {
				t.Fatal("expected validation error")
			}
			de, ok := err.(*Error)
			if !ok || de.Code != CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if de.Field != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, de.Field)
			}
		})
	}
}

func TestNewBirthData_PartialCoordinates(t *testing.T) {
	date := time.Date(1985, 3, 21, 8, 0, 0, 0, time.UTC)

	b, err := NewBirthData(date, "Rome", "IT", "Europe/Rome", f64(41.9), nil)
	if err != nil {
		t.Fatalf("latitude without longitude should be accepted: %v", err)
	}
	if b.HasCoordinates() {
		t.Error("one coordinate alone should not count as having coordinates")
	}
}
