package timeutil

import (
	"time"
)

// ZoneName is the canonical clinic time zone used for cash-drawer windows.
// Payment timestamps land in the database in UTC and must be shifted here
// before any calendar-day bucketing.
const ZoneName = "America/Mexico_City"

// Clinic is the clinic's local time zone (UTC-6)
var Clinic *time.Location

func init() {
	var err error
	Clinic, err = time.LoadLocation(ZoneName)
	if err != nil {
		// Fallback: fixed zone if the tzdata is not available
		Clinic = time.FixedZone("CST", -6*60*60) // UTC-6
	}
}

// Now returns the current time in the clinic zone
func Now() time.Time {
	return time.Now().In(Clinic)
}

// ToClinic converts any time to the clinic zone
func ToClinic(t time.Time) time.Time {
	return t.In(Clinic)
}

// ParseInClinic parses a time string as clinic-local time
func ParseInClinic(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Clinic)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatClinic formats a time in the clinic zone using the given layout
func FormatClinic(t time.Time, layout string) string {
	return t.In(Clinic).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in the clinic zone for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(Clinic)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Clinic)
}

// EndOfDay returns the end of day (23:59:59) in the clinic zone for the given time
func EndOfDay(t time.Time) time.Time {
	local := t.In(Clinic)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Clinic)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
