package timeutil

import (
	"time"
)

// VN is the building's local time zone (UTC+7)
var VN *time.Location

func init() {
	var err error
	VN, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// Fallback: fixed zone if tzdata is not installed
		VN = time.FixedZone("ICT", 7*60*60)
	}
}

// Now returns the current time in the building's time zone
func Now() time.Time {
	return time.Now().In(VN)
}

// StartOfMonth returns 00:00 on the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	local := t.In(VN)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, VN)
}

// StartOfYear returns 00:00 on January 1st of t's year
func StartOfYear(t time.Time) time.Time {
	local := t.In(VN)
	return time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, VN)
}

// StartOfDay returns the start of day (00:00:00) for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(VN)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, VN)
}

// ParseDate parses a YYYY-MM-DD date (an ISO timestamp is also accepted)
func ParseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, value, VN); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02/01/2006"
)
