package timezone

import (
	"strings"
	"time"
)

// WAT is West Africa Time (UTC+1). Search dates without an offset are read
// in this zone.
var WAT *time.Location

func init() {
	WAT = time.FixedZone("WAT", 1*60*60)
}

func GetLocationByName(name string) *time.Location {
	switch strings.ToUpper(name) {
	case "", "WAT", "UTC+1", "AFRICA/LAGOS":
		return WAT
	default:
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		return WAT
	}
}

// ParseISO parses the date-time shapes the booking API exchanges. Values
// without an offset are taken as WAT.
func ParseISO(timeStr string) (time.Time, error) {
	return ParseTimeWithOffset(timeStr, "WAT")
}

func ParseTimeWithOffset(timeStr string, tzName string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := GetLocationByName(tzName)
	simpleFormats := []string{
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, format := range simpleFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// MinutesOfDay reads "15:04" or "3:04 PM" style clock strings.
func MinutesOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"} {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
		lastErr = err
	}
	return 0, lastErr
}
