package domain

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date; anything else is a
// validation failure naming the offending field.
func ParseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Validationf("%s is invalid (use YYYY-MM-DD)", field)
	}
	return t, nil
}

// Today truncates to the calendar date in UTC, the granularity every stay
// comparison uses.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
