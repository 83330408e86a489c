package roadmap

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// truncateDay keeps the calendar date t has in its own location and returns
// it as midnight UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
