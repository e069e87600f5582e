package request

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar day format used by every date field (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate reads a calendar day at UTC midnight. An empty string yields the
// zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
