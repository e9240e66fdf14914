package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// Instant is an optional point in time that travels over the wire as epoch
// milliseconds. Incoming payloads may encode dates either as a number (or a
// digit-only string), interpreted as epoch milliseconds, or as a calendar
// string; outgoing values are always epoch-millisecond numbers or null.
type Instant struct {
	Time  time.Time
	Valid bool
}

// calendarLayouts are tried in order for non-numeric strings.
var calendarLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FromTime wraps an optional time pointer.
func FromTime(t *time.Time) Instant {
	if t == nil {
		return Instant{}
	}
	return Instant{Time: *t, Valid: true}
}

// TimePtr returns the instant as an optional time pointer.
func (i Instant) TimePtr() *time.Time {
	if !i.Valid {
		return nil
	}
	t := i.Time
	return &t
}

// UnmarshalJSON accepts null, epoch-millisecond numbers, digit-only strings
// (also epoch milliseconds) and calendar strings. Unparseable values decode
// as absent rather than failing the whole payload.
func (i *Instant) UnmarshalJSON(data []byte) error {
	*i = Instant{}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil
		}
		if t, ok := Parse(s); ok {
			*i = Instant{Time: t, Valid: true}
		}
		return nil
	}
	// JSON numbers may carry a fraction; truncate to whole milliseconds.
	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*i = Instant{Time: time.UnixMilli(int64(ms)).UTC(), Valid: true}
	return nil
}

// MarshalJSON renders the instant as epoch milliseconds, or null when absent.
func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, i.Time.UnixMilli(), 10), nil
}

// Parse applies the wire heuristic to a bare string: digit-only strings are
// epoch milliseconds, anything else is tried as a calendar timestamp. The
// second result reports whether the input was parseable.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
