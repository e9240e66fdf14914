package service

import "time"

// NextOccurrence returns midnight of the first day after from whose weekday
// is flagged in mask. mask holds seven '0'/'1' flags, index 0 = Sunday.
// Returns nil for malformed masks or masks with no flagged day.
func NextOccurrence(mask string, from time.Time) *time.Time {
	if len(mask) != 7 {
		return nil
	}
	for i := 1; i <= 7; i++ {
		d := from.AddDate(0, 0, i)
		if mask[int(d.Weekday())] == '1' {
			midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
			return &midnight
		}
	}
	return nil
}

// recursOn reports whether mask flags the weekday of the given day.
func recursOn(mask string, day time.Time) bool {
	if len(mask) != 7 {
		return false
	}
	return mask[int(day.Weekday())] == '1'
}
