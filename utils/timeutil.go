package utils

import (
	"fmt"
	"time"
)

// Layouts accepted for offset-less due dates, tried in order.
var dueDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDueDate parses a due-date string into an instant in loc. Input with
// an explicit offset (RFC3339) keeps its instant and is converted into loc;
// offset-less input is assumed to already be local time in loc. All due-date
// zone math in the application goes through this function.
func NormalizeDueDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date format: %q", value)
}
