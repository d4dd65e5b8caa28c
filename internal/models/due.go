package models

import (
	"fmt"
	"time"
)

// DueDateLayout is how due dates are shown and edited
const DueDateLayout = "2006-01-02 15:04"

var dueDateLayouts = []string{
	time.RFC3339,
	time.DateTime,
	DueDateLayout,
	time.DateOnly,
}

// ParseDueDate accepts RFC 3339, "YYYY-MM-DD HH:MM[:SS]" or "YYYY-MM-DD" in local time
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if d, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}
