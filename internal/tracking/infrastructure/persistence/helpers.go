package persistence

import (
	"time"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDates(values []string) sharedDomain.DateSet {
	set := sharedDomain.NewDateSet()
	for _, v := range values {
		if d, err := sharedDomain.ParseDate(v); err == nil {
			set.Add(d)
		}
	}
	return set
}
