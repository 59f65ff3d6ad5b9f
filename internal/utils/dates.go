package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/models"
)

// ParseDate accepts either a bare calendar date (2024-01-31) or an RFC 3339
// timestamp and returns the civil date it names as UTC midnight. For
// timestamps the date is taken in the timestamp's own offset.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
	}
	return models.NormalizeDate(t), nil
}
