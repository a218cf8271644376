package model

import (
	"fmt"
	"strings"
)

// Activity is a named subject with its lifetime elapsed seconds.
type Activity struct {
	Name         string
	TotalSeconds int64
}

// NormalizeName trims surrounding whitespace and rejects empty names.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("activity name is empty: %w", ErrInvalidInput)
	}
	return trimmed, nil
}

// ValidateSeconds rejects negative totals.
func ValidateSeconds(seconds int64) error {
	if seconds < 0 {
		return fmt.Errorf("total %d is negative: %w", seconds, ErrInvalidInput)
	}
	return nil
}
