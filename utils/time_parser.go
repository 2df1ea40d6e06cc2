package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration reads a reminder interval. On top of time.ParseDuration it
// accepts a leading day count, alone ("1d") or followed by a regular
// duration ("1d12h").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	daysStr, rest, hasDays := strings.Cut(s, "d")
	if !hasDays {
		return time.ParseDuration(s)
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q in %q", daysStr, s)
	}
	if days <= 0 {
		return 0, fmt.Errorf("day count must be positive, got %d in %q", days, s)
	}

	total := time.Duration(days) * 24 * time.Hour
	if rest == "" {
		return total, nil
	}
	extra, err := time.ParseDuration(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid duration after day count in %q: %w", s, err)
	}
	if extra < 0 {
		return 0, fmt.Errorf("duration after day count must not be negative in %q", s)
	}
	return total + extra, nil
}
