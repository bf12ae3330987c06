// Package duration parses the retention periods given to
// "globfs snapshot prune --older-than".
//
// Days, weeks and months are what people think in for retention, and Go's
// time.ParseDuration stops at hours, so both forms are accepted.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var unitPattern = regexp.MustCompile(`^(\d+)([dwm])$`)

// Parse parses "7d" (days), "4w" (weeks), "3m" (months of 30 days), or any
// string time.ParseDuration accepts, such as "36h". Negative and zero
// durations are rejected.
func Parse(s string) (time.Duration, error) {
	if m := unitPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		var d time.Duration
		switch m[2] {
		case "d":
			d = time.Duration(n) * day
		case "w":
			d = time.Duration(n) * 7 * day
		case "m":
			d = time.Duration(n) * 30 * day
		}
		if d <= 0 {
			return 0, fmt.Errorf("invalid duration %q: must be positive", s)
		}
		return d, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use 7d, 4w, 3m or 36h)", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", s)
	}
	return d, nil
}
