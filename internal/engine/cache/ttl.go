package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shard TTL bounds, in seconds.
const (
	DefaultTTLSeconds = 3600   // 1h
	MinTTLSeconds     = 60     // 1m
	MaxTTLSeconds     = 604800 // 7d

	day = 24 * time.Hour
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks seconds against the allowed range and returns it as a duration.
func ValidateTTL(seconds int) (time.Duration, error) {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// ParseTTL accepts plain seconds ("3600") or a Go duration ("90m", "1h30m")
// and returns the validated number of seconds.
func ParseTTL(s string) (int, error) {
	s = strings.TrimSpace(s)
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL %q: %w", s, durErr)
		}
		seconds = int(d / time.Second)
	}
	if _, err := ValidateTTL(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// FormatTTL renders seconds with its two largest units, e.g. "45s", "5m", "2h30m", "3d2h".
func FormatTTL(seconds int) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d < time.Minute:
		return strconv.Itoa(seconds) + "s"
	case d < time.Hour:
		return pair(int(d/time.Minute), "m", int(d%time.Minute/time.Second), "s")
	case d < day:
		return pair(int(d/time.Hour), "h", int(d%time.Hour/time.Minute), "m")
	default:
		return pair(int(d/day), "d", int(d%day/time.Hour), "h")
	}
}

func pair(major int, majorUnit string, minor int, minorUnit string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, majorUnit)
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}
