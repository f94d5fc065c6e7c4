package validate

import (
	"fmt"
	"strconv"
	"time"
)

// ParseInterval parses an interval string such as "30s", "5m", "2h" or "1d"
// into a duration. The value must be a positive integer followed by one of
// ms/s/m/h/d.
func ParseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty interval")
	}
	unit := time.Duration(0)
	num := s
	switch {
	case len(s) > 2 && s[len(s)-2:] == "ms":
		unit = time.Millisecond
		num = s[:len(s)-2]
	case s[len(s)-1] == 's':
		unit = time.Second
		num = s[:len(s)-1]
	case s[len(s)-1] == 'm':
		unit = time.Minute
		num = s[:len(s)-1]
	case s[len(s)-1] == 'h':
		unit = time.Hour
		num = s[:len(s)-1]
	case s[len(s)-1] == 'd':
		unit = 24 * time.Hour
		num = s[:len(s)-1]
	default:
		return 0, fmt.Errorf("unknown interval unit in %q", s)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("interval must be positive: %q", s)
	}
	return time.Duration(n) * unit, nil
}

// IsInterval reports whether s is a well-formed interval string.
func IsInterval(s string) bool {
	_, err := ParseInterval(s)
	return err == nil
}
