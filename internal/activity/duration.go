package activity

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDurationHours converts an "H:MM:SS" duration into fractional hours
// (H may be multi-digit). An empty duration returns (0, false, nil): the
// record's duration is unknown and must not be folded into any total that
// claims completeness. A malformed duration returns an error value; it never
// panics and never aborts a batch.
func ParseDurationHours(s string) (hours float64, known bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false, fmt.Errorf("malformed duration %q: want H:MM:SS", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, false, fmt.Errorf("malformed duration %q: bad hours", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false, fmt.Errorf("malformed duration %q: bad minutes", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0, false, fmt.Errorf("malformed duration %q: bad seconds", s)
	}

	return float64(h) + float64(m)/60 + float64(sec)/3600, true, nil
}

// DurationHours is the ValueFunc-shaped accessor for a record's duration:
// ok=false for both unknown (absent) and malformed durations.
func DurationHours(rec Record) (float64, bool) {
	hours, known, err := ParseDurationHours(rec.Duration)
	if err != nil || !known {
		return 0, false
	}
	return hours, true
}
