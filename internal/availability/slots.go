// Package availability turns a daily booking window into bookable time-of-day slots.
package availability

import (
	"fmt"
	"strings"
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds must be zero.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hours, err := parseField(parts[0], 23)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minutes, err := parseField(parts[1], 59)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if len(parts) == 3 {
		seconds, err := parseField(parts[2], 59)
		if err != nil || seconds != 0 {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
	}

	return Clock(hours*60 + minutes), nil
}

func parseField(s string, max int) (int, error) {
	if len(s) != 2 || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, fmt.Errorf("want two digits, got %q", s)
	}
	v := int(s[0]-'0')*10 + int(s[1]-'0')
	if v > max {
		return 0, fmt.Errorf("%d out of range", v)
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Slots returns every slot start in [start, end) stepping by durationMinutes.
// A non-positive duration or an empty window yields no slots.
func Slots(start, end Clock, durationMinutes int) []Clock {
	if durationMinutes <= 0 || start >= end {
		return nil
	}

	// compare the step with what is left of the window before adding; current never passes end
	slots := make([]Clock, 0, (int(end-start)-1)/durationMinutes+1)
	for current := start; ; current += Clock(durationMinutes) {
		slots = append(slots, current)
		if int(end-current) <= durationMinutes {
			break
		}
	}
	return slots
}

// GenerateSlots is Slots over "HH:MM" strings.
func GenerateSlots(start, end string, durationMinutes int) ([]string, error) {
	startClock, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	endClock, err := ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	clocks := Slots(startClock, endClock, durationMinutes)
	slots := make([]string, 0, len(clocks))
	for _, c := range clocks {
		slots = append(slots, c.String())
	}
	return slots, nil
}

// Subtract returns the elements of all that are not in taken, keeping the order of all.
func Subtract(all, taken []string) []string {
	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[t] = struct{}{}
	}

	free := make([]string, 0, len(all))
	for _, slot := range all {
		if _, ok := busy[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}
