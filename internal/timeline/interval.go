package timeline

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	intervalSeparator = ".."
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the span covered by the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s..%s", iv.Start.Format(dateLayout), iv.End.Format(dateLayout))
}

// ParseInterval parses a YYYY-MM-DD..YYYY-MM-DD token into an interval running
// from midnight of the first day up to midnight of the second. The second day
// is exclusive of its own hours.
func ParseInterval(token string) (Interval, error) {
	from, to, ok := strings.Cut(token, intervalSeparator)
	if !ok {
		return Interval{}, fmt.Errorf("invalid interval %q: expected YYYY-MM-DD..YYYY-MM-DD", token)
	}

	start, err := time.ParseInLocation(dateLayout, from, time.Local)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid interval %q: %w", token, err)
	}
	end, err := time.ParseInLocation(dateLayout, to, time.Local)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid interval %q: %w", token, err)
	}
	if end.Before(start) {
		return Interval{}, fmt.Errorf("invalid interval %q: end precedes start", token)
	}

	return Interval{Start: start, End: end}, nil
}

// ParseIntervals parses every token or fails on the first malformed one. A
// partial list is never returned.
func ParseIntervals(tokens []string) ([]Interval, error) {
	intervals := make([]Interval, 0, len(tokens))
	for _, token := range tokens {
		iv, err := ParseInterval(token)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// Match finds the first requested window containing clockStart and clips the
// recorded range to the window's right edge. Only the start endpoint decides
// matching: an entry whose start lies outside every window is unmatched even
// when its end falls inside one. That boundary rule is part of the contract.
func Match(windows []Interval, clockStart, clockEnd time.Time) (Interval, bool) {
	for _, window := range windows {
		if !window.Contains(clockStart) {
			continue
		}
		end := clockEnd
		if window.End.Before(end) {
			end = window.End
		}
		return Interval{Start: clockStart, End: end}, true
	}
	return Interval{}, false
}
