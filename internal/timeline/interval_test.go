package timeline

import (
	"testing"
	"time"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("2024-01-01..2024-01-03")
	if err != nil {
		t.Fatalf("ParseInterval: %v", err)
	}
	if !iv.Start.Equal(day(t, "2024-01-01")) {
		t.Fatalf("Start = %s, want 2024-01-01 midnight", iv.Start)
	}
	if !iv.End.Equal(day(t, "2024-01-03")) {
		t.Fatalf("End = %s, want 2024-01-03 midnight (end day exclusive)", iv.End)
	}
}

func TestParseIntervalRejectsMalformedTokens(t *testing.T) {
	for _, token := range []string{
		"2024-01-01",
		"2024-01-01..",
		"..2024-01-03",
		"2024-1-1..2024-01-03",
		"2024-01-05..2024-01-03",
		"yesterday..today",
	} {
		if _, err := ParseInterval(token); err == nil {
			t.Fatalf("ParseInterval(%q) should fail", token)
		}
	}
}

func TestParseIntervalsFailsFast(t *testing.T) {
	intervals, err := ParseIntervals([]string{"2024-01-01..2024-01-03", "bogus"})
	if err == nil {
		t.Fatal("ParseIntervals should fail on any malformed token")
	}
	if intervals != nil {
		t.Fatal("no partial interval list may be returned")
	}
}

func TestMatchClipsToWindowEnd(t *testing.T) {
	windows := []Interval{{Start: day(t, "2024-01-01"), End: day(t, "2024-01-03")}}

	matched, ok := Match(windows, at(t, "2024-01-02 22:00"), at(t, "2024-01-03 02:00"))
	if !ok {
		t.Fatal("entry starting inside the window must match")
	}
	if !matched.Start.Equal(at(t, "2024-01-02 22:00")) {
		t.Fatalf("matched.Start = %s, want clock start", matched.Start)
	}
	if !matched.End.Equal(day(t, "2024-01-03")) {
		t.Fatalf("matched.End = %s, want window end", matched.End)
	}
}

func TestMatchInsideWindowIsUnchanged(t *testing.T) {
	windows := []Interval{{Start: day(t, "2024-01-01"), End: day(t, "2024-01-03")}}

	matched, ok := Match(windows, at(t, "2024-01-02 10:00"), at(t, "2024-01-02 13:00"))
	if !ok {
		t.Fatal("entry fully inside the window must match")
	}
	if matched.Duration() != 3*time.Hour {
		t.Fatalf("matched duration = %s, want 3h", matched.Duration())
	}
}

func TestMatchOnlyStartDecides(t *testing.T) {
	windows := []Interval{{Start: day(t, "2024-01-02"), End: day(t, "2024-01-03")}}

	// End falls inside the window but start does not: no match, the entry
	// is dropped entirely rather than partially counted.
	if _, ok := Match(windows, at(t, "2024-01-01 23:00"), at(t, "2024-01-02 01:00")); ok {
		t.Fatal("entry starting before the window must not match")
	}

	// Start exactly at the window's exclusive right edge does not match.
	if _, ok := Match(windows, day(t, "2024-01-03"), at(t, "2024-01-03 01:00")); ok {
		t.Fatal("entry starting at the exclusive end must not match")
	}

	// Start exactly at the window's inclusive left edge matches.
	if _, ok := Match(windows, day(t, "2024-01-02"), at(t, "2024-01-02 01:00")); !ok {
		t.Fatal("entry starting at the window start must match")
	}
}

func TestMatchFirstWindowWins(t *testing.T) {
	windows := []Interval{
		{Start: day(t, "2024-01-01"), End: day(t, "2024-01-05")},
		{Start: day(t, "2024-01-02"), End: day(t, "2024-01-03")},
	}

	matched, ok := Match(windows, at(t, "2024-01-02 10:00"), at(t, "2024-01-06 10:00"))
	if !ok {
		t.Fatal("expected a match")
	}
	if !matched.End.Equal(day(t, "2024-01-05")) {
		t.Fatalf("matched.End = %s, want first window's end", matched.End)
	}
}
