package timeline

import "time"

// NoIssue keys per-task time that resolved to no tracker issue.
const NoIssue = ""

// DayTotals holds the four counters tracked for one calendar day. Cumulative
// covers every matched entry; Invoiced and Skipped split it by the node's skip
// flag; Added covers only time actually written to the tracker this run.
type DayTotals struct {
	Cumulative time.Duration
	Invoiced   time.Duration
	Skipped    time.Duration
	Added      time.Duration
}

// Summary accumulates one run's totals. It is owned by the engine's
// sequential loop and read by the reporter afterwards.
type Summary struct {
	Days  map[string]*DayTotals
	Tasks map[string]time.Duration

	Cumulative time.Duration
	Invoiced   time.Duration
	Skipped    time.Duration
	Added      time.Duration
}

// NewSummary returns an empty accumulator.
func NewSummary() *Summary {
	return &Summary{
		Days:  make(map[string]*DayTotals),
		Tasks: make(map[string]time.Duration),
	}
}

func (s *Summary) day(t time.Time) *DayTotals {
	key := t.Format(dateLayout)
	totals, ok := s.Days[key]
	if !ok {
		totals = &DayTotals{}
		s.Days[key] = totals
	}
	return totals
}
