package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Issue is the slice of a tracker issue the engine needs.
type Issue struct {
	Key     string
	Summary string
}

// Worklog is one remote record of time spent on an issue.
type Worklog struct {
	Started time.Time
	Seconds int
	Comment string
}

// Tracker is the remote system the gate reconciles against.
type Tracker interface {
	Issue(ctx context.Context, key string) (Issue, error)
	Worklogs(ctx context.Context, key string) ([]Worklog, error)
	AddWorklog(ctx context.Context, key string, started time.Time, seconds int, comment string) error
}

// Outcome reports what the gate decided for one matched interval.
type Outcome uint8

// The zero value is not a valid outcome.
const (
	// OutcomeSent means a work-log was created remotely.
	OutcomeSent Outcome = iota + 1
	// OutcomeAlreadySubmitted means a remote work-log with the same start
	// timestamp already exists.
	OutcomeAlreadySubmitted
	// OutcomeZeroLength means the interval has no duration and is never written.
	OutcomeZeroLength
	// OutcomeWriteDisabled means writing was turned off for this run.
	OutcomeWriteDisabled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeAlreadySubmitted:
		return "already submitted"
	case OutcomeZeroLength:
		return "skipped (zero length)"
	case OutcomeWriteDisabled:
		return "write disabled"
	default:
		return "unknown"
	}
}

// Gate decides, per matched interval, whether a remote write happens. With
// queryRemote off the duplicate check is skipped entirely and the caller
// accepts the risk of duplicate writes. Idempotence is re-derived from the
// remote system on every run; there is no local ledger.
type Gate struct {
	tracker      Tracker
	queryRemote  bool
	performWrite bool
	logger       *slog.Logger
}

// NewGate wires a gate over the tracker. tracker may be nil only when both
// flags are off.
func NewGate(tracker Tracker, queryRemote, performWrite bool, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{tracker: tracker, queryRemote: queryRemote, performWrite: performWrite, logger: logger}
}

// Submit applies the submission decision for one issue and clipped interval.
// Start timestamps are compared in UTC. Remote failures are not recovered
// here; they propagate and abort the run.
func (g *Gate) Submit(ctx context.Context, issueKey string, interval Interval, description string) (Outcome, error) {
	if g.queryRemote {
		if _, err := g.tracker.Issue(ctx, issueKey); err != nil {
			return 0, fmt.Errorf("fetch issue %s: %w", issueKey, err)
		}
		worklogs, err := g.tracker.Worklogs(ctx, issueKey)
		if err != nil {
			return 0, fmt.Errorf("list worklogs for %s: %w", issueKey, err)
		}
		for _, wl := range worklogs {
			if wl.Started.UTC().Equal(interval.Start.UTC()) {
				g.logger.Debug("worklog already submitted", "issue", issueKey, "started", interval.Start)
				return OutcomeAlreadySubmitted, nil
			}
		}
	}

	if interval.Duration() == 0 {
		return OutcomeZeroLength, nil
	}
	if !g.performWrite {
		return OutcomeWriteDisabled, nil
	}

	seconds := int(interval.Duration() / time.Second)
	if err := g.tracker.AddWorklog(ctx, issueKey, interval.Start, seconds, description); err != nil {
		return 0, fmt.Errorf("create worklog for %s: %w", issueKey, err)
	}
	g.logger.Debug("worklog created", "issue", issueKey, "started", interval.Start, "seconds", seconds)
	return OutcomeSent, nil
}
