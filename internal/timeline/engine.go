package timeline

import (
	"context"
	"log/slog"

	"github.com/faizmokh/jejak/internal/org"
)

// Engine drives one reconciliation run: it walks the outline forest, matches
// clocked entries against the requested windows, resolves issues, and hands
// sendable intervals to the gate. Execution is strictly sequential; the first
// unrecovered error aborts the run.
type Engine struct {
	resolver *Resolver
	gate     *Gate
	logger   *slog.Logger
}

// NewEngine wires the driver from its collaborators.
func NewEngine(resolver *Resolver, gate *Gate, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{resolver: resolver, gate: gate, logger: logger}
}

// Run reconciles every node of every root against the requested windows.
// Matched entries contribute their full recorded duration to the counters;
// only the clipped interval is submitted.
func (e *Engine) Run(ctx context.Context, roots []*org.Node, windows []Interval) (*Summary, error) {
	summary := NewSummary()
	for _, root := range roots {
		var nodes []*org.Node
		root.Walk(func(n *org.Node) {
			nodes = append(nodes, n)
		})
		for _, node := range nodes {
			if err := e.reconcileNode(ctx, node, windows, summary); err != nil {
				return nil, err
			}
		}
	}
	return summary, nil
}

func (e *Engine) reconcileNode(ctx context.Context, node *org.Node, windows []Interval, summary *Summary) error {
	skip := node.Skipped()
	if skip {
		e.logger.Debug("node marked skip", "heading", node.Heading)
	}
	if len(node.Clock) == 0 {
		return nil
	}

	for _, entry := range node.Clock {
		matched, ok := Match(windows, entry.Start, entry.End)
		if !ok {
			continue
		}

		day := summary.day(entry.Start)
		day.Cumulative += entry.Duration
		summary.Cumulative += entry.Duration
		if skip {
			day.Skipped += entry.Duration
			summary.Skipped += entry.Duration
		} else {
			day.Invoiced += entry.Duration
			summary.Invoiced += entry.Duration
		}

		// Resolution runs even for skipped nodes so per-task totals
		// include skipped work.
		issue := e.resolver.Resolve(node)
		summary.Tasks[issue] += entry.Duration

		if issue == NoIssue || skip {
			continue
		}

		outcome, err := e.gate.Submit(ctx, issue, matched, node.Heading)
		if err != nil {
			return err
		}
		e.logger.Debug("submission decided", "issue", issue, "interval", matched, "outcome", outcome)
		if outcome == OutcomeSent {
			day.Added += entry.Duration
			summary.Added += entry.Duration
		}
	}
	return nil
}
