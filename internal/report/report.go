// Package report renders the per-day and per-task summaries of a run.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/faizmokh/jejak/internal/timeline"
)

const noIssueLabel = "(no issue)"

var titleStyle = lipgloss.NewStyle().Bold(true)

// Render writes the per-day table, the per-task table, and the run totals.
// Formatting here is presentation only; all semantics live in the summary.
func Render(w io.Writer, summary *timeline.Summary) {
	fmt.Fprintln(w, titleStyle.Render("Per day"))
	fmt.Fprintln(w, perDayTable(summary).Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Per task"))
	fmt.Fprintln(w, perTaskTable(summary).Render())
}

func perDayTable(summary *timeline.Summary) *table.Table {
	t := newTable("Date", "Total", "Invoiced", "Skipped", "Added")

	days := make([]string, 0, len(summary.Days))
	for day := range summary.Days {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		totals := summary.Days[day]
		t.Row(day,
			formatDuration(totals.Cumulative),
			formatDuration(totals.Invoiced),
			formatDuration(totals.Skipped),
			formatDuration(totals.Added),
		)
	}
	t.Row("Total",
		formatDuration(summary.Cumulative),
		formatDuration(summary.Invoiced),
		formatDuration(summary.Skipped),
		formatDuration(summary.Added),
	)
	return t
}

func perTaskTable(summary *timeline.Summary) *table.Table {
	t := newTable("Task", "Time")

	tasks := make([]string, 0, len(summary.Tasks))
	hasNoIssue := false
	for task := range summary.Tasks {
		if task == timeline.NoIssue {
			hasNoIssue = true
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)

	for _, task := range tasks {
		t.Row(task, formatDuration(summary.Tasks[task]))
	}
	if hasNoIssue {
		t.Row(noIssueLabel, formatDuration(summary.Tasks[timeline.NoIssue]))
	}
	return t
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
}

// formatDuration renders a span as H:MM, e.g. 3:00 or 0:45.
func formatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
