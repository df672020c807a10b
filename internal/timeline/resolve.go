package timeline

import (
	"log/slog"
	"regexp"

	"github.com/faizmokh/jejak/internal/org"
)

// Resolver maps an outline node to a tracker issue key. Strategies run in a
// fixed order and the first non-empty answer wins: an explicit jira-task
// property beats a project key in the heading, which beats a configured tag,
// which beats whatever the nearest ancestor resolves to.
type Resolver struct {
	patterns   []*regexp.Regexp
	tags       map[string]string
	strategies []strategy
	logger     *slog.Logger
}

type strategy struct {
	name string
	fn   func(*org.Node) string
}

// NewResolver builds a resolver over the configured project-key patterns and
// tag mapping. patterns must keep the configured key order.
func NewResolver(patterns []*regexp.Regexp, tags map[string]string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{patterns: patterns, tags: tags, logger: logger}
	r.strategies = []strategy{
		{name: "property", fn: r.fromProperty},
		{name: "heading", fn: r.fromHeading},
		{name: "tag", fn: r.fromTag},
		{name: "parent", fn: r.fromParent},
	}
	return r
}

// Resolve returns the issue key for node, or "" when no strategy matches.
// Parent links in a parsed outline are acyclic, so the parent strategy's
// recursion always terminates at the tree root.
func (r *Resolver) Resolve(node *org.Node) string {
	if node == nil {
		return ""
	}
	for _, s := range r.strategies {
		if issue := s.fn(node); issue != "" {
			r.logger.Debug("resolved issue", "heading", node.Heading, "strategy", s.name, "issue", issue)
			return issue
		}
	}
	return ""
}

func (r *Resolver) fromProperty(node *org.Node) string {
	return node.Property(org.PropertyTask)
}

func (r *Resolver) fromHeading(node *org.Node) string {
	for _, pattern := range r.patterns {
		if m := pattern.FindStringSubmatch(node.Heading); m != nil {
			return m[1]
		}
	}
	return ""
}

func (r *Resolver) fromTag(node *org.Node) string {
	for _, tag := range node.Tags {
		if issue, ok := r.tags[tag]; ok {
			return issue
		}
	}
	return ""
}

func (r *Resolver) fromParent(node *org.Node) string {
	return r.Resolve(node.Parent)
}
