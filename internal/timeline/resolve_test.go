package timeline

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/faizmokh/jejak/internal/org"
)

func projectPatterns(keys ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keys))
	for _, key := range keys {
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(`\s*(%s-\d+)\s*`, key)))
	}
	return patterns
}

func TestResolvePrecedence(t *testing.T) {
	resolver := NewResolver(projectPatterns("PROJ"), map[string]string{"ops": "OPS-9"}, nil)

	node := &org.Node{
		Heading:    "PROJ-42 review",
		Tags:       []string{"ops"},
		Properties: map[string]string{"jira-task": "PROJ-1"},
	}

	// Property beats heading beats tag.
	if got := resolver.Resolve(node); got != "PROJ-1" {
		t.Fatalf("Resolve = %q, want property value PROJ-1", got)
	}

	node.Properties = nil
	if got := resolver.Resolve(node); got != "PROJ-42" {
		t.Fatalf("Resolve = %q, want heading match PROJ-42", got)
	}

	node.Heading = "review"
	if got := resolver.Resolve(node); got != "OPS-9" {
		t.Fatalf("Resolve = %q, want tag mapping OPS-9", got)
	}
}

func TestResolvePatternOrderBreaksTies(t *testing.T) {
	resolver := NewResolver(projectPatterns("OPS", "PROJ"), nil, nil)

	node := &org.Node{Heading: "PROJ-7 and OPS-3 cleanup"}
	if got := resolver.Resolve(node); got != "OPS-3" {
		t.Fatalf("Resolve = %q, want OPS-3 (first configured key wins)", got)
	}
}

func TestResolveTagOrderBreaksTies(t *testing.T) {
	resolver := NewResolver(nil, map[string]string{"a": "A-1", "b": "B-1"}, nil)

	node := &org.Node{Heading: "work", Tags: []string{"b", "a"}}
	if got := resolver.Resolve(node); got != "B-1" {
		t.Fatalf("Resolve = %q, want B-1 (node tag order wins)", got)
	}
}

func TestResolveInheritsFromAncestors(t *testing.T) {
	resolver := NewResolver(projectPatterns("PROJ"), nil, nil)

	root := &org.Node{Properties: map[string]string{"jira-task": "PROJ-100"}}
	var node *org.Node = root
	for i := 0; i < 50; i++ {
		child := &org.Node{Heading: fmt.Sprintf("level %d", i), Parent: node}
		node.Children = append(node.Children, child)
		node = child
	}

	if got := resolver.Resolve(node); got != "PROJ-100" {
		t.Fatalf("Resolve = %q, want root's PROJ-100 via parent chain", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	resolver := NewResolver(projectPatterns("PROJ"), map[string]string{"ops": "OPS-9"}, nil)

	node := &org.Node{Heading: "untracked chores", Tags: []string{"misc"}}
	if got := resolver.Resolve(node); got != NoIssue {
		t.Fatalf("Resolve = %q, want no match", got)
	}
}
