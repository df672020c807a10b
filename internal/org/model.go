package org

import (
	"strings"
	"time"
)

// PropertySkip marks a node whose clocked time must never be sent to the tracker.
const PropertySkip = "jira-skip"

// PropertyTask pins a node to an explicit issue key, overriding every other
// resolution strategy.
const PropertyTask = "jira-task"

// ClockEntry is one recorded work span logged against a node. Duration is
// always End minus Start; the annotation org-mode writes after "=>" is ignored.
type ClockEntry struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Node is one headline of an outline document. The root of a parsed file is a
// synthetic node with no heading; its children are the top-level headlines.
// Parent is a lookup-only back-reference, children own the subtree.
type Node struct {
	Heading    string
	Tags       []string
	Properties map[string]string
	Parent     *Node
	Children   []*Node
	Clock      []ClockEntry
}

// Property returns the value stored under name, matching case-insensitively.
func (n *Node) Property(name string) string {
	if n == nil || n.Properties == nil {
		return ""
	}
	return n.Properties[strings.ToLower(name)]
}

// Skipped reports whether the node carries the skip property.
func (n *Node) Skipped() bool {
	return n.Property(PropertySkip) != ""
}

// Walk visits every descendant of n in document order. The receiver itself is
// not visited, so calling Walk on a file root traverses exactly the headlines.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		visit(child)
		child.Walk(visit)
	}
}
