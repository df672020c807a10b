package org

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	headlinePattern = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	tagsPattern     = regexp.MustCompile(`^(.*?)\s+:([A-Za-z0-9_@#%:]+):\s*$`)
	propertyPattern = regexp.MustCompile(`^:([^:\s]+):\s*(.*)$`)
	clockPattern    = regexp.MustCompile(`^CLOCK:\s*\[([^\]]+)\]--\[([^\]]+)\]`)
)

// Clock timestamps carry no zone, so they are interpreted in the process-local
// zone, same as the requested interval arguments.
var clockLayouts = []string{
	"2006-01-02 Mon 15:04",
	"2006-01-02 15:04",
}

type drawer uint8

const (
	drawerNone drawer = iota
	drawerProperties
	drawerLogbook
	drawerOther
)

// Parse reads an org document and returns its synthetic root node. Headline
// depth is the star count; the tree is built by depth with children kept in
// document order. Open clocks and clock lines that fail to parse are skipped.
func Parse(r io.Reader) (*Node, error) {
	root := &Node{}
	stack := []*Node{root}
	depths := []int{0}
	current := root
	open := drawerNone

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		// Headlines start at column 0; an indented star is a list bullet.
		if m := headlinePattern.FindStringSubmatch(raw); m != nil {
			depth := len(m[1])
			for depths[len(depths)-1] >= depth {
				stack = stack[:len(stack)-1]
				depths = depths[:len(depths)-1]
			}
			parent := stack[len(stack)-1]
			node := &Node{Parent: parent}
			node.Heading, node.Tags = splitHeading(m[2])
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
			depths = append(depths, depth)
			current = node
			// A headline closes any drawer left without :END:.
			open = drawerNone
			continue
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case open != drawerNone && strings.EqualFold(line, ":END:"):
			open = drawerNone
		case strings.EqualFold(line, ":PROPERTIES:"):
			open = drawerProperties
		case strings.EqualFold(line, ":LOGBOOK:"):
			open = drawerLogbook
		case open == drawerProperties:
			if m := propertyPattern.FindStringSubmatch(line); m != nil && current != root {
				if current.Properties == nil {
					current.Properties = make(map[string]string)
				}
				current.Properties[strings.ToLower(m[1])] = strings.TrimSpace(m[2])
			}
		case strings.HasPrefix(line, "CLOCK:"):
			if entry, ok := parseClockLine(line); ok && current != root {
				current.Clock = append(current.Clock, entry)
			}
		case open == drawerNone && strings.HasPrefix(line, ":"):
			// Drawer we do not understand; swallow it up to :END:.
			open = drawerOther
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadFile parses the org document at path.
func LoadFile(path string) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open org file: %w", err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}

func splitHeading(rest string) (string, []string) {
	rest = strings.TrimSpace(rest)
	m := tagsPattern.FindStringSubmatch(rest)
	if m == nil {
		return rest, nil
	}

	var tags []string
	for _, tag := range strings.Split(m[2], ":") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return strings.TrimSpace(m[1]), tags
}

func parseClockLine(line string) (ClockEntry, bool) {
	m := clockPattern.FindStringSubmatch(line)
	if m == nil {
		return ClockEntry{}, false
	}

	start, ok := parseClockStamp(m[1])
	if !ok {
		return ClockEntry{}, false
	}
	end, ok := parseClockStamp(m[2])
	if !ok || end.Before(start) {
		return ClockEntry{}, false
	}

	return ClockEntry{Start: start, End: end, Duration: end.Sub(start)}, true
}

func parseClockStamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
