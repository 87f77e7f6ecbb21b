// Package gitignore parses and serializes the AI development section that
// git-aiadd embeds in a .gitignore file.
//
// A .gitignore may carry at most one AI section, delimited by the two
// sentinel lines StartMarker and EndMarker. Everything outside the section is
// kept verbatim as regular content.
package gitignore

import (
	"strings"
)

const (
	// StartMarker opens the AI section.
	StartMarker = "# --- AI Development Section ---"

	// EndMarker closes the AI section.
	EndMarker = "# --- End AI Development Section ---"

	// ReferenceLine is the ignore entry that keeps ai.gitignore itself out of git.
	ReferenceLine = "ai.gitignore"

	// FileName is the name of the regular ignore file.
	FileName = ".gitignore"

	// AIFileName is the name of the sibling file holding relocated AI patterns.
	AIFileName = "ai.gitignore"

	// LegacyModeMarker is the marker file older releases used to flag AI mode.
	LegacyModeMarker = ".ai_mode"
)

// State is a parsed .gitignore split into the AI section and everything else.
type State struct {
	// AIPatterns are the pattern lines inside the AI section, without blank
	// lines, comments or the reference line.
	AIPatterns []string

	// RegularContent holds the raw lines outside the AI section.
	RegularContent []string
}

// Lines splits content into lines. A terminating newline does not produce a
// trailing empty line and CRLF line endings are tolerated.
func Lines(content string) []string {
	if content == "" {
		return []string{}
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// sectionBounds returns the line indexes of the start and end markers of
// the first complete section: the first end marker preceded by a start
// marker, paired with the nearest start marker before it. Stray markers
// outside that pair are left to regular content.
func sectionBounds(lines []string) (start, end int, ok bool) {
	start = -1
	for i, line := range lines {
		switch line {
		case StartMarker:
			start = i
		case EndMarker:
			if start >= 0 {
				return start, i, true
			}
		}
	}
	return -1, -1, false
}

// HasSection reports whether content carries a complete AI section.
func HasSection(content string) bool {
	_, _, ok := sectionBounds(Lines(content))
	return ok
}

// Parse splits content into AI patterns and regular content.
//
// An unterminated section (a start marker with no end marker after it, or an
// end marker with no start marker before it) is not a section: every line is
// returned as regular content so nothing is lost. An earlier orphan start
// marker stays regular content together with the lines after it.
func Parse(content string) State {
	lines := Lines(content)
	start, end, ok := sectionBounds(lines)
	if !ok {
		return State{
			AIPatterns:     []string{},
			RegularContent: lines,
		}
	}

	patterns := []string{}
	for _, line := range lines[start+1 : end] {
		if IsPatternLine(line) && strings.TrimSpace(line) != ReferenceLine {
			patterns = append(patterns, line)
		}
	}

	regular := make([]string, 0, len(lines)-(end-start+1))
	regular = append(regular, lines[:start]...)
	regular = append(regular, lines[end+1:]...)

	return State{
		AIPatterns:     patterns,
		RegularContent: regular,
	}
}

// Serialize renders state back into file content. The AI section is emitted
// only when includeSection is set and there is at least one AI pattern.
// Non-empty output always ends with a newline.
func Serialize(state State, includeSection bool) string {
	var lines []string
	if includeSection && len(state.AIPatterns) > 0 {
		lines = append(lines, TrimTrailingBlank(state.RegularContent)...)
		lines = append(lines, "", StartMarker, ReferenceLine)
		lines = append(lines, state.AIPatterns...)
		lines = append(lines, EndMarker)
	} else {
		lines = append(lines, state.RegularContent...)
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// IsPatternLine reports whether line is neither blank nor a comment.
func IsPatternLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// PatternLines returns the pattern lines of an ai.gitignore, deduplicated in
// first-seen order.
func PatternLines(content string) []string {
	seen := make(map[string]bool)
	patterns := []string{}
	for _, line := range Lines(content) {
		if !IsPatternLine(line) {
			continue
		}
		line = strings.TrimSpace(line)
		if seen[line] {
			continue
		}
		seen[line] = true
		patterns = append(patterns, line)
	}
	return patterns
}

// TrimTrailingBlank drops blank lines from the end of lines.
func TrimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// WithReference returns lines with exactly one reference line. An existing
// reference stays where it is; otherwise one is placed first.
func WithReference(lines []string) []string {
	out := make([]string, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == ReferenceLine {
			if found {
				continue
			}
			found = true
		}
		out = append(out, line)
	}
	if !found {
		out = append([]string{ReferenceLine}, out...)
	}
	return out
}

// WithoutLeadingReference drops the reference line WithReference places at
// the top of a file. References further down are kept.
func WithoutLeadingReference(lines []string) []string {
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == ReferenceLine {
		return lines[1:]
	}
	return lines
}

// WithoutReference returns lines with every bare reference line removed.
func WithoutReference(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == ReferenceLine {
			continue
		}
		out = append(out, line)
	}
	return out
}
