// Package pattern matches repository paths against glob-style ignore patterns.
//
// Two modes are supported. PathAware anchors multi-segment patterns at the
// start of the path and matches single-segment patterns against the basename.
// BaseFallback additionally lets any pattern match the basename alone, the
// way minimatch's matchBase option does.
//
// Glob syntax is deliberately small: '*' matches a run of non-separator
// characters, '?' matches one non-separator character, and every other
// character is literal. Paths always use '/' as the separator.
package pattern

import (
	"path"
	"regexp"
	"strings"
)

// Mode selects how a pattern is applied to a path.
type Mode int

const (
	// PathAware matches single-segment patterns against the basename and
	// multi-segment patterns against the full path.
	PathAware Mode = iota

	// BaseFallback behaves like PathAware but also accepts a match on the
	// basename alone, at any depth.
	BaseFallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case PathAware:
		return "path-aware"
	case BaseFallback:
		return "basename-fallback"
	default:
		return "unknown"
	}
}

// Pattern is a compiled ignore pattern.
type Pattern struct {
	raw      string
	segments []*regexp.Regexp
	dirOnly  bool
	anchored bool
	valid    bool
}

// Compile compiles a single ignore pattern. Blank lines, comments and
// negations compile to a pattern that never matches.
func Compile(raw string) *Pattern {
	p := &Pattern{raw: raw}

	body := strings.TrimSpace(raw)
	if body == "" || strings.HasPrefix(body, "#") || strings.HasPrefix(body, "!") {
		return p
	}

	if strings.HasPrefix(body, "/") {
		p.anchored = true
		body = strings.TrimLeft(body, "/")
	}
	if strings.HasSuffix(body, "/") {
		p.dirOnly = true
		body = strings.TrimRight(body, "/")
	}
	if body == "" {
		return p
	}

	parts := strings.Split(body, "/")
	p.segments = make([]*regexp.Regexp, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		p.segments = append(p.segments, compileSegment(part))
	}
	p.valid = len(p.segments) > 0
	return p
}

// compileSegment translates one glob segment into an anchored regexp.
func compileSegment(segment string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range segment {
		switch r {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether filePath matches the pattern under mode.
func (p *Pattern) Match(filePath string, mode Mode) bool {
	if !p.valid {
		return false
	}

	parts := splitPath(filePath)
	if len(parts) == 0 {
		return false
	}

	if p.matchPathAware(parts) {
		return true
	}

	// Only a single-segment file pattern can name a basename on its own.
	if mode == BaseFallback && !p.dirOnly && len(p.segments) == 1 {
		return p.segments[0].MatchString(parts[len(parts)-1])
	}
	return false
}

func (p *Pattern) matchPathAware(parts []string) bool {
	if len(p.segments) > len(parts) {
		return false
	}

	if p.dirOnly {
		return p.matchDirectory(parts)
	}

	if len(p.segments) == 1 && !p.anchored {
		return p.segments[0].MatchString(parts[len(parts)-1])
	}

	if len(p.segments) != len(parts) {
		return false
	}
	return matchSegments(p.segments, parts)
}

// matchDirectory matches a trailing-slash pattern. The directory must have
// something beneath it, so the file's own name is never a candidate.
func (p *Pattern) matchDirectory(parts []string) bool {
	dirs := parts[:len(parts)-1]
	if len(p.segments) > len(dirs) {
		return false
	}

	if len(p.segments) == 1 && !p.anchored {
		for _, dir := range dirs {
			if p.segments[0].MatchString(dir) {
				return true
			}
		}
		return false
	}

	return matchSegments(p.segments, dirs[:len(p.segments)])
}

func matchSegments(segments []*regexp.Regexp, parts []string) bool {
	for i, seg := range segments {
		if !seg.MatchString(parts[i]) {
			return false
		}
	}
	return true
}

// splitPath normalizes a path to forward slashes and splits it into segments.
func splitPath(filePath string) []string {
	filePath = strings.ReplaceAll(filePath, "\\", "/")
	filePath = strings.TrimPrefix(filePath, "./")
	filePath = path.Clean("/" + filePath)
	filePath = strings.TrimPrefix(filePath, "/")
	if filePath == "" || filePath == "." {
		return nil
	}
	return strings.Split(filePath, "/")
}

// Match reports whether filePath matches pattern in PathAware mode.
func Match(filePath, pattern string) bool {
	return Compile(pattern).Match(filePath, PathAware)
}

// MatchBase reports whether filePath matches pattern in BaseFallback mode.
func MatchBase(filePath, pattern string) bool {
	return Compile(pattern).Match(filePath, BaseFallback)
}
