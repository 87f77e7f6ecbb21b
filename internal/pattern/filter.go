package pattern

import (
	"path"
	"strings"

	"github.com/danieljhkim/git-aiadd/internal/gitignore"
)

// Set is a compiled list of patterns applied under one mode.
type Set struct {
	patterns []*Pattern

	// Mode is the matching mode used by Matches and Filter.
	Mode Mode

	// SkipReferenceFile excludes any path whose basename is ai.gitignore,
	// whether or not a pattern names it.
	SkipReferenceFile bool
}

// NewSet compiles patterns into a Set. Lines that can never match (blank
// lines, comments, negations) are dropped.
func NewSet(patterns []string, mode Mode) *Set {
	s := &Set{Mode: mode}
	for _, raw := range patterns {
		p := Compile(raw)
		if p.valid {
			s.patterns = append(s.patterns, p)
		}
	}
	return s
}

// Len returns the number of usable patterns.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Matches reports whether filePath is excluded by the set and, if so, which
// pattern excluded it. The reference file is reported with the pattern
// "ai.gitignore".
func (s *Set) Matches(filePath string) (string, bool) {
	if s.SkipReferenceFile && path.Base(strings.ReplaceAll(filePath, "\\", "/")) == gitignore.AIFileName {
		return gitignore.AIFileName, true
	}
	for _, p := range s.patterns {
		if p.Match(filePath, s.Mode) {
			return p.raw, true
		}
	}
	return "", false
}

// Filter splits paths into those kept and those excluded by the set.
// Order is preserved in both results.
func (s *Set) Filter(paths []string) (kept, excluded []string) {
	kept = make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := s.Matches(p); ok {
			excluded = append(excluded, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, excluded
}

// FilterIgnored returns the paths not matched by any of patterns under mode.
func FilterIgnored(paths, patterns []string, mode Mode) []string {
	kept, _ := NewSet(patterns, mode).Filter(paths)
	return kept
}
