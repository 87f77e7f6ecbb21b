package planner

import (
	"path"
	"strings"

	"github.com/danieljhkim/git-aiadd/internal/pattern"
)

// Scope restricts candidates to the paths named by the user.
//
// A candidate is in scope when it equals a scope path, lies beneath it, or
// matches it as a path-aware glob. An empty scope, or one containing "." or
// "./", admits every candidate.
type Scope struct {
	all   bool
	paths []string
}

// NewScope builds a Scope from repo-relative, slash-separated paths.
func NewScope(paths []string) Scope {
	s := Scope{}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
		if cleaned == "." {
			s.all = true
			continue
		}
		s.paths = append(s.paths, strings.TrimPrefix(cleaned, "/"))
	}
	if len(s.paths) == 0 {
		s.all = true
	}
	return s
}

// Contains reports whether candidate is in scope.
func (s Scope) Contains(candidate string) bool {
	if s.all {
		return true
	}
	for _, p := range s.paths {
		if candidate == p || strings.HasPrefix(candidate, p+"/") {
			return true
		}
		if strings.ContainsAny(p, "*?") && pattern.Match(candidate, p) {
			return true
		}
	}
	return false
}
