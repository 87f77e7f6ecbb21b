package workspace

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/git-aiadd/internal/fsops"
)

// globDirs expands a slash-separated workspace glob relative to dir into the
// directories it names, sorted. Each segment is matched with path.Match
// against directory entries read through fs; a "**" segment matches dir and
// every directory beneath it. Skipped directories are never entered.
func globDirs(fs fsops.FS, dir, glob string) ([]string, error) {
	glob = strings.TrimPrefix(path.Clean("/"+glob), "/")
	if glob == "" {
		return nil, nil
	}

	current := []string{dir}
	for _, segment := range strings.Split(glob, "/") {
		if _, err := path.Match(segment, ""); err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", glob, err)
		}

		seen := make(map[string]bool)
		var next []string
		add := func(p string) {
			if !seen[p] {
				seen[p] = true
				next = append(next, p)
			}
		}

		for _, base := range current {
			switch {
			case segment == "**":
				for _, d := range descendants(fs, base) {
					add(d)
				}
			case !hasMeta(segment):
				full := filepath.Join(base, segment)
				if isDir, err := fs.IsDir(full); err == nil && isDir && !skipDir(segment) {
					add(full)
				}
			default:
				for _, child := range childDirs(fs, base) {
					if ok, _ := path.Match(segment, filepath.Base(child)); ok {
						add(child)
					}
				}
			}
		}
		current = next
	}

	sort.Strings(current)
	return current, nil
}

// descendants returns dir and every directory below it.
func descendants(fs fsops.FS, dir string) []string {
	out := []string{dir}
	for _, child := range childDirs(fs, dir) {
		out = append(out, descendants(fs, child)...)
	}
	return out
}

// childDirs returns the immediate subdirectories of dir, minus skipped ones.
// An unreadable dir has none.
func childDirs(fs fsops.FS, dir string) []string {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if skipDir(entry.Name()) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if isDir, err := fs.IsDir(full); err == nil && isDir {
			out = append(out, full)
		}
	}
	return out
}

func hasMeta(segment string) bool {
	return strings.ContainsAny(segment, `*?[\`)
}
