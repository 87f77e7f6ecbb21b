package planner

import (
	"sort"

	"github.com/danieljhkim/git-aiadd/internal/pattern"
)

// BuildStagePlan generates a deterministic plan for staging candidates.
//
// Candidates are deduplicated and sorted. Those outside scope are dropped
// silently; those matched by set are recorded as skipped. The remaining paths
// are split into batches of at most batchSize (values below 1 mean a single
// batch).
func BuildStagePlan(candidates []string, scope Scope, set *pattern.Set, batchSize int) *StagePlan {
	plan := NewStagePlan()

	seen := make(map[string]bool, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	sort.Strings(unique)

	for _, c := range unique {
		if !scope.Contains(c) {
			continue
		}
		if set != nil {
			if matched, ok := set.Matches(c); ok {
				plan.AddSkip(Skip{Path: c, Pattern: matched})
				continue
			}
		}
		plan.AddStage(c)
	}

	plan.Batches = Batch(plan.Stage, batchSize)
	return plan
}

// Batch splits paths into consecutive groups of at most size paths.
func Batch(paths []string, size int) [][]string {
	batches := [][]string{}
	if len(paths) == 0 {
		return batches
	}
	if size < 1 {
		size = len(paths)
	}
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[start:end])
	}
	return batches
}
