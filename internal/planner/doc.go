// Package planner handles the planning phase of a filtered add.
//
// The planner turns the candidate files reported by git into a deterministic
// StagePlan: which paths to stage, which were skipped and the AI pattern
// that excluded each, and how the staged paths are split into git add
// batches. It performs no I/O.
//
// Key responsibilities:
//   - Scope candidates to the paths named on the command line
//   - Drop candidates matched by AI patterns or named ai.gitignore
//   - Split the remainder into bounded batches
package planner
