package engine

import "errors"

var (
	// ErrNotInRepo indicates the current directory is not in a git repository.
	ErrNotInRepo = errors.New("not in a git repository")

	// ErrInvalidPath indicates a path argument that resolves outside the repository.
	ErrInvalidPath = errors.New("invalid path")
)
