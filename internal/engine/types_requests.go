package engine

// ModeRequest represents a request to turn AI mode on or off.
type ModeRequest struct {
	// CWD is the directory workspaces are discovered from
	CWD string
}

// StatusRequest represents a request for AI mode status.
type StatusRequest struct {
	// CWD is the current working directory
	CWD string

	// All reports every discovered workspace, not just CWD
	All bool
}

// InitRequest represents a request to seed default ignore files.
type InitRequest struct {
	// CWD is the directory workspaces are discovered from
	CWD string
}

// AddRequest represents a request to stage files.
type AddRequest struct {
	// CWD is the current working directory
	CWD string

	// Paths are the user-supplied paths or globs; empty means everything
	Paths []string
}

// LiftRequest represents a request to stage files with the AI section lifted.
type LiftRequest struct {
	// CWD is the current working directory
	CWD string

	// Paths are passed to git add as given; empty means everything
	Paths []string
}
