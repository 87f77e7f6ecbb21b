package engine

import (
	"github.com/danieljhkim/git-aiadd/internal/planner"
)

// ModeResult represents the result of turning AI mode on or off.
type ModeResult struct {
	// Workspaces lists what happened in each discovered workspace
	Workspaces []WorkspaceChange `json:"workspaces"`
}

// WorkspaceChange describes a mode change in one workspace.
type WorkspaceChange struct {
	// Dir is the absolute workspace directory
	Dir string `json:"dir"`

	// Action is what the mode controller did
	Action ModeAction `json:"action"`

	// Patterns is the number of AI patterns moved
	Patterns int `json:"patterns"`
}

// Changed returns the number of workspaces whose files were modified.
func (r *ModeResult) Changed() int {
	n := 0
	for _, ws := range r.Workspaces {
		if ws.Action == ActionEnabled || ws.Action == ActionDisabled {
			n++
		}
	}
	return n
}

// StatusResult represents AI mode status.
type StatusResult struct {
	// Dir is the directory the status was requested for
	Dir string `json:"dir"`

	// Enabled indicates whether AI mode is enabled in Dir
	Enabled bool `json:"enabled"`

	// Workspaces is populated when all workspaces were requested
	Workspaces []WorkspaceStatus `json:"workspaces,omitempty"`
}

// WorkspaceStatus describes the AI mode state of one workspace.
type WorkspaceStatus struct {
	// Dir is the absolute workspace directory
	Dir string `json:"dir"`

	// Source records how the workspace was discovered
	Source string `json:"source"`

	// Enabled indicates ai.gitignore exists
	Enabled bool `json:"enabled"`

	// HasGitignore indicates .gitignore exists
	HasGitignore bool `json:"hasGitignore"`

	// HasSection indicates .gitignore carries an AI section
	HasSection bool `json:"hasSection"`

	// Patterns is the number of AI patterns, wherever they live
	Patterns int `json:"patterns"`
}

// InitResult represents the result of seeding default ignore files.
type InitResult struct {
	// Workspaces lists the changes made per workspace
	Workspaces []InitChange `json:"workspaces"`
}

// InitChange describes what InitWorkspace did in one directory.
type InitChange struct {
	// Dir is the absolute workspace directory
	Dir string `json:"dir"`

	// CreatedGitignore indicates .gitignore was created from defaults
	CreatedGitignore bool `json:"createdGitignore"`

	// AddedReference indicates the ai.gitignore line was added to .gitignore
	AddedReference bool `json:"addedReference"`

	// CreatedAIGitignore indicates ai.gitignore was created from defaults
	CreatedAIGitignore bool `json:"createdAiGitignore"`
}

// Mode names reported by AddResult.
const (
	ModeAI     = "ai"
	ModeNormal = "normal"
)

// AddResult represents the result of a filtered add.
type AddResult struct {
	// Mode is ModeAI when filtering was applied, ModeNormal otherwise
	Mode string `json:"mode"`

	// RepoRoot is the absolute repository root
	RepoRoot string `json:"repoRoot"`

	// Workspaces are the discovered workspace directories
	Workspaces []string `json:"workspaces"`

	// Gitignores are the .gitignore files staged ahead of everything else
	Gitignores []string `json:"gitignores"`

	// Staged are the paths handed to git add. In normal mode these are the
	// pathspecs as given, relative to CWD.
	Staged []string `json:"staged"`

	// Skipped are candidates excluded by an AI pattern
	Skipped []planner.Skip `json:"skipped"`

	// Batches is the number of git add invocations used for Staged
	Batches int `json:"batches"`
}

// LiftResult represents the result of an add with the AI section lifted.
type LiftResult struct {
	// RepoRoot is the absolute repository root
	RepoRoot string `json:"repoRoot"`

	// Lifted indicates .gitignore carried an AI section that was lifted
	Lifted bool `json:"lifted"`

	// Unstaged are staged files that matched an AI pattern and were unstaged
	Unstaged []string `json:"unstaged"`
}
