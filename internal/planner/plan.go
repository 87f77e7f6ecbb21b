package planner

// StagePlan represents a plan to stage files in AI mode.
type StagePlan struct {
	// Stage is the ordered list of repo-relative paths to stage
	Stage []string

	// Skipped lists candidates excluded by an AI pattern
	Skipped []Skip

	// Batches splits Stage into groups for separate git add invocations
	Batches [][]string
}

// Skip records a candidate that will not be staged.
type Skip struct {
	// Path is the repo-relative path of the candidate
	Path string `json:"path"`

	// Pattern is the AI pattern that matched Path
	Pattern string `json:"pattern"`
}

// NewStagePlan creates a new empty StagePlan.
func NewStagePlan() *StagePlan {
	return &StagePlan{
		Stage:   []string{},
		Skipped: []Skip{},
		Batches: [][]string{},
	}
}

// IsEmpty returns true if the plan stages nothing.
func (p *StagePlan) IsEmpty() bool {
	return len(p.Stage) == 0
}

// AddStage adds a path to stage.
func (p *StagePlan) AddStage(path string) {
	p.Stage = append(p.Stage, path)
}

// AddSkip records a skipped path.
func (p *StagePlan) AddSkip(skip Skip) {
	p.Skipped = append(p.Skipped, skip)
}

// SkippedPaths returns the paths of all skipped candidates.
func (p *StagePlan) SkippedPaths() []string {
	out := make([]string, len(p.Skipped))
	for i, s := range p.Skipped {
		out[i] = s.Path
	}
	return out
}
