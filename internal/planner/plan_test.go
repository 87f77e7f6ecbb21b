package planner

import (
	"testing"
)

func TestNewStagePlan(t *testing.T) {
	plan := NewStagePlan()

	if plan.Stage == nil {
		t.Error("expected Stage to be initialized")
	}
	if plan.Skipped == nil {
		t.Error("expected Skipped to be initialized")
	}
	if plan.Batches == nil {
		t.Error("expected Batches to be initialized")
	}
	if !plan.IsEmpty() {
		t.Error("new plan should be empty")
	}
}

func TestStagePlan_AddStageAndSkip(t *testing.T) {
	plan := NewStagePlan()
	plan.AddStage("b.txt")
	plan.AddSkip(Skip{Path: "a.pt", Pattern: "*.pt"})
	plan.AddSkip(Skip{Path: "ai.gitignore", Pattern: "ai.gitignore"})

	if plan.IsEmpty() {
		t.Error("plan with a staged path should not be empty")
	}
	if len(plan.Stage) != 1 || plan.Stage[0] != "b.txt" {
		t.Errorf("Stage = %v", plan.Stage)
	}
	got := plan.SkippedPaths()
	if len(got) != 2 || got[0] != "a.pt" || got[1] != "ai.gitignore" {
		t.Errorf("SkippedPaths() = %v", got)
	}
}
