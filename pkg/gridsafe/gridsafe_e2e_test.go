package gridsafe

import (
	"context"
	"testing"

	"github.com/cognicore/gridsafe/pkg/gridsafe/config"
	"github.com/cognicore/gridsafe/pkg/gridsafe/trace/memtrace"
)

// TestEndToEndSuccess runs the canonical 4×4 fixture: damaged floor at
// (3,1), forklift at (1,3), parcel at (2,3). The agent must fetch the
// parcel and climb out at the start, scoring success bonus plus collect
// bonus minus one per step.
func TestEndToEndSuccess(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	rec := memtrace.New()

	runner := NewRunner(Options{Config: cfg, Trace: rec})
	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !report.Success {
		t.Fatalf("report = %+v, want success", report)
	}
	if report.Stuck || report.Truncated {
		t.Errorf("report = %+v, want neither stuck nor truncated", report)
	}
	if report.Outcome != "success" {
		t.Errorf("outcome = %q, want success", report.Outcome)
	}

	want := cfg.Rewards.SuccessBonus + cfg.Rewards.CollectBonus - report.Steps*cfg.Rewards.StepPenalty
	if report.TotalReward != want {
		t.Errorf("total reward = %d, want %d (success + collect - steps)", report.TotalReward, want)
	}

	steps, err := rec.StepsFor(ctx, report.EpisodeID)
	if err != nil {
		t.Fatalf("StepsFor: %v", err)
	}
	if len(steps) != report.Steps {
		t.Errorf("recorded %d steps, report says %d", len(steps), report.Steps)
	}
	if got := steps[len(steps)-1].Action; got != "exit" {
		t.Errorf("last action = %q, want exit", got)
	}

	var grabbed bool
	for _, s := range steps {
		if s.Action == "grab" {
			grabbed = true
		}
	}
	if !grabbed {
		t.Error("trace should contain the grab step")
	}
}

// The same fixture must replay identically: the whole pipeline is
// deterministic, from rule compilation through tie-breaking.
func TestEndToEndDeterministic(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(Options{Config: config.Default()})

	first, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Steps != second.Steps || first.TotalReward != second.TotalReward {
		t.Errorf("runs diverged: %+v vs %+v", first, second)
	}
	if first.Outcome != second.Outcome {
		t.Errorf("outcomes diverged: %q vs %q", first.Outcome, second.Outcome)
	}
}

// TestEndToEndStuck places damaged floor on both cells next to the
// start. The creak is heard immediately and neither neighbor can ever
// be proven safe, so the parcel stays unreachable. The episode must
// end unsuccessfully through the stuck outcome, not by exhausting a
// retry budget.
func TestEndToEndStuck(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Grid = config.Grid{Width: 3, Height: 3}
	cfg.Hazards = config.Hazards{
		Damaged: []config.Cell{{X: 2, Y: 1}, {X: 1, Y: 2}},
	}
	cfg.Parcel = config.Cell{X: 3, Y: 3}

	runner := NewRunner(Options{Config: cfg})
	report, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Success {
		t.Fatalf("report = %+v, want failure", report)
	}
	if !report.Stuck {
		t.Errorf("report = %+v, want the stuck flag", report)
	}
	if report.Truncated {
		t.Errorf("stuck episodes terminate cleanly, not by step budget: %+v", report)
	}
	if report.Steps != 1 {
		t.Errorf("steps = %d, want 1: give up on the spot", report.Steps)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width = 0
	if _, err := NewRunner(Options{Config: cfg}).Run(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(Options{Config: config.Default()}).Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
