// Package gridsafe wires the warehouse environment, the knowledge-based
// agent, and the optional trace recorder into a single episode runner.
package gridsafe

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/gridsafe/pkg/gridsafe/agent"
	"github.com/cognicore/gridsafe/pkg/gridsafe/config"
	"github.com/cognicore/gridsafe/pkg/gridsafe/env"
	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/internalerr"
	"github.com/cognicore/gridsafe/pkg/gridsafe/trace"
)

// Options configures a Runner. Trace and Logger are optional.
type Options struct {
	Config config.Config
	Trace  trace.Recorder
	Logger *zap.Logger
}

// Runner executes episodes against a fresh environment and agent each
// run. One Runner may run many episodes sequentially.
type Runner struct {
	cfg     config.Config
	rec     trace.Recorder
	log     *zap.Logger
	entropy *ulid.MonotonicEntropy
}

// Report summarizes one finished episode.
type Report struct {
	EpisodeID   string
	Success     bool
	Stuck       bool
	Truncated   bool
	Outcome     string
	Steps       int
	TotalReward int
}

// NewRunner creates a runner for the given options.
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     opts.Config,
		rec:     opts.Trace,
		log:     logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Run executes one full episode: perceive, assert, reclassify, plan,
// act, until the agent exits, gets stuck, or the step budget runs out.
// The loop is strictly sequential; ctx is only consulted between steps.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return Report{}, err
	}

	layout := r.layout()
	e := env.New(layout, env.Rewards{
		StepPenalty:   r.cfg.Rewards.StepPenalty,
		CollectBonus:  r.cfg.Rewards.CollectBonus,
		SuccessBonus:  r.cfg.Rewards.SuccessBonus,
		HazardPenalty: r.cfg.Rewards.HazardPenalty,
	})
	a := agent.New(layout.Width, layout.Height, layout.Start)

	id := ulid.MustNew(ulid.Now(), r.entropy).String()
	report := Report{EpisodeID: id}
	ep := trace.Episode{
		ID:        id,
		StartedAt: time.Now().UTC(),
		Width:     layout.Width,
		Height:    layout.Height,
	}
	if r.rec != nil {
		if err := r.rec.BeginEpisode(ctx, ep); err != nil {
			return report, fmt.Errorf("begin episode trace: %w", err)
		}
	}

	r.log.Info("episode start",
		zap.String("episode", id),
		zap.Int("width", layout.Width),
		zap.Int("height", layout.Height))

	percept := e.Reset()
	total := 0
	envDone := false

	for n := 0; n < r.cfg.MaxSteps; n++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pos := a.Pos()
		act, err := a.Decide(agent.Percept{
			Creaking: percept.Creaking,
			Rumbling: percept.Rumbling,
			Parcel:   percept.Parcel,
		})
		if errors.Is(err, internalerr.ErrEpisodeOver) {
			break
		}
		if err != nil {
			// Inconsistent facts or a dead oracle: fatal, never retried.
			return report, fmt.Errorf("step %d: %w", n, err)
		}

		next, reward, done := e.Step(envAction(act))
		total += reward

		r.log.Debug("step",
			zap.String("episode", id),
			zap.Int("n", n),
			zap.Stringer("cell", cellStringer{pos}),
			zap.Stringer("action", act),
			zap.Stringer("state", a.State()),
			zap.Int("reward", reward))

		if r.rec != nil {
			step := trace.Step{
				N:        n,
				Cell:     pos,
				State:    a.State().String(),
				Action:   act.String(),
				Creaking: percept.Creaking,
				Rumbling: percept.Rumbling,
				Parcel:   percept.Parcel,
				Reward:   reward,
			}
			if err := r.rec.RecordStep(ctx, id, step); err != nil {
				return report, fmt.Errorf("record step %d: %w", n, err)
			}
		}

		percept = next
		if done {
			envDone = true
			break
		}
	}

	ar := a.Report()
	report.Success = e.Outcome() == env.OutcomeSuccess
	report.Stuck = ar.Stuck
	report.Truncated = !envDone && !a.Done()
	report.Outcome = e.Outcome().String()
	if report.Truncated {
		report.Outcome = "truncated"
	}
	report.Steps = e.Steps()
	report.TotalReward = total

	r.log.Info("episode end",
		zap.String("episode", id),
		zap.String("outcome", report.Outcome),
		zap.Bool("success", report.Success),
		zap.Int("steps", report.Steps),
		zap.Int("reward", report.TotalReward))

	if r.rec != nil {
		ep.Success = report.Success
		ep.Stuck = report.Stuck
		ep.Truncated = report.Truncated
		ep.Outcome = report.Outcome
		ep.Steps = report.Steps
		ep.TotalReward = report.TotalReward
		if err := r.rec.EndEpisode(ctx, ep); err != nil {
			return report, fmt.Errorf("end episode trace: %w", err)
		}
	}

	return report, nil
}

func (r *Runner) layout() env.Layout {
	l := env.Layout{
		Width:  r.cfg.Grid.Width,
		Height: r.cfg.Grid.Height,
		Start:  r.cfg.Start.Cell(),
		Parcel: r.cfg.Parcel.Cell(),
	}
	for _, d := range r.cfg.Hazards.Damaged {
		l.Damaged = append(l.Damaged, d.Cell())
	}
	if f := r.cfg.Hazards.Forklift; f != nil {
		l.Forklift = f.Cell()
	}
	return l
}

func envAction(a agent.Action) env.Action {
	switch a {
	case agent.ActionTurnLeft:
		return env.ActionTurnLeft
	case agent.ActionTurnRight:
		return env.ActionTurnRight
	case agent.ActionForward:
		return env.ActionForward
	case agent.ActionGrab:
		return env.ActionGrab
	default:
		return env.ActionExit
	}
}

type cellStringer struct{ c grid.Cell }

func (s cellStringer) String() string { return fmt.Sprintf("(%d,%d)", s.c.X, s.c.Y) }
