// Package trace records episodes for offline inspection and agent
// comparison. The Recorder interface keeps the agent loop independent
// of where traces land; sqlite and memtrace provide the two
// implementations.
package trace

import (
	"context"
	"time"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
)

// Recorder persists episode traces.
type Recorder interface {
	Close() error

	BeginEpisode(ctx context.Context, ep Episode) error
	RecordStep(ctx context.Context, episodeID string, s Step) error
	EndEpisode(ctx context.Context, ep Episode) error

	Episodes(ctx context.Context) ([]Episode, error)
	StepsFor(ctx context.Context, episodeID string) ([]Step, error)
}

// Episode is one stored run. Outcome, Steps and TotalReward are zero
// until EndEpisode fills them in.
type Episode struct {
	ID          string
	StartedAt   time.Time
	Width       int
	Height      int
	Success     bool
	Stuck       bool
	Truncated   bool
	Outcome     string
	Steps       int
	TotalReward int
}

// Step is one recorded action with the percept that preceded it.
type Step struct {
	N        int
	Cell     grid.Cell
	State    string
	Action   string
	Creaking bool
	Rumbling bool
	Parcel   bool
	Reward   int
}
