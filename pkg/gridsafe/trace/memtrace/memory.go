// Package memtrace is an in-memory trace.Recorder for tests and for
// runs that do not need persistence.
package memtrace

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/gridsafe/pkg/gridsafe/trace"
)

// Recorder is an in-memory implementation of trace.Recorder.
type Recorder struct {
	mu       sync.RWMutex
	episodes map[string]trace.Episode
	order    []string
	steps    map[string][]trace.Step
}

// New creates an empty in-memory recorder.
func New() *Recorder {
	return &Recorder{
		episodes: make(map[string]trace.Episode),
		steps:    make(map[string][]trace.Step),
	}
}

// Close implements trace.Recorder.
func (r *Recorder) Close() error { return nil }

// BeginEpisode registers a new episode.
func (r *Recorder) BeginEpisode(ctx context.Context, ep trace.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[ep.ID]; ok {
		return fmt.Errorf("episode %q already recorded", ep.ID)
	}
	r.episodes[ep.ID] = ep
	r.order = append(r.order, ep.ID)
	return nil
}

// RecordStep appends one step to an episode.
func (r *Recorder) RecordStep(ctx context.Context, episodeID string, s trace.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[episodeID]; !ok {
		return fmt.Errorf("unknown episode %q", episodeID)
	}
	r.steps[episodeID] = append(r.steps[episodeID], s)
	return nil
}

// EndEpisode stores the final episode summary.
func (r *Recorder) EndEpisode(ctx context.Context, ep trace.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[ep.ID]; !ok {
		return fmt.Errorf("unknown episode %q", ep.ID)
	}
	r.episodes[ep.ID] = ep
	return nil
}

// Episodes returns all episodes in insertion order.
func (r *Recorder) Episodes(ctx context.Context) ([]trace.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]trace.Episode, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.episodes[id])
	}
	return out, nil
}

// StepsFor returns the steps of one episode ordered by step number.
func (r *Recorder) StepsFor(ctx context.Context, episodeID string) ([]trace.Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	steps := make([]trace.Step, len(r.steps[episodeID]))
	copy(steps, r.steps[episodeID])
	sort.Slice(steps, func(i, j int) bool { return steps[i].N < steps[j].N })
	return steps, nil
}
