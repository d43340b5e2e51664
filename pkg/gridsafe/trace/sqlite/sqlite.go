// Package sqlite persists episode traces in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/trace"
)

// sqliteRecorder implements trace.Recorder using SQLite.
type sqliteRecorder struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a trace database with WAL
// mode enabled.
func Open(ctx context.Context, path string) (trace.Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRecorder{db: db}, nil
}

// Close closes the database connection.
func (r *sqliteRecorder) Close() error {
	return r.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS episodes (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	success INTEGER NOT NULL DEFAULT 0,
	stuck INTEGER NOT NULL DEFAULT 0,
	truncated INTEGER NOT NULL DEFAULT 0,
	outcome TEXT NOT NULL DEFAULT 'running',
	steps INTEGER NOT NULL DEFAULT 0,
	total_reward INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS steps (
	episode_id TEXT NOT NULL,
	n INTEGER NOT NULL,
	x INTEGER NOT NULL,
	y INTEGER NOT NULL,
	state TEXT NOT NULL,
	action TEXT NOT NULL,
	creaking INTEGER NOT NULL,
	rumbling INTEGER NOT NULL,
	parcel INTEGER NOT NULL,
	reward INTEGER NOT NULL,
	UNIQUE(episode_id, n),
	FOREIGN KEY(episode_id) REFERENCES episodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_steps_episode ON steps(episode_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// BeginEpisode inserts the episode header row.
func (r *sqliteRecorder) BeginEpisode(ctx context.Context, ep trace.Episode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO episodes (id, started_at, width, height) VALUES (?, ?, ?, ?)`,
		ep.ID, ep.StartedAt.UTC().Format(time.RFC3339Nano), ep.Width, ep.Height)
	return err
}

// RecordStep appends one step row.
func (r *sqliteRecorder) RecordStep(ctx context.Context, episodeID string, s trace.Step) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO steps (episode_id, n, x, y, state, action, creaking, rumbling, parcel, reward)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		episodeID, s.N, s.Cell.X, s.Cell.Y, s.State, s.Action,
		boolInt(s.Creaking), boolInt(s.Rumbling), boolInt(s.Parcel), s.Reward)
	return err
}

// EndEpisode fills in the episode summary.
func (r *sqliteRecorder) EndEpisode(ctx context.Context, ep trace.Episode) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE episodes SET success = ?, stuck = ?, truncated = ?, outcome = ?, steps = ?, total_reward = ?
		 WHERE id = ?`,
		boolInt(ep.Success), boolInt(ep.Stuck), boolInt(ep.Truncated),
		ep.Outcome, ep.Steps, ep.TotalReward, ep.ID)
	return err
}

// Episodes returns all stored episodes, oldest first.
func (r *sqliteRecorder) Episodes(ctx context.Context) ([]trace.Episode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, width, height, success, stuck, truncated, outcome, steps, total_reward
		 FROM episodes ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trace.Episode
	for rows.Next() {
		var ep trace.Episode
		var started string
		var success, stuck, truncated int
		if err := rows.Scan(&ep.ID, &started, &ep.Width, &ep.Height,
			&success, &stuck, &truncated, &ep.Outcome, &ep.Steps, &ep.TotalReward); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
			ep.StartedAt = ts
		}
		ep.Success = success != 0
		ep.Stuck = stuck != 0
		ep.Truncated = truncated != 0
		out = append(out, ep)
	}
	return out, rows.Err()
}

// StepsFor returns the steps of one episode ordered by step number.
func (r *sqliteRecorder) StepsFor(ctx context.Context, episodeID string) ([]trace.Step, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n, x, y, state, action, creaking, rumbling, parcel, reward
		 FROM steps WHERE episode_id = ? ORDER BY n`, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trace.Step
	for rows.Next() {
		var s trace.Step
		var c grid.Cell
		var creaking, rumbling, parcel int
		if err := rows.Scan(&s.N, &c.X, &c.Y, &s.State, &s.Action,
			&creaking, &rumbling, &parcel, &s.Reward); err != nil {
			return nil, err
		}
		s.Cell = c
		s.Creaking = creaking != 0
		s.Rumbling = rumbling != 0
		s.Parcel = parcel != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
