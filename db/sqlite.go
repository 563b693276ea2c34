package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itbasis/go-clock"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	team_key    TEXT NOT NULL,
	player_id   TEXT NOT NULL,
	player_name TEXT NOT NULL,
	week        INTEGER NOT NULL,
	points      REAL NOT NULL,
	observed_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_player_idx ON scores(player_id);
CREATE INDEX IF NOT EXISTS scores_week_idx ON scores(week);`

type sqliteDB struct {
	pool  *sql.DB
	clock clock.Clock
}

// New opens (and if necessary creates) the score history database at path.
// Use ":memory:" for a throwaway database in tests.
func New(ctx context.Context, path string, clock clock.Clock) (DB, error) {
	pool, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening score db at %s: %w", path, err)
	}

	if _, err := pool.ExecContext(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating score db schema: %w", err)
	}

	return &sqliteDB{pool: pool, clock: clock}, nil
}

func (d *sqliteDB) SaveScore(ctx context.Context, r ScoreRecord) error {
	if r.ObservedAt.IsZero() {
		r.ObservedAt = d.clock.Now().UTC()
	}

	const insert = `INSERT INTO scores(team_key, player_id, player_name, week, points, observed_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := d.pool.ExecContext(ctx, insert,
		r.TeamKey, r.PlayerID, r.PlayerName, r.Week, r.Points, r.ObservedAt)
	if err != nil {
		return fmt.Errorf("error saving score for player %s: %w", r.PlayerID, err)
	}
	return nil
}

func (d *sqliteDB) GetPlayerScores(ctx context.Context, playerID string) ([]ScoreRecord, error) {
	const query = `SELECT team_key, player_id, player_name, week, points, observed_at
		FROM scores WHERE player_id = ? ORDER BY observed_at DESC`

	rows, err := d.pool.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("error querying scores for player %s: %w", playerID, err)
	}
	defer rows.Close()

	return scanScores(rows)
}

func (d *sqliteDB) GetWeekScores(ctx context.Context, week int) ([]ScoreRecord, error) {
	// Only the most recent observation per player matters here.
	const query = `SELECT team_key, player_id, player_name, week, points, observed_at
		FROM scores s
		WHERE week = ?
		  AND observed_at = (SELECT MAX(observed_at) FROM scores
				     WHERE player_id = s.player_id AND week = s.week)
		ORDER BY team_key, player_id`

	rows, err := d.pool.QueryContext(ctx, query, week)
	if err != nil {
		return nil, fmt.Errorf("error querying scores for week %d: %w", week, err)
	}
	defer rows.Close()

	return scanScores(rows)
}

func (d *sqliteDB) Close() error {
	return d.pool.Close()
}

func scanScores(rows *sql.Rows) ([]ScoreRecord, error) {
	results := make([]ScoreRecord, 0, 16)
	for rows.Next() {
		var r ScoreRecord
		if err := rows.Scan(&r.TeamKey, &r.PlayerID, &r.PlayerName, &r.Week, &r.Points, &r.ObservedAt); err != nil {
			return nil, fmt.Errorf("error reading score row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}
	return results, nil
}
