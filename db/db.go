package db

import (
	"context"
	"time"
)

// ScoreRecord is one observed change to a player's weekly point total.
type ScoreRecord struct {
	TeamKey    string
	PlayerID   string
	PlayerName string
	Week       int
	Points     float64
	ObservedAt time.Time
}

type DB interface {
	SaveScore(ctx context.Context, r ScoreRecord) error
	// GetPlayerScores lists the recorded changes for a player, most
	// recent first.
	GetPlayerScores(ctx context.Context, playerID string) ([]ScoreRecord, error)
	// GetWeekScores lists the latest recorded points per player for a week.
	GetWeekScores(ctx context.Context, week int) ([]ScoreRecord, error)
	Close() error
}
