package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dsimpson1980/yff/db"
	"github.com/dsimpson1980/yff/model"
)

// PointsChange is emitted whenever a poll observes a different point total
// for a player than the one currently displayed.
type PointsChange struct {
	TeamKey    string
	PlayerID   string
	PlayerName string
	Week       int
	Old        float64
	New        float64
}

type PointsListener func(change PointsChange)

func (c *controller) OnPointsChange(fn PointsListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// RunLiveUpdates polls the stats query on a fixed interval and applies any
// point changes to the shared player graph. One poll runs at a time; a slow
// or failed poll never overlaps the next one. Failures are logged and the
// loop keeps going, so a transient provider error just means stale numbers
// until the next tick.
func (c *controller) RunLiveUpdates(teams []*model.Team, week int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := c.clock.Ticker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := c.refreshPoints(ctx, teams, week); err != nil {
				c.log.Warn().Err(err).Msg("live update failed, retrying next tick")
			}
			cancel()
		}
	}
}

// refreshPoints is a single poll: fetch the current totals for every team
// and reconcile them against the in-memory players. The poller is the only
// writer of PlayerPoints.
func (c *controller) refreshPoints(ctx context.Context, teams []*model.Team, week int) error {
	httpClient, err := c.tokens.Client(ctx)
	if err != nil {
		return err
	}

	for _, team := range teams {
		stats, err := c.yahoo.GetRosterStats(ctx, httpClient, team.Key, week)
		if err != nil {
			return fmt.Errorf("error fetching live stats for %s: %w", team.Key, err)
		}

		for i, line := range stats.Lines {
			player := c.matchPlayer(team, i, line.PlayerID)
			if player == nil {
				c.log.Warn().Str("team", team.Key).Str("player_id", line.PlayerID).
					Msg("stats row does not match any rostered player, skipping")
				continue
			}

			var old float64
			if player.PlayerPoints != nil {
				old = *player.PlayerPoints
			}
			if player.PlayerPoints != nil && old == line.Points {
				continue
			}

			points := line.Points
			player.PlayerPoints = &points

			change := PointsChange{
				TeamKey:    team.Key,
				PlayerID:   player.ID,
				PlayerName: player.FullName,
				Week:       week,
				Old:        old,
				New:        line.Points,
			}
			c.recordChange(ctx, change)
			c.notify(change)
		}
	}

	return nil
}

// matchPlayer prefers the stable player ID when both queries supply one and
// falls back to the positional index otherwise.
func (c *controller) matchPlayer(team *model.Team, index int, playerID string) *model.Player {
	if playerID != "" {
		if p := team.FindPlayer(playerID); p != nil {
			return p
		}
		return nil
	}
	if index < len(team.Players) {
		return team.Players[index]
	}
	return nil
}

func (c *controller) recordChange(ctx context.Context, change PointsChange) {
	if c.db == nil {
		return
	}
	err := c.db.SaveScore(ctx, db.ScoreRecord{
		TeamKey:    change.TeamKey,
		PlayerID:   change.PlayerID,
		PlayerName: change.PlayerName,
		Week:       change.Week,
		Points:     change.New,
	})
	if err != nil {
		// History is best-effort; the displayed points already moved.
		c.log.Warn().Err(err).Str("player_id", change.PlayerID).Msg("error recording score change")
	}
}

func (c *controller) notify(change PointsChange) {
	c.mu.Lock()
	listeners := make([]PointsListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}
