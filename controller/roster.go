package controller

import (
	"context"
	"fmt"

	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/platforms/yahoo"
)

// ShapeMismatchError means the roster and stats queries disagreed about a
// team. The merge is positional, so a mismatch has to abort assembly rather
// than risk crediting points to the wrong player.
type ShapeMismatchError struct {
	TeamKey     string
	RosterCount int
	StatsCount  int

	// Index, RosterID and StatsID are set when the counts matched but the
	// player identities at an index did not.
	Index    int
	RosterID string
	StatsID  string
}

func (e *ShapeMismatchError) Error() string {
	if e.RosterCount != e.StatsCount {
		return fmt.Sprintf("team %s: roster query returned %d players but stats query returned %d",
			e.TeamKey, e.RosterCount, e.StatsCount)
	}
	return fmt.Sprintf("team %s: player at position %d is %s in the roster query but %s in the stats query",
		e.TeamKey, e.Index, e.RosterID, e.StatsID)
}

// AssembleRosters builds the Team/Player graph for a week by issuing the
// roster and stats queries for each team index and merging the results.
func (c *controller) AssembleRosters(ctx context.Context, week int) ([]*model.Team, error) {
	httpClient, err := c.tokens.Client(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, c.settings.TeamCount)
	for n := 1; n <= c.settings.TeamCount; n++ {
		teamKey := c.settings.LeagueKey.Team(n)

		roster, err := c.yahoo.GetRoster(ctx, httpClient, teamKey, week)
		if err != nil {
			return nil, fmt.Errorf("error fetching roster for %s: %w", teamKey, err)
		}

		stats, err := c.yahoo.GetRosterStats(ctx, httpClient, teamKey, week)
		if err != nil {
			return nil, fmt.Errorf("error fetching stats for %s: %w", teamKey, err)
		}

		team, err := mergeTeam(roster, stats)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	c.log.Info().Int("week", week).Int("teams", len(teams)).Msg("rosters assembled")
	return teams, nil
}

// mergeTeam joins the two result sets by position, attaching each stat line
// to the roster entry at the same index. Yahoo returns both lists in the
// same order; the length check and the per-index identity check are the
// guard against that assumption quietly breaking.
func mergeTeam(roster *yahoo.TeamRoster, stats *yahoo.TeamStats) (*model.Team, error) {
	if len(roster.Players) != len(stats.Lines) {
		return nil, &ShapeMismatchError{
			TeamKey:     roster.TeamKey,
			RosterCount: len(roster.Players),
			StatsCount:  len(stats.Lines),
		}
	}

	team := &model.Team{
		Key:     roster.TeamKey,
		Name:    roster.Name,
		Players: make([]*model.Player, 0, len(roster.Players)),
	}

	for i, entry := range roster.Players {
		line := stats.Lines[i]
		if entry.PlayerID != "" && line.PlayerID != "" && entry.PlayerID != line.PlayerID {
			return nil, &ShapeMismatchError{
				TeamKey:     roster.TeamKey,
				RosterCount: len(roster.Players),
				StatsCount:  len(stats.Lines),
				Index:       i,
				RosterID:    entry.PlayerID,
				StatsID:     line.PlayerID,
			}
		}

		points := line.Points
		team.Players = append(team.Players, &model.Player{
			ID:               entry.PlayerID,
			FirstName:        entry.FirstName,
			LastName:         entry.LastName,
			FullName:         entry.FullName,
			SelectedPosition: entry.Position,
			ByeWeek:          entry.ByeWeek,
			PlayerPoints:     &points,
			RawStats:         line.Stats,
		})
	}

	return team, nil
}
