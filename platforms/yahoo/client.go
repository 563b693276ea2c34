package yahoo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/platforms/yahoo/internal"
)

const YahooURL = "https://fantasysports.yahooapis.com"

// ErrAuthExpired is returned when Yahoo rejects the credential outright.
// The caller owns the token lifecycle, so it is surfaced rather than
// retried here.
var ErrAuthExpired = errors.New("yahoo rejected the credentials")

type Client struct {
	url string
}

func New() (*Client, error) {
	return &Client{url: YahooURL}, nil
}

func NewForTest(url string) *Client {
	return &Client{url: url}
}

// RosterEntry is one row of the roster query: identity, name, slot and bye
// week, in the order Yahoo returned it.
type RosterEntry struct {
	PlayerID  string
	FirstName string
	LastName  string
	FullName  string
	Position  model.Position
	ByeWeek   *int
}

type TeamRoster struct {
	TeamKey string
	Name    string
	Players []RosterEntry
}

// StatLine is one row of the stats query: the point total and raw stat
// values for the player at the same index in the roster query.
type StatLine struct {
	PlayerID string
	Points   float64
	Stats    map[int]float64
}

type TeamStats struct {
	TeamKey string
	Name    string
	Lines   []StatLine
}

// GetRoster fetches the ordered roster for a team and week.
func (c *Client) GetRoster(ctx context.Context, httpClient *http.Client, teamKey string, week int) (*TeamRoster, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/team/%s/roster;week=%d", teamKey, week)
	if err != nil {
		return nil, err
	}

	players, err := rosterPlayers(content)
	if err != nil {
		return nil, err
	}

	result := &TeamRoster{
		TeamKey: content.Team.Key,
		Name:    content.Team.Name,
		Players: make([]RosterEntry, 0, len(players)),
	}
	for _, p := range players {
		entry := RosterEntry{
			PlayerID: p.ID,
			ByeWeek:  parseByeWeek(p.ByeWeeks),
		}
		if p.Name != nil {
			entry.FirstName = p.Name.First
			entry.LastName = p.Name.Last
			entry.FullName = p.Name.Full
		}
		if p.SelectedPosition != nil {
			entry.Position = model.ParsePosition(p.SelectedPosition.Position)
		}
		result.Players = append(result.Players, entry)
	}

	return result, nil
}

// GetRosterStats fetches the weekly point totals and raw stat values for a
// team. Yahoo returns the players in the same order as the roster query.
func (c *Client) GetRosterStats(ctx context.Context, httpClient *http.Client, teamKey string, week int) (*TeamStats, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/team/%s/roster;week=%d/players/stats;type=week;week=%d", teamKey, week, week)
	if err != nil {
		return nil, err
	}

	players, err := rosterPlayers(content)
	if err != nil {
		return nil, err
	}

	result := &TeamStats{
		TeamKey: content.Team.Key,
		Name:    content.Team.Name,
		Lines:   make([]StatLine, 0, len(players)),
	}
	for _, p := range players {
		line := StatLine{
			PlayerID: p.ID,
			Stats:    make(map[int]float64),
		}
		if p.PlayerPoints != nil {
			line.Points = p.PlayerPoints.Total
		}
		if p.PlayerStats != nil && p.PlayerStats.Stats != nil {
			for _, s := range p.PlayerStats.Stats.Stats {
				// Yahoo sends "-" for stats a player has no value for.
				v, err := strconv.ParseFloat(s.Value, 64)
				if err != nil {
					continue
				}
				line.Stats[s.ID] = v
			}
		}
		result.Lines = append(result.Lines, line)
	}

	return result, nil
}

// GetStatCategories fetches the league's scoring categories. The display
// name falls back to the short name when Yahoo omits it.
func (c *Client) GetStatCategories(ctx context.Context, httpClient *http.Client, leagueKey string) ([]model.StatCategory, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/league/%s/settings", leagueKey)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.League == nil ||
		content.League.Settings == nil ||
		content.League.Settings.StatCategories == nil ||
		content.League.Settings.StatCategories.Stats == nil {
		return nil, errors.New("league settings have no stat categories")
	}

	result := make([]model.StatCategory, 0, len(content.League.Settings.StatCategories.Stats.Stats))
	for _, s := range content.League.Settings.StatCategories.Stats.Stats {
		name := s.DisplayName
		if name == "" {
			name = s.Name
		}
		result = append(result, model.StatCategory{ID: s.ID, Name: name})
	}

	if len(result) == 0 {
		return nil, errors.New("no stat categories found")
	}
	return result, nil
}

func (c *Client) GetLeagueName(ctx context.Context, httpClient *http.Client, leagueKey string) (string, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/league/%s", leagueKey)
	if err != nil {
		return "", err
	}

	if content == nil || content.League == nil || content.League.Name == "" {
		return "", errors.New("league name not found")
	}

	return content.League.Name, nil
}

func rosterPlayers(content *internal.FantasyContent) ([]internal.Player, error) {
	if content == nil ||
		content.Team == nil ||
		content.Team.Roster == nil ||
		content.Team.Roster.Players == nil ||
		content.Team.Roster.Players.Players == nil {
		return nil, errors.New("team roster not found")
	}
	return content.Team.Roster.Players.Players, nil
}

func parseByeWeek(b *internal.ByeWeeks) *int {
	if b == nil || b.Week == "" {
		return nil
	}
	w, err := strconv.Atoi(b.Week)
	if err != nil {
		return nil
	}
	return &w
}

func (c *Client) yahooRequest(ctx context.Context, httpClient *http.Client, path string, args ...any) (*internal.FantasyContent, error) {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending yahoo http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrAuthExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from yahoo: %d", resp.StatusCode)
	}

	var res internal.FantasyContent
	err = xml.NewDecoder(resp.Body).Decode(&res)
	if err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}

	return &res, nil
}
