package model

import (
	"fmt"
)

// Player is one roster slot on a fantasy team for a given week. All fields
// are fixed at assembly time except PlayerPoints, which the live poller
// overwrites in place as totals change during games.
type Player struct {
	ID               string
	FirstName        string
	LastName         string
	FullName         string
	SelectedPosition Position
	ByeWeek          *int
	PlayerPoints     *float64
	ProjectedPoints  *float64
	RawStats         map[int]float64
}

// Initial returns the short display name, like "T.Boyd". Players without a
// last name (team defenses, mostly) fall back to the full name.
func (p *Player) Initial() string {
	if p.LastName == "" || p.FirstName == "" {
		return p.FullName
	}
	return fmt.Sprintf("%s.%s", p.FirstName[:1], p.LastName)
}

func (p *Player) FormattedByeWeek() string {
	if p.ByeWeek == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p.ByeWeek)
}

func (p *Player) FormattedPoints() string {
	if p.PlayerPoints == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p.PlayerPoints)
}

func (p *Player) FormattedProjectedPoints() string {
	if p.ProjectedPoints == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p.ProjectedPoints)
}

// Stat returns the player's value for a raw stat category, or false when the
// provider reported no value for it this week.
func (p *Player) Stat(statID int) (float64, bool) {
	v, ok := p.RawStats[statID]
	return v, ok
}

// Team is a single fantasy team's roster for a week. Players keep the order
// the provider returned them in; the started/benched partitions are always
// recomputed from the selected positions rather than stored.
type Team struct {
	Key     string
	Name    string
	Players []*Player
}

func (t *Team) Started() []*Player {
	result := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if !p.SelectedPosition.IsBench() {
			result = append(result, p)
		}
	}
	return result
}

func (t *Team) Benched() []*Player {
	result := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.SelectedPosition.IsBench() {
			result = append(result, p)
		}
	}
	return result
}

// FindPlayer returns the player with the given provider ID, or nil.
func (t *Team) FindPlayer(id string) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
