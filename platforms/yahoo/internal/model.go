package internal

type FantasyContent struct {
	League *League `xml:"league"`
	Team   *Team   `xml:"team"`
}

type League struct {
	Key      string    `xml:"league_key"`
	Name     string    `xml:"name"`
	Settings *Settings `xml:"settings"`
}

type Settings struct {
	StatCategories *StatCategories `xml:"stat_categories"`
}

type StatCategories struct {
	Stats *Stats `xml:"stats"`
}

type Stats struct {
	Stats []Stat `xml:"stat"`
}

type Stat struct {
	ID          int    `xml:"stat_id"`
	Name        string `xml:"name"`
	DisplayName string `xml:"display_name"`
	Value       string `xml:"value"`
}

type Team struct {
	Key    string  `xml:"team_key"`
	Name   string  `xml:"name"`
	Roster *Roster `xml:"roster"`
}

type Roster struct {
	Week    int      `xml:"week"`
	Players *Players `xml:"players"`
}

type Players struct {
	Players []Player `xml:"player"`
}

type Player struct {
	Key              string            `xml:"player_key"`
	ID               string            `xml:"player_id"`
	Name             *PlayerName       `xml:"name"`
	ByeWeeks         *ByeWeeks         `xml:"bye_weeks"`
	SelectedPosition *SelectedPosition `xml:"selected_position"`
	PlayerPoints     *PlayerPoints     `xml:"player_points"`
	PlayerStats      *PlayerStats      `xml:"player_stats"`
}

type PlayerName struct {
	Full  string `xml:"full"`
	First string `xml:"first"`
	Last  string `xml:"last"`
}

// ByeWeeks holds the week as a string because Yahoo sends an empty element
// for players without a bye.
type ByeWeeks struct {
	Week string `xml:"week"`
}

type SelectedPosition struct {
	Position string `xml:"position"`
}

type PlayerPoints struct {
	Total float64 `xml:"total"`
}

type PlayerStats struct {
	Stats *Stats `xml:"stats"`
}
