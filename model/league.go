package model

import (
	"fmt"
	"regexp"
)

// LeagueKey is the composite identifier Yahoo uses to scope all queries,
// in the form {game}.l.{number}, e.g. "nfl.l.431".
type LeagueKey string

var leagueKeyRegex = regexp.MustCompile(`^\w+\.l\.\d+$`)

func NewLeagueKey(game string, number int) LeagueKey {
	return LeagueKey(fmt.Sprintf("%s.l.%d", game, number))
}

func ParseLeagueKey(s string) (LeagueKey, error) {
	if !leagueKeyRegex.MatchString(s) {
		return "", fmt.Errorf("'%s' is not a valid league key", s)
	}
	return LeagueKey(s), nil
}

// Team returns the team key for the nth team in the league,
// e.g. "nfl.l.431.t.4".
func (k LeagueKey) Team(n int) string {
	return fmt.Sprintf("%s.t.%d", k, n)
}

func (k LeagueKey) String() string {
	return string(k)
}
