package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/platforms/yahoo"
	"github.com/dsimpson1980/yff/testutils"
)

func TestAssembleRosters(t *testing.T) {
	ctrl, env := controllerForTest(t)
	defer env.Close()

	teams, err := ctrl.AssembleRosters(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error assembling rosters: %v", err)
	}
	if len(teams) != testutils.YahooTeamCount {
		t.Fatalf("expected %d teams, got %d", testutils.YahooTeamCount, len(teams))
	}

	team := teams[0]
	if team.Key != testutils.YahooTeam1Key || team.Name != "Gehlken" {
		t.Errorf("unexpected team identity: %s / %s", team.Key, team.Name)
	}
	if len(team.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(team.Players))
	}

	// The stats totals must line up with the roster order.
	expectedPoints := []float64{10.0, 0.0, 7.5}
	for i, expected := range expectedPoints {
		p := team.Players[i]
		if p.PlayerPoints == nil || *p.PlayerPoints != expected {
			t.Errorf("player %d: expected %.1f points, got %v", i, expected, p.PlayerPoints)
		}
	}

	boyd := team.Players[0]
	if boyd.ID != "29288" || boyd.FullName != "Tyler Boyd" || boyd.SelectedPosition != model.POS_WR {
		t.Errorf("unexpected first player: %+v", boyd)
	}
	if boyd.ByeWeek == nil || *boyd.ByeWeek != 7 {
		t.Errorf("expected bye week 7, got %v", boyd.ByeWeek)
	}
	if v, ok := boyd.Stat(12); !ok || v != 64 {
		t.Errorf("expected 64 receiving yards, got %v ok=%v", v, ok)
	}

	if started := team.Started(); len(started) != 2 {
		t.Errorf("expected 2 starters, got %d", len(started))
	}
	if benched := team.Benched(); len(benched) != 1 || benched[0].ID != "30150" {
		t.Errorf("unexpected bench partition: %v", benched)
	}

	// The defense has no last name and no bye week in the feed.
	seattle := teams[1].FindPlayer("24793")
	if seattle == nil {
		t.Fatal("expected to find the defense on team 2")
	}
	if seattle.Initial() != "Seattle" {
		t.Errorf("unexpected defense display name: %s", seattle.Initial())
	}
	if seattle.ByeWeek != nil {
		t.Errorf("expected no bye week for the defense, got %v", seattle.ByeWeek)
	}
}

func TestAssembleRosters_shapeMismatch(t *testing.T) {
	ctrl, env := controllerForTest(t)
	defer env.Close()

	env.FakeYahoo.TruncateStats(testutils.YahooTeam1Key)

	_, err := ctrl.AssembleRosters(context.Background(), 1)
	if err == nil {
		t.Fatal("expected a shape mismatch error, got none")
	}

	var mismatch *ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a ShapeMismatchError, got %v", err)
	}
	if mismatch.TeamKey != testutils.YahooTeam1Key {
		t.Errorf("unexpected team key in error: %s", mismatch.TeamKey)
	}
	if mismatch.RosterCount != 3 || mismatch.StatsCount != 2 {
		t.Errorf("unexpected counts in error: %d vs %d", mismatch.RosterCount, mismatch.StatsCount)
	}
}

func TestAssembleRosters_authExpired(t *testing.T) {
	ctrl, env := controllerForTest(t)
	defer env.Close()

	env.FakeYahoo.ExpireAuth(true)

	_, err := ctrl.AssembleRosters(context.Background(), 1)
	if !errors.Is(err, yahoo.ErrAuthExpired) {
		t.Errorf("expected ErrAuthExpired, got %v", err)
	}
}

func TestMergeTeam_identityMismatch(t *testing.T) {
	roster := &yahoo.TeamRoster{
		TeamKey: "nfl.l.431.t.1",
		Name:    "Gehlken",
		Players: []yahoo.RosterEntry{
			{PlayerID: "1", FullName: "A", Position: model.POS_QB},
			{PlayerID: "2", FullName: "B", Position: model.POS_WR},
		},
	}
	stats := &yahoo.TeamStats{
		TeamKey: "nfl.l.431.t.1",
		Name:    "Gehlken",
		Lines: []yahoo.StatLine{
			{PlayerID: "1", Points: 10},
			{PlayerID: "999", Points: 5},
		},
	}

	_, err := mergeTeam(roster, stats)

	var mismatch *ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a ShapeMismatchError, got %v", err)
	}
	if mismatch.Index != 1 || mismatch.RosterID != "2" || mismatch.StatsID != "999" {
		t.Errorf("unexpected mismatch details: %+v", mismatch)
	}
}
