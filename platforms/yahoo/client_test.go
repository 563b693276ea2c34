package yahoo

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/testutils"
)

func TestGetRoster(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()

	c := NewForTest(fakeYahoo.URL())

	roster, err := c.GetRoster(context.Background(), http.DefaultClient, testutils.YahooTeam1Key, 1)
	if err != nil {
		t.Fatalf("unexpected error getting roster: %v", err)
	}

	if roster.TeamKey != testutils.YahooTeam1Key {
		t.Errorf("unexpected team key: %s", roster.TeamKey)
	}
	if roster.Name != "Gehlken" {
		t.Errorf("unexpected team name: %s", roster.Name)
	}

	bye7, bye6, bye11 := 7, 6, 11
	expected := []RosterEntry{
		{PlayerID: "29288", FirstName: "Tyler", LastName: "Boyd", FullName: "Tyler Boyd", Position: model.POS_WR, ByeWeek: &bye7},
		{PlayerID: "30150", FirstName: "Zay", LastName: "Jones", FullName: "Zay Jones", Position: model.POS_BENCH, ByeWeek: &bye6},
		{PlayerID: "31012", FirstName: "Mike", LastName: "Gesicki", FullName: "Mike Gesicki", Position: model.POS_TE, ByeWeek: &bye11},
	}
	if !reflect.DeepEqual(expected, roster.Players) {
		t.Errorf("expected %+v, got %+v", expected, roster.Players)
	}
}

func TestGetRosterStats(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()

	c := NewForTest(fakeYahoo.URL())

	stats, err := c.GetRosterStats(context.Background(), http.DefaultClient, testutils.YahooTeam1Key, 1)
	if err != nil {
		t.Fatalf("unexpected error getting roster stats: %v", err)
	}

	expected := []StatLine{
		{PlayerID: "29288", Points: 10.0, Stats: map[int]float64{12: 64}},
		{PlayerID: "30150", Points: 0.0, Stats: map[int]float64{12: 0}},
		{PlayerID: "31012", Points: 7.5, Stats: map[int]float64{12: 41}},
	}
	if !reflect.DeepEqual(expected, stats.Lines) {
		t.Errorf("expected %+v, got %+v", expected, stats.Lines)
	}
}

func TestGetStatCategories(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()

	c := NewForTest(fakeYahoo.URL())

	categories, err := c.GetStatCategories(context.Background(), http.DefaultClient, testutils.YahooLeagueKey)
	if err != nil {
		t.Fatalf("unexpected error getting stat categories: %v", err)
	}

	expected := []model.StatCategory{
		{ID: 4, Name: "Pass Yds"},
		{ID: 5, Name: "Pass TD"},
		{ID: 9, Name: "Rush Yds"},
		{ID: 12, Name: "Rec Yds"},
	}
	if !reflect.DeepEqual(expected, categories) {
		t.Errorf("expected %v, got %v", expected, categories)
	}
}

func TestGetLeagueName(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()

	c := NewForTest(fakeYahoo.URL())

	name, err := c.GetLeagueName(context.Background(), http.DefaultClient, testutils.YahooLeagueKey)
	if err != nil {
		t.Fatalf("unexpected error getting league name: %v", err)
	}
	if name != "Y! Friends and Family League" {
		t.Errorf("league name was not expected value, got: %s", name)
	}
}

func TestGetLeagueName_badLeagueKey(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()

	c := NewForTest(fakeYahoo.URL())

	_, err := c.GetLeagueName(context.Background(), http.DefaultClient, "nfl.l.987")
	if err == nil {
		t.Fatal("expected an error, but got none")
	}
}

func TestGetRoster_authExpired(t *testing.T) {
	fakeYahoo := testutils.NewFakeYahooServer()
	defer fakeYahoo.Close()
	fakeYahoo.ExpireAuth(true)

	c := NewForTest(fakeYahoo.URL())

	_, err := c.GetRoster(context.Background(), http.DefaultClient, testutils.YahooTeam1Key, 1)
	if !errors.Is(err, ErrAuthExpired) {
		t.Errorf("expected ErrAuthExpired, got %v", err)
	}
}
