package testutils

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

const (
	YahooLeagueKey = "nfl.l.431"
	YahooTeam1Key  = "nfl.l.431.t.1"
	YahooTeam2Key  = "nfl.l.431.t.2"
	YahooTeamCount = 2
)

//go:embed yahoodata
var yahoodata embed.FS

type fakePlayer struct {
	ID       string
	First    string
	Last     string
	Full     string
	Position string
	ByeWeek  string
	Points   float64
	Stats    map[int]float64
}

type fakeTeam struct {
	Key     string
	Name    string
	Players []*fakePlayer
}

// FakeYahooServer serves the league endpoints the client exercises. The
// roster and stats responses are rendered from in-memory state so tests can
// move a player's points between polls, drop a stats row to force a shape
// mismatch, or fail the stats endpoint entirely.
type FakeYahooServer struct {
	s *httptest.Server

	mu            sync.Mutex
	teams         map[string]*fakeTeam
	statsFailures int
	truncateStats map[string]bool
	authExpired   bool
}

func NewFakeYahooServer() *FakeYahooServer {
	f := &FakeYahooServer{
		teams:         defaultTeams(),
		truncateStats: make(map[string]bool),
	}

	r := chi.NewRouter()
	// https://fantasysports.yahooapis.com/fantasy/v2/team/nfl.l.431.t.1/roster;week=1
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Route("/league/{leagueKey}", func(r chi.Router) {
			r.Get("/", f.leagueMetadataHandler)
			r.Get("/settings", f.leagueSettingsHandler)
		})
		r.Route("/team/{teamKey}", func(r chi.Router) {
			r.Get("/{rosterVerb}", f.teamRosterHandler)
			r.Get("/{rosterVerb}/players/{statsVerb}", f.teamStatsHandler)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

// SetPoints changes the point total the stats endpoint reports for a player.
func (f *FakeYahooServer) SetPoints(teamKey, playerID string, points float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	team, ok := f.teams[teamKey]
	if !ok {
		return
	}
	for _, p := range team.Players {
		if p.ID == playerID {
			p.Points = points
		}
	}
}

// FailStatsRequests makes the next n stats requests return a 500.
func (f *FakeYahooServer) FailStatsRequests(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsFailures = n
}

// TruncateStats drops the final row from the team's stats response,
// leaving the roster response untouched.
func (f *FakeYahooServer) TruncateStats(teamKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.truncateStats[teamKey] = true
}

// ExpireAuth makes every endpoint answer 401 until re-enabled.
func (f *FakeYahooServer) ExpireAuth(expired bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authExpired = expired
}

func (f *FakeYahooServer) rejectExpired(w http.ResponseWriter) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authExpired {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("token expired"))
		return true
	}
	return false
}

func (f *FakeYahooServer) leagueMetadataHandler(w http.ResponseWriter, r *http.Request) {
	if f.rejectExpired(w) {
		return
	}
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}
	serveYahooFile(w, "league_metadata.xml")
}

func (f *FakeYahooServer) leagueSettingsHandler(w http.ResponseWriter, r *http.Request) {
	if f.rejectExpired(w) {
		return
	}
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("error"))
		return
	}
	serveYahooFile(w, "settings.xml")
}

func (f *FakeYahooServer) teamRosterHandler(w http.ResponseWriter, r *http.Request) {
	if f.rejectExpired(w) {
		return
	}
	if !strings.HasPrefix(chi.URLParam(r, "rosterVerb"), "roster") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	team, ok := f.teams[chi.URLParam(r, "teamKey")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("error"))
		return
	}

	var b bytes.Buffer
	writeHeader(&b, team)
	for _, p := range team.Players {
		fmt.Fprintf(&b, `      <player>
        <player_key>nfl.p.%s</player_key>
        <player_id>%s</player_id>
        <name><full>%s</full><first>%s</first><last>%s</last></name>
        <bye_weeks><week>%s</week></bye_weeks>
        <selected_position><position>%s</position></selected_position>
      </player>
`, p.ID, p.ID, p.Full, p.First, p.Last, p.ByeWeek, p.Position)
	}
	writeFooter(&b)

	serveXML(w, b.Bytes())
}

func (f *FakeYahooServer) teamStatsHandler(w http.ResponseWriter, r *http.Request) {
	if f.rejectExpired(w) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.statsFailures > 0 {
		f.statsFailures--
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("stats backend unavailable"))
		return
	}

	team, ok := f.teams[chi.URLParam(r, "teamKey")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("error"))
		return
	}

	players := team.Players
	if f.truncateStats[team.Key] && len(players) > 0 {
		players = players[:len(players)-1]
	}

	var b bytes.Buffer
	writeHeader(&b, team)
	for _, p := range players {
		fmt.Fprintf(&b, `      <player>
        <player_key>nfl.p.%s</player_key>
        <player_id>%s</player_id>
        <name><full>%s</full><first>%s</first><last>%s</last></name>
        <selected_position><position>%s</position></selected_position>
        <player_stats>
          <coverage_type>week</coverage_type>
          <stats>
`, p.ID, p.ID, p.Full, p.First, p.Last, p.Position)
		ids := make([]int, 0, len(p.Stats))
		for id := range p.Stats {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "            <stat><stat_id>%d</stat_id><value>%g</value></stat>\n", id, p.Stats[id])
		}
		fmt.Fprintf(&b, `          </stats>
        </player_stats>
        <player_points>
          <coverage_type>week</coverage_type>
          <total>%g</total>
        </player_points>
      </player>
`, p.Points)
	}
	writeFooter(&b)

	serveXML(w, b.Bytes())
}

func writeHeader(b *bytes.Buffer, team *fakeTeam) {
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<fantasy_content xml:lang="en-US" xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://fantasysports.yahooapis.com/fantasy/v2/base.rng">
  <team>
    <team_key>%s</team_key>
    <name>%s</name>
    <roster>
      <week>1</week>
      <players>
`, team.Key, team.Name)
}

func writeFooter(b *bytes.Buffer) {
	b.WriteString(`      </players>
    </roster>
  </team>
</fantasy_content>
`)
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Printf("error reading yahoodata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	serveXML(w, b)
}

func serveXML(w http.ResponseWriter, b []byte) {
	w.Header().Add("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func defaultTeams() map[string]*fakeTeam {
	return map[string]*fakeTeam{
		YahooTeam1Key: {
			Key:  YahooTeam1Key,
			Name: "Gehlken",
			Players: []*fakePlayer{
				{ID: "29288", First: "Tyler", Last: "Boyd", Full: "Tyler Boyd", Position: "WR", ByeWeek: "7", Points: 10.0, Stats: map[int]float64{12: 64}},
				{ID: "30150", First: "Zay", Last: "Jones", Full: "Zay Jones", Position: "BN", ByeWeek: "6", Points: 0.0, Stats: map[int]float64{12: 0}},
				{ID: "31012", First: "Mike", Last: "Gesicki", Full: "Mike Gesicki", Position: "TE", ByeWeek: "11", Points: 7.5, Stats: map[int]float64{12: 41}},
			},
		},
		YahooTeam2Key: {
			Key:  YahooTeam2Key,
			Name: "RotoExperts",
			Players: []*fakePlayer{
				{ID: "5228", First: "Aaron", Last: "Rodgers", Full: "Aaron Rodgers", Position: "QB", ByeWeek: "9", Points: 22.46, Stats: map[int]float64{4: 286, 5: 2}},
				{ID: "24793", First: "Seattle", Full: "Seattle", Position: "DEF", Points: 8.0, Stats: map[int]float64{}},
				{ID: "9317", First: "Devonta", Last: "Freeman", Full: "Devonta Freeman", Position: "BN", ByeWeek: "10", Points: 0.0, Stats: map[int]float64{9: 0}},
			},
		},
	}
}

const forbiddenMessage = `<?xml version="1.0" encoding="UTF-8"?>
<error xml:lang="en-us" yahoo:uri="http://fantasysports.yahooapis.com/fantasy/v2/league/nfl.l.149975"
xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://www.yahooapis.com/v1/base.rng">
    <description>You are not allowed to view this page because you are not in this league.</description>
    <detail/>
</error>`
