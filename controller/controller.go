package controller

import (
	"context"
	"sync"
	"time"

	"github.com/dsimpson1980/yff/auth"
	"github.com/dsimpson1980/yff/db"
	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/platforms/yahoo"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

// C encapsulates the dashboard's business logic without worrying about any
// presentation layers.
type C interface {
	// CurrentWeek resolves today against the season calendar, falling back
	// to week 1 outside the season.
	CurrentWeek() int

	// AssembleRosters fetches and merges the roster and stats queries for
	// every team in the league.
	AssembleRosters(ctx context.Context, week int) ([]*model.Team, error)

	// LoadStatCategories fetches the scoring category catalog, replacing
	// any previously loaded one.
	LoadStatCategories(ctx context.Context) error
	StatCatalog() *model.StatCatalog

	// OnPointsChange registers a listener invoked for every observed
	// change to a player's point total. Register before starting the
	// live update loop.
	OnPointsChange(fn PointsListener)
	RunLiveUpdates(teams []*model.Team, week int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	GetPlayerScores(ctx context.Context, playerID string) ([]db.ScoreRecord, error)
}

// Settings is the static league configuration the controller operates on.
type Settings struct {
	LeagueKey model.LeagueKey
	TeamCount int
	Season    model.Season
}

type controller struct {
	clock    clock.Clock
	yahoo    *yahoo.Client
	tokens   *auth.Cache
	db       db.DB
	settings Settings
	log      zerolog.Logger

	mu        sync.Mutex
	catalog   *model.StatCatalog
	listeners []PointsListener
}

func New(clock clock.Clock, yahooClient *yahoo.Client, tokens *auth.Cache, database db.DB, settings Settings, log zerolog.Logger) (C, error) {
	c := &controller{
		clock:    clock,
		yahoo:    yahooClient,
		tokens:   tokens,
		db:       database,
		settings: settings,
		log:      log,
	}
	return c, nil
}

func (c *controller) CurrentWeek() int {
	week, ok := c.settings.Season.WeekFor(c.clock.Now())
	if !ok {
		return 1
	}
	return week
}

func (c *controller) GetPlayerScores(ctx context.Context, playerID string) ([]db.ScoreRecord, error) {
	return c.db.GetPlayerScores(ctx, playerID)
}
