package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/dsimpson1980/yff/controller"
	"github.com/dsimpson1980/yff/db"
	"github.com/dsimpson1980/yff/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) CurrentWeek() int {
	args := c.Called()
	return args.Int(0)
}

func (c *C) AssembleRosters(ctx context.Context, week int) ([]*model.Team, error) {
	args := c.Called(ctx, week)

	var teams []*model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]*model.Team)
	}

	return teams, args.Error(1)
}

func (c *C) LoadStatCategories(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) StatCatalog() *model.StatCatalog {
	args := c.Called()

	var catalog *model.StatCatalog
	if args.Get(0) != nil {
		catalog = args.Get(0).(*model.StatCatalog)
	}

	return catalog
}

func (c *C) OnPointsChange(fn controller.PointsListener) {
	c.Called(fn)
}

func (c *C) RunLiveUpdates(teams []*model.Team, week int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(teams, week, frequency, shutdown, wg)
}

func (c *C) GetPlayerScores(ctx context.Context, playerID string) ([]db.ScoreRecord, error) {
	args := c.Called(ctx, playerID)

	var scores []db.ScoreRecord
	if args.Get(0) != nil {
		scores = args.Get(0).([]db.ScoreRecord)
	}

	return scores, args.Error(1)
}
