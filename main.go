package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/dsimpson1980/yff/auth"
	"github.com/dsimpson1980/yff/config"
	"github.com/dsimpson1980/yff/controller"
	"github.com/dsimpson1980/yff/db"
	"github.com/dsimpson1980/yff/model"
	"github.com/dsimpson1980/yff/platforms/yahoo"
	"github.com/dsimpson1980/yff/web"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	dir, err := config.DefaultDir()
	if err != nil {
		log.Fatal().Err(err).Msg("error finding config directory")
	}

	cfg, err := config.Load(dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	clock := clock.New()

	database, err := db.New(context.Background(), cfg.DBPath, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening score database")
	}
	defer database.Close()

	yahooClient, err := yahoo.New()
	if err != nil {
		log.Fatal().Err(err).Msg("error creating yahoo client")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ConsumerKey,
		ClientSecret: cfg.ConsumerSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
			TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
		},
		RedirectURL: "oob",
	}

	tokenStore, err := auth.NewFileStore(cfg.CacheDir)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token store")
	}
	tokens := auth.NewCache(oauthConfig, tokenStore, clock, terminalVerifier, log)

	seasonStart, err := cfg.SeasonStartDate()
	if err != nil {
		log.Fatal().Err(err).Msg("error in season configuration")
	}

	settings := controller.Settings{
		LeagueKey: cfg.LeagueKey(),
		TeamCount: cfg.TeamCount,
		Season:    model.NewSeason(seasonStart),
	}

	ctrl, err := controller.New(clock, yahooClient, tokens, database, settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating a new controller")
	}

	ctx := context.Background()
	week := ctrl.CurrentWeek()

	teams, err := ctrl.AssembleRosters(ctx, week)
	if err != nil {
		if errors.Is(err, auth.ErrAuthDenied) {
			log.Fatal().Msg("cannot continue without authorization")
		}
		log.Fatal().Err(err).Int("week", week).Msg("error loading rosters")
	}

	if err := ctrl.LoadStatCategories(ctx); err != nil {
		log.Fatal().Err(err).Msg("error loading stat categories")
	}

	tracker := web.NewHighlightTracker(clock, cfg.HighlightFor.Std())
	ctrl.OnPointsChange(func(change controller.PointsChange) {
		tracker.Mark(change.PlayerID)
	})

	server, err := web.NewServer(cfg.Port, ctrl, teams, week, tracker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)
		tracker.Stop()

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Poll the live scoreboard until shutdown.
	wg.Add(1)
	go ctrl.RunLiveUpdates(teams, week, cfg.PollInterval.Std(), shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Info().Msg("server shutdown")
}

// terminalVerifier prints the authorization URL and reads the verifier code
// from stdin. An empty line means the user declined.
func terminalVerifier(authURL string) (string, error) {
	fmt.Printf("Visit the following URL and approve access:\n\n  %s\n\nEnter the verifier code (blank to cancel): ", authURL)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading verifier code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
