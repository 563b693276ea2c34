package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dsimpson1980/yff/model"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is everything the dashboard needs to run. It is loaded once from
// the YAML file under the cache directory and passed explicitly to the
// components that need it; there is no ambient global configuration.
type Config struct {
	ConsumerKey    string   `yaml:"consumer"`
	ConsumerSecret string   `yaml:"secret"`
	League         string   `yaml:"league"`
	LeagueNumber   int      `yaml:"league_number"`
	TeamCount      int      `yaml:"team_count"`
	Port           int      `yaml:"port"`
	DBPath         string   `yaml:"db_path"`
	SeasonStart    string   `yaml:"season_start"`
	PollInterval   Duration `yaml:"poll_interval"`
	HighlightFor   Duration `yaml:"highlight_for"`

	// CacheDir holds the config file, the token cache and the default
	// score database. Not part of the YAML document itself.
	CacheDir string `yaml:"-"`
}

// DefaultDir returns the per-user directory the app keeps its state in.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, "YahooFF"), nil
}

// Load reads dir/config.yaml, applies defaults and environment overrides
// and validates the result. A missing file is not an error; the environment
// can supply everything.
func Load(dir string, log zerolog.Logger) (*Config, error) {
	cfg := &Config{
		League:       "nfl",
		TeamCount:    12,
		Port:         3000,
		SeasonStart:  "2014-09-04",
		PollInterval: Duration(10 * time.Second),
		HighlightFor: Duration(3 * time.Second),
		CacheDir:     dir,
	}

	path := filepath.Join(dir, "config.yaml")
	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, fmt.Errorf("consumer key and secret are required, set them in %s or with YFF_CONSUMER_KEY/YFF_CONSUMER_SECRET", path)
	}
	if cfg.LeagueNumber == 0 {
		return nil, fmt.Errorf("league_number is required, set it in %s or with YFF_LEAGUE_NUMBER", path)
	}
	if cfg.TeamCount < 1 {
		return nil, fmt.Errorf("team_count must be positive, got %d", cfg.TeamCount)
	}
	if _, err := cfg.SeasonStartDate(); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "scores.db")
	}

	log.Info().
		Str("league_key", cfg.LeagueKey().String()).
		Int("team_count", cfg.TeamCount).
		Dur("poll_interval", time.Duration(cfg.PollInterval)).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) LeagueKey() model.LeagueKey {
	return model.NewLeagueKey(c.League, c.LeagueNumber)
}

func (c *Config) SeasonStartDate() (time.Time, error) {
	d, err := time.Parse(time.DateOnly, c.SeasonStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing season_start '%s': %w", c.SeasonStart, err)
	}
	return d, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("YFF_CONSUMER_KEY"); v != "" {
		cfg.ConsumerKey = v
	}
	if v := os.Getenv("YFF_CONSUMER_SECRET"); v != "" {
		cfg.ConsumerSecret = v
	}
	if v := os.Getenv("YFF_LEAGUE_NUMBER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LeagueNumber = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
}
