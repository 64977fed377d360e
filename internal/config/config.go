package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/goserg/inhouse/internal/auth"
	"github.com/goserg/inhouse/internal/balance"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/elo"
)

const DefaultPath = "configs/server.toml"

type Server struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Debug    bool   `toml:"debug_mode"`
	LogLevel string `toml:"log_level"`
}

type Storage struct {
	SqliteFile string `toml:"sqlite_file"`
}

type Rating struct {
	Iterations   int     `toml:"iterations"`
	LearningRate float64 `toml:"learning_rate"`
	// MaxHistory keeps only the newest entries when estimating, 0 keeps all.
	MaxHistory int `toml:"max_history"`
}

type Streak struct {
	MaxDays int `toml:"max_days"`
}

type Draft struct {
	Strategy     string `toml:"strategy"`
	HeroesShown  int    `toml:"heroes_shown"`
	RerollLimit  int    `toml:"reroll_limit"`
	RerollWindow string `toml:"reroll_window"`
	Seed         int64  `toml:"seed"`
}

func (d Draft) Limit() (draft.RerollLimit, error) {
	window, err := time.ParseDuration(d.RerollWindow)
	if err != nil {
		return draft.RerollLimit{}, fmt.Errorf("reroll_window: %w", err)
	}
	return draft.RerollLimit{Count: d.RerollLimit, Window: window}, nil
}

type Config struct {
	Server  Server          `toml:"server"`
	Storage Storage         `toml:"storage"`
	Rating  Rating          `toml:"rating"`
	Pity    balance.Options `toml:"pity"`
	Streak  Streak          `toml:"streak"`
	Draft   Draft           `toml:"draft"`
	Auth    auth.Config     `toml:"auth"`
}

func Default() Config {
	return Config{
		Server: Server{
			Host:     "127.0.0.1",
			Port:     3000,
			LogLevel: "info",
		},
		Storage: Storage{SqliteFile: "inhouse.sqlite"},
		Rating: Rating{
			Iterations:   elo.DefaultIterations,
			LearningRate: elo.DefaultLearningRate,
		},
		Pity: balance.DefaultOptions(),
		Draft: Draft{
			Strategy:     draft.KindRandom,
			HeroesShown:  draft.DefaultHeroesShown,
			RerollLimit:  3,
			RerollWindow: "1h",
		},
		Auth: auth.Config{Expiration: "720h"},
	}
}

// New loads the file named by INHOUSE_CONFIG, or DefaultPath.
func New() (Config, error) {
	path := os.Getenv("INHOUSE_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	port := os.Getenv("INHOUSE_PORT")
	if port != "" {
		cfg.Server.Port, err = strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("INHOUSE_PORT: %w", err)
		}
	}
	secret := os.Getenv("INHOUSE_AUTH_SECRET")
	if secret != "" {
		cfg.Auth.Secret = secret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Draft.Strategy {
	case draft.KindRandom, draft.KindTagged:
	default:
		return fmt.Errorf("%w: %s", draft.ErrUnknownStrategy, c.Draft.Strategy)
	}
	if c.Draft.HeroesShown < 1 {
		return fmt.Errorf("heroes_shown must be positive, got %d", c.Draft.HeroesShown)
	}
	if _, err := c.Draft.Limit(); err != nil {
		return err
	}
	if c.Auth.Secret != "" {
		if _, err := time.ParseDuration(c.Auth.Expiration); err != nil {
			return fmt.Errorf("auth expiration: %w", err)
		}
	}
	return nil
}
