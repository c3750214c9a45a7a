package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Collector struct {
	ListenAddr string `env:"COLLECTOR_LISTEN_ADDR" envDefault:":8080"`
	DBDSN      string `env:"COLLECTOR_DB_DSN,required,notEmpty"`

	// APIKey gates the ingest endpoint. Read endpoints stay open.
	APIKey string `env:"COLLECTOR_API_KEY"`

	MigrationsDir string `env:"COLLECTOR_MIGRATIONS_DIR" envDefault:"migrations"`

	// MaxLeaderboardLimit caps the limit query parameter on read endpoints.
	MaxLeaderboardLimit int `env:"COLLECTOR_MAX_LIMIT" envDefault:"100"`
}

func LoadCollector() (Collector, error) {
	var cfg Collector
	if err := env.Parse(&cfg); err != nil {
		return Collector{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.MaxLeaderboardLimit <= 0 {
		cfg.MaxLeaderboardLimit = 100
	}
	return cfg, nil
}
