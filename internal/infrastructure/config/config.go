package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreDriver selects the shipment store: "memory" or "mongo".
	StoreDriver  string `env:"STORE_DRIVER,   default=memory"`
	SeedMockData bool   `env:"SEED_MOCK_DATA, default=true"`

	Simulation SimulationConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type SimulationConfig struct {
	Interval time.Duration `env:"SIMULATION_INTERVAL, default=7s"`
	Workers  int           `env:"SIMULATION_WORKERS,  default=8"`
	// JitterSeed fixes the event time jitter. Zero seeds from the clock.
	JitterSeed uint64 `env:"JITTER_SEED, default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tracking_simulator"`
}

// RedisConfig configures the shared locker and watchlist. An empty Addr keeps
// both in process memory.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB, default=0"`
	LockTTL time.Duration `env:"LOCK_TTL, default=30s"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Simulation.Interval <= 0 {
		return fmt.Errorf("config: SIMULATION_INTERVAL must be positive, got %s", c.Simulation.Interval)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("config: SIMULATION_WORKERS must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}
