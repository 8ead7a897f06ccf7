package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != StoreMemory || !cfg.SeedMockData {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Simulation.Interval != 7*time.Second || cfg.Simulation.Workers != 8 {
		t.Errorf("unexpected simulation defaults %+v", cfg.Simulation)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis must be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.IsProduction() {
		t.Error("default env is not production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                "9090",
		"ENV":                 "Production",
		"STORE_DRIVER":        "MONGO",
		"SIMULATION_INTERVAL": "250ms",
		"JITTER_SEED":         "42",
		"REDIS_ADDR":          "localhost:6379",
		"LOCK_TTL":            "5s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.StoreDriver != StoreMongo || !cfg.IsProduction() {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Simulation.Interval != 250*time.Millisecond || cfg.Simulation.JitterSeed != 42 {
		t.Errorf("unexpected simulation config %+v", cfg.Simulation)
	}
	if cfg.Redis.LockTTL != 5*time.Second {
		t.Errorf("unexpected lock ttl %v", cfg.Redis.LockTTL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":   {"STORE_DRIVER": "sqlite"},
		"interval": {"SIMULATION_INTERVAL": "0s"},
		"workers":  {"SIMULATION_WORKERS": "0"},
		"parse":    {"SIMULATION_WORKERS": "many"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
