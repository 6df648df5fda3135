package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port" env:"PORT"`
}

type MemgraphConfig struct {
	URI                   string `toml:"uri" env:"MEMGRAPH_URI"`
	User                  string `toml:"user" env:"MEMGRAPH_USER"`
	Password              string `toml:"password" env:"MEMGRAPH_PASSWORD"`
	MaxPoolSize           int    `toml:"max_pool_size" env:"MEMGRAPH_MAX_POOL_SIZE"`
	ConnectTimeoutSeconds int    `toml:"connect_timeout_seconds" env:"MEMGRAPH_TIMEOUT_SECONDS"`
	BuildIndices          bool   `toml:"build_indices" env:"MEMGRAPH_BUILD_INDICES"`
}

type RedisConfig struct {
	URL        string `toml:"url" env:"REDIS_URL"`
	TTLSeconds int    `toml:"ttl_seconds" env:"REDIS_TTL_SECONDS"`
}

type LogConfig struct {
	Mode string `toml:"mode" env:"LOG_MODE"`
}

type ConcurrencyConfig struct {
	// Validation caps the number of remote validation queries in flight per request.
	Validation int `toml:"validation" env:"VALIDATION_CONCURRENCY"`
}

type LimitsConfig struct {
	List int `toml:"list" env:"LIST_LIMIT"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Redis       RedisConfig       `toml:"redis"`
	Log         LogConfig         `toml:"log"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Limits      LimitsConfig      `toml:"limits"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Memgraph: MemgraphConfig{
			URI:                   "bolt://localhost:7687",
			MaxPoolSize:           50,
			ConnectTimeoutSeconds: 10,
			BuildIndices:          true,
		},
		Redis:       RedisConfig{TTLSeconds: 300},
		Log:         LogConfig{Mode: "development"},
		Concurrency: ConcurrencyConfig{Validation: 8},
		Limits:      LimitsConfig{List: 1000},
	}
}

// Load reads the TOML file at path on top of Default, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if cfg.Concurrency.Validation < 1 {
		cfg.Concurrency.Validation = 1
	}
	if cfg.Limits.List < 1 {
		cfg.Limits.List = Default().Limits.List
	}
	return nil
}
