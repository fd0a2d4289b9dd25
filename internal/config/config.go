// Package config содержит логику чтения конфигурации сервера учёта бонусов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultCacheTTL   = 5 * time.Minute
)

// Config содержит параметры конфигурации сервера учёта бонусов.
type Config struct {
	RunAddress     string        `env:"RUN_ADDRESS"`
	DatabaseURI    string        `env:"DATABASE_URI"`
	SeedFile       string        `env:"SEED_FILE"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CacheTTL       time.Duration `env:"CACHE_TTL"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST"`
}

// Parse считывает конфигурацию из файла .env, флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envSeedFile := cfg.SeedFile
	envOrigins := cfg.AllowedOrigins
	envCacheTTL := cfg.CacheTTL
	envRPS := cfg.RateLimitRPS
	envBurst := cfg.RateLimitBurst

	var origins string
	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.SeedFile, "s", "", "YAML file with the bank and bonus catalog to seed")
	flag.StringVar(&origins, "cors", "", "comma separated list of allowed CORS origins")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", defaultCacheTTL, "lifetime of cached read results")
	flag.Float64Var(&cfg.RateLimitRPS, "rps", 0, "requests per second allowed on the API, 0 disables the limit")
	flag.IntVar(&cfg.RateLimitBurst, "burst", 0, "rate limiter burst size")

	flag.Parse()

	cfg.AllowedOrigins = splitList(origins)

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envSeedFile != "" {
		cfg.SeedFile = envSeedFile
	}
	if len(envOrigins) > 0 {
		cfg.AllowedOrigins = envOrigins
	}
	if envCacheTTL != 0 {
		cfg.CacheTTL = envCacheTTL
	}
	if envRPS != 0 {
		cfg.RateLimitRPS = envRPS
	}
	if envBurst != 0 {
		cfg.RateLimitBurst = envBurst
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = int(cfg.RateLimitRPS) + 1
	}

	return cfg, nil
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
