package config

import (
	"fmt"
	"os"
	"time"

	commoncfg "github.com/tuannt39-study/jhipster-sample/common/config"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Events backends
const (
	EventsNone  = "none"
	EventsRedis = "redis"
	EventsMQTT  = "mqtt"
)

// Config hr-admin（HTTP API + CLI）配置
type Config struct {
	HTTP struct {
		Addr        string   `env:"ADDR" envDefault:":8080"`
		CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:9000" envSeparator:","`
		MaxBodySize int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	} `envPrefix:"HTTP_"`

	// Default to true for local dev: if DB is unavailable, serve falls back to memory repos.
	DBEnabled bool                     `env:"DB_ENABLED" envDefault:"true"`
	Database  commoncfg.DatabaseConfig `envPrefix:"DB_"`

	RedisEnabled bool                  `env:"REDIS_ENABLED" envDefault:"false"`
	Redis        commoncfg.RedisConfig `envPrefix:"REDIS_"`
	MQTT         commoncfg.MQTTConfig  `envPrefix:"MQTT_"`

	Cache struct {
		TTL time.Duration `env:"TTL" envDefault:"5m"`
	} `envPrefix:"CACHE_"`

	Events struct {
		Backend string `env:"BACKEND" envDefault:"none"`
		Stream  string `env:"STREAM" envDefault:"hr:entity-events"`
		Topic   string `env:"TOPIC" envDefault:"hr/entity-events"`
	} `envPrefix:"EVENTS_"`

	Log struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"json"`
	} `envPrefix:"LOG_"`
}

// Load reads .env (if present) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// Overload is not used: real env vars win over .env values.
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	switch cfg.Events.Backend {
	case EventsNone, EventsRedis, EventsMQTT:
	default:
		return nil, fmt.Errorf("unknown EVENTS_BACKEND %q", cfg.Events.Backend)
	}
	return cfg, nil
}
