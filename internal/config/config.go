package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Answer store backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	Questions Questions `yaml:"questions"`
	Answers   Answers   `yaml:"answers"`
	Sessions  Sessions  `yaml:"sessions"`
	Redis     Redis     `yaml:"redis"`
	Postgres  Postgres  `yaml:"postgres"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

// Questions selects where the bank is loaded from. Source is "file" or "postgres".
type Questions struct {
	Source string `yaml:"source" env:"QUESTIONS_SOURCE"`
	Path   string `yaml:"path" env:"QUESTIONS_PATH"`
	TTL    string `yaml:"ttl" env:"QUESTIONS_TTL"`
}

type Answers struct {
	Backend    string `yaml:"backend" env:"ANSWERS_BACKEND"`
	Path       string `yaml:"path" env:"ANSWERS_PATH"`
	SQLitePath string `yaml:"sqlite_path" env:"ANSWERS_SQLITE_PATH"`
}

type Sessions struct {
	TTL string `yaml:"ttl" env:"SESSIONS_TTL"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type Postgres struct {
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

// EnvPrefix prefixes every environment override, e.g. QUIZ_ANSWERS_BACKEND.
const EnvPrefix = "QUIZ_"

// Load reads YAML config from path, then applies QUIZ_* environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Questions.Source == "" {
		c.Questions.Source = "file"
	}
	if c.Questions.Path == "" {
		c.Questions.Path = "preguntas.json"
	}
	if c.Answers.Backend == "" {
		c.Answers.Backend = BackendFile
	}
	if c.Answers.Path == "" {
		c.Answers.Path = "respuestas.json"
	}
	if c.Answers.SQLitePath == "" {
		c.Answers.SQLitePath = "respuestas.db"
	}
}

func (c Config) validate() error {
	switch c.Answers.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("answers backend %q needs postgres.url", c.Answers.Backend)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("answers backend %q needs redis.addr", c.Answers.Backend)
		}
	default:
		return fmt.Errorf("unknown answers backend %q", c.Answers.Backend)
	}
	switch c.Questions.Source {
	case "file":
	case "postgres":
		if c.Postgres.URL == "" {
			return fmt.Errorf("questions source postgres needs postgres.url")
		}
	default:
		return fmt.Errorf("unknown questions source %q", c.Questions.Source)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
