package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"

	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionCookie = "cookie"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// ExposeInternalErrors puts the raw error message into 500 responses.
	ExposeInternalErrors bool `env:"EXPOSE_INTERNAL_ERRORS, default=true"`

	Storage string `env:"STORAGE, default=memory"`

	Admin   AdminConfig
	Session SessionConfig
	Bot     BotConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
}

// AdminConfig is the admin seeded at startup when both fields are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type SessionConfig struct {
	Backend    string        `env:"SESSION_BACKEND, default=memory"`
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL,     default=24h"`
	CookieName string        `env:"SESSION_COOKIE,  default=quiz_session"`
}

type BotConfig struct {
	Workers int    `env:"BOT_WORKERS, default=4"`
	Secret  string `env:"BOT_SECRET"`
	Reply   string `env:"BOT_REPLY"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quiz_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=quiz.db"`
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Session.Backend == SessionRedis
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageMongo, StorageSQLite:
	default:
		return fmt.Errorf("config: unknown STORAGE %q", c.Storage)
	}

	switch c.Session.Backend {
	case SessionMemory, SessionRedis:
	case SessionCookie:
		if c.Session.Secret == "" {
			return errors.New("config: SESSION_SECRET is required for the cookie session backend")
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	if c.Session.TTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}

// Load reads an optional .env file and then the environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
