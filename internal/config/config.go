package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ECOTRIVIA_HTTP_ADDR.
const EnvPrefix = "ECOTRIVIA"

// Config holds the application configuration.
type Config struct {
	HTTPAddr  string        `mapstructure:"HTTP_ADDR"`
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	KeyPrefix     string `mapstructure:"KEY_PREFIX"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`

	BroadcastDriver  string `mapstructure:"BROADCAST_DRIVER"`
	BroadcastChannel string `mapstructure:"BROADCAST_CHANNEL"`
	NATSURL          string `mapstructure:"NATS_URL"`

	CatalogPath      string        `mapstructure:"CATALOG_PATH"`
	PollInterval     time.Duration `mapstructure:"POLL_INTERVAL"`
	SweepInterval    time.Duration `mapstructure:"SWEEP_INTERVAL"`
	StaleAfter       time.Duration `mapstructure:"STALE_AFTER"`
	TickInterval     time.Duration `mapstructure:"TICK_INTERVAL"`
	PresenceInterval time.Duration `mapstructure:"PRESENCE_INTERVAL"`
	UseTimeLimit     bool          `mapstructure:"USE_TIME_LIMIT"`

	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Storage and broadcast drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverLocal    = "local"
	DriverNATS     = "nats"
)

// RegisterFlags adds the shared flags to fs. Flag names are the lower-case,
// dash-separated form of the mapstructure keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.String("http-addr", ":8080", "address to listen on (env: ECOTRIVIA_HTTP_ADDR)")
	fs.String("jwt-secret", "", "secret used to sign session tokens (env: ECOTRIVIA_JWT_SECRET)")
	fs.Duration("jwt-ttl", 7*24*time.Hour, "lifetime of session tokens (env: ECOTRIVIA_JWT_TTL)")
	fs.Duration("session-idle-timeout", 30*time.Minute, "close sessions without requests or streams for this long, 0 disables (env: ECOTRIVIA_SESSION_IDLE_TIMEOUT)")
	fs.String("storage-driver", DriverMemory, "room storage: memory, sqlite, postgres or redis (env: ECOTRIVIA_STORAGE_DRIVER)")
	fs.String("database-url", "ecotrivia.db", "sqlite path or postgres dsn (env: ECOTRIVIA_DATABASE_URL)")
	fs.String("key-prefix", "ecotrivia-", "prefix of the shared record keys (env: ECOTRIVIA_KEY_PREFIX)")
	fs.String("redis-addr", "localhost:6379", "redis address for the redis drivers (env: ECOTRIVIA_REDIS_ADDR)")
	fs.String("broadcast-driver", DriverLocal, "change signals: local, redis or nats (env: ECOTRIVIA_BROADCAST_DRIVER)")
	fs.String("broadcast-channel", "ecotrivia.rooms", "pub/sub channel for change signals (env: ECOTRIVIA_BROADCAST_CHANNEL)")
	fs.String("nats-url", "nats://localhost:4222", "nats server url (env: ECOTRIVIA_NATS_URL)")
	fs.String("catalog-path", "", "question catalog json, empty for the built-in set (env: ECOTRIVIA_CATALOG_PATH)")
	fs.Duration("poll-interval", 5*time.Second, "unconditional reconciliation period (env: ECOTRIVIA_POLL_INTERVAL)")
	fs.Duration("sweep-interval", 10*time.Second, "room garbage collection period (env: ECOTRIVIA_SWEEP_INTERVAL)")
	fs.Duration("stale-after", 0, "sweep rooms untouched for this long, 0 disables (env: ECOTRIVIA_STALE_AFTER)")
	fs.Duration("tick-interval", time.Second, "question countdown step (env: ECOTRIVIA_TICK_INTERVAL)")
	fs.Duration("presence-interval", 10*time.Second, "online users refresh period (env: ECOTRIVIA_PRESENCE_INTERVAL)")
	fs.Bool("use-time-limit", false, "score the time bonus against the room's time limit instead of 30s (env: ECOTRIVIA_USE_TIME_LIMIT)")
	fs.String("log-level", "info", "debug, info, warn or error (env: ECOTRIVIA_LOG_LEVEL)")
	fs.Duration("shutdown-timeout", 10*time.Second, "grace period for shutdown (env: ECOTRIVIA_SHUTDOWN_TIMEOUT)")
}

// Load resolves the configuration from flags, ECOTRIVIA_* environment
// variables and an optional .env file, in that order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		slog.Debug(".env file not found, loading from flags and environment variables")
	}

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		bindErr = errors.Join(bindErr, v.BindPFlag(key, f))
	})
	if bindErr != nil {
		return nil, bindErr
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks driver names and periods.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	switch c.BroadcastDriver {
	case DriverLocal, DriverRedis, DriverNATS:
	default:
		return fmt.Errorf("unknown broadcast driver %q", c.BroadcastDriver)
	}
	if c.KeyPrefix == "" {
		return errors.New("key prefix must not be empty")
	}
	for name, d := range map[string]time.Duration{
		"session-idle-timeout": c.SessionIdleTimeout,
		"poll-interval":        c.PollInterval,
		"sweep-interval":       c.SweepInterval,
		"stale-after":          c.StaleAfter,
		"tick-interval":        c.TickInterval,
		"presence-interval":    c.PresenceInterval,
		"shutdown-timeout":     c.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative: %s", name, d)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
