package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token; empty disables the bot
	DB               DB        `mapstructure:"database"`
	HTTP             HTTP      `mapstructure:"http"`
	Server           Server    `mapstructure:"server"`
	CORS             CORS      `mapstructure:"cors"`
	Quiz             Quiz      `mapstructure:"quiz"`
	Catalog          Catalog   `mapstructure:"catalog"`
	Reminders        Reminders `mapstructure:"reminders"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string.
func (db DB) DSN() string {
	return db.URL
}

type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Server struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Version         string        `mapstructure:"version"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Quiz struct {
	MaxRandomWords int `mapstructure:"max_random_words"` // upper bound for /random-words/{count}
}

type Catalog struct {
	SeedPath string `mapstructure:"seed_path"` // .json or .xlsx seed; empty means the bundled catalog
}

type Reminders struct {
	Schedule  string `mapstructure:"schedule"` // cron spec, UTC
	BatchSize int    `mapstructure:"batch_size"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// .env is optional; values already present in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.version", "dev")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("quiz.max_random_words", 100)
	v.SetDefault("catalog.seed_path", "")
	v.SetDefault("reminders.schedule", "0 18 * * *")
	v.SetDefault("reminders.batch_size", 100)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	return &cfg, nil
}

// TelegramEnabled reports whether the bot and its reminders should run.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIToken != ""
}
