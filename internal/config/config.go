package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix — префикс переменных окружения, например CLASSROOM_BASE_URL.
const EnvPrefix = "CLASSROOM"

// Драйверы хранилища токена
const (
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var drivers = []string{DriverBolt, DriverRedis, DriverPostgres, DriverMemory}

// Config — настройки клиента.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	LogLevel slog.Level
	Token    TokenConfig
}

// TokenConfig — где хранится токен сессии между запусками.
type TokenConfig struct {
	Driver      string
	Path        string
	RedisAddr   string
	PostgresDSN string
}

// flagKeys связывает флаги командной строки с ключами конфига.
var flagKeys = map[string]string{
	"base-url":     "base_url",
	"timeout":      "timeout",
	"log-level":    "log_level",
	"token-driver": "token.driver",
	"token-path":   "token.path",
	"redis-addr":   "token.redis_addr",
	"postgres-dsn": "token.postgres_dsn",
}

// RegisterFlags добавляет флаги конфига в fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "API base URL")
	fs.Duration("timeout", 0, "timeout of one API call")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("token-driver", "", "session token storage: bolt, redis, postgres, memory")
	fs.String("token-path", "", "bolt file for the session token")
	fs.String("redis-addr", "", "redis address for the session token")
	fs.String("postgres-dsn", "", "postgres DSN for the session token")
	fs.String("env-file", ".env", "optional .env file")
}

// Load собирает конфиг: значения по умолчанию, .env, переменные окружения
// и флаги (в порядке возрастания приоритета). fs может быть nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("base_url", "http://localhost:8080/api")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("token.driver", DriverBolt)
	v.SetDefault("token.path", defaultTokenPath())
	v.SetDefault("token.redis_addr", "localhost:6379")
	v.SetDefault("token.postgres_dsn", "")

	dotEnvPath := ".env"
	if fs != nil {
		if f := fs.Lookup("env-file"); f != nil {
			dotEnvPath = f.Value.String()
		}
	}

	// load .env if it exists (ignore if it does not)
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err = godotenv.Load(dotEnvPath); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", dotEnvPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		BaseURL: v.GetString("base_url"),
		Timeout: v.GetDuration("timeout"),
		Token: TokenConfig{
			Driver:      strings.ToLower(v.GetString("token.driver")),
			Path:        v.GetString("token.path"),
			RedisAddr:   v.GetString("token.redis_addr"),
			PostgresDSN: v.GetString("token.postgres_dsn"),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if !slices.Contains(drivers, c.Token.Driver) {
		return fmt.Errorf("unknown token driver %q", c.Token.Driver)
	}

	if c.Token.Driver == DriverPostgres && c.Token.PostgresDSN == "" {
		return fmt.Errorf("postgres token driver requires a DSN")
	}

	return nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "classroom", "session.db")
}
