// Package config loads application settings from the environment. A .env
// file, when present, is loaded first; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"stockroom/internal/infrastructure/storage/postgres"
)

// Config groups the application settings.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Log  LogConfig
	DB   DBConfig
	Auth AuthConfig
	Seed SeedConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env string // development, production
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// DBConfig holds the storage target and pool size.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Schema   string
	SSLMode  string
	MaxConns int
}

// Settings converts the target to postgres.Settings.
func (c DBConfig) Settings() postgres.Settings {
	return postgres.Settings{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.User,
		Password: c.Password,
		Schema:   c.Schema,
		SSLMode:  c.SSLMode,
	}
}

// AuthConfig holds the access gate settings. An empty PasswordHash
// disables the gate.
type AuthConfig struct {
	PasswordHash string
	JWTSecret    string
	JWTTTL       time.Duration
}

// SeedConfig drives cmd/seed.
type SeedConfig struct {
	DemoData bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SCHEMA", "stockroom")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)

	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 8*time.Hour)

	v.SetDefault("SEED_DEMO_DATA", false)
}

// Load reads the configuration. envFiles default to ".env"; missing files
// are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		HTTP: HTTPConfig{
			Port:            v.GetInt("HTTP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Schema:   v.GetString("DB_SCHEMA"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			PasswordHash: v.GetString("AUTH_PASSWORD_HASH"),
			JWTSecret:    v.GetString("JWT_SECRET"),
			JWTTTL:       v.GetDuration("JWT_TTL"),
		},
		Seed: SeedConfig{
			DemoData: v.GetBool("SEED_DEMO_DATA"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		return fmt.Errorf("DB_PORT out of range: %d", c.DB.Port)
	}
	if strings.TrimSpace(c.DB.Schema) == "" {
		return errors.New("DB_SCHEMA is required")
	}
	if c.Auth.PasswordHash != "" && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_PASSWORD_HASH is set")
	}
	if c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive: %s", c.Auth.JWTTTL)
	}
	return nil
}
