package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// ErrBackendNotConfigured is returned in production mode when the backend endpoint or key is missing
var ErrBackendNotConfigured = errors.New("backend endpoint and API key are required in production")

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port    string `yaml:"port" env:"SERVER_PORT"`
		Mode    string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	// Backend is the hosted Postgres service the portal reads from
	Backend struct {
		URL    string `yaml:"url" env:"BACKEND_URL"`
		APIKey string `yaml:"api_key" env:"BACKEND_API_KEY"`
	} `yaml:"backend"`

	Database struct {
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Session struct {
		Secret        string `yaml:"secret" env:"SESSION_SECRET"`
		TTL           string `yaml:"ttl" env:"SESSION_TTL"`
		Issuer        string `yaml:"issuer" env:"SESSION_ISSUER"`
		SecureCookie  bool   `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE"`
		DefaultAvatar string `yaml:"default_avatar" env:"SESSION_DEFAULT_AVATAR"`
	} `yaml:"session"`

	Storage struct {
		Path   string `yaml:"path" env:"STORAGE_PATH"`
		Bucket string `yaml:"bucket" env:"STORAGE_BUCKET"`
	} `yaml:"storage"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = ModeDevelopment
	config.Server.BaseURL = "http://localhost:8080"

	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Session.TTL = "720h"
	config.Session.Issuer = "studentportal"
	config.Session.DefaultAvatar = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1"

	config.Storage.Path = "storage"
	config.Storage.Bucket = "documents"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Student Portal"
	config.SMTP.FromEmail = "no-reply@university.edu"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	mode := strings.ToLower(config.Server.Mode)
	if mode != ModeDevelopment && mode != ModeProduction {
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}
	config.Server.Mode = mode

	if mode == ModeProduction {
		if config.Backend.URL == "" || config.Backend.APIKey == "" {
			return ErrBackendNotConfigured
		}
		if config.Session.Secret == "" {
			return fmt.Errorf("session secret is required in production")
		}
	}

	if config.Backend.URL != "" {
		if _, err := url.Parse(config.Backend.URL); err != nil {
			return fmt.Errorf("invalid backend URL: %w", err)
		}
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if strings.TrimSpace(config.Storage.Bucket) == "" {
		return fmt.Errorf("storage bucket is required")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == ModeProduction
}

// UseMockBackend reports whether the in-memory data set replaces the hosted backend.
// Only development mode falls back; production refuses to start without a backend.
func (c *Config) UseMockBackend() bool {
	return !c.IsProduction() && (c.Backend.URL == "" || c.Backend.APIKey == "")
}

// GetBackendConnectionString returns the backend URL with the API key filled in as password
// when the URL does not carry one.
func (c *Config) GetBackendConnectionString() (string, error) {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse backend URL: %w", err)
	}

	if u.User == nil {
		u.User = url.UserPassword("postgres", c.Backend.APIKey)
	} else if _, hasPassword := u.User.Password(); !hasPassword {
		u.User = url.UserPassword(u.User.Username(), c.Backend.APIKey)
	}

	return u.String(), nil
}
