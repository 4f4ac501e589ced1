package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTournamentsPath   = "tournaments.json"
	DefaultResultsBaseURL    = "https://lichess.org/api/tournament"
	DefaultResultsLimit      = 200
	DefaultRequestsPerSecond = 2.0
	DefaultRequestTimeout    = 30 * time.Second
	DefaultHTTPAddress       = ":8080"
	DefaultNATSSubject       = "leaderboard.standings.computed"
)

// Config struct to hold the configuration settings
type Config struct {
	Source        SourceConfig        `yaml:"source"`
	Leaderboard   LeaderboardConfig   `yaml:"leaderboard"`
	HTTP          HTTPConfig          `yaml:"http"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// SourceConfig holds where tournament ids and results come from.
type SourceConfig struct {
	// TournamentsPath is a local file or an http(s) URL.
	TournamentsPath   string        `yaml:"tournaments_path"`
	ResultsBaseURL    string        `yaml:"results_base_url"`
	ResultsLimit      int           `yaml:"results_limit"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	UserAgent         string        `yaml:"user_agent"`
}

// LeaderboardConfig holds scoring options.
type LeaderboardConfig struct {
	Variant string `yaml:"variant"` // detailed|overall
	Title   string `yaml:"title"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
	// TrustProxyHeaders keys client throttling on X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// NATSConfig holds NATS configuration for publishing computed standings.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	ServiceName string `yaml:"service_name"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.NATS.Enabled && cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TOURNAMENTS_PATH"); v != "" {
		cfg.Source.TournamentsPath = v
	}
	if v := os.Getenv("RESULTS_BASE_URL"); v != "" {
		cfg.Source.ResultsBaseURL = v
	}
	if v := os.Getenv("RESULTS_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RESULTS_LIMIT value: %v", err)
		}
		cfg.Source.ResultsLimit = n
	}
	if v := os.Getenv("REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid REQUESTS_PER_SECOND value: %v", err)
		}
		cfg.Source.RequestsPerSecond = f
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT value: %v", err)
		}
		cfg.Source.RequestTimeout = d
	}
	if v := os.Getenv("LEADERBOARD_VARIANT"); v != "" {
		cfg.Leaderboard.Variant = v
	}
	if v := os.Getenv("LEADERBOARD_TITLE"); v != "" {
		cfg.Leaderboard.Title = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_TRUST_PROXY_HEADERS"); v != "" {
		cfg.HTTP.TrustProxyHeaders = v == "true"
	}
	if v := os.Getenv("NATS_ENABLED"); v != "" {
		cfg.NATS.Enabled = v == "true"
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_SUBJECT"); v != "" {
		cfg.NATS.Subject = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source.TournamentsPath == "" {
		c.Source.TournamentsPath = DefaultTournamentsPath
	}
	if c.Source.ResultsBaseURL == "" {
		c.Source.ResultsBaseURL = DefaultResultsBaseURL
	}
	if c.Source.ResultsLimit <= 0 {
		c.Source.ResultsLimit = DefaultResultsLimit
	}
	if c.Source.RequestsPerSecond <= 0 {
		c.Source.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Source.RequestTimeout <= 0 {
		c.Source.RequestTimeout = DefaultRequestTimeout
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = "team-leaderboard/1.0"
	}
	if c.Leaderboard.Title == "" {
		c.Leaderboard.Title = "Team Leaderboard"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = DefaultHTTPAddress
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = DefaultNATSSubject
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "team-leaderboard"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}
