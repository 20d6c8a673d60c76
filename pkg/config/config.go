package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Auth modes.
const (
	AuthPrivateToken = "private_token"
	AuthOAuth2       = "oauth2"
)

// API versions.
const (
	APIVersionAuto = "auto"
	APIVersionV4   = "v4"
	APIVersionV3   = "v3"
)

// Config is the root configuration for glprojects.
type Config struct {
	GitLab GitLabConfig `yaml:"gitlab"`
}

// GitLabConfig contains GitLab API settings.
type GitLabConfig struct {
	URL                string          `yaml:"url"`
	Token              string          `yaml:"token"`
	Auth               string          `yaml:"auth"`
	APIVersion         string          `yaml:"api_version"`
	Timeout            time.Duration   `yaml:"timeout"`
	InsecureSkipVerify bool            `yaml:"insecure_skip_verify"`
	UserAgent          string          `yaml:"user_agent"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles outgoing API calls on the client side.
// RequestsPerSecond of 0 disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Load reads and parses configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML configuration, expanding environment variables first.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a configuration from GITLAB_URL and GITLAB_TOKEN.
func FromEnv() (*Config, error) {
	cfg := Config{
		GitLab: GitLabConfig{
			URL:   os.Getenv("GITLAB_URL"),
			Token: os.Getenv("GITLAB_TOKEN"),
		},
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR} and $VAR patterns with environment variable values.
func expandEnvVars(s string) string {
	// Match ${VAR} pattern.
	re := regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}

		return match
	})

	// Match $VAR pattern.
	re = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[1:]); ok {
			return val
		}

		return match
	})

	return s
}

// applyDefaults sets default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	cfg.GitLab.URL = strings.TrimRight(cfg.GitLab.URL, "/")

	if cfg.GitLab.Auth == "" {
		cfg.GitLab.Auth = AuthPrivateToken
	}

	if cfg.GitLab.APIVersion == "" {
		cfg.GitLab.APIVersion = APIVersionAuto
	}

	if cfg.GitLab.Timeout == 0 {
		cfg.GitLab.Timeout = 30 * time.Second
	}

	if cfg.GitLab.UserAgent == "" {
		cfg.GitLab.UserAgent = "glprojects"
	}

	if cfg.GitLab.RateLimit.RequestsPerSecond > 0 && cfg.GitLab.RateLimit.Burst == 0 {
		cfg.GitLab.RateLimit.Burst = 1
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.GitLab.URL == "" {
		return fmt.Errorf("gitlab.url is required")
	}

	u, err := url.Parse(c.GitLab.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("gitlab.url must be an absolute URL, got %q", c.GitLab.URL)
	}

	if c.GitLab.Token == "" {
		return fmt.Errorf("gitlab.token is required")
	}

	switch c.GitLab.Auth {
	case AuthPrivateToken, AuthOAuth2:
	default:
		return fmt.Errorf("unsupported gitlab.auth: %s", c.GitLab.Auth)
	}

	switch c.GitLab.APIVersion {
	case APIVersionAuto, APIVersionV4, APIVersionV3:
	default:
		return fmt.Errorf("unsupported gitlab.api_version: %s", c.GitLab.APIVersion)
	}

	if c.GitLab.Timeout < 0 {
		return fmt.Errorf("gitlab.timeout must not be negative")
	}

	if c.GitLab.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("gitlab.rate_limit.requests_per_second must not be negative")
	}

	return nil
}

// String returns a sanitized string representation of the config (no secrets).
func (c *Config) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("GitLab: url=%s auth=%s api_version=%s timeout=%s\n",
		c.GitLab.URL, c.GitLab.Auth, c.GitLab.APIVersion, c.GitLab.Timeout))
	sb.WriteString(fmt.Sprintf("RateLimit: requests_per_second=%g burst=%d\n",
		c.GitLab.RateLimit.RequestsPerSecond, c.GitLab.RateLimit.Burst))

	return sb.String()
}
