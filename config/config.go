// Package config loads the gate configuration.
//
// Sources in increasing precedence: built-in defaults, an optional YAML file,
// a .env file in the working directory and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings
type Config struct {
	Port               int           `yaml:"port"`
	DBPath             string        `yaml:"db_path"`
	UseHTTPS           bool          `yaml:"use_https"`
	TrustProxyHeaders  bool          `yaml:"trust_proxy_headers"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	DefaultPassword    string        `yaml:"default_password"`
	PasswordHasher     string        `yaml:"password_hasher"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
	LoginRatePerMinute int           `yaml:"login_rate_per_minute"`
	SeedExampleRules   bool          `yaml:"seed_example_rules"`
	Stream             StreamConfig  `yaml:"stream"`
	OIDC               OIDCConfig    `yaml:"oidc"`
}

// StreamConfig controls the audit log tail cadence
type StreamConfig struct {
	BatchLimit int           `yaml:"batch_limit"`
	BatchDelay time.Duration `yaml:"batch_delay"`
	IdleDelay  time.Duration `yaml:"idle_delay"`
}

// OIDCConfig enables single sign-on for administrators when Issuer is set
type OIDCConfig struct {
	Issuer       string   `yaml:"issuer"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	AllowedUsers []string `yaml:"allowed_users"`
}

// Enabled reports whether SSO is configured
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != ""
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:            8000,
		DBPath:          "api_auth.db",
		SessionTTL:      time.Hour,
		DefaultPassword: "admin123",
		PasswordHasher:  "bcrypt",
		LogLevel:        "info",
		LogFormat:       "text",
		Stream: StreamConfig{
			BatchLimit: 10,
			BatchDelay: 100 * time.Millisecond,
			IdleDelay:  500 * time.Millisecond,
		},
	}
}

// Load builds the configuration. path is an optional YAML file; a missing
// .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Load environment variables from .env file; real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load the env vars: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from environment variables found by lookup
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, v))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := parseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	num("PORT", &c.Port)
	str("DB_PATH", &c.DBPath)
	flag("USE_HTTPS", &c.UseHTTPS)
	flag("TRUST_PROXY_HEADERS", &c.TrustProxyHeaders)
	duration("SESSION_TTL", &c.SessionTTL)
	str("DEFAULT_PASSWORD", &c.DefaultPassword)
	str("PASSWORD_HASHER", &c.PasswordHasher)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	num("LOGIN_RATE_PER_MINUTE", &c.LoginRatePerMinute)
	flag("SEED_EXAMPLE_RULES", &c.SeedExampleRules)
	num("STREAM_BATCH_LIMIT", &c.Stream.BatchLimit)
	duration("STREAM_BATCH_DELAY", &c.Stream.BatchDelay)
	duration("STREAM_IDLE_DELAY", &c.Stream.IdleDelay)
	str("OIDC_ISSUER", &c.OIDC.Issuer)
	str("OIDC_CLIENT_ID", &c.OIDC.ClientID)
	str("OIDC_CLIENT_SECRET", &c.OIDC.ClientSecret)
	str("OIDC_REDIRECT_URL", &c.OIDC.RedirectURL)
	if v, ok := lookup("OIDC_ALLOWED_USERS"); ok {
		c.OIDC.AllowedUsers = splitList(v)
	}

	return errors.Join(errs...)
}

// Validate checks the values that would otherwise fail late
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.DefaultPassword == "" {
		errs = append(errs, errors.New("default_password is required"))
	}
	if c.LoginRatePerMinute < 0 {
		errs = append(errs, errors.New("login_rate_per_minute must not be negative"))
	}
	if c.OIDC.Enabled() {
		if c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "" {
			errs = append(errs, errors.New("oidc requires client_id and redirect_url"))
		}
		if len(c.OIDC.AllowedUsers) == 0 {
			errs = append(errs, errors.New("oidc requires at least one allowed user"))
		}
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for Port
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// parseDuration accepts Go durations and plain integers as seconds
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
