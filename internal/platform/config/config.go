// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// Default configuration values.
const (
	// DefaultSubreddit is the community the bot posts to.
	DefaultSubreddit = "CryptoCurrency"

	// DefaultStickySlot is the only sticky position examined for the discussion post.
	DefaultStickySlot = 1

	// DefaultMinIntervalHours is the lower bound of the sleep between rounds.
	DefaultMinIntervalHours = 2

	// DefaultMaxIntervalHours is the upper bound of the sleep between rounds.
	DefaultMaxIntervalHours = 5

	// DefaultOpsPort is the default port of the ops HTTP server.
	DefaultOpsPort = 8080

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 10

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 2

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "APP_"

	// envLevelSeparator separates nesting levels in environment variable names,
	// so APP_REDDIT__CLIENT_ID maps to reddit.client_id.
	envLevelSeparator = "__"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Ops       OpsConfig       `koanf:"ops"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Reddit    RedditConfig    `koanf:"reddit"    validate:"required"`
	Bot       BotConfig       `koanf:"bot"       validate:"required"`
	Quotes    QuotesConfig    `koanf:"quotes"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev prod test"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Level      string `koanf:"level"       validate:"omitempty,oneof=trace debug info warn error"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// OpsConfig contains settings for the optional health/status HTTP server.
type OpsConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"             validate:"required_if=Enabled true"`
	Port            int           `koanf:"port"             validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required_if=Enabled true"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required_if=Enabled true"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required_if=Enabled true"`
	CheckTimeout    time.Duration `koanf:"check_timeout"`
}

// ClientConfig contains HTTP client settings for the platform API.
type ClientConfig struct {
	Timeout   time.Duration   `koanf:"timeout"   validate:"required,min=100ms"`
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// RedditConfig holds the platform endpoints and bot account credentials.
// Credential fields can also come from CredentialsFile, which accepts the
// login-details.json layout (client_id, client_secret, user_agent, username, password).
type RedditConfig struct {
	AuthURL         string `koanf:"auth_url"         validate:"required,url"`
	APIURL          string `koanf:"api_url"          validate:"required,url"`
	CredentialsFile string `koanf:"credentials_file"`
	ClientID        string `koanf:"client_id"        validate:"required"`
	ClientSecret    string `koanf:"client_secret"    validate:"required"`
	UserAgent       string `koanf:"user_agent"       validate:"required"`
	Username        string `koanf:"username"         validate:"required"`
	Password        string `koanf:"password"         validate:"required"`
}

// Credentials returns the account credentials as a domain value.
func (r RedditConfig) Credentials() domain.Credentials {
	return domain.Credentials{
		ClientID:     r.ClientID,
		ClientSecret: r.ClientSecret,
		UserAgent:    r.UserAgent,
		Username:     r.Username,
		Password:     r.Password,
	}
}

// BotConfig controls what the poster loop targets and how long it sleeps.
type BotConfig struct {
	Subreddit        string `koanf:"subreddit"          validate:"required"`
	StickySlot       int    `koanf:"sticky_slot"        validate:"required,min=1,max=2"`
	TitleMarker      string `koanf:"title_marker"       validate:"required"`
	MinIntervalHours int    `koanf:"min_interval_hours" validate:"required,min=1"`
	MaxIntervalHours int    `koanf:"max_interval_hours" validate:"required,gtefield=MinIntervalHours"`
	DryRun           bool   `koanf:"dry_run"`
}

// QuotesConfig says where the quote list comes from.
// Inline Items win over File.
type QuotesConfig struct {
	File  string   `koanf:"file"`
	Items []string `koanf:"items"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "daily-quote-bot",
		"app.version":     "dev",
		"app.environment": "local",

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotebot.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "daily-quote-bot",
		"telemetry.sampling_rate": 1.0,

		"ops.enabled":          false,
		"ops.host":             "0.0.0.0",
		"ops.port":             DefaultOpsPort,
		"ops.read_timeout":     "10s",
		"ops.write_timeout":    "10s",
		"ops.shutdown_timeout": "5s",
		"ops.check_timeout":    "5s",

		"client.timeout":                           "30s",
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"reddit.auth_url":         "https://www.reddit.com",
		"reddit.api_url":          "https://oauth.reddit.com",
		"reddit.credentials_file": "",

		"bot.subreddit":          DefaultSubreddit,
		"bot.sticky_slot":        DefaultStickySlot,
		"bot.title_marker":       domain.DefaultDiscussionMarker,
		"bot.min_interval_hours": DefaultMinIntervalHours,
		"bot.max_interval_hours": DefaultMaxIntervalHours,
		"bot.dry_run":            false,

		"quotes.file": "quotes.json",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, "__" between levels)
//  2. Credentials file named by reddit.credentials_file, merged under "reddit"
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, filepath.Join(dir, "base.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// Environment is loaded twice: once so APP_REDDIT__CREDENTIALS_FILE can point
	// at the file, and again afterwards so env still beats the file's values.
	envProvider := env.Provider(EnvPrefix, ".", envKey)

	err = k.Load(envProvider, nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if path := k.String("reddit.credentials_file"); path != "" {
		err := loadCredentialsFile(k, path)
		if err != nil {
			return nil, err
		}

		err = k.Load(envProvider, nil)
		if err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_REDDIT__CLIENT_ID to reddit.client_id.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, envLevelSeparator, ".")
}

// loadCredentialsFile merges a login-details style file under the "reddit" key.
// The file is required once configured. A .yaml or .yml file is read as YAML,
// anything else as JSON.
func loadCredentialsFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("reading credentials file %q: %w", path, err)
	}

	creds := koanf.New(".")

	err := creds.Load(file.Provider(path), credentialsParser(path))
	if err != nil {
		return fmt.Errorf("parsing credentials file %q: %w", path, err)
	}

	err = k.MergeAt(creds, "reddit")
	if err != nil {
		return fmt.Errorf("merging credentials file %q: %w", path, err)
	}

	return nil
}

func credentialsParser(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
