package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile writes content under dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "daily-quote-bot", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, DefaultSubreddit, cfg.Bot.Subreddit)
	assert.Equal(t, DefaultStickySlot, cfg.Bot.StickySlot)
	assert.Equal(t, "daily discussion", cfg.Bot.TitleMarker)
	assert.Equal(t, DefaultMinIntervalHours, cfg.Bot.MinIntervalHours)
	assert.Equal(t, DefaultMaxIntervalHours, cfg.Bot.MaxIntervalHours)
	assert.False(t, cfg.Bot.DryRun)
	assert.Equal(t, "quotes.json", cfg.Quotes.File)
	assert.Equal(t, "https://www.reddit.com", cfg.Reddit.AuthURL)
	assert.Equal(t, "https://oauth.reddit.com", cfg.Reddit.APIURL)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_BOT__SUBREDDIT", "golang")
	t.Setenv("APP_BOT__MAX_INTERVAL_HOURS", "8")
	t.Setenv("APP_LOG__LEVEL", "warn")
	t.Setenv("APP_REDDIT__CLIENT_ID", "env-client")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "golang", cfg.Bot.Subreddit)
	assert.Equal(t, 8, cfg.Bot.MaxIntervalHours)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "env-client", cfg.Reddit.ClientID)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"APP_REDDIT__CLIENT_ID", "reddit.client_id"},
		{"APP_BOT__DRY_RUN", "bot.dry_run"},
		{"APP_LOG__FILE__MAX_SIZE", "log.file.max_size"},
		{"APP_QUOTES__FILE", "quotes.file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Client.Transport.IdleConnTimeout)
	assert.Equal(t, 10*time.Second, cfg.Ops.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Ops.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Ops.CheckTimeout)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "daily-quote-bot", cfg.App.Name)
}

func TestLoad_ProfileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "bot:\n  subreddit: base-sub\n  sticky_slot: 2\nlog:\n  format: json\n")
	writeFile(t, dir, "prod.yaml", "bot:\n  subreddit: prod-sub\n")

	cfg, err := LoadFrom(dir, "prod")
	require.NoError(t, err)

	assert.Equal(t, "prod-sub", cfg.Bot.Subreddit)
	assert.Equal(t, 2, cfg.Bot.StickySlot)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "bot: [unclosed\n")

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestLoad_CredentialsFile(t *testing.T) {
	dir := t.TempDir()
	creds := writeFile(t, dir, "login-details.json", `{
  "client_id": "file-id",
  "client_secret": "file-secret",
  "user_agent": "quotebot/{version} by u/someone",
  "username": "someone",
  "password": "hunter2"
}`)
	writeFile(t, dir, "base.yaml", "reddit:\n  credentials_file: "+creds+"\n")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	got := cfg.Reddit.Credentials()
	assert.Equal(t, "file-id", got.ClientID)
	assert.Equal(t, "file-secret", got.ClientSecret)
	assert.Equal(t, "someone", got.Username)
	assert.Equal(t, "hunter2", got.Password)
	assert.Equal(t, "quotebot/{version} by u/someone", got.UserAgent)
	// Endpoint defaults survive the merge.
	assert.Equal(t, "https://oauth.reddit.com", cfg.Reddit.APIURL)
}

func TestLoad_CredentialsFile_EnvStillWins(t *testing.T) {
	dir := t.TempDir()
	creds := writeFile(t, dir, "login.json", `{"client_id": "file-id", "password": "from-file"}`)
	t.Setenv("APP_REDDIT__CREDENTIALS_FILE", creds)
	t.Setenv("APP_REDDIT__PASSWORD", "from-env")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.Reddit.ClientID)
	assert.Equal(t, "from-env", cfg.Reddit.Password)
}

func TestLoad_CredentialsFile_JSONEscapes(t *testing.T) {
	dir := t.TempDir()
	// Python's json.dump escapes non-ASCII and may escape slashes.
	creds := writeFile(t, dir, "login-details.json", `{
  "client_id": "file-id",
  "client_secret": "file-secret",
  "user_agent": "quotebot\/{version} \ud83d\ude80",
  "username": "someone",
  "password": "p\u00e4ss\ud83d\ude00"
}`)
	t.Setenv("APP_REDDIT__CREDENTIALS_FILE", creds)

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "quotebot/{version} \U0001F680", cfg.Reddit.UserAgent)
	assert.Equal(t, "p\u00e4ss\U0001F600", cfg.Reddit.Password)
}

func TestLoad_CredentialsFile_YAML(t *testing.T) {
	dir := t.TempDir()
	creds := writeFile(t, dir, "login-details.yaml", "client_id: yaml-id\nusername: someone\n")
	t.Setenv("APP_REDDIT__CREDENTIALS_FILE", creds)

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "yaml-id", cfg.Reddit.ClientID)
	assert.Equal(t, "someone", cfg.Reddit.Username)
}

func TestLoad_CredentialsFileMissing(t *testing.T) {
	t.Setenv("APP_REDDIT__CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := LoadFrom(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials file")
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY__ENABLED", "true")
	t.Setenv("APP_BOT__DRY_RUN", "true")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.True(t, cfg.Bot.DryRun)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/quotebot.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "daily-quote-bot", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "daily-quote-bot", d["app.name"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultOpsPort, d["ops.port"])
	assert.Equal(t, DefaultSubreddit, d["bot.subreddit"])
	assert.Equal(t, DefaultStickySlot, d["bot.sticky_slot"])
	assert.Equal(t, "daily discussion", d["bot.title_marker"])
}

func TestLoad_ShippedProdProfile_EnvCredentials(t *testing.T) {
	configDir, err := filepath.Abs(filepath.Join("..", "..", "..", "configs"))
	require.NoError(t, err)

	// No login-details.json in the working directory.
	t.Chdir(t.TempDir())

	t.Setenv("APP_REDDIT__CLIENT_ID", "env-id")
	t.Setenv("APP_REDDIT__CLIENT_SECRET", "env-secret")
	t.Setenv("APP_REDDIT__USER_AGENT", "quotebot/{version}")
	t.Setenv("APP_REDDIT__USERNAME", "someone")
	t.Setenv("APP_REDDIT__PASSWORD", "hunter2")

	cfg, err := LoadFrom(configDir, "prod")
	require.NoError(t, err)

	assert.Empty(t, cfg.Reddit.CredentialsFile)
	assert.Equal(t, "env-id", cfg.Reddit.ClientID)
	assert.Equal(t, "someone", cfg.Reddit.Username)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ShippedLocalProfile_ReadsLoginDetails(t *testing.T) {
	configDir, err := filepath.Abs(filepath.Join("..", "..", "..", "configs"))
	require.NoError(t, err)

	_, err = LoadFrom(configDir, "local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login-details.json")
}
