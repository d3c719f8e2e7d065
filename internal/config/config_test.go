package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "provider.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

func mapLookup(env map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

const providerYAML = `
source:
  url: "https://news.example.org/latest"
  timeout: 20s
selectors:
  preset: kompas
  body: "div.custom-body"
move:
  signer: "0xabcdef"
  script: "Other.mvir"
schedule:
  interval: 30m
  run_on_start: false
logging:
  level: debug
  format: json
`

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, time.Hour, cfg.Schedule.Interval)
	require.Equal(t, "https://example.com/news", cfg.Source.URL)
	require.Zero(t, cfg.Source.Timeout)
	require.False(t, cfg.UseBrowser())

	sel, err := cfg.ExtractorSelectors()
	require.NoError(t, err)
	require.Equal(t, "h1", sel.Title)
	require.Equal(t, "div.article-body", sel.Body)
}

func TestLoadYAML(t *testing.T) {
	path := createTempConfigFile(t, providerYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://news.example.org/latest", cfg.Source.URL)
	require.Equal(t, 20*time.Second, cfg.Source.Timeout)
	require.Equal(t, "0xabcdef", cfg.Move.Signer)
	require.Equal(t, "Other.mvir", cfg.Move.Script)
	require.Equal(t, "addArticle", cfg.Move.Function)
	require.Equal(t, 30*time.Minute, cfg.Schedule.Interval)
	require.False(t, cfg.Schedule.RunOnStart)
	require.Equal(t, "json", cfg.Logging.Format)

	sel, err := cfg.ExtractorSelectors()
	require.NoError(t, err)
	require.Equal(t, "h1.read__title", sel.Title)
	require.Equal(t, "div.custom-body", sel.Body)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := createTempConfigFile(t, providerYAML)
	t.Setenv("SOURCE_URL", "http://localhost:8080/news")
	t.Setenv("INTERVAL", "120")
	t.Setenv("DRY_RUN", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/news", cfg.Source.URL)
	require.Equal(t, 2*time.Minute, cfg.Schedule.Interval)
	require.True(t, cfg.Move.DryRun)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "source: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"FETCH_MODE":      "browser",
		"FETCH_TIMEOUT":   "1m",
		"SIGNER_ADDRESS":  "0xfeed",
		"TITLE_SELECTOR":  "h2.headline",
		"RUN_ON_START":    "false",
		"MONGO_URI":       "mongodb://localhost:27017",
		"DB_NAME":         "news",
		"COLLECTION_NAME": "",
	}))
	require.NoError(t, err)

	require.True(t, cfg.UseBrowser())
	require.Equal(t, time.Minute, cfg.Source.Timeout)
	require.Equal(t, "0xfeed", cfg.Move.Signer)
	require.Equal(t, "h2.headline", cfg.Selectors.Title)
	require.False(t, cfg.Schedule.RunOnStart)
	require.Equal(t, "submissions", cfg.Mongo.Collection)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnvInvalidValues(t *testing.T) {
	testCases := map[string]map[string]string{
		"duration": {"INTERVAL": "soon"},
		"bool":     {"DRY_RUN": "maybe"},
	}

	for name, env := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, Default().applyEnv(mapLookup(env)))
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		err    error
	}{
		{"missing url", func(c *Config) { c.Source.URL = "" }, ErrMissingSourceURL},
		{"relative url", func(c *Config) { c.Source.URL = "/news" }, ErrInvalidSourceURL},
		{"ftp url", func(c *Config) { c.Source.URL = "ftp://example.com/news" }, ErrInvalidSourceURL},
		{"fetch mode", func(c *Config) { c.Source.FetchMode = "curl" }, ErrInvalidFetchMode},
		{"timeout", func(c *Config) { c.Source.Timeout = -time.Second }, ErrInvalidTimeout},
		{"signer", func(c *Config) { c.Move.Signer = "alice" }, ErrInvalidSigner},
		{"empty hex signer", func(c *Config) { c.Move.Signer = "0x" }, ErrInvalidSigner},
		{"binary", func(c *Config) { c.Move.Binary = "" }, ErrMissingBinary},
		{"interval", func(c *Config) { c.Schedule.Interval = 0 }, ErrInvalidInterval},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"mongo db", func(c *Config) { c.Mongo.URI = "mongodb://localhost" }, ErrMissingDatabase},
		{"title selector", func(c *Config) { c.Selectors.Title = "h1[" }, ErrInvalidSelector},
		{"body selector", func(c *Config) { c.Selectors.Body = "div..article-body" }, ErrInvalidSelector},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tc.err)
		})
	}
}

func TestValidateUnknownPreset(t *testing.T) {
	cfg := Default()
	cfg.Selectors.Preset = "nowhere"
	require.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NEWS_MOVES_TEST_KEY=loaded\n"), 0644))
	t.Setenv("NEWS_MOVES_TEST_KEY", "")
	os.Unsetenv("NEWS_MOVES_TEST_KEY")

	require.True(t, LoadEnvFile(path))
	require.Equal(t, "loaded", os.Getenv("NEWS_MOVES_TEST_KEY"))
	require.False(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "provider.example.yaml"))
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.Source.Timeout)
	require.Equal(t, time.Hour, cfg.Schedule.Interval)
	require.Empty(t, cfg.Mongo.URI)
}
