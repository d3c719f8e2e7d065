// Package config provides configuration management for the news provider.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (which may come from a .env file).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"news_moves/internal/adapter/extractor"
)

// Configuration validation errors.
var (
	ErrMissingSourceURL = errors.New("source.url is required")
	ErrInvalidSourceURL = errors.New("source.url must be an absolute http(s) URL")
	ErrInvalidFetchMode = errors.New("source.fetch_mode must be 'http' or 'browser'")
	ErrInvalidTimeout   = errors.New("source.timeout must be non-negative")
	ErrInvalidSigner    = errors.New("move.signer must be a 0x-prefixed hex address")
	ErrMissingBinary    = errors.New("move.binary is required")
	ErrInvalidInterval  = errors.New("schedule.interval must be at least 1s")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("logging.format must be 'text' or 'json'")
	ErrMissingDatabase  = errors.New("mongo.database and mongo.collection are required when mongo.uri is set")
	ErrInvalidSelector  = errors.New("selectors.title and selectors.body must be valid CSS selectors")
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"

	DefaultSourceURL = "https://example.com/news"
	DefaultSigner    = "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	DefaultInterval  = 3600 * time.Second
)

var signerPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// Config represents the complete provider configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Selectors SelectorsConfig `yaml:"selectors"`
	Move      MoveConfig      `yaml:"move"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Logging   LoggingConfig   `yaml:"logging"`
	HTTP      HTTPConfig      `yaml:"http"`
	Mongo     MongoConfig     `yaml:"mongo"`
}

// SourceConfig describes where the latest article is fetched from.
type SourceConfig struct {
	URL         string        `yaml:"url"`
	FetchMode   string        `yaml:"fetch_mode"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	BrowserPath string        `yaml:"browser_path"`
	WaitFor     string        `yaml:"wait_for"`
}

// SelectorsConfig picks a site preset and optional explicit overrides.
type SelectorsConfig struct {
	Preset string `yaml:"preset"`
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
}

// MoveConfig describes the external contract call.
type MoveConfig struct {
	Binary   string `yaml:"binary"`
	Script   string `yaml:"script"`
	Function string `yaml:"function"`
	Signer   string `yaml:"signer"`
	WorkDir  string `yaml:"work_dir"`
	DryRun   bool   `yaml:"dry_run"`
}

type ScheduleConfig struct {
	Interval   time.Duration `yaml:"interval"`
	RunOnStart bool          `yaml:"run_on_start"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig enables the control API when Addr is set.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// MongoConfig enables the submission journal when URI is set.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:       DefaultSourceURL,
			FetchMode: FetchModeHTTP,
		},
		Selectors: SelectorsConfig{
			Preset: extractor.DefaultPreset,
		},
		Move: MoveConfig{
			Binary:   "move",
			Script:   "NewsMoves.mvir",
			Function: "addArticle",
			Signer:   DefaultSigner,
		},
		Schedule: ScheduleConfig{
			Interval:   DefaultInterval,
			RunOnStart: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Mongo: MongoConfig{
			Collection: "submissions",
		},
	}
}

// LoadEnvFile loads .env into the process environment. It reports whether a
// file was found; a missing file is not an error.
func LoadEnvFile(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load builds the configuration from defaults, the YAML file at path (if
// non-empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"SOURCE_URL":      &c.Source.URL,
		"FETCH_MODE":      &c.Source.FetchMode,
		"USER_AGENT":      &c.Source.UserAgent,
		"BROWSER_PATH":    &c.Source.BrowserPath,
		"BROWSER_WAIT":    &c.Source.WaitFor,
		"SELECTOR_PRESET": &c.Selectors.Preset,
		"TITLE_SELECTOR":  &c.Selectors.Title,
		"BODY_SELECTOR":   &c.Selectors.Body,
		"MOVE_BINARY":     &c.Move.Binary,
		"MOVE_SCRIPT":     &c.Move.Script,
		"MOVE_FUNCTION":   &c.Move.Function,
		"MOVE_WORKDIR":    &c.Move.WorkDir,
		"SIGNER_ADDRESS":  &c.Move.Signer,
		"LOG_LEVEL":       &c.Logging.Level,
		"LOG_FORMAT":      &c.Logging.Format,
		"HTTP_ADDR":       &c.HTTP.Addr,
		"MONGO_URI":       &c.Mongo.URI,
		"DB_NAME":         &c.Mongo.Database,
		"COLLECTION_NAME": &c.Mongo.Collection,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"FETCH_TIMEOUT": &c.Source.Timeout,
		"INTERVAL":      &c.Schedule.Interval,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}

	bools := map[string]*bool{
		"RUN_ON_START": &c.Schedule.RunOnStart,
		"DRY_RUN":      &c.Move.DryRun,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
	}

	return nil
}

// parseDuration accepts Go durations ("1h30m") or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return ErrMissingSourceURL
	}

	u, err := url.Parse(c.Source.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, c.Source.URL)
	}

	switch strings.ToLower(c.Source.FetchMode) {
	case FetchModeHTTP, FetchModeBrowser:
	default:
		return ErrInvalidFetchMode
	}

	if c.Source.Timeout < 0 {
		return ErrInvalidTimeout
	}

	sel, err := c.ExtractorSelectors()
	if err != nil {
		return err
	}
	if err := sel.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSelector, err)
	}

	if !signerPattern.MatchString(c.Move.Signer) {
		return fmt.Errorf("%w: %q", ErrInvalidSigner, c.Move.Signer)
	}

	if c.Move.Binary == "" {
		return ErrMissingBinary
	}

	if c.Schedule.Interval < time.Second {
		return ErrInvalidInterval
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	if c.Mongo.URI != "" && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return ErrMissingDatabase
	}

	return nil
}

// ExtractorSelectors resolves the preset and overrides into concrete selectors.
func (c *Config) ExtractorSelectors() (extractor.Selectors, error) {
	sel, err := extractor.Preset(c.Selectors.Preset)
	if err != nil {
		return extractor.Selectors{}, err
	}
	return sel.Override(c.Selectors.Title, c.Selectors.Body), nil
}

// UseBrowser reports whether pages should be rendered with chromedp.
func (c *Config) UseBrowser() bool {
	return strings.EqualFold(c.Source.FetchMode, FetchModeBrowser)
}
