package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-toolbox/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Log levels accepted by log.level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Bounds for numeric settings.
const (
	MinUploadBytes       = 1 << 10
	MaxUploadBytes       = 1 << 30
	MaxFilesPerList      = 500
	MaxValidationWorkers = 64
	MaxExportWorkers     = 8
)

// basePathPattern matches "" or one or more "/segment" parts without a
// trailing slash, e.g. "/toolbox" or "/apps/toolbox".
var basePathPattern = regexp.MustCompile(`^(/[A-Za-z0-9._~-]+)*$`)

// Config holds all configuration for the toolbox server and CLI.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Limits   LimitsConfig   `yaml:"limits"`
	Session  SessionConfig  `yaml:"session"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	BasePath        string `yaml:"basePath"`        // URL prefix for static hosting behind a path, "" = root
	ReadTimeout     string `yaml:"readTimeout"`     // Go duration, e.g. "30s"
	ShutdownTimeout string `yaml:"shutdownTimeout"` // Go duration
}

// LimitsConfig caps request and list sizes.
type LimitsConfig struct {
	MaxUploadBytes    int64 `yaml:"maxUploadBytes"`    // per request body
	MaxFiles          int   `yaml:"maxFiles"`          // per merge list
	ValidationWorkers int   `yaml:"validationWorkers"` // 0 = GOMAXPROCS
}

// SessionConfig defines in-memory workspace lifetime.
type SessionConfig struct {
	TTL           string `yaml:"ttl"`           // idle time before eviction
	SweepInterval string `yaml:"sweepInterval"` // how often idle sessions are evicted
}

// MarkdownConfig defines markdown tool defaults.
type MarkdownConfig struct {
	Style       string `yaml:"style"`       // preview/export stylesheet name
	InitialFile string `yaml:"initialFile"` // optional file seeding new buffers
}

// ExportConfig defines PDF export of rendered markdown.
type ExportConfig struct {
	PDF     bool   `yaml:"pdf"`     // requires Chrome/Chromium
	Workers int    `yaml:"workers"` // 0 = auto
	Timeout string `yaml:"timeout"` // Go duration
}

// LogConfig defines structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks every section. Called automatically by LoadConfig, but
// available for callers that build or override a Config manually.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("%w: server: %v", ErrConfigInvalid, err)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: limits: %v", ErrConfigInvalid, err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("%w: session: %v", ErrConfigInvalid, err)
	}
	if err := c.Markdown.Validate(); err != nil {
		return fmt.Errorf("%w: markdown: %v", ErrConfigInvalid, err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("%w: export: %v", ErrConfigInvalid, err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: log: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.BasePath, validation.Match(basePathPattern).Error("must look like /path without a trailing slash")),
		validation.Field(&c.ReadTimeout, validation.By(positiveDuration)),
		validation.Field(&c.ShutdownTimeout, validation.By(positiveDuration)),
	)
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ReadTimeoutDuration returns the parsed read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return durationOr(c.ReadTimeout, 30*time.Second)
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return durationOr(c.ShutdownTimeout, 10*time.Second)
}

// Validate validates the limits configuration.
func (c *LimitsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxUploadBytes, validation.Required, validation.Min(int64(MinUploadBytes)), validation.Max(int64(MaxUploadBytes))),
		validation.Field(&c.MaxFiles, validation.Required, validation.Min(2), validation.Max(MaxFilesPerList)),
		validation.Field(&c.ValidationWorkers, validation.Min(0), validation.Max(MaxValidationWorkers)),
	)
}

// Validate validates the session configuration.
func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TTL, validation.Required, validation.By(positiveDuration)),
		validation.Field(&c.SweepInterval, validation.Required, validation.By(positiveDuration)),
	)
}

// TTLDuration returns the parsed idle TTL.
func (c *SessionConfig) TTLDuration() time.Duration {
	return durationOr(c.TTL, time.Hour)
}

// SweepIntervalDuration returns the parsed sweep interval.
func (c *SessionConfig) SweepIntervalDuration() time.Duration {
	return durationOr(c.SweepInterval, 5*time.Minute)
}

// Validate validates the markdown configuration.
func (c *MarkdownConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Style, validation.Length(0, 64)),
		validation.Field(&c.InitialFile, validation.Length(0, 4096)),
	)
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxExportWorkers)),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
	)
}

// TimeoutDuration returns the parsed export timeout.
func (c *ExportConfig) TimeoutDuration() time.Duration {
	return durationOr(c.Timeout, 30*time.Second)
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
	)
}

// SlogLevel maps the configured level to slog. Unknown or empty means info.
func (c *LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// positiveDuration is an ozzo rule for optional duration strings.
func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %q", s)
	}
	return nil
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "30s",
			ShutdownTimeout: "10s",
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 100 << 20,
			MaxFiles:       50,
		},
		Session: SessionConfig{
			TTL:           "1h",
			SweepInterval: "5m",
		},
		Markdown: MarkdownConfig{Style: "github"},
		Export:   ExportConfig{Timeout: "30s"},
		Log:      LogConfig{Level: LogLevelInfo},
	}
}

// LoadConfig loads configuration from a file path or config name on top of
// DefaultConfig. If nameOrPath contains a path separator, it's treated as a
// file path; otherwise it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeExpanded(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-toolbox/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-toolbox", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
