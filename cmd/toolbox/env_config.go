package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-toolbox/internal/config"
)

// envPrefix marks the variables this program reads.
const envPrefix = "TOOLBOX_"

// envConfig holds configuration from environment variables.
// Zero values mean "not set".
type envConfig struct {
	ConfigPath string        // TOOLBOX_CONFIG: config file name or path
	Port       int           // TOOLBOX_PORT: listen port
	BasePath   string        // TOOLBOX_BASE_PATH: URL prefix
	LogLevel   string        // TOOLBOX_LOG_LEVEL: debug, info, warn, error
	PDFExport  *bool         // TOOLBOX_PDF_EXPORT: enable markdown PDF export
	Workers    int           // TOOLBOX_WORKERS: browser pool size
	Timeout    time.Duration // TOOLBOX_TIMEOUT: PDF export timeout
	Style      string        // TOOLBOX_STYLE: highlight style
	AssetPath  string        // TOOLBOX_ASSET_PATH: custom templates and styles
}

// knownEnvVars lists valid TOOLBOX_* environment variables.
var knownEnvVars = map[string]bool{
	"TOOLBOX_CONFIG":     true,
	"TOOLBOX_PORT":       true,
	"TOOLBOX_BASE_PATH":  true,
	"TOOLBOX_LOG_LEVEL":  true,
	"TOOLBOX_PDF_EXPORT": true,
	"TOOLBOX_WORKERS":    true,
	"TOOLBOX_TIMEOUT":    true,
	"TOOLBOX_STYLE":      true,
	"TOOLBOX_ASSET_PATH": true,
}

// loadEnvConfig reads TOOLBOX_* variables. Malformed numbers, booleans and
// durations are ignored rather than reported.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TOOLBOX_CONFIG"),
		BasePath:   os.Getenv("TOOLBOX_BASE_PATH"),
		LogLevel:   os.Getenv("TOOLBOX_LOG_LEVEL"),
		Style:      os.Getenv("TOOLBOX_STYLE"),
		AssetPath:  os.Getenv("TOOLBOX_ASSET_PATH"),
	}

	if port := os.Getenv("TOOLBOX_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}

	if pdf := os.Getenv("TOOLBOX_PDF_EXPORT"); pdf != "" {
		if b, err := strconv.ParseBool(pdf); err == nil {
			cfg.PDFExport = &b
		}
	}

	if workers := os.Getenv("TOOLBOX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if timeout := os.Getenv("TOOLBOX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized TOOLBOX_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set variables on cfg. Environment values win over
// the config file; flags are applied afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.BasePath != "" {
		cfg.Server.BasePath = strings.TrimSuffix(env.BasePath, "/")
	}
	if env.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(env.LogLevel)
	}
	if env.PDFExport != nil {
		cfg.Export.PDF = *env.PDFExport
	}
	if env.Workers != 0 {
		cfg.Export.Workers = env.Workers
	}
	if env.Timeout != 0 {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.Style != "" {
		cfg.Markdown.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}

// loadConfig resolves the configuration for a command: defaults, then the
// config file named by the flag or TOOLBOX_CONFIG, then the environment.
// Flags are applied by the caller, which must call Validate afterwards.
func loadConfig(flagPath string, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := flagPath
	if path == "" {
		path = env.ConfigPath
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
