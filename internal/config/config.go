package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	APIBase        string
	AssetPath      string
	LogDir         string
	RequestTimeout time.Duration // zero disables the client-side timeout
	ErrorBanner    time.Duration
	SuccessBanner  time.Duration
}

const (
	defaultConfigPath    = "~/.config/lostfound/config.toml"
	defaultLogDir        = "~/.local/share/lostfound/logs"
	defaultAPIBase       = "127.0.0.1:5001"
	defaultAssetPath     = "/static/uploads"
	defaultErrorBanner   = 5 * time.Second
	defaultSuccessBanner = 3 * time.Second

	// EnvAPIBase overrides api_base.
	EnvAPIBase = "LOSTFOUND_API_BASE"
	// EnvLogDir overrides log_dir.
	EnvLogDir = "LOSTFOUND_LOG_DIR"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:       defaultAPIBase,
		AssetPath:     defaultAssetPath,
		LogDir:        mustExpand(defaultLogDir),
		ErrorBanner:   defaultErrorBanner,
		SuccessBanner: defaultSuccessBanner,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// Environment overrides apply in both cases.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		AssetPath      string `toml:"asset_path"`
		LogDir         string `toml:"log_dir"`
		RequestTimeout int    `toml:"request_timeout_seconds"`
		ErrorBanner    int    `toml:"error_banner_seconds"`
		SuccessBanner  int    `toml:"success_banner_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.AssetPath); v != "" {
		cfg.AssetPath = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if raw.ErrorBanner > 0 {
		cfg.ErrorBanner = time.Duration(raw.ErrorBanner) * time.Second
	}
	if raw.SuccessBanner > 0 {
		cfg.SuccessBanner = time.Duration(raw.SuccessBanner) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogDir)); v != "" {
		cfg.LogDir = mustExpand(v)
	}
}

// LogPath returns the client's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/lostfound.log")
	}
	return filepath.Join(c.LogDir, "lostfound.log")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
