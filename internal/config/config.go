// Package config loads mobile-locator settings from a YAML file, an optional
// .env file and MOBILE_LOCATOR_* environment variables, in increasing order
// of precedence.
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

	"github.com/mj1618/mobile-locator/internal/cache"
	"github.com/mj1618/mobile-locator/internal/imaging"
	"github.com/mj1618/mobile-locator/internal/model"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MOBILE_LOCATOR_"

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "mobile-locator.yaml"

// Config is the runtime configuration of the CLI and MCP server.
type Config struct {
	Platform   string `yaml:"platform"`
	Backend    string `yaml:"backend"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	FixtureDir string `yaml:"fixture_dir"`

	Appium AppiumConfig `yaml:"appium"`
	Cache  CacheConfig  `yaml:"cache"`
	Image  ImageConfig  `yaml:"image"`
	Server ServerConfig `yaml:"server"`
}

// AppiumConfig addresses the WebDriver server used by the appium backend.
type AppiumConfig struct {
	URL          string                 `yaml:"url"`
	Session      string                 `yaml:"session"`
	Settle       time.Duration          `yaml:"settle"`
	Capabilities map[string]interface{} `yaml:"capabilities"`
}

// CacheConfig bounds the scan cache.
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	MaxBytes int64         `yaml:"max_bytes"`
}

// ImageConfig controls screenshot optimization.
type ImageConfig struct {
	Quality  int  `yaml:"quality"`
	Optimize bool `yaml:"optimize"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	// Transport is "stdio" or "http".
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Platform:  string(model.Android),
		Backend:   "fixture",
		LogLevel:  "info",
		LogFormat: "console",
		Appium: AppiumConfig{
			URL:    "http://127.0.0.1:4723",
			Settle: 500 * time.Millisecond,
		},
		Cache: CacheConfig{TTL: cache.DefaultTTL, MaxBytes: cache.DefaultMaxBytes},
		Image: ImageConfig{Quality: imaging.DefaultQuality, Optimize: true},
		Server: ServerConfig{
			Transport: "stdio",
			Port:      8080,
		},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile; a
// missing file is not an error. A .env file in the working directory is
// loaded before environment overrides are applied; variables already set in
// the environment win over it.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file %s not found", path)
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load(".env")

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("PLATFORM", &c.Platform)
	str("BACKEND", &c.Backend)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("FIXTURE_DIR", &c.FixtureDir)
	str("APPIUM_URL", &c.Appium.URL)
	str("APPIUM_SESSION", &c.Appium.Session)
	str("SERVER_TRANSPORT", &c.Server.Transport)

	if v, ok := lookup(EnvPrefix + "APPIUM_SETTLE"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sAPPIUM_SETTLE: %w", EnvPrefix, err)
		}
		c.Appium.Settle = d
	}
	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", EnvPrefix, err)
		}
		c.Cache.TTL = d
	}
	if v, ok := lookup(EnvPrefix + "CACHE_MAX_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sCACHE_MAX_BYTES: %w", EnvPrefix, err)
		}
		c.Cache.MaxBytes = n
	}
	if v, ok := lookup(EnvPrefix + "IMAGE_QUALITY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sIMAGE_QUALITY: %w", EnvPrefix, err)
		}
		c.Image.Quality = n
	}
	if v, ok := lookup(EnvPrefix + "IMAGE_OPTIMIZE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sIMAGE_OPTIMIZE: %w", EnvPrefix, err)
		}
		c.Image.Optimize = b
	}
	if v, ok := lookup(EnvPrefix + "SERVER_PORT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSERVER_PORT: %w", EnvPrefix, err)
		}
		c.Server.Port = n
	}
	return nil
}

// Validate checks enumerated and ranged fields.
func (c *Config) Validate() error {
	p, err := model.ParsePlatform(c.Platform)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Platform = string(p)
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("config: image.quality must be between 1 and 100, got %d", c.Image.Quality)
	}
	if c.Cache.TTL < 0 || c.Cache.MaxBytes < 0 {
		return fmt.Errorf("config: cache limits must not be negative")
	}
	switch strings.ToLower(c.Server.Transport) {
	case "stdio", "http":
		c.Server.Transport = strings.ToLower(c.Server.Transport)
	default:
		return fmt.Errorf("config: server.transport must be stdio or http, got %q", c.Server.Transport)
	}
	return nil
}

// PlatformValue returns the validated platform.
func (c *Config) PlatformValue() model.Platform {
	return model.Platform(c.Platform)
}
