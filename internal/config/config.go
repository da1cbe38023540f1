package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"PaintBoard/internal/state"
)

// Config holds application configuration.
type Config struct {
	Canvas   CanvasConfig
	Painting PaintingConfig
	Share    ShareConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// CanvasConfig describes the drawing surface.
type CanvasConfig struct {
	Width      float64
	Height     float64
	Background string
	Palette    []string
}

type PaintingConfig struct {
	Title string
}

// ShareConfig controls the live share server and its mDNS advertisement.
type ShareConfig struct {
	Enabled bool
	Port    int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix PAINTBOARD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("PAINTBOARD_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "paintboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PAINTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("canvas.width", 700)
	v.SetDefault("canvas.height", 450)
	v.SetDefault("canvas.background", "#1a1a2e")
	v.SetDefault("canvas.palette", state.DefaultPalette)
	v.SetDefault("painting.title", "Painting Title")
	v.SetDefault("share.enabled", true)
	v.SetDefault("share.port", 8888)
	v.SetDefault("database.path", filepath.Join(homeDir(), ".local", "share", "paintboard", "paintboard.db"))
	v.SetDefault("logging.level", "info")
}

// Validate rejects settings the canvas cannot work with.
func (c Config) Validate() error {
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Share.Enabled && (c.Share.Port < 1 || c.Share.Port > 65535) {
		return fmt.Errorf("share port out of range: %d", c.Share.Port)
	}
	return nil
}

// SlogLevel maps logging.level to a slog level, defaulting to info.
func (c LoggingConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
