// Package config reads editor settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/viewport"
)

// Environment variable names.
const (
	EnvWindowW = "BATTLEISLES_WINDOW_W"
	EnvWindowH = "BATTLEISLES_WINDOW_H"
	EnvHexSize = "BATTLEISLES_HEX_SIZE"
	EnvFlipY   = "BATTLEISLES_FLIP_Y"
	EnvInsets  = "BATTLEISLES_INSETS"
	EnvDB      = "BATTLEISLES_DB"
	EnvMapW    = "BATTLEISLES_MAP_W"
	EnvMapH    = "BATTLEISLES_MAP_H"
)

// Config holds everything the binaries need to start.
type Config struct {
	WindowW int
	WindowH int
	HexSize float64
	FlipY   bool
	Insets  viewport.Insets
	DBPath  string

	// Initial map; zero in either dimension starts with no map.
	MapW int
	MapH int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WindowW: 1280,
		WindowH: 800,
		HexSize: 2.0,
		FlipY:   true,
		Insets:  viewport.DefaultInsets,
		DBPath:  "data/battleisles.db",
		MapW:    10,
		MapH:    8,
	}
}

// Load reads the environment over Default. Values that fail to parse are
// replaced by their default and logged.
func Load() Config {
	d := Default()
	log := logger.For("config")
	cfg := Config{
		WindowW: envIntOrDefault(log, EnvWindowW, d.WindowW),
		WindowH: envIntOrDefault(log, EnvWindowH, d.WindowH),
		HexSize: envFloatOrDefault(log, EnvHexSize, d.HexSize),
		FlipY:   envBoolOrDefault(log, EnvFlipY, d.FlipY),
		Insets:  d.Insets,
		DBPath:  envOrDefault(EnvDB, d.DBPath),
		MapW:    envIntOrDefault(log, EnvMapW, d.MapW),
		MapH:    envIntOrDefault(log, EnvMapH, d.MapH),
	}
	if v := os.Getenv(EnvInsets); v != "" {
		in, err := viewport.ParseInsets(v)
		if err != nil {
			warnDefault(log, EnvInsets, v, err)
		} else {
			cfg.Insets = in
		}
	}
	return cfg
}

// HasInitialMap reports whether the editor should start with a map.
func (c Config) HasInitialMap() bool {
	return c.MapW > 0 && c.MapH > 0
}

// Validate reports settings no component can work with.
func (c Config) Validate() error {
	var errs []error
	if c.WindowW <= 0 || c.WindowH <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.WindowW, c.WindowH))
	}
	if !(c.HexSize > 0) {
		errs = append(errs, fmt.Errorf("hex size %v must be positive", c.HexSize))
	}
	if err := c.Insets.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.MapW < 0 || c.MapH < 0 {
		errs = append(errs, fmt.Errorf("initial map %dx%d must not be negative", c.MapW, c.MapH))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(log *logrus.Entry, key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		warnDefault(log, key, v, err)
		return defaultVal
	}
	return n
}

func envFloatOrDefault(log *logrus.Entry, key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnDefault(log, key, v, err)
		return defaultVal
	}
	return f
}

func envBoolOrDefault(log *logrus.Entry, key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnDefault(log, key, v, err)
		return defaultVal
	}
	return b
}

func warnDefault(log *logrus.Entry, key, value string, err error) {
	log.WithFields(logrus.Fields{"key": key, "value": value}).WithError(err).Warn("invalid setting, using default")
}
