package config

import (
	"strings"
	"testing"

	"github.com/talgya/battle-isles/internal/viewport"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{EnvWindowW, EnvWindowH, EnvHexSize, EnvFlipY, EnvInsets, EnvDB, EnvMapW, EnvMapH} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg != Default() {
		t.Fatalf("Load()=%+v, want defaults %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if !cfg.HasInitialMap() {
		t.Fatal("defaults should start with a map")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvWindowW, "1920")
	t.Setenv(EnvWindowH, "1080")
	t.Setenv(EnvHexSize, "3.5")
	t.Setenv(EnvFlipY, "false")
	t.Setenv(EnvInsets, "10, 20, 30, 40")
	t.Setenv(EnvDB, "/tmp/maps.db")
	t.Setenv(EnvMapW, "0")
	t.Setenv(EnvMapH, "6")

	cfg := Load()
	want := Config{
		WindowW: 1920,
		WindowH: 1080,
		HexSize: 3.5,
		FlipY:   false,
		Insets:  viewport.Insets{Left: 10, Right: 20, Top: 30, Bottom: 40},
		DBPath:  "/tmp/maps.db",
		MapW:    0,
		MapH:    6,
	}
	if cfg != want {
		t.Fatalf("Load()=%+v, want %+v", cfg, want)
	}
	if cfg.HasInitialMap() {
		t.Fatal("zero width should mean no initial map")
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv(EnvWindowW, "wide")
	t.Setenv(EnvHexSize, "big")
	t.Setenv(EnvFlipY, "maybe")
	t.Setenv(EnvInsets, "1,2,3")

	cfg := Load()
	d := Default()
	if cfg.WindowW != d.WindowW || cfg.HexSize != d.HexSize || cfg.FlipY != d.FlipY || cfg.Insets != d.Insets {
		t.Fatalf("bad values should fall back to defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero hex", func(c *Config) { c.HexSize = 0 }, "hex size"},
		{"negative inset", func(c *Config) { c.Insets.Left = -1 }, "insets"},
		{"zero window", func(c *Config) { c.WindowH = 0 }, "window size"},
		{"negative map", func(c *Config) { c.MapW = -2 }, "initial map"},
		{"empty db", func(c *Config) { c.DBPath = " " }, "database path"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate()=%v, want mention of %q", err, tc.want)
			}
		})
	}
}
