// Command editor opens the interactive hex map editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/talgya/battle-isles/internal/config"
	"github.com/talgya/battle-isles/internal/editor"
	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/persistence"
	"github.com/talgya/battle-isles/internal/render"
)

func main() {
	logger.Init()
	if err := run(); err != nil {
		logger.For("main").WithError(err).Error("editor exited")
		os.Exit(1)
	}
}

func run() error {
	log := logger.For("main")

	cfg := config.Load()
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database for saved maps")
	flag.IntVar(&cfg.MapW, "w", cfg.MapW, "initial map width (0 for none)")
	flag.IntVar(&cfg.MapH, "h", cfg.MapH, "initial map height (0 for none)")
	flag.Float64Var(&cfg.HexSize, "hex", cfg.HexSize, "hex corner radius in world units")
	load := flag.String("load", "", "open a saved map by name (\"last\" for the most recent)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	log.WithField("path", cfg.DBPath).Info("database opened")

	// ── Editor ────────────────────────────────────────────────────────
	ctrl := editor.New(editor.Options{HexSize: cfg.HexSize, FlipY: cfg.FlipY})

	name := *load
	if name == "last" {
		if name, err = db.GetMeta(persistence.MetaLastMap); err != nil {
			log.WithError(err).Warn("could not read last map name")
		}
	}

	game := render.New(ctrl, render.Options{
		WindowW: cfg.WindowW,
		WindowH: cfg.WindowH,
		Insets:  cfg.Insets,
		MapW:    cfg.MapW,
		MapH:    cfg.MapH,
		Store:   db,
		MapName: name,
	})

	// ── Initial map ───────────────────────────────────────────────────
	switch {
	case name != "":
		m, err := db.LoadMap(name)
		if err != nil {
			log.WithError(err).WithField("name", name).Warn("could not load map, starting empty")
			break
		}
		ctrl.Submit(editor.LoadMapIntent{Map: m})
	case cfg.HasInitialMap():
		ctrl.Submit(editor.GenerateMapIntent{Width: cfg.MapW, Height: cfg.MapH})
	}

	ebiten.SetWindowTitle("Battle Isles Editor")
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game)
}
