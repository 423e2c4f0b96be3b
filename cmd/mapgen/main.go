// Command mapgen builds a map without opening a window, optionally seeds
// it with islands, prints a preview and saves it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"github.com/talgya/battle-isles/internal/config"
	"github.com/talgya/battle-isles/internal/editor"
	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/persistence"
	"github.com/talgya/battle-isles/internal/visual"
	"github.com/talgya/battle-isles/internal/world"
)

func main() {
	logger.Init()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mapgen:", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.For("mapgen")

	cfg := config.Load()
	width := flag.Int("w", cfg.MapW, "map width")
	height := flag.Int("h", cfg.MapH, "map height")
	seed := flag.Int64("seed", 0, "island seed (0 picks one)")
	islands := flag.Bool("islands", true, "seed terrain with noise islands")
	save := flag.String("save", "", "save the map under this name")
	list := flag.Bool("list", false, "list saved maps and exit")
	copyOut := flag.Bool("copy", false, "copy the preview to the clipboard")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database for saved maps")
	flag.Parse()

	if *list {
		return listMaps(cfg.DBPath, os.Stdout)
	}

	ctrl := editor.New(editor.Options{HexSize: cfg.HexSize, FlipY: cfg.FlipY})
	if err := ctrl.GenerateMap(*width, *height); err != nil {
		return err
	}

	if *islands {
		ic := world.DefaultIslandConfig()
		ic.Seed = *seed
		if ic.Seed == 0 {
			ic.Seed = world.RandomSeed()
		}
		changed, err := ctrl.SeedIslands(ic)
		if err != nil {
			return fmt.Errorf("seeding islands: %w", err)
		}
		log.WithField("seed", ic.Seed).WithField("changed", changed).Info("islands seeded")
	}

	m := ctrl.Map()
	preview := visual.ASCII(m)
	fmt.Print(preview)
	fmt.Printf("%dx%d, %s tiles\n", m.Width(), m.Height(), humanize.Comma(int64(m.Len())))
	counts := m.TerrainCounts()
	for _, t := range world.Terrains {
		fmt.Printf("  %c %-13s %5s  %s\n", visual.Glyph(t), t, humanize.Comma(int64(counts[t])),
			humanize.FtoaWithDigits(100*float64(counts[t])/float64(m.Len()), 1)+"%")
	}

	if *copyOut {
		if err := clipboard.WriteAll(preview); err != nil {
			log.WithError(err).Warn("clipboard unavailable")
		}
	}

	if *save != "" {
		if err := saveMap(cfg.DBPath, *save, m); err != nil {
			return err
		}
		fmt.Printf("saved %q to %s\n", *save, cfg.DBPath)
	}
	return nil
}

func saveMap(path, name string, m *world.Map) error {
	db, err := persistence.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.SaveMap(name, m); err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}
	return nil
}

func listMaps(path string, w io.Writer) error {
	db, err := persistence.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	maps, err := db.ListMaps()
	if err != nil {
		return fmt.Errorf("listing maps: %w", err)
	}
	if len(maps) == 0 {
		fmt.Fprintln(w, "no saved maps")
		return nil
	}
	for _, s := range maps {
		fmt.Fprintln(w, s)
	}
	return nil
}
