package editor

import (
	"github.com/sirupsen/logrus"

	"github.com/talgya/battle-isles/internal/world"
)

// Intent is a user request queued for the next tick.
type Intent interface {
	replacesMap() bool
}

// GenerateMapIntent asks for a fresh map.
type GenerateMapIntent struct {
	Width  int
	Height int
}

func (GenerateMapIntent) replacesMap() bool { return true }

// PaintIntent asks to paint the tile nearest to Pos.
type PaintIntent struct {
	Pos     world.Point
	Terrain world.Terrain
}

func (PaintIntent) replacesMap() bool { return false }

// SeedIslandsIntent asks to repaint the current map from noise.
type SeedIslandsIntent struct {
	Config world.IslandConfig
}

func (SeedIslandsIntent) replacesMap() bool { return false }

// LoadMapIntent swaps in an already built map, e.g. one read from disk.
type LoadMapIntent struct {
	Map *world.Map
}

func (LoadMapIntent) replacesMap() bool { return true }

// TickResult summarises one call to Tick.
type TickResult struct {
	Tick     uint64
	Applied  int
	Deferred int
	Errors   []error
}

// Submit queues an intent for the next Tick.
func (c *Controller) Submit(in Intent) {
	c.queue = append(c.queue, in)
}

// Pending returns the number of queued intents.
func (c *Controller) Pending() int {
	return len(c.queue)
}

// Tick applies queued intents in submission order. At most one map
// replacement happens per tick; the second replacement and everything
// queued after it waits for the next tick so ordering is preserved.
func (c *Controller) Tick() TickResult {
	c.tick++
	res := TickResult{Tick: c.tick}

	replaced := false
	n := 0
	for ; n < len(c.queue); n++ {
		in := c.queue[n]
		if in.replacesMap() {
			if replaced {
				break
			}
			replaced = true
		}
		if err := c.run(in); err != nil {
			res.Errors = append(res.Errors, err)
		}
		res.Applied++
	}

	rest := copy(c.queue, c.queue[n:])
	clear(c.queue[rest:])
	c.queue = c.queue[:rest]
	res.Deferred = rest

	if res.Applied > 0 {
		c.log.WithFields(logrus.Fields{
			"tick":     res.Tick,
			"applied":  res.Applied,
			"deferred": res.Deferred,
		}).Debug("tick")
	}
	return res
}

func (c *Controller) run(in Intent) error {
	switch in := in.(type) {
	case GenerateMapIntent:
		return c.GenerateMap(in.Width, in.Height)
	case PaintIntent:
		_, _, err := c.PaintTerrainAt(in.Pos, in.Terrain)
		return err
	case SeedIslandsIntent:
		_, err := c.SeedIslands(in.Config)
		return err
	case LoadMapIntent:
		c.ReplaceMap(in.Map)
		return nil
	default:
		return nil
	}
}
