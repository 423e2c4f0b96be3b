// Package editor turns user intents into map operations and publishes
// the resulting events.
package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/world"
)

// ErrNoMap is returned by operations that need a current map.
var ErrNoMap = errors.New("no map loaded")

// State is the controller lifecycle state.
type State uint8

const (
	StateNoMap State = iota
	StateHasMap
)

func (s State) String() string {
	if s == StateHasMap {
		return "HasMap"
	}
	return "NoMap"
}

// Options configure maps built by the controller.
type Options struct {
	HexSize float64 // 0 means world.DefaultHexSize
	FlipY   bool
}

// Controller owns the current map. All terrain mutations go through it.
type Controller struct {
	opts Options

	current *world.Map
	mapID   uuid.UUID

	listeners []Listener
	queue     []Intent
	tick      uint64
	status    string
	lastErr   error

	log *logrus.Entry
}

// New returns a controller in the NoMap state.
func New(opts Options) *Controller {
	if opts.HexSize <= 0 {
		opts.HexSize = world.DefaultHexSize
	}
	return &Controller{
		opts:   opts,
		status: "no map",
		log:    logger.For("editor"),
	}
}

// Subscribe registers a listener for all future events.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) publish(e Event) {
	for _, l := range c.listeners {
		l(e)
	}
}

// State reports whether a map is loaded.
func (c *Controller) State() State {
	if c.current == nil {
		return StateNoMap
	}
	return StateHasMap
}

// Map returns the current map, or nil. Callers must treat it as read-only;
// edits go through PaintTerrainAt, PaintTile or SeedIslands.
func (c *Controller) Map() *world.Map {
	return c.current
}

// MapID identifies the current map. It is uuid.Nil before the first map.
func (c *Controller) MapID() uuid.UUID {
	return c.mapID
}

// Status is a one-line description of the last action for the status bar.
func (c *Controller) Status() string {
	return c.status
}

// LastError returns the error of the last failed user action, if any.
func (c *Controller) LastError() error {
	return c.lastErr
}

func (c *Controller) fail(err error, msg string) error {
	c.lastErr = err
	c.status = err.Error()
	c.log.WithError(err).Warn(msg)
	return err
}

// GenerateMap builds a fresh width x height map and makes it current. On
// error the previous map, if any, stays current and nothing is published.
func (c *Controller) GenerateMap(width, height int) error {
	m, err := world.TryNew(width, height,
		world.WithHexSize(c.opts.HexSize),
		world.WithFlipY(c.opts.FlipY),
	)
	if err != nil {
		return c.fail(err, "map generation rejected")
	}
	c.ReplaceMap(m)
	return nil
}

// ReplaceMap makes m the current map and publishes MapReplaced. It is used
// for generated and loaded maps alike.
func (c *Controller) ReplaceMap(m *world.Map) {
	if m == nil {
		return
	}
	c.current = m
	c.mapID = uuid.New()
	c.lastErr = nil
	c.status = fmt.Sprintf("map %dx%d, %d tiles", m.Width(), m.Height(), m.Len())

	c.log.WithFields(logrus.Fields{
		"map_id": c.mapID,
		"width":  m.Width(),
		"height": m.Height(),
		"tiles":  m.Len(),
	}).Info("map replaced")

	c.publish(MapReplaced{MapID: c.mapID, Map: m})
}

// PaintTerrainAt paints the tile nearest to the world point p. The point
// uses the map's presentation convention. It reports false when there is
// no map.
func (c *Controller) PaintTerrainAt(p world.Point, t world.Terrain) (world.ChangeRecord, bool, error) {
	if c.current == nil {
		return world.ChangeRecord{}, false, nil
	}
	idx, ok := c.current.NearestTile(p)
	if !ok {
		return world.ChangeRecord{}, false, nil
	}
	rec, err := c.apply(idx, t)
	if err != nil {
		return world.ChangeRecord{}, false, err
	}
	return rec, true, nil
}

// PaintTile paints tile idx of the map identified by mapID. References to
// a map that is no longer current, or indices outside it, are dropped
// silently and report false.
func (c *Controller) PaintTile(mapID uuid.UUID, idx int, t world.Terrain) (world.ChangeRecord, bool) {
	if c.current == nil || mapID != c.mapID {
		c.log.WithFields(logrus.Fields{"map_id": mapID, "tile": idx}).Debug("dropping paint for stale map")
		return world.ChangeRecord{}, false
	}
	if idx < 0 || idx >= c.current.Len() {
		c.log.WithFields(logrus.Fields{"map_id": mapID, "tile": idx}).Debug("dropping out-of-range paint")
		return world.ChangeRecord{}, false
	}
	rec, err := c.apply(idx, t)
	if err != nil {
		return world.ChangeRecord{}, false
	}
	return rec, true
}

// apply runs the terrain edit on the current map and publishes it.
func (c *Controller) apply(idx int, t world.Terrain) (world.ChangeRecord, error) {
	rec, err := c.current.SetTerrain(idx, t)
	if err != nil {
		c.log.WithError(err).WithField("tile", idx).Error("terrain edit failed")
		return rec, err
	}
	c.status = fmt.Sprintf("tile %d: %s -> %s", rec.TileIndex, rec.PreviousTerrain, rec.NewTerrain)
	c.log.WithFields(logrus.Fields{
		"tile":     rec.TileIndex,
		"previous": rec.PreviousTerrain,
		"terrain":  rec.NewTerrain,
	}).Debug("terrain set")
	c.publish(TileChanged{MapID: c.mapID, Record: rec})
	return rec, nil
}

// SeedIslands paints the current map from a noise plan, one edit per
// tile, and returns how many tiles changed terrain.
func (c *Controller) SeedIslands(cfg world.IslandConfig) (int, error) {
	if c.current == nil {
		return 0, c.fail(ErrNoMap, "island seeding skipped")
	}
	changed, land := 0, 0
	for _, p := range world.PlanIslands(c.current, cfg) {
		rec, err := c.apply(p.Index, p.Terrain)
		if err != nil {
			return changed, err
		}
		if rec.Changed() {
			changed++
		}
		if !p.Terrain.IsWater() {
			land++
		}
	}
	c.status = fmt.Sprintf("seeded islands, %d land tiles", land)
	c.log.WithFields(logrus.Fields{"changed": changed, "land": land}).Info("islands seeded")
	return changed, nil
}
