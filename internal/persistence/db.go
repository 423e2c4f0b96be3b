// Package persistence stores editor maps in SQLite.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/world"
)

var (
	// ErrNotFound is returned when no map is saved under the given name.
	ErrNotFound = errors.New("map not found")
	// ErrShapeMismatch is returned when stored tiles do not fit the stored
	// dimensions.
	ErrShapeMismatch = errors.New("stored tiles do not match map shape")
)

// MetaLastMap is the meta key holding the name of the most recent save.
const MetaLastMap = "last_map"

// DB wraps a SQLite connection for map storage.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// MapSummary describes one saved map.
type MapSummary struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Width   int     `db:"width"`
	Height  int     `db:"height"`
	HexSize float64 `db:"hex_size"`
	FlipY   bool    `db:"flip_y"`
	SavedAt int64   `db:"saved_at"`
	Tiles   int     `db:"tiles"`
}

// Saved returns the save time.
func (s MapSummary) Saved() time.Time {
	return time.Unix(s.SavedAt, 0)
}

func (s MapSummary) String() string {
	return fmt.Sprintf("%-16s %dx%d  %s tiles  saved %s",
		s.Name, s.Width, s.Height, humanize.Comma(int64(s.Tiles)), humanize.Time(s.Saved()))
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		hex_size REAL NOT NULL,
		flip_y INTEGER NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		map_id INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		tile_row INTEGER NOT NULL,
		tile_col INTEGER NOT NULL,
		terrain TEXT NOT NULL,
		PRIMARY KEY (map_id, idx)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMap writes m under name, replacing any map already saved there.
func (db *DB) SaveMap(name string, m *world.Map) error {
	if m == nil {
		return errors.New("save map: nil map")
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteByName(tx, name); err != nil {
		return err
	}

	flip := 0
	if m.FlipsY() {
		flip = 1
	}
	res, err := tx.Exec(`INSERT INTO maps (name, width, height, hex_size, flip_y, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		name, m.Width(), m.Height(), m.HexSize(), flip, db.now().Unix())
	if err != nil {
		return fmt.Errorf("insert map %q: %w", name, err)
	}
	mapID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO tiles (map_id, idx, tile_row, tile_col, terrain)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, tile := range m.All() {
		o := tile.Offset()
		if _, err := stmt.Exec(mapID, i, o.Row, o.Col, tile.Terrain.String()); err != nil {
			return fmt.Errorf("insert tile %d: %w", i, err)
		}
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", MetaLastMap, name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.For("persistence").WithField("name", name).WithField("tiles", m.Len()).Info("map saved")
	return nil
}

type tileRow struct {
	Idx     int    `db:"idx"`
	Row     int    `db:"tile_row"`
	Col     int    `db:"tile_col"`
	Terrain string `db:"terrain"`
}

// LoadMap rebuilds the map saved under name.
func (db *DB) LoadMap(name string) (*world.Map, error) {
	var s MapSummary
	err := db.conn.Get(&s, `SELECT id, name, width, height, hex_size, flip_y, saved_at, 0 AS tiles
		FROM maps WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	m, err := world.TryNew(s.Width, s.Height, world.WithHexSize(s.HexSize), world.WithFlipY(s.FlipY))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	var rows []tileRow
	if err := db.conn.Select(&rows,
		"SELECT idx, tile_row, tile_col, terrain FROM tiles WHERE map_id = ? ORDER BY idx", s.ID); err != nil {
		return nil, fmt.Errorf("load %q tiles: %w", name, err)
	}
	if len(rows) != m.Len() {
		return nil, fmt.Errorf("load %q: %d tiles for %dx%d: %w", name, len(rows), s.Width, s.Height, ErrShapeMismatch)
	}

	for i, r := range rows {
		tile, _ := m.Tile(i)
		if r.Idx != i || tile.Offset() != (world.OffsetCoord{Row: r.Row, Col: r.Col}) {
			return nil, fmt.Errorf("load %q: tile %d at (%d,%d): %w", name, r.Idx, r.Row, r.Col, ErrShapeMismatch)
		}
		t, err := world.ParseTerrain(r.Terrain)
		if err != nil {
			return nil, fmt.Errorf("load %q tile %d: %w", name, i, err)
		}
		if _, err := m.SetTerrain(i, t); err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
	}
	return m, nil
}

// ListMaps returns all saved maps, most recent first.
func (db *DB) ListMaps() ([]MapSummary, error) {
	var out []MapSummary
	err := db.conn.Select(&out, `SELECT m.id, m.name, m.width, m.height, m.hex_size, m.flip_y, m.saved_at,
			(SELECT COUNT(*) FROM tiles t WHERE t.map_id = m.id) AS tiles
		FROM maps m ORDER BY m.saved_at DESC, m.id DESC`)
	return out, err
}

// DeleteMap removes the map saved under name.
func (db *DB) DeleteMap(name string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	if err := tx.Get(&id, "SELECT id FROM maps WHERE name = ?", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete %q: %w", name, ErrNotFound)
		}
		return err
	}
	if err := deleteByName(tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteByName(tx *sqlx.Tx, name string) error {
	if _, err := tx.Exec("DELETE FROM tiles WHERE map_id IN (SELECT id FROM maps WHERE name = ?)", name); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM maps WHERE name = ?", name)
	return err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a value. A missing key yields "" and no error.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
