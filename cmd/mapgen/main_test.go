package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/battle-isles/internal/persistence"
	"github.com/talgya/battle-isles/internal/world"
)

func TestSaveMapThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.db")
	m, err := world.TryNew(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := saveMap(path, "first", m); err != nil {
		t.Fatalf("saveMap: %v", err)
	}
	if err := saveMap(path, "second", m); err != nil {
		t.Fatalf("second saveMap: %v", err)
	}

	db, err := persistence.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, err := db.LoadMap("second")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != world.TileCount(4, 3) {
		t.Fatalf("loaded %d tiles", got.Len())
	}
}

func TestSaveMapReportsOpenFailure(t *testing.T) {
	dir := t.TempDir()
	m, _ := world.TryNew(2, 2)
	// The database path is an existing directory.
	if err := saveMap(dir, "x", m); err == nil {
		t.Fatal("saving into a directory path should fail")
	}
}

func TestListMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.db")
	var buf bytes.Buffer
	if err := listMaps(path, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no saved maps\n" {
		t.Fatalf("empty listing %q", buf.String())
	}

	m, _ := world.TryNew(3, 3)
	if err := saveMap(path, "harbour", m); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := listMaps(path, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "harbour") || strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("listing %q", buf.String())
	}
}
