package editor

import (
	"github.com/google/uuid"

	"github.com/talgya/battle-isles/internal/world"
)

// Event is published by the controller to the presentation layer.
type Event interface {
	// Origin is the id of the map the event belongs to.
	Origin() uuid.UUID
}

// MapReplaced announces a new current map. Every TileChanged for an older
// MapID is stale from this point on.
type MapReplaced struct {
	MapID uuid.UUID
	Map   *world.Map
}

// Origin implements Event.
func (e MapReplaced) Origin() uuid.UUID { return e.MapID }

// TileChanged carries one terrain edit on the map identified by MapID.
type TileChanged struct {
	MapID  uuid.UUID
	Record world.ChangeRecord
}

// Origin implements Event.
func (e TileChanged) Origin() uuid.UUID { return e.MapID }

// Listener receives events synchronously in publication order.
type Listener func(Event)
