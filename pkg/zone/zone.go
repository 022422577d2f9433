package zone

import (
	"fmt"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

// Dimension tags which layer of the world a zone belongs to.
type Dimension string

const (
	DimensionSurface     Dimension = "surface"
	DimensionInterior    Dimension = "interior"
	DimensionUnderground Dimension = "underground"
)

// Key addresses one zone in the world: integer zone coordinates plus
// a dimension tag and, below ground, a depth.
type Key struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Dimension Dimension `json:"dimension"`
	Depth     int       `json:"depth,omitempty"`
}

// String renders the key in its store form, "x,y:dimension[:depth]".
// The string is an implementation detail of the store; callers should
// hold the structured Key.
func (k Key) String() string {
	if k.Depth > 0 {
		return fmt.Sprintf("%d,%d:%s:%d", k.X, k.Y, k.Dimension, k.Depth)
	}
	return fmt.Sprintf("%d,%d:%s", k.X, k.Y, k.Dimension)
}

// ReturnPoint records where a round trip should put the player back.
type ReturnPoint struct {
	From string `json:"from"` // "pitfall" or "port"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Zone is one persisted level instance. The grid and enemy list are
// owned by the active game session while the zone is current, and are
// written back to the store wholesale on transition.
type Zone struct {
	Key     Key            `json:"key"`
	Grid    *grid.Grid     `json:"grid"`
	Enemies []*actor.Enemy `json:"enemies"`

	// PlayerSpawn is the zone's declared spawn tile. SpawnAuthored
	// distinguishes board-authored spawn metadata from a generic
	// generated default; only authored spawns take part in the
	// spawn priority chain.
	PlayerSpawn   *grid.Coord `json:"player_spawn,omitempty"`
	SpawnAuthored bool        `json:"spawn_authored,omitempty"`

	// ReturnToSurface is set the first time the player enters this
	// zone from above (pitfall or port). First write wins for the
	// life of the record.
	ReturnToSurface *ReturnPoint `json:"return_to_surface,omitempty"`
}

// SetReturnToSurface records the surface origin for this zone. An
// existing value is never overwritten; the first-recorded origin
// wins until the record itself is discarded.
func (z *Zone) SetReturnToSurface(rp ReturnPoint) {
	if z.ReturnToSurface != nil {
		return
	}
	z.ReturnToSurface = &ReturnPoint{From: rp.From, X: rp.X, Y: rp.Y}
}

// EnemyAt returns the live enemy standing on (x, y), or nil.
func (z *Zone) EnemyAt(x, y int) *actor.Enemy {
	for _, e := range z.Enemies {
		if e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// RemoveEnemy deletes an enemy from the live list by instance
// identity, preserving the order of the rest. Order is significant:
// it is also occupancy priority during the enemy phase.
func (z *Zone) RemoveEnemy(target *actor.Enemy) bool {
	for i, e := range z.Enemies {
		if e.ID == target.ID {
			z.Enemies = append(z.Enemies[:i], z.Enemies[i+1:]...)
			return true
		}
	}
	return false
}
