package game

import (
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// enterZone moves the session into the zone addressed by key,
// generating it on first visit. entry, when non-nil, carries the
// coordinates the player stood on before crossing and wins the spawn
// priority outright. ret, when non-nil, is recorded on the
// destination as its surface return point; an existing value is
// never overwritten.
//
// Spawn priority, first match wins:
//  1. explicit entry coordinates from the triggering transition
//  2. board-authored spawn metadata on the destination record
//  3. an interior port tile in the destination grid
//  4. any port tile in the destination grid
//  5. a new port created at the default center-bottom location
func (e *Engine) enterZone(key zone.Key, entry *grid.Coord, ret *zone.ReturnPoint) {
	z, ok := e.gs.GetZone(key)
	if !ok {
		z = zone.Generate(key, e.gs.Seed, e.reg, func(idx int) bool {
			return e.gs.IsDefeated(key, idx)
		})
		e.gs.PutZone(z)
	}
	if ret != nil {
		z.SetReturnToSurface(*ret)
	}

	spawn := e.resolveSpawn(z, entry)

	e.gs.Zone = key
	e.player.MoveTo(spawn.X, spawn.Y)
	e.gs.JustEntered = true
	e.gs.Pending = nil
	e.logger.Debug("entered zone", "zone", key.String(), "spawn", spawn.Key())
}

func (e *Engine) resolveSpawn(z *zone.Zone, entry *grid.Coord) grid.Coord {
	if entry != nil && z.Grid.IsWalkable(entry.X, entry.Y) {
		return *entry
	}
	if z.SpawnAuthored && z.PlayerSpawn != nil {
		return *z.PlayerSpawn
	}
	if c, ok := z.Grid.FindPort(grid.PortInterior); ok {
		return c
	}
	if c, ok := z.Grid.FindPort(""); ok {
		return c
	}

	// Best-effort placement: carve a fresh port at the default spot.
	c := grid.Coord{X: grid.Size / 2, Y: grid.Size - 2}
	z.Grid.Set(c.X, c.Y, grid.Tile{Type: grid.TilePort, PortKind: grid.PortInterior})
	return c
}

// enterPort resolves stepping onto a port tile. Interior doorways on
// the surface lead inside; ports inside interiors and underground
// zones lead back to the surface at the recorded return point.
func (e *Engine) enterPort(at grid.Coord, tile grid.Tile, res *Result) {
	cur := e.gs.Zone

	switch cur.Dimension {
	case zone.DimensionSurface:
		dest := zone.Key{X: cur.X, Y: cur.Y, Dimension: zone.DimensionInterior}
		// The player keeps their grid position across the doorway,
		// and the surface side is remembered so leaving the interior
		// puts them right back.
		e.enterZone(dest, &at, &zone.ReturnPoint{From: "port", X: at.X, Y: at.Y})
		res.Messages = append(res.Messages, "You step inside.")

	case zone.DimensionInterior, zone.DimensionUnderground:
		z := e.gs.CurrentZone()
		dest := zone.Key{X: cur.X, Y: cur.Y, Dimension: zone.DimensionSurface}
		var entry *grid.Coord
		if z.ReturnToSurface != nil {
			entry = &grid.Coord{X: z.ReturnToSurface.X, Y: z.ReturnToSurface.Y}
		}
		// A missing return point degrades to the spawn chain.
		e.enterZone(dest, entry, nil)
		res.Messages = append(res.Messages, "You climb back to the surface.")
	}
}

// fallThroughPitfall drops the player one depth underground. The
// underground record stores the surface coordinates of the pitfall
// the player fell through; the first-recorded origin wins for the
// life of that record, surviving any number of visits in between.
func (e *Engine) fallThroughPitfall(at grid.Coord, res *Result) {
	cur := e.gs.Zone
	dest := zone.Key{
		X:         cur.X,
		Y:         cur.Y,
		Dimension: zone.DimensionUnderground,
		Depth:     cur.Depth + 1,
	}
	e.enterZone(dest, nil, &zone.ReturnPoint{From: "pitfall", X: at.X, Y: at.Y})
	res.Messages = append(res.Messages, "The ground gives way beneath you.")
}

// exitToAdjacentZone crosses the zone exit into the neighboring
// surface zone, spawning just inside the matching edge.
func (e *Engine) exitToAdjacentZone(dx, dy int) {
	cur := e.gs.Zone
	dest := zone.Key{X: cur.X + dx, Y: cur.Y + dy, Dimension: zone.DimensionSurface}

	entry := grid.Coord{X: e.player.Spec.X, Y: e.player.Spec.Y}
	switch {
	case dy < 0:
		entry.Y = grid.Size - 2
	case dy > 0:
		entry.Y = 1
	case dx < 0:
		entry.X = grid.Size - 2
	case dx > 0:
		entry.X = 1
	}

	e.enterZone(dest, &entry, nil)
}
