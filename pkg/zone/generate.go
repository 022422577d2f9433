package zone

import (
	"hash/fnv"
	"math/rand"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/registry"
)

// Generate builds a fresh zone for key. Generation is deterministic
// for a given (seed, key) pair, so re-requesting a discarded zone
// reproduces the same terrain. The defeated predicate filters spawn
// indexes whose enemies were already beaten in an earlier visit.
func Generate(key Key, seed int64, reg *registry.Registry, defeated func(spawnIndex int) bool) *Zone {
	rng := rand.New(rand.NewSource(seed ^ int64(keyHash(key))))

	z := &Zone{
		Key:  key,
		Grid: grid.New(),
	}

	// Border walls with a gap for the exit on surface zones.
	for i := 0; i < grid.Size; i++ {
		z.Grid.Set(i, 0, grid.Tile{Type: grid.TileWall})
		z.Grid.Set(i, grid.Size-1, grid.Tile{Type: grid.TileWall})
		z.Grid.Set(0, i, grid.Tile{Type: grid.TileWall})
		z.Grid.Set(grid.Size-1, i, grid.Tile{Type: grid.TileWall})
	}

	mid := grid.Size / 2
	scatter := grid.TileRock
	switch key.Dimension {
	case DimensionSurface:
		z.Grid.Set(mid, 0, grid.Tile{Type: grid.TileExit})
		z.Grid.Set(mid-2, grid.Size-1, grid.Tile{Type: grid.TilePort, PortKind: grid.PortInterior})
		z.Grid.Set(mid+2, mid+2, grid.Tile{Type: grid.TilePitfall})
		scatter = grid.TileTree
	case DimensionInterior:
		z.Grid.Set(mid, grid.Size-1, grid.Tile{Type: grid.TilePort, PortKind: grid.PortInterior})
	case DimensionUnderground:
		z.Grid.Set(mid, grid.Size-1, grid.Tile{Type: grid.TilePort, PortKind: grid.PortUnderground})
		scatter = grid.TileWater
	}

	// Scattered terrain in the open field.
	for i := 0; i < 6; i++ {
		x := 1 + rng.Intn(grid.Size-2)
		y := 1 + rng.Intn(grid.Size-2)
		if t, _ := z.Grid.At(x, y); t.Type == grid.TileFloor {
			z.Grid.Set(x, y, grid.Tile{Type: scatter})
		}
	}

	placeFeatures(z, rng, reg)
	spawnEnemies(z, rng, reg, defeated)
	return z
}

// placeFeatures drops registry content onto the terrain: loot on every
// zone, plus an NPC and a locked vault in interior and underground
// zones. Placement draws from the same seeded stream as terrain, so
// regenerating a discarded zone reproduces identical drops.
func placeFeatures(z *Zone, rng *rand.Rand, reg *registry.Registry) {
	if reg == nil {
		return
	}

	var avoid func(x, y int) bool
	if z.Key.Dimension != DimensionSurface {
		carveVault(z, reg)
		avoid = insideVault
	}

	loot := []string{"bread", "waterskin", "tonic", "gem"}
	dropItem(z, rng, reg, loot[rng.Intn(len(loot))], avoid)

	if z.Key.Dimension == DimensionSurface {
		return
	}

	dropItem(z, rng, reg, firstOf(reg.ItemIDsByKind("key")), insideVault)
	placeNPC(z, rng, reg)
}

// insideVault covers the walled northwest corner so the key never
// drops behind its own door.
func insideVault(x, y int) bool {
	return x <= 4 && y <= 4
}

// carveVault walls off the northwest corner behind a locked door, with
// a treasure inside. The key drops elsewhere in the zone.
func carveVault(z *Zone, reg *registry.Registry) {
	treasure := firstOf(reg.ItemIDsByKind("treasure"))
	if treasure == "" {
		return
	}
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			z.Grid.Set(x, y, grid.Tile{Type: grid.TileFloor})
		}
	}
	for i := 1; i <= 4; i++ {
		z.Grid.Set(4, i, grid.Tile{Type: grid.TileWall})
		z.Grid.Set(i, 4, grid.Tile{Type: grid.TileWall})
	}
	z.Grid.Set(4, 2, grid.Tile{Type: grid.TileDoorClosed})
	z.Grid.Set(2, 2, grid.Tile{Type: grid.TileItem, RefID: treasure})
}

func placeNPC(z *Zone, rng *rand.Rand, reg *registry.Registry) {
	ids := reg.NPCIDs()
	if len(ids) == 0 {
		return
	}
	id := ids[rng.Intn(len(ids))]
	if x, y, ok := openFloor(z, rng, insideVault); ok {
		z.Grid.Set(x, y, grid.Tile{Type: grid.TileNPC, RefID: id})
	}
}

func dropItem(z *Zone, rng *rand.Rand, reg *registry.Registry, id string, avoid func(x, y int) bool) {
	if id == "" || reg.GetItem(id) == nil {
		return
	}
	if x, y, ok := openFloor(z, rng, avoid); ok {
		z.Grid.Set(x, y, grid.Tile{Type: grid.TileItem, RefID: id})
	}
}

// openFloor draws random cells until it hits a plain floor tile
// outside the avoided region. The attempt cap keeps a pathological
// layout from spinning forever.
func openFloor(z *Zone, rng *rand.Rand, avoid func(x, y int) bool) (int, int, bool) {
	for i := 0; i < 40; i++ {
		x := 1 + rng.Intn(grid.Size-2)
		y := 1 + rng.Intn(grid.Size-2)
		if avoid != nil && avoid(x, y) {
			continue
		}
		if t, _ := z.Grid.At(x, y); t.Type == grid.TileFloor {
			return x, y, true
		}
	}
	return 0, 0, false
}

func firstOf(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func spawnEnemies(z *Zone, rng *rand.Rand, reg *registry.Registry, defeated func(int) bool) {
	if reg == nil {
		return
	}
	ids := reg.EnemyIDs()
	if len(ids) == 0 {
		return
	}

	count := 2 + rng.Intn(3)
	for idx := 0; idx < count; idx++ {
		def := reg.GetEnemy(ids[rng.Intn(len(ids))])
		x := 1 + rng.Intn(grid.Size-2)
		y := 1 + rng.Intn(grid.Size-2)

		// Spawn index and position are drawn regardless of defeat
		// status so the stream stays stable across regenerations.
		if defeated != nil && defeated(idx) {
			continue
		}
		if !z.Grid.IsWalkable(x, y) || z.EnemyAt(x, y) != nil {
			continue
		}
		z.Enemies = append(z.Enemies, actor.NewEnemy(idx, def.ID, x, y, def.Health, def.Attack, def.Points))
	}
}

func keyHash(k Key) uint64 {
	h := fnv.New64a()
	h.Write([]byte(k.String()))
	return h.Sum64()
}
