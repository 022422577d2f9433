package grid

import "fmt"

// Size is the side length of every zone grid.
const Size = 11

// TileType discriminates what occupies a cell.
type TileType int

const (
	TileFloor TileType = iota
	TileWall
	TileRock
	TileWater
	TileTree
	TileExit
	TileDoorClosed
	TilePort
	TilePitfall
	TileBomb
	TileNPC
	TileItem
)

// PortKind distinguishes zone-to-zone transition points.
type PortKind string

const (
	PortInterior    PortKind = "interior"
	PortStairway    PortKind = "stairway"
	PortUnderground PortKind = "underground"
)

// Coord is a grid position.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns the coordinate as a composite string key,
// usable in occupancy sets and map lookups.
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Tile is one grid cell. Type is always the discriminant; the
// remaining fields are meaningful only for the stateful tile types
// (bomb fuse, port kind, pitfall origin, item/NPC reference).
type Tile struct {
	Type TileType `json:"type"`

	// Bomb state: turns elapsed since the bomb was placed.
	Fuse int `json:"fuse,omitempty"`

	// Port state.
	PortKind PortKind `json:"port_kind,omitempty"`

	// Item or NPC reference into the content registry.
	RefID string `json:"ref_id,omitempty"`
}

// blocking is the fixed set of tile types that stop movement.
var blocking = map[TileType]bool{
	TileWall:       true,
	TileRock:       true,
	TileWater:      true,
	TileTree:       true,
	TileDoorClosed: true,
	TileNPC:        true,
}

// Grid is one zone's square tile field. Cells are accessed through
// At and Set, which bounds-check; a Grid is owned by exactly one
// game session at a time and replaced wholesale on zone transition.
type Grid struct {
	Cells [Size][Size]Tile `json:"cells"`
}

// New returns a grid of floor tiles.
func New() *Grid {
	return &Grid{}
}

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At returns the tile at (x, y). The second return is false when the
// coordinate is out of bounds; out-of-bounds access never panics.
func (g *Grid) At(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	return g.Cells[y][x], true
}

// Set writes the tile at (x, y). It returns false and performs no
// mutation when the coordinate is out of bounds. Writes are
// last-writer-wins; the grid is single-threaded per zone.
func (g *Grid) Set(x, y int, t Tile) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.Cells[y][x] = t
	return true
}

// IsWalkable reports whether (x, y) can be stepped onto. Out-of-bounds
// coordinates and the fixed blocking set are not walkable; stateful
// tiles are judged by their Type discriminant like any other.
func (g *Grid) IsWalkable(x, y int) bool {
	t, ok := g.At(x, y)
	if !ok {
		return false
	}
	return !blocking[t.Type]
}

// FindType returns the coordinates of every tile of the requested
// type, in row-major scan order.
func (g *Grid) FindType(tt TileType) []Coord {
	var out []Coord
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if g.Cells[y][x].Type == tt {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// FindPort returns the first port tile matching kind, row-major.
// An empty kind matches any port.
func (g *Grid) FindPort(kind PortKind) (Coord, bool) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			t := g.Cells[y][x]
			if t.Type != TilePort {
				continue
			}
			if kind == "" || t.PortKind == kind {
				return Coord{X: x, Y: y}, true
			}
		}
	}
	return Coord{}, false
}
