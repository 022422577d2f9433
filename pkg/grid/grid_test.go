package grid

import "testing"

func TestAt_OutOfBounds(t *testing.T) {
	g := New()

	cases := []struct {
		x, y int
	}{
		{-1, 0},
		{0, -1},
		{Size, 0},
		{0, Size},
		{-5, -5},
	}

	for _, c := range cases {
		if _, ok := g.At(c.x, c.y); ok {
			t.Errorf("At(%d, %d) ok = true, want false", c.x, c.y)
		}
	}
}

func TestSet_OutOfBoundsDoesNotMutate(t *testing.T) {
	g := New()

	if g.Set(-1, 3, Tile{Type: TileWall}) {
		t.Error("Set(-1, 3) = true, want false")
	}
	if g.Set(3, Size, Tile{Type: TileWall}) {
		t.Errorf("Set(3, %d) = true, want false", Size)
	}

	// Grid must still be all floor.
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if g.Cells[y][x].Type != TileFloor {
				t.Fatalf("cell (%d,%d) mutated by out-of-bounds Set", x, y)
			}
		}
	}
}

func TestSet_LastWriterWins(t *testing.T) {
	g := New()
	if !g.Set(4, 4, Tile{Type: TileRock}) {
		t.Fatal("Set(4, 4) = false, want true")
	}
	if !g.Set(4, 4, Tile{Type: TileBomb, Fuse: 1}) {
		t.Fatal("second Set(4, 4) = false, want true")
	}

	tile, ok := g.At(4, 4)
	if !ok {
		t.Fatal("At(4, 4) ok = false")
	}
	if tile.Type != TileBomb || tile.Fuse != 1 {
		t.Errorf("At(4, 4) = %+v, want bomb with fuse 1", tile)
	}
}

func TestIsWalkable(t *testing.T) {
	g := New()
	g.Set(1, 1, Tile{Type: TileWall})
	g.Set(2, 1, Tile{Type: TileWater})
	g.Set(3, 1, Tile{Type: TileDoorClosed})
	g.Set(4, 1, Tile{Type: TilePort, PortKind: PortInterior})
	g.Set(5, 1, Tile{Type: TileBomb, Fuse: 2})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"floor", 0, 0, true},
		{"wall", 1, 1, false},
		{"water", 2, 1, false},
		{"closed door", 3, 1, false},
		{"port is walkable", 4, 1, true},
		{"bomb is walkable", 5, 1, true},
		{"out of bounds", -1, 0, false},
		{"out of bounds high", 0, Size, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsWalkable(tt.x, tt.y); got != tt.want {
				t.Errorf("IsWalkable(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFindType_RowMajorOrder(t *testing.T) {
	g := New()
	g.Set(5, 2, Tile{Type: TileRock})
	g.Set(1, 2, Tile{Type: TileRock})
	g.Set(3, 0, Tile{Type: TileRock})

	got := g.FindType(TileRock)
	want := []Coord{{X: 3, Y: 0}, {X: 1, Y: 2}, {X: 5, Y: 2}}

	if len(got) != len(want) {
		t.Fatalf("FindType returned %d coords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindType[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindPort(t *testing.T) {
	g := New()
	g.Set(6, 3, Tile{Type: TilePort, PortKind: PortStairway})
	g.Set(2, 7, Tile{Type: TilePort, PortKind: PortInterior})

	c, ok := g.FindPort(PortInterior)
	if !ok || c != (Coord{X: 2, Y: 7}) {
		t.Errorf("FindPort(interior) = %v, %v; want (2,7), true", c, ok)
	}

	// Any-port match returns the first in row-major order.
	c, ok = g.FindPort("")
	if !ok || c != (Coord{X: 6, Y: 3}) {
		t.Errorf("FindPort(any) = %v, %v; want (6,3), true", c, ok)
	}

	if _, ok := g.FindPort(PortUnderground); ok {
		t.Error("FindPort(underground) ok = true, want false")
	}
}

func TestCoordKey(t *testing.T) {
	if got := (Coord{X: 7, Y: 8}).Key(); got != "7,8" {
		t.Errorf("Key() = %q, want %q", got, "7,8")
	}
}
