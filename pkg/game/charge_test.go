package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

func TestValidDiagonalCharge_Boundaries(t *testing.T) {
	from := grid.Coord{X: 5, Y: 5}

	tests := []struct {
		name   string
		target grid.Coord
		want   bool
	}{
		{"distance 1", grid.Coord{X: 6, Y: 6}, true},
		{"distance 5", grid.Coord{X: 0, Y: 0}, true},
		{"distance 0", grid.Coord{X: 5, Y: 5}, false},
		{"distance 6", grid.Coord{X: 11, Y: 11}, false},
		{"off diagonal", grid.Coord{X: 7, Y: 6}, false},
		{"orthogonal", grid.Coord{X: 5, Y: 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDiagonalCharge(tt.target, from); got != tt.want {
				t.Errorf("ValidDiagonalCharge(%v) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestValidKnightCharge_CanonicalOffsets(t *testing.T) {
	from := grid.Coord{X: 5, Y: 5}

	for _, off := range knightOffsets {
		target := grid.Coord{X: from.X + off[0], Y: from.Y + off[1]}
		if !ValidKnightCharge(target, from) {
			t.Errorf("offset (%d,%d) should be legal", off[0], off[1])
		}
	}

	illegal := [][2]int{{2, 2}, {0, 0}, {1, 1}, {0, 2}, {3, 1}, {2, 0}}
	for _, off := range illegal {
		target := grid.Coord{X: from.X + off[0], Y: from.Y + off[1]}
		if ValidKnightCharge(target, from) {
			t.Errorf("offset (%d,%d) should be illegal", off[0], off[1])
		}
	}
}

func TestValidRangedShot(t *testing.T) {
	z := openZone()
	addEnemy(z, 0, "lizardy", 5, 2)
	from := grid.Coord{X: 5, Y: 8}

	assert.True(t, ValidRangedShot(grid.Coord{X: 5, Y: 2}, from, z), "clear vertical lane")
	assert.False(t, ValidRangedShot(grid.Coord{X: 6, Y: 2}, from, z), "not orthogonal")
	assert.False(t, ValidRangedShot(from, from, z), "zero-length shot")

	// A wall in the lane blocks the shot.
	z.Grid.Set(5, 5, grid.Tile{Type: grid.TileWall})
	assert.False(t, ValidRangedShot(grid.Coord{X: 5, Y: 2}, from, z), "blocked lane")

	// An intervening enemy blocks it too.
	z2 := openZone()
	addEnemy(z2, 0, "lizardy", 5, 2)
	addEnemy(z2, 1, "lizardo", 5, 5)
	assert.False(t, ValidRangedShot(grid.Coord{X: 5, Y: 2}, from, z2), "intervening enemy")
}

func TestRequestCharge_IllegalTargetIsSilentlyIgnored(t *testing.T) {
	z := openZone()
	addEnemy(z, 0, "lizardy", 7, 6) // not on a diagonal from (5,5)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 7, Y: 6}})
	require.NoError(t, err)
	assert.Nil(t, e.State().Pending, "illegal geometry creates no pending charge")

	// No enemy on the target: also ignored.
	_, err = e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 7, Y: 7}})
	require.NoError(t, err)
	assert.Nil(t, e.State().Pending)
}

func TestDiagonalCharge_ConfirmResolvesKill(t *testing.T) {
	z := openZone()
	target := addEnemy(z, 0, "lizardeaux", 8, 8)
	walker := addEnemy(z, 1, "lizardy", 1, 9)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 8, Y: 8}})
	require.NoError(t, err)
	require.NotNil(t, e.State().Pending)

	res, err := e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)
	assert.True(t, res.TurnConsumed)

	assert.True(t, target.IsDefeated(), "charge damage guarantees defeat")
	assert.NotContains(t, z.Enemies, target)
	assert.Equal(t, grid.Coord{X: 8, Y: 8}, e.Player().Pos(), "melee charge moves the player to the target")
	assert.Equal(t, 20, e.Player().Spec.Points, "kill routed through defeat bookkeeping")
	assert.True(t, e.State().IsDefeated(z.Key, 0))
	assert.Nil(t, e.State().Pending, "pending cleared on confirm")
	assert.Equal(t, 2, e.Player().FindItem("spear").UsesLeft, "one use consumed")
	assert.Equal(t, grid.Coord{X: 1, Y: 9}, walker.Pos(), "enemy phase skipped on the charge turn")
}

func TestRangedShot_PlayerDoesNotMove(t *testing.T) {
	z := openZone()
	target := addEnemy(z, 0, "lizord", 5, 1)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "bow", Target: &grid.Coord{X: 5, Y: 1}})
	require.NoError(t, err)
	require.NotNil(t, e.State().Pending)

	_, err = e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)

	assert.True(t, target.IsDefeated())
	assert.Equal(t, grid.Coord{X: 5, Y: 5}, e.Player().Pos(), "ranged shot leaves the player in place")
	assert.Equal(t, 4, e.Player().FindItem("bow").UsesLeft)
}

func TestKnightCharge_Geometry(t *testing.T) {
	z := openZone()
	target := addEnemy(z, 0, "lizardo", 6, 7) // (1,2) from (5,5)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "horse", Target: &grid.Coord{X: 6, Y: 7}})
	require.NoError(t, err)
	require.NotNil(t, e.State().Pending)

	_, err = e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)
	assert.True(t, target.IsDefeated())
	assert.Equal(t, grid.Coord{X: 6, Y: 7}, e.Player().Pos())
}

func TestConfirm_IsOneShot(t *testing.T) {
	z := openZone()
	addEnemy(z, 0, "lizardy", 6, 6)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 6, Y: 6}})
	require.NoError(t, err)
	res, err := e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)
	require.True(t, res.TurnConsumed)
	points := e.Player().Spec.Points

	// Replaying confirm does nothing.
	res, err = e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)
	assert.False(t, res.TurnConsumed)
	assert.Equal(t, points, e.Player().Spec.Points)
}

func TestCancelCharge(t *testing.T) {
	z := openZone()
	addEnemy(z, 0, "lizardy", 6, 6)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 6, Y: 6}})
	require.NoError(t, err)
	require.NotNil(t, e.State().Pending)

	_, err = e.Apply(Action{Kind: ActionCancel})
	require.NoError(t, err)
	assert.Nil(t, e.State().Pending)
}

func TestConfirm_TargetMovedAway(t *testing.T) {
	z := openZone()
	enemy := addEnemy(z, 0, "lizardy", 6, 6)
	e, _ := testEngine(t, z, 5, 5)

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 6, Y: 6}})
	require.NoError(t, err)

	// The target slips away before the confirm lands.
	enemy.MoveTo(6, 7)

	res, err := e.Apply(Action{Kind: ActionConfirm})
	require.NoError(t, err)
	assert.False(t, res.TurnConsumed)
	assert.Nil(t, e.State().Pending, "pending cleared unconditionally")
	assert.False(t, enemy.IsDefeated())
	assert.Equal(t, 3, e.Player().FindItem("spear").UsesLeft, "no use consumed on a miss")
}

func TestDisabledItem_CannotCharge(t *testing.T) {
	z := openZone()
	addEnemy(z, 0, "lizardy", 6, 6)
	e, _ := testEngine(t, z, 5, 5)
	e.Player().FindItem("spear").Disabled = true

	_, err := e.Apply(Action{Kind: ActionCharge, ItemID: "spear", Target: &grid.Coord{X: 6, Y: 6}})
	require.NoError(t, err)
	assert.Nil(t, e.State().Pending)
}
