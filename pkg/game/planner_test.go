package game

import (
	"testing"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

func planCtx(g *grid.Grid, playerX, playerY int, enemies ...*actor.Enemy) *PlanContext {
	return &PlanContext{
		Grid:      g,
		Enemies:   enemies,
		PlayerPos: grid.Coord{X: playerX, Y: playerY},
		Occupied:  NewOccupancy(),
	}
}

func TestPlanCardinal_PrefersGreaterAxis(t *testing.T) {
	e := actor.NewEnemy(0, "lizardy", 2, 2, 4, 1, 5)
	ctx := planCtx(grid.New(), 7, 4, e)

	dest, outcome := planCardinal(e, ctx)
	if outcome != OutcomeMove {
		t.Fatalf("outcome = %v, want move", outcome)
	}
	if dest != (grid.Coord{X: 3, Y: 2}) {
		t.Errorf("dest = %v, want (3,2): x delta is greater", dest)
	}
}

func TestPlanCardinal_BlockedIsStay(t *testing.T) {
	g := grid.New()
	g.Set(3, 2, grid.Tile{Type: grid.TileWall})
	e := actor.NewEnemy(0, "lizardy", 2, 2, 4, 1, 5)
	ctx := planCtx(g, 7, 2, e)

	dest, outcome := planCardinal(e, ctx)
	if outcome != OutcomeStay {
		t.Fatalf("outcome = %v, want stay", outcome)
	}
	if dest != e.Pos() {
		t.Errorf("dest = %v, want unchanged position", dest)
	}
}

func TestPlanCardinal_OccupiedIsStay(t *testing.T) {
	e := actor.NewEnemy(0, "lizardy", 2, 2, 4, 1, 5)
	ctx := planCtx(grid.New(), 7, 2, e)
	ctx.Occupied.Claim(grid.Coord{X: 3, Y: 2})

	_, outcome := planCardinal(e, ctx)
	if outcome != OutcomeStay {
		t.Errorf("outcome = %v, want stay when destination already claimed", outcome)
	}
}

func TestPlanCardinal_AdjacentAttacks(t *testing.T) {
	e := actor.NewEnemy(0, "lizardy", 4, 2, 4, 1, 5)
	ctx := planCtx(grid.New(), 5, 2, e)

	_, outcome := planCardinal(e, ctx)
	if outcome != OutcomeAttack {
		t.Errorf("outcome = %v, want attack when step lands on the player", outcome)
	}
}

func TestPlanDiagonal(t *testing.T) {
	e := actor.NewEnemy(0, "lizardo", 2, 2, 4, 2, 8)
	ctx := planCtx(grid.New(), 6, 8, e)

	dest, outcome := planDiagonal(e, ctx)
	if outcome != OutcomeMove || dest != (grid.Coord{X: 3, Y: 3}) {
		t.Errorf("dest, outcome = %v, %v; want (3,3), move", dest, outcome)
	}

	// Diagonally adjacent: bump attack, no move.
	e2 := actor.NewEnemy(1, "lizardo", 5, 7, 4, 2, 8)
	_, outcome = planDiagonal(e2, planCtx(grid.New(), 6, 8, e2))
	if outcome != OutcomeAttack {
		t.Errorf("outcome = %v, want attack", outcome)
	}
}

func TestPlanKnight_BumpAttackBeatsMovement(t *testing.T) {
	// Player exactly a knight's move away.
	e := actor.NewEnemy(0, "lizord", 4, 4, 6, 2, 12)
	ctx := planCtx(grid.New(), 5, 6, e)

	dest, outcome := planKnight(e, ctx)
	if outcome != OutcomeAttack {
		t.Fatalf("outcome = %v, want attack", outcome)
	}
	if dest != e.Pos() {
		t.Error("bump attack must not move the enemy")
	}
}

func TestPlanKnight_MovesCloser(t *testing.T) {
	e := actor.NewEnemy(0, "lizord", 2, 2, 6, 2, 12)
	ctx := planCtx(grid.New(), 8, 8, e)

	dest, outcome := planKnight(e, ctx)
	if outcome != OutcomeMove {
		t.Fatalf("outcome = %v, want move", outcome)
	}
	if d := chebyshev(dest, ctx.PlayerPos); d >= chebyshev(e.Pos(), ctx.PlayerPos) {
		t.Errorf("knight move did not reduce distance: %v", dest)
	}
	// All knight endpoints differ by a (1,2) permutation.
	dx, dy := abs(dest.X-e.X), abs(dest.Y-e.Y)
	if !((dx == 1 && dy == 2) || (dx == 2 && dy == 1)) {
		t.Errorf("dest %v is not a knight move from %v", dest, e.Pos())
	}
}

func TestPlanKnight_NoLegalMoveStays(t *testing.T) {
	g := grid.New()
	// Wall off every knight endpoint from (2,2).
	for _, off := range knightOffsets {
		g.Set(2+off[0], 2+off[1], grid.Tile{Type: grid.TileWall})
	}
	e := actor.NewEnemy(0, "lizord", 2, 2, 6, 2, 12)

	_, outcome := planKnight(e, planCtx(g, 9, 9, e))
	if outcome != OutcomeStay {
		t.Errorf("outcome = %v, want stay", outcome)
	}
}

func TestPlanSlider_AttacksAlongClearRay(t *testing.T) {
	e := actor.NewEnemy(0, "lizardeaux", 2, 5, 8, 3, 20)
	ctx := planCtx(grid.New(), 4, 5, e)

	dest, outcome := planSlider(e, ctx)
	if outcome != OutcomeAttack {
		t.Fatalf("outcome = %v, want attack within budget on a clear ray", outcome)
	}
	if dest != e.Pos() {
		t.Error("ray attack must not move the enemy")
	}
}

func TestPlanSlider_RayStopsAtBlock(t *testing.T) {
	g := grid.New()
	g.Set(3, 5, grid.Tile{Type: grid.TileRock})
	e := actor.NewEnemy(0, "lizardeaux", 2, 5, 8, 3, 20)
	ctx := planCtx(g, 6, 5, e)

	dest, outcome := planSlider(e, ctx)
	// The eastward ray is blocked immediately; no other ray reduces
	// distance along the row, so vertical moves lose too.
	if outcome == OutcomeMove && dest.X > 2 {
		t.Errorf("slider passed through a blocking tile to %v", dest)
	}
	if outcome == OutcomeAttack {
		t.Error("slider attacked through a blocking tile")
	}
}

func TestPlanSlider_MovesWithinBudget(t *testing.T) {
	e := actor.NewEnemy(0, "lizardeaux", 2, 5, 8, 3, 20)
	ctx := planCtx(grid.New(), 9, 5, e)

	dest, outcome := planSlider(e, ctx)
	if outcome != OutcomeMove {
		t.Fatalf("outcome = %v, want move", outcome)
	}
	if dest != (grid.Coord{X: 5, Y: 5}) {
		t.Errorf("dest = %v, want full-budget slide to (5,5)", dest)
	}
}

func TestPlanners_Deterministic(t *testing.T) {
	for name, planner := range planners {
		e := actor.NewEnemy(0, name, 2, 3, 8, 1, 5)
		a, ao := planner(e, planCtx(grid.New(), 8, 7, e))
		b, bo := planner(e, planCtx(grid.New(), 8, 7, e))
		if a != b || ao != bo {
			t.Errorf("%s planner not deterministic: (%v,%v) vs (%v,%v)", name, a, ao, b, bo)
		}
	}
}

func TestPlanners_NeverClaimPlayerTile(t *testing.T) {
	for name, planner := range planners {
		e := actor.NewEnemy(0, name, 4, 4, 8, 1, 5)
		ctx := planCtx(grid.New(), 5, 5, e)
		dest, outcome := planner(e, ctx)
		if outcome == OutcomeMove && dest == ctx.PlayerPos {
			t.Errorf("%s planner moved onto the player's tile", name)
		}
	}
}
