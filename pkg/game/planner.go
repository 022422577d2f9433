package game

import (
	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

// MoveOutcome is the result of offering an enemy its move.
type MoveOutcome int

const (
	// OutcomeStay: no legal or useful move; position unchanged.
	// Blocked destinations are this outcome, not an error.
	OutcomeStay MoveOutcome = iota
	// OutcomeMove: the enemy claims dest and moves there.
	OutcomeMove
	// OutcomeAttack: the enemy reaches the player directly and
	// resolves a bump attack in place of moving. The turn manager
	// applies the damage; the enemy does not change position.
	OutcomeAttack
)

// PlanContext carries everything a planner may consult: the grid, the
// full enemy list, a snapshot of the player's position, the shared
// turn-scoped occupancy set, and the zone-entry suppression flag.
// Planners are pure functions of the context plus the occupancy set.
type PlanContext struct {
	Grid        *grid.Grid
	Enemies     []*actor.Enemy
	PlayerPos   grid.Coord
	Occupied    *Occupancy
	JustEntered bool
}

// enemyAt reports whether a live enemy other than self stands on c.
func (ctx *PlanContext) enemyAt(self *actor.Enemy, c grid.Coord) bool {
	for _, e := range ctx.Enemies {
		if e == self {
			continue
		}
		if e.X == c.X && e.Y == c.Y {
			return true
		}
	}
	return false
}

// canOccupy reports whether self may claim c: walkable, unclaimed,
// not another enemy's tile, and never the player's own tile.
func (ctx *PlanContext) canOccupy(self *actor.Enemy, c grid.Coord) bool {
	if c == ctx.PlayerPos {
		return false
	}
	if !ctx.Grid.IsWalkable(c.X, c.Y) {
		return false
	}
	if ctx.Occupied.IsClaimed(c) {
		return false
	}
	return !ctx.enemyAt(self, c)
}

// Planner computes one enemy's candidate move for the turn.
type Planner func(e *actor.Enemy, ctx *PlanContext) (grid.Coord, MoveOutcome)

// planners maps movement strategy names (from enemy definitions) to
// implementations. The set is open: new archetypes register a new
// strategy instead of growing a conditional.
var planners = map[string]Planner{
	"cardinal": planCardinal,
	"diagonal": planDiagonal,
	"knight":   planKnight,
	"slider":   planSlider,
}

// RegisterPlanner adds or replaces a movement strategy.
func RegisterPlanner(name string, p Planner) {
	planners[name] = p
}

// plannerFor returns the strategy registered under name, falling back
// to the cardinal stepper for unknown movement names.
func plannerFor(name string) Planner {
	if p, ok := planners[name]; ok {
		return p
	}
	return planCardinal
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// chebyshev is the board distance used for move selection.
func chebyshev(a, b grid.Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// planCardinal steps one tile along the axis with the greater delta
// toward the player. A blocked destination means no move this turn.
func planCardinal(e *actor.Enemy, ctx *PlanContext) (grid.Coord, MoveOutcome) {
	dx := ctx.PlayerPos.X - e.X
	dy := ctx.PlayerPos.Y - e.Y
	if dx == 0 && dy == 0 {
		return e.Pos(), OutcomeStay
	}

	dest := e.Pos()
	if abs(dx) >= abs(dy) && dx != 0 {
		dest.X += sign(dx)
	} else {
		dest.Y += sign(dy)
	}

	if dest == ctx.PlayerPos {
		return e.Pos(), OutcomeAttack
	}
	if !ctx.canOccupy(e, dest) {
		return e.Pos(), OutcomeStay
	}
	return dest, OutcomeMove
}

// planDiagonal steps one diagonal tile toward the player; when the
// player sits on an axis with the enemy, the vertical component of
// the step is fixed positive so the choice stays deterministic.
func planDiagonal(e *actor.Enemy, ctx *PlanContext) (grid.Coord, MoveOutcome) {
	dx := ctx.PlayerPos.X - e.X
	dy := ctx.PlayerPos.Y - e.Y
	if dx == 0 && dy == 0 {
		return e.Pos(), OutcomeStay
	}

	sx, sy := sign(dx), sign(dy)
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	dest := grid.Coord{X: e.X + sx, Y: e.Y + sy}

	if dest == ctx.PlayerPos {
		return e.Pos(), OutcomeAttack
	}
	if !ctx.canOccupy(e, dest) {
		return e.Pos(), OutcomeStay
	}
	return dest, OutcomeMove
}

// knightOffsets in fixed evaluation order.
var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// planKnight evaluates the eight knight offsets. An offset landing
// exactly on the player resolves as an immediate bump attack;
// otherwise the legal jump that most reduces distance wins.
func planKnight(e *actor.Enemy, ctx *PlanContext) (grid.Coord, MoveOutcome) {
	for _, off := range knightOffsets {
		c := grid.Coord{X: e.X + off[0], Y: e.Y + off[1]}
		if c == ctx.PlayerPos {
			return e.Pos(), OutcomeAttack
		}
	}

	best := e.Pos()
	bestDist := chebyshev(e.Pos(), ctx.PlayerPos)
	found := false
	for _, off := range knightOffsets {
		c := grid.Coord{X: e.X + off[0], Y: e.Y + off[1]}
		if !ctx.canOccupy(e, c) {
			continue
		}
		if d := chebyshev(c, ctx.PlayerPos); d < bestDist {
			best = c
			bestDist = d
			found = true
		}
	}
	if !found {
		return e.Pos(), OutcomeStay
	}
	return best, OutcomeMove
}

// sliderBudget is how many tiles a ray slider may travel per turn.
const sliderBudget = 3

// rayDirs in fixed evaluation order: up, down, left, right.
var rayDirs = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// planSlider scans the four orthogonal rays, advancing tile by tile
// while tiles stay open, up to the move budget. Reaching the player
// along a clear ray is a bump attack; otherwise the reachable tile
// that most reduces distance wins.
func planSlider(e *actor.Enemy, ctx *PlanContext) (grid.Coord, MoveOutcome) {
	best := e.Pos()
	bestDist := chebyshev(e.Pos(), ctx.PlayerPos)
	found := false

	for _, dir := range rayDirs {
		for step := 1; step <= sliderBudget; step++ {
			c := grid.Coord{X: e.X + dir[0]*step, Y: e.Y + dir[1]*step}
			if c == ctx.PlayerPos {
				return e.Pos(), OutcomeAttack
			}
			// Rays stop at the first tile they cannot pass through.
			if !ctx.Grid.IsWalkable(c.X, c.Y) || ctx.enemyAt(e, c) || ctx.Occupied.IsClaimed(c) {
				break
			}
			if d := chebyshev(c, ctx.PlayerPos); d < bestDist {
				best = c
				bestDist = d
				found = true
			}
		}
	}
	if !found {
		return e.Pos(), OutcomeStay
	}
	return best, OutcomeMove
}
