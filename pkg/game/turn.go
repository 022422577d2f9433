package game

import (
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/state"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// liftFrames is the animation hint written to an enemy when it moves.
// The render layer owns the countdown.
const liftFrames = 8

// hungerInterval is how many turns pass between hunger/thirst ticks.
const hungerInterval = 20

// advanceTurn runs everything that follows a turn-consuming player
// action: bomb fuses, survival stats, the exit-freeze state machine,
// the enemy phase and the collision phase. The whole chain is
// synchronous; nothing suspends mid-turn.
func (e *Engine) advanceTurn() {
	e.gs.Turn++

	e.tickBombFuses()
	e.tickSurvivalStats()
	e.updateFreeze()

	z := e.gs.CurrentZone()
	if z == nil {
		return
	}

	// Clear per-pass attack flags before any combat can resolve.
	for _, en := range z.Enemies {
		en.JustAttacked = false
	}

	// The enemy phase is skipped entirely when the player's action
	// was itself an attack, so combat is not resolved twice from one
	// input.
	if e.playerJustAttacked {
		return
	}

	if e.gs.JustEntered {
		// Enemies hold still on the turn the player arrives.
		e.gs.JustEntered = false
	} else if e.gs.Freeze == state.FreezeActive {
		e.enemyPhase(z)
	}

	e.checkCollisions(z)
}

// tickBombFuses advances every bomb's fuse by one action, except a
// bomb placed by this very action.
func (e *Engine) tickBombFuses() {
	z := e.gs.CurrentZone()
	if z == nil {
		return
	}
	for _, c := range z.Grid.FindType(grid.TileBomb) {
		if e.placedBomb != nil && *e.placedBomb == c {
			continue
		}
		t, _ := z.Grid.At(c.X, c.Y)
		t.Fuse++
		z.Grid.Set(c.X, c.Y, t)
	}
}

// tickSurvivalStats drains hunger and thirst slowly; starvation and
// dehydration wear the player down one point per turn at zero.
func (e *Engine) tickSurvivalStats() {
	p := e.player.Spec
	if e.gs.Turn%hungerInterval == 0 {
		p.Hunger = clampStat(p.Hunger - 1)
		p.Thirst = clampStat(p.Thirst - 1)
		e.notify.StatsChanged()
	}
	if p.Hunger == 0 || p.Thirst == 0 {
		e.player.Damage(1)
		e.notify.StatsChanged()
	}
}

// updateFreeze runs the exit-tile freeze state machine and mirrors
// the session phase onto every enemy. Standing on the exit freezes
// all enemies with the warning visual; leaving it grants one silent
// grace turn before movement resumes; re-entering the exit resets the
// cycle from any state.
func (e *Engine) updateFreeze() {
	z := e.gs.CurrentZone()
	if z == nil {
		return
	}

	onExit := false
	if t, ok := z.Grid.At(e.player.Spec.X, e.player.Spec.Y); ok {
		onExit = t.Type == grid.TileExit
	}

	switch {
	case onExit:
		e.gs.Freeze = state.FreezeOnExit
	case e.gs.Freeze == state.FreezeOnExit:
		e.gs.Freeze = state.FreezeGrace
	default:
		e.gs.Freeze = state.FreezeActive
	}

	frozen := e.gs.Freeze != state.FreezeActive
	visual := e.gs.Freeze == state.FreezeOnExit
	for _, en := range z.Enemies {
		en.IsFrozen = frozen
		en.ShowFrozenVisual = visual
	}
}

// enemyPhase offers each live enemy exactly one move, in list order.
// List order is also occupancy priority: earlier enemies claim
// contested tiles first. A fresh occupancy set scopes the pass.
func (e *Engine) enemyPhase(z *zone.Zone) {
	occ := NewOccupancy()
	playerPos := e.player.Pos()

	ctx := &PlanContext{
		Grid:        z.Grid,
		Enemies:     z.Enemies,
		PlayerPos:   playerPos,
		Occupied:    occ,
		JustEntered: e.gs.JustEntered,
	}

	for _, en := range z.Enemies {
		if en.IsFrozen || en.IsDefeated() {
			continue
		}

		movement := ""
		if def := e.reg.GetEnemy(en.Type); def != nil {
			movement = def.Movement
		}

		dest, outcome := plannerFor(movement)(en, ctx)
		switch outcome {
		case OutcomeMove:
			if !occ.Claim(dest) {
				// A planner must never hand back a claimed tile.
				e.logger.Error("planner returned an already-claimed tile",
					"enemy", en.Type, "tile", dest.Key())
				continue
			}
			from := en.Pos()
			en.MoveTo(dest.X, dest.Y)
			en.LiftFrames = liftFrames
			e.notify.EnemyMoved(en, from, dest)
		case OutcomeAttack:
			// Bump attack: damage resolves in place, no movement.
			e.player.Damage(en.Attack)
			en.JustAttacked = true
			e.notify.AttackCue(playerPos)
			e.notify.StatsChanged()
		}
	}
}
