package game

import (
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// checkCollisions is invoked exactly once per turn, after enemy
// movement has fully settled, so an enemy that reached the player
// this turn is still eligible for the same-turn check.
//
// Pass order: player-tile overlap damage, defeat sweep, bomb
// detonation, then a second defeat sweep so bomb victims are
// processed in the same turn.
func (e *Engine) checkCollisions(z *zone.Zone) {
	playerPos := e.player.Pos()

	// Each enemy on the player's tile hits once per pass. The flag
	// gate means an enemy that already attacked this turn cannot
	// deal damage again; colliding is not defeat, so the enemy is
	// not removed here.
	for _, en := range z.Enemies {
		if en.Pos() == playerPos && !en.JustAttacked {
			e.player.Damage(en.Attack)
			en.JustAttacked = true
			e.notify.AttackCue(playerPos)
			e.notify.StatsChanged()
		}
	}

	e.resolveDefeats()
	e.checkBombs(z, playerPos)
	e.resolveDefeats()
}

// resolveDefeats sweeps the live enemy list for anything out of
// health: award points, record the defeat against the zone so a
// regeneration cannot respawn it, and remove the enemy. Processing
// the same defeat twice is impossible because removal precedes any
// later sweep.
func (e *Engine) resolveDefeats() {
	z := e.gs.CurrentZone()
	if z == nil {
		return
	}

	// Snapshot: removal mutates the list being walked.
	defeated := make([]int, 0)
	for i, en := range z.Enemies {
		if en.IsDefeated() {
			defeated = append(defeated, i)
		}
	}
	if len(defeated) == 0 {
		return
	}

	for i := len(defeated) - 1; i >= 0; i-- {
		en := z.Enemies[defeated[i]]
		e.player.AddPoints(en.Points)
		e.gs.RecordDefeat(z.Key, en.SpawnIndex)
		z.RemoveEnemy(en)
		e.notify.EnemyDefeated(en, en.Points)
	}
	e.notify.StatsChanged()
}

// checkBombs scans the four tiles orthogonally adjacent to the player
// for a bomb whose fuse has crossed the detonation threshold. Fuse
// advancement happens earlier in the turn; this only triggers the
// blast once the threshold is met.
func (e *Engine) checkBombs(z *zone.Zone, playerPos grid.Coord) {
	for _, d := range rayDirs {
		x := playerPos.X + d[0]
		y := playerPos.Y + d[1]
		t, ok := z.Grid.At(x, y)
		if !ok || t.Type != grid.TileBomb {
			continue
		}
		if t.Fuse >= 2 {
			e.explodeBomb(z, x, y)
		}
	}
}

// explodeBomb clears the bomb tile and deals blast damage to every
// actor in the surrounding 3x3 square, the player included. Clearing
// the tile first guarantees one detonation per bomb.
func (e *Engine) explodeBomb(z *zone.Zone, x, y int) {
	z.Grid.Set(x, y, grid.Tile{Type: grid.TileFloor})

	dmg := 5
	if def := e.reg.GetItem("bomb"); def != nil && def.Damage > 0 {
		dmg = def.Damage
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			bx, by := x+dx, y+dy
			if en := z.EnemyAt(bx, by); en != nil {
				en.Damage(dmg)
			}
			if e.player.Spec.X == bx && e.player.Spec.Y == by {
				e.player.Damage(dmg)
				e.notify.StatsChanged()
			}
		}
	}

	e.notify.BombExploded(x, y)
}
