package game

import (
	"fmt"

	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/state"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// chargeKinds maps an item kind to the charge geometry it powers.
var chargeKinds = map[string]state.ChargeType{
	"spear": state.ChargeDiagonal,
	"horse": state.ChargeKnight,
	"bow":   state.ChargeRanged,
}

// ValidDiagonalCharge reports whether target is a legal diagonal
// charge destination from, i.e. on an exact diagonal between one and
// five tiles out.
func ValidDiagonalCharge(target, from grid.Coord) bool {
	dx := abs(target.X - from.X)
	dy := abs(target.Y - from.Y)
	return dx == dy && dx >= 1 && dx <= 5
}

// ValidKnightCharge reports whether target is a knight's move from
// the player: the absolute deltas are a permutation of (1,2).
func ValidKnightCharge(target, from grid.Coord) bool {
	dx := abs(target.X - from.X)
	dy := abs(target.Y - from.Y)
	return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
}

// ValidRangedShot reports whether target can be hit by a straight
// shot from the player: exactly orthogonal, with no blocking tile or
// intervening enemy on the line between them.
func ValidRangedShot(target, from grid.Coord, z *zone.Zone) bool {
	dx := target.X - from.X
	dy := target.Y - from.Y
	if (dx == 0) == (dy == 0) {
		return false
	}

	sx, sy := sign(dx), sign(dy)
	x, y := from.X+sx, from.Y+sy
	for x != target.X || y != target.Y {
		if !z.Grid.IsWalkable(x, y) {
			return false
		}
		if z.EnemyAt(x, y) != nil {
			return false
		}
		x += sx
		y += sy
	}
	return true
}

// requestCharge validates a charge request and records the pending
// action. An illegal target is not an error: no pending charge is
// created and the request is silently ignored.
func (e *Engine) requestCharge(a Action, res *Result) error {
	if a.Target == nil {
		return fmt.Errorf("charge requires a target tile")
	}
	z := e.gs.CurrentZone()
	if z == nil {
		return fmt.Errorf("session has no current zone")
	}

	item := e.player.FindItem(a.ItemID)
	if item == nil || item.Disabled {
		return nil
	}
	def := e.reg.GetItem(a.ItemID)
	if def == nil || !def.Usable {
		return nil
	}
	chargeType, ok := chargeKinds[def.Kind]
	if !ok {
		return nil
	}

	target := *a.Target
	enemy := z.EnemyAt(target.X, target.Y)
	if enemy == nil {
		return nil
	}

	from := e.player.Pos()
	legal := false
	switch chargeType {
	case state.ChargeDiagonal:
		legal = ValidDiagonalCharge(target, from)
	case state.ChargeKnight:
		legal = ValidKnightCharge(target, from)
	case state.ChargeRanged:
		legal = ValidRangedShot(target, from, z)
	}
	if !legal {
		return nil
	}

	e.gs.Pending = &state.PendingCharge{
		Type:    chargeType,
		ItemID:  a.ItemID,
		Target:  target,
		EnemyID: enemy.ID,
	}
	res.Messages = append(res.Messages, "Confirm the attack.")
	return nil
}

// confirmCharge resolves the pending charge. Confirm is a one-shot:
// the pending record is cleared unconditionally, whether or not the
// target still exists. Melee-range charges move the player onto the
// target tile; the ranged shot does not. Damage is a fixed heavy
// value from the item definition, not scaled to the target's health.
func (e *Engine) confirmCharge(res *Result) (bool, error) {
	pending := e.gs.Pending
	if pending == nil {
		return false, nil
	}
	e.gs.Pending = nil

	z := e.gs.CurrentZone()
	if z == nil {
		return false, fmt.Errorf("session has no current zone")
	}

	target := z.EnemyAt(pending.Target.X, pending.Target.Y)
	if target == nil || target.ID != pending.EnemyID {
		res.Messages = append(res.Messages, "The quarry has moved.")
		return false, nil
	}

	item := e.player.FindItem(pending.ItemID)
	def := e.reg.GetItem(pending.ItemID)
	if item == nil || def == nil {
		return false, nil
	}

	dmg := def.Damage
	target.Damage(dmg)
	e.notify.AttackCue(pending.Target)

	if pending.Type == state.ChargeDiagonal || pending.Type == state.ChargeKnight {
		e.player.MoveTo(pending.Target.X, pending.Target.Y)
	}

	if item.UsesLeft > 0 {
		e.player.ConsumeUse(item)
	}

	e.playerJustAttacked = true
	e.resolveDefeats()
	e.notify.StatsChanged()
	res.Messages = append(res.Messages, "The blow lands true.")
	return true, nil
}

// cancelCharge discards the pending charge, if any.
func (e *Engine) cancelCharge(res *Result) {
	if e.gs.Pending != nil {
		e.gs.Pending = nil
		res.Messages = append(res.Messages, "You hold back.")
	}
}
