package game

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/registry"
	"github.com/jwebster45206/rogue-engine/pkg/state"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// ActionKind names a player input.
type ActionKind string

const (
	ActionMove    ActionKind = "move"
	ActionWait    ActionKind = "wait"
	ActionUseItem ActionKind = "use_item"
	ActionCharge  ActionKind = "charge"
	ActionConfirm ActionKind = "confirm_charge"
	ActionCancel  ActionKind = "cancel_charge"
	ActionTalk    ActionKind = "talk"
)

// Action is one player input. Move uses DX/DY; item actions use
// ItemID; charge and talk use Target.
type Action struct {
	Kind   ActionKind  `json:"kind"`
	DX     int         `json:"dx,omitempty"`
	DY     int         `json:"dy,omitempty"`
	ItemID string      `json:"item_id,omitempty"`
	Target *grid.Coord `json:"target,omitempty"`
}

// Result reports what an applied action did. Game events themselves
// flow through the Notifier supplied at construction.
type Result struct {
	Messages     []string `json:"messages,omitempty"`
	TurnConsumed bool     `json:"turn_consumed"`
	GameOver     bool     `json:"game_over,omitempty"`
}

// Engine resolves player actions against a game session. One turn is
// a single synchronous call chain — player action, enemy phase,
// collision phase — that runs to completion inside Apply; the grid
// and enemy list are mutated by this call chain only.
type Engine struct {
	gs     *state.GameState
	player *actor.Player
	reg    *registry.Registry
	notify Notifier
	logger *slog.Logger

	// playerJustAttacked suppresses the enemy phase for the turn in
	// which the player's own action resolved combat.
	playerJustAttacked bool

	// placedBomb marks a bomb placed this action so its fuse is not
	// advanced on the same tick.
	placedBomb *grid.Coord
}

// NewEngine wraps an existing game state. The registry is required;
// a nil notifier or logger falls back to no-op and default.
func NewEngine(gs *state.GameState, reg *registry.Registry, notify Notifier, logger *slog.Logger) (*Engine, error) {
	if gs == nil {
		return nil, fmt.Errorf("game state is required")
	}
	if reg == nil {
		return nil, fmt.Errorf("content registry is required")
	}
	if gs.Player == nil {
		return nil, fmt.Errorf("game state has no player")
	}
	player, err := actor.NewPlayerFromSpec(gs.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to build player: %w", err)
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		gs:     gs,
		player: player,
		reg:    reg,
		notify: notify,
		logger: logger,
	}, nil
}

// NewSession creates a fresh game: a new state, a default player,
// and the starting surface zone.
func NewSession(seed int64, reg *registry.Registry, notify Notifier, logger *slog.Logger) (*Engine, error) {
	gs := state.NewGameState(seed)
	gs.Player = &actor.PlayerSpec{
		MaxHP:  10,
		HP:     10,
		AC:     10,
		Hunger: 10,
		Thirst: 10,
		Inventory: []*actor.Item{
			{ID: "sword"},
			{ID: "bomb", UsesLeft: 1},
		},
	}

	e, err := NewEngine(gs, reg, notify, logger)
	if err != nil {
		return nil, err
	}

	start := zone.Key{X: 0, Y: 0, Dimension: zone.DimensionSurface}
	e.enterZone(start, nil, nil)
	return e, nil
}

// State returns the engine's game state.
func (e *Engine) State() *state.GameState {
	return e.gs
}

// Player returns the runtime player.
func (e *Engine) Player() *actor.Player {
	return e.player
}

// Apply resolves one player action and, when the action consumes a
// turn, the enemy and collision phases that follow it. It is the only
// entry point that mutates the session.
func (e *Engine) Apply(a Action) (*Result, error) {
	if e.player.IsDead() {
		return &Result{GameOver: true, Messages: []string{"The run is over."}}, nil
	}

	e.playerJustAttacked = false
	e.placedBomb = nil
	res := &Result{}

	var consumes bool
	var err error
	switch a.Kind {
	case ActionMove:
		consumes, err = e.applyMove(a, res)
	case ActionWait:
		consumes = true
	case ActionUseItem:
		consumes, err = e.applyUseItem(a, res)
	case ActionCharge:
		err = e.requestCharge(a, res)
	case ActionConfirm:
		consumes, err = e.confirmCharge(res)
	case ActionCancel:
		e.cancelCharge(res)
	case ActionTalk:
		err = e.applyTalk(a, res)
	default:
		return nil, fmt.Errorf("unknown action kind: %q", a.Kind)
	}
	if err != nil {
		return nil, err
	}

	if consumes {
		e.advanceTurn()
		res.TurnConsumed = true
	}
	if e.player.IsDead() {
		res.GameOver = true
		res.Messages = append(res.Messages, "You have fallen.")
	}
	return res, nil
}

// applyMove handles a one-tile cardinal step: walking, attacking an
// adjacent enemy, and stepping onto special tiles.
func (e *Engine) applyMove(a Action, res *Result) (bool, error) {
	if abs(a.DX)+abs(a.DY) != 1 {
		return false, fmt.Errorf("move must be a single cardinal step, got (%d,%d)", a.DX, a.DY)
	}

	z := e.gs.CurrentZone()
	if z == nil {
		return false, fmt.Errorf("session has no current zone")
	}

	x := e.player.Spec.X + a.DX
	y := e.player.Spec.Y + a.DY

	// Crossing the grid edge is only possible from the exit tile.
	if !z.Grid.InBounds(x, y) {
		if cur, _ := z.Grid.At(e.player.Spec.X, e.player.Spec.Y); cur.Type == grid.TileExit {
			e.exitToAdjacentZone(a.DX, a.DY)
			return true, nil
		}
		res.Messages = append(res.Messages, "You cannot go that way.")
		return false, nil
	}

	// Moving into an enemy resolves as a melee attack in place.
	if target := z.EnemyAt(x, y); target != nil {
		e.playerAttack(target, res)
		return true, nil
	}

	tile, _ := z.Grid.At(x, y)
	if tile.Type == grid.TileNPC {
		res.Messages = append(res.Messages, "Someone is standing there. Try talking to them.")
		return false, nil
	}
	if !z.Grid.IsWalkable(x, y) {
		// Water stops everyone except a player who has learned to swim.
		if tile.Type != grid.TileWater || !e.player.HasAbility("swim") {
			res.Messages = append(res.Messages, "The way is blocked.")
			return false, nil
		}
	}

	e.player.MoveTo(x, y)

	switch tile.Type {
	case grid.TileItem:
		e.pickUpItem(x, y, tile, res)
	case grid.TilePort:
		e.enterPort(grid.Coord{X: x, Y: y}, tile, res)
	case grid.TilePitfall:
		e.fallThroughPitfall(grid.Coord{X: x, Y: y}, res)
	}
	return true, nil
}

// playerAttack deals the player's melee damage to an adjacent enemy.
// The player does not move onto the target's tile.
func (e *Engine) playerAttack(target *actor.Enemy, res *Result) {
	dmg := 1
	if it := e.player.FindItem("sword"); it != nil && !it.Disabled {
		if def := e.reg.GetItem("sword"); def != nil && def.Usable {
			dmg = def.Damage
		}
	}
	target.Damage(dmg)
	e.playerJustAttacked = true
	e.notify.AttackCue(target.Pos())

	def := e.reg.GetEnemy(target.Type)
	name := target.Type
	if def != nil {
		name = def.Name
	}
	res.Messages = append(res.Messages, fmt.Sprintf("You strike the %s for %d.", name, dmg))

	e.resolveDefeats()
	e.notify.StatsChanged()
}

func (e *Engine) pickUpItem(x, y int, tile grid.Tile, res *Result) {
	z := e.gs.CurrentZone()
	def := e.reg.GetItem(tile.RefID)
	if def == nil {
		e.logger.Warn("item tile references unknown item", "id", tile.RefID, "x", x, "y", y)
		z.Grid.Set(x, y, grid.Tile{Type: grid.TileFloor})
		return
	}
	if !e.player.AddItem(&actor.Item{ID: def.ID, UsesLeft: def.Uses}) {
		res.Messages = append(res.Messages, "Your pack is full.")
		return
	}
	z.Grid.Set(x, y, grid.Tile{Type: grid.TileFloor})
	res.Messages = append(res.Messages, fmt.Sprintf("You pick up the %s.", def.Name))
	e.notify.StatsChanged()
}

// applyUseItem consumes or activates an inventory item.
func (e *Engine) applyUseItem(a Action, res *Result) (bool, error) {
	item := e.player.FindItem(a.ItemID)
	if item == nil {
		res.Messages = append(res.Messages, "You do not carry that.")
		return false, nil
	}
	def := e.reg.GetItem(a.ItemID)
	if def == nil || !def.Usable || item.Disabled {
		res.Messages = append(res.Messages, "Nothing happens.")
		return false, nil
	}

	switch def.Kind {
	case "food":
		e.player.Spec.Hunger = clampStat(e.player.Spec.Hunger + def.Restore)
		e.player.RemoveItem(item.ID)
		res.Messages = append(res.Messages, fmt.Sprintf("You eat the %s.", def.Name))
		e.notify.StatsChanged()
		return true, nil
	case "drink":
		e.player.Spec.Thirst = clampStat(e.player.Spec.Thirst + def.Restore)
		e.player.RemoveItem(item.ID)
		res.Messages = append(res.Messages, fmt.Sprintf("You drink from the %s.", def.Name))
		e.notify.StatsChanged()
		return true, nil
	case "potion":
		e.player.Heal(def.Restore)
		e.player.RemoveItem(item.ID)
		res.Messages = append(res.Messages, fmt.Sprintf("You quaff the %s.", def.Name))
		e.notify.StatsChanged()
		return true, nil
	case "bomb":
		return e.placeBomb(item, res)
	case "key":
		return e.useKey(item, res)
	}

	res.Messages = append(res.Messages, "Nothing happens.")
	return false, nil
}

// placeBomb drops a bomb on the player's own tile with a fresh fuse.
// The fuse advances on later actions, not on the placing one.
func (e *Engine) placeBomb(item *actor.Item, res *Result) (bool, error) {
	z := e.gs.CurrentZone()
	x, y := e.player.Spec.X, e.player.Spec.Y
	if t, _ := z.Grid.At(x, y); t.Type != grid.TileFloor {
		res.Messages = append(res.Messages, "There is no room to set a bomb here.")
		return false, nil
	}

	z.Grid.Set(x, y, grid.Tile{Type: grid.TileBomb, Fuse: 0})
	e.placedBomb = &grid.Coord{X: x, Y: y}
	e.player.RemoveItem(item.ID)
	res.Messages = append(res.Messages, "You set a bomb. Move away.")
	e.notify.StatsChanged()
	return true, nil
}

// useKey opens the first closed door in the four orthogonally
// adjacent tiles.
func (e *Engine) useKey(item *actor.Item, res *Result) (bool, error) {
	z := e.gs.CurrentZone()
	for _, d := range rayDirs {
		x := e.player.Spec.X + d[0]
		y := e.player.Spec.Y + d[1]
		if t, ok := z.Grid.At(x, y); ok && t.Type == grid.TileDoorClosed {
			z.Grid.Set(x, y, grid.Tile{Type: grid.TileFloor})
			e.player.RemoveItem(item.ID)
			res.Messages = append(res.Messages, "The lock gives way.")
			return true, nil
		}
	}
	res.Messages = append(res.Messages, "There is nothing here to unlock.")
	return false, nil
}

// applyTalk speaks with an adjacent NPC and, when the player carries
// what the NPC wants, completes the barter swap.
func (e *Engine) applyTalk(a Action, res *Result) error {
	if a.Target == nil {
		return fmt.Errorf("talk requires a target tile")
	}
	z := e.gs.CurrentZone()
	tile, ok := z.Grid.At(a.Target.X, a.Target.Y)
	if !ok || tile.Type != grid.TileNPC {
		res.Messages = append(res.Messages, "There is no one there.")
		return nil
	}
	if chebyshev(e.player.Pos(), *a.Target) > 1 {
		res.Messages = append(res.Messages, "They are too far away.")
		return nil
	}

	npc := e.reg.GetNPC(tile.RefID)
	if npc == nil {
		e.logger.Warn("npc tile references unknown npc", "id", tile.RefID)
		res.Messages = append(res.Messages, "They have nothing to say.")
		return nil
	}

	if len(npc.Dialogue) > 0 {
		line := npc.Dialogue[e.gs.Turn%len(npc.Dialogue)]
		res.Messages = append(res.Messages, fmt.Sprintf("%s: %q", npc.Name, line))
	}

	if npc.Teaches != "" && !e.player.HasAbility(npc.Teaches) {
		e.player.GrantAbility(npc.Teaches)
		res.Messages = append(res.Messages, fmt.Sprintf("%s teaches you to %s.", npc.Name, npc.Teaches))
		e.notify.StatsChanged()
	}

	if npc.Barter != nil && e.player.FindItem(npc.Barter.Wants) != nil {
		gives := e.reg.GetItem(npc.Barter.Gives)
		if gives == nil {
			return nil
		}
		e.player.RemoveItem(npc.Barter.Wants)
		e.player.AddItem(&actor.Item{ID: gives.ID, UsesLeft: gives.Uses})
		res.Messages = append(res.Messages, fmt.Sprintf("%s trades you a %s.", npc.Name, gives.Name))
		e.notify.StatsChanged()
	}
	return nil
}

func clampStat(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}
