package actor

import (
	"github.com/google/uuid"

	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

// Enemy is a live enemy instance in a zone. Instances are spawned
// from registry archetype definitions during zone generation and
// removed from the zone's live list on defeat.
type Enemy struct {
	ID uuid.UUID `json:"id"`

	// SpawnIndex is the enemy's stable index within its zone's spawn
	// list. Defeat bookkeeping is keyed on it, so a regenerated zone
	// does not respawn enemies that were already defeated.
	SpawnIndex int `json:"spawn_index"`

	// Type references the archetype in the content registry and
	// selects the move-planner strategy.
	Type string `json:"type"`

	X int `json:"x"`
	Y int `json:"y"`

	Health int `json:"health"`
	Attack int `json:"attack"`
	Points int `json:"points"`

	// JustAttacked suppresses a second hit on the player within the
	// same collision pass. Cleared at the start of every pass.
	JustAttacked bool `json:"just_attacked,omitempty"`

	// Exit-tile freeze state, mirrored from the session by the turn
	// manager each turn.
	IsFrozen         bool `json:"is_frozen,omitempty"`
	ShowFrozenVisual bool `json:"show_frozen_visual,omitempty"`

	// LiftFrames is an animation hint consumed by the render layer;
	// the core only ever sets it.
	LiftFrames int `json:"lift_frames,omitempty"`
}

// NewEnemy creates an enemy instance at (x, y) from archetype values.
func NewEnemy(spawnIndex int, enemyType string, x, y, health, attack, points int) *Enemy {
	return &Enemy{
		ID:         uuid.New(),
		SpawnIndex: spawnIndex,
		Type:       enemyType,
		X:          x,
		Y:          y,
		Health:     health,
		Attack:     attack,
		Points:     points,
	}
}

// Pos returns the enemy's current coordinate.
func (e *Enemy) Pos() grid.Coord {
	return grid.Coord{X: e.X, Y: e.Y}
}

// Damage reduces health by n. Health is deliberately not clamped:
// overkill goes negative and the defeat check tolerates it.
func (e *Enemy) Damage(n int) {
	e.Health -= n
}

// IsDefeated reports whether the enemy is out of health.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

// MoveTo updates the enemy's position.
func (e *Enemy) MoveTo(x, y int) {
	e.X = x
	e.Y = y
}
