package game

import (
	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

// Notifier receives game events as they resolve. Implementations
// drive rendering, sound and UI refresh; the core never waits on
// them and computes final state before they observe it.
type Notifier interface {
	// EnemyMoved fires after an enemy commits a move.
	EnemyMoved(e *actor.Enemy, from, to grid.Coord)
	// AttackCue fires when damage lands at a tile, for both player
	// and enemy attacks.
	AttackCue(at grid.Coord)
	// EnemyDefeated fires once per defeated enemy, with the points
	// awarded.
	EnemyDefeated(e *actor.Enemy, points int)
	// BombExploded fires exactly once per detonation.
	BombExploded(x, y int)
	// StatsChanged fires after any health, points or inventory
	// mutation.
	StatsChanged()
}

// NopNotifier discards all events.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) EnemyMoved(*actor.Enemy, grid.Coord, grid.Coord) {}
func (NopNotifier) AttackCue(grid.Coord)                            {}
func (NopNotifier) EnemyDefeated(*actor.Enemy, int)                 {}
func (NopNotifier) BombExploded(int, int)                           {}
func (NopNotifier) StatsChanged()                                   {}

// Event is one rendered game event, as collected for API responses.
type Event struct {
	Kind   string `json:"kind"` // "enemy_moved", "attack", "enemy_defeated", "bomb_exploded", "stats"
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Enemy  string `json:"enemy,omitempty"`
	Points int    `json:"points,omitempty"`
}

// EventCollector is a Notifier that records events in order, for
// callers that relay them to a remote renderer.
type EventCollector struct {
	Events []Event
}

var _ Notifier = (*EventCollector)(nil)

func (c *EventCollector) EnemyMoved(e *actor.Enemy, from, to grid.Coord) {
	c.Events = append(c.Events, Event{Kind: "enemy_moved", X: to.X, Y: to.Y, Enemy: e.Type})
}

func (c *EventCollector) AttackCue(at grid.Coord) {
	c.Events = append(c.Events, Event{Kind: "attack", X: at.X, Y: at.Y})
}

func (c *EventCollector) EnemyDefeated(e *actor.Enemy, points int) {
	c.Events = append(c.Events, Event{Kind: "enemy_defeated", X: e.X, Y: e.Y, Enemy: e.Type, Points: points})
}

func (c *EventCollector) BombExploded(x, y int) {
	c.Events = append(c.Events, Event{Kind: "bomb_exploded", X: x, Y: y})
}

func (c *EventCollector) StatsChanged() {
	c.Events = append(c.Events, Event{Kind: "stats"})
}
