package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

// FreezePhase is the session-level exit-tile freeze sub-state.
// Enemies mirror it through their IsFrozen/ShowFrozenVisual flags.
type FreezePhase string

const (
	// FreezeActive: normal enemy movement.
	FreezeActive FreezePhase = "active"
	// FreezeOnExit: player is standing on the zone exit; enemies are
	// frozen and show the frozen visual.
	FreezeOnExit FreezePhase = "on_exit"
	// FreezeGrace: player left the exit last turn; enemies stay
	// frozen one more turn but the visual is cleared.
	FreezeGrace FreezePhase = "grace"
)

// ChargeType discriminates the pending special attack.
type ChargeType string

const (
	ChargeDiagonal ChargeType = "diagonal"
	ChargeKnight   ChargeType = "knight"
	ChargeRanged   ChargeType = "ranged"
)

// PendingCharge is an in-progress special attack awaiting
// confirmation. At most one exists per player; it is cleared on
// confirm or cancel.
type PendingCharge struct {
	Type    ChargeType `json:"type"`
	ItemID  string     `json:"item_id"`
	Target  grid.Coord `json:"target"`
	EnemyID uuid.UUID  `json:"enemy_id"`
}

// GameState is the complete persisted state of one game session.
type GameState struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Seed drives deterministic zone generation for this session.
	Seed int64 `json:"seed"`

	// Zone is the key of the zone the player currently occupies;
	// Zones holds every zone record the session has visited, keyed
	// by zone.Key.String().
	Zone  zone.Key              `json:"zone"`
	Zones map[string]*zone.Zone `json:"zones"`

	// Defeated records beaten enemies across zone regenerations,
	// keyed by zone key plus spawn index.
	Defeated map[string]bool `json:"defeated,omitempty"`

	Player *actor.PlayerSpec `json:"player"`

	Freeze  FreezePhase    `json:"freeze"`
	Turn    int            `json:"turn"`
	Pending *PendingCharge `json:"pending,omitempty"`

	// JustEntered suppresses enemy movement on the first turn after
	// a zone transition.
	JustEntered bool `json:"just_entered,omitempty"`
}

// NewGameState creates a fresh session.
func NewGameState(seed int64) *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Seed:      seed,
		Zones:     make(map[string]*zone.Zone),
		Defeated:  make(map[string]bool),
		Freeze:    FreezeActive,
	}
}

// CurrentZone returns the record for the player's current zone, or
// nil when the session has not entered one yet.
func (gs *GameState) CurrentZone() *zone.Zone {
	return gs.Zones[gs.Zone.String()]
}

// PutZone stores a zone record under its own key, replacing any
// previous record wholesale.
func (gs *GameState) PutZone(z *zone.Zone) {
	gs.Zones[z.Key.String()] = z
}

// GetZone returns the stored record for key, if any.
func (gs *GameState) GetZone(key zone.Key) (*zone.Zone, bool) {
	z, ok := gs.Zones[key.String()]
	return z, ok
}

// DefeatKey builds the bookkeeping key for one enemy spawn slot.
func DefeatKey(key zone.Key, spawnIndex int) string {
	return fmt.Sprintf("%s#%d", key.String(), spawnIndex)
}

// RecordDefeat marks an enemy spawn slot as beaten.
func (gs *GameState) RecordDefeat(key zone.Key, spawnIndex int) {
	if gs.Defeated == nil {
		gs.Defeated = make(map[string]bool)
	}
	gs.Defeated[DefeatKey(key, spawnIndex)] = true
}

// IsDefeated reports whether an enemy spawn slot was already beaten.
func (gs *GameState) IsDefeated(key zone.Key, spawnIndex int) bool {
	return gs.Defeated[DefeatKey(key, spawnIndex)]
}
