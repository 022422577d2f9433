package game

import "github.com/jwebster45206/rogue-engine/pkg/grid"

// Occupancy is the turn-scoped set of tiles already claimed by enemy
// movement this pass. The turn manager constructs a fresh one each
// enemy phase and threads it through every planner call; planners
// never see occupancy from a previous turn.
type Occupancy struct {
	claimed map[string]bool
}

// NewOccupancy returns an empty occupancy set.
func NewOccupancy() *Occupancy {
	return &Occupancy{claimed: make(map[string]bool)}
}

// Claim marks a tile as taken for the rest of the pass. It returns
// false when the tile was already claimed, leaving the set unchanged.
func (o *Occupancy) Claim(c grid.Coord) bool {
	k := c.Key()
	if o.claimed[k] {
		return false
	}
	o.claimed[k] = true
	return true
}

// IsClaimed reports whether a tile has been claimed this pass.
func (o *Occupancy) IsClaimed(c grid.Coord) bool {
	return o.claimed[c.Key()]
}

// Len returns the number of claimed tiles.
func (o *Occupancy) Len() int {
	return len(o.claimed)
}
