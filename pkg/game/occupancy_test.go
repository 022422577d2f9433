package game

import (
	"testing"

	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

func TestOccupancy(t *testing.T) {
	occ := NewOccupancy()
	c := grid.Coord{X: 3, Y: 4}

	if occ.IsClaimed(c) {
		t.Error("fresh set reports a claim")
	}
	if !occ.Claim(c) {
		t.Fatal("first Claim returned false")
	}
	if !occ.IsClaimed(c) {
		t.Error("claimed tile not reported")
	}
	if occ.Claim(c) {
		t.Error("second Claim on the same tile returned true")
	}
	if occ.Len() != 1 {
		t.Errorf("Len() = %d, want 1", occ.Len())
	}

	// Distinct tiles are independent.
	if !occ.Claim(grid.Coord{X: 4, Y: 3}) {
		t.Error("claim of a different tile rejected")
	}
}
