package game

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/rogue-engine/pkg/actor"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/registry"
	"github.com/jwebster45206/rogue-engine/pkg/state"
	"github.com/jwebster45206/rogue-engine/pkg/zone"
)

func testRegistry() *registry.Registry {
	return registry.New(
		[]*registry.ItemDef{
			{ID: "sword", Name: "Sword", Kind: "sword", Damage: 3, Usable: true},
			{ID: "spear", Name: "Spear", Kind: "spear", Damage: 99, Uses: 3, Usable: true},
			{ID: "horse", Name: "Horse", Kind: "horse", Damage: 99, Uses: 3, Usable: true},
			{ID: "bow", Name: "Bow", Kind: "bow", Damage: 99, Uses: 5, Usable: true},
			{ID: "bomb", Name: "Bomb", Kind: "bomb", Damage: 5, Uses: 1, Usable: true},
			{ID: "bread", Name: "Bread", Kind: "food", Restore: 4, Usable: true},
			{ID: "tonic", Name: "Tonic", Kind: "potion", Restore: 3, Usable: true},
			{ID: "key", Name: "Key", Kind: "key", Usable: true},
			{ID: "gem", Name: "Gem", Kind: "treasure", Value: 10},
		},
		[]*registry.EnemyDef{
			{ID: "lizardy", Name: "Lizardy", Movement: "cardinal", Health: 4, Attack: 1, Points: 5},
			{ID: "lizardo", Name: "Lizardo", Movement: "diagonal", Health: 4, Attack: 2, Points: 8},
			{ID: "lizord", Name: "Lizord", Movement: "knight", Health: 6, Attack: 2, Points: 12},
			{ID: "lizardeaux", Name: "Lizardeaux", Movement: "slider", Health: 8, Attack: 3, Points: 20},
		},
		[]*registry.NPCDef{
			{ID: "hermit", Name: "Hermit", Dialogue: []string{"Hm."},
				Barter: &registry.BarterOffer{Wants: "gem", Gives: "spear"}},
			{ID: "sage", Name: "Sage", Dialogue: []string{"Breathe out before you go under."},
				Teaches: "swim"},
		},
	)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// openZone returns an all-floor surface zone at (0,0) with an exit
// tile at the top center.
func openZone() *zone.Zone {
	key := zone.Key{X: 0, Y: 0, Dimension: zone.DimensionSurface}
	z := &zone.Zone{Key: key, Grid: grid.New()}
	z.Grid.Set(grid.Size/2, 0, grid.Tile{Type: grid.TileExit})
	return z
}

// testEngine builds an engine over z with the player at (x, y) and
// an event collector attached.
func testEngine(t *testing.T, z *zone.Zone, x, y int) (*Engine, *EventCollector) {
	t.Helper()

	gs := state.NewGameState(1)
	gs.Player = &actor.PlayerSpec{
		MaxHP:  10,
		HP:     10,
		AC:     10,
		Hunger: 10,
		Thirst: 10,
		X:      x,
		Y:      y,
		Inventory: []*actor.Item{
			{ID: "sword"},
			{ID: "spear", UsesLeft: 3},
			{ID: "horse", UsesLeft: 3},
			{ID: "bow", UsesLeft: 5},
			{ID: "bomb", UsesLeft: 1},
		},
	}
	gs.Zone = z.Key
	gs.PutZone(z)

	collector := &EventCollector{}
	e, err := NewEngine(gs, testRegistry(), collector, testLogger())
	require.NoError(t, err)
	return e, collector
}

func addEnemy(z *zone.Zone, spawnIndex int, enemyType string, x, y int) *actor.Enemy {
	var health, attack, points int
	switch enemyType {
	case "lizardy":
		health, attack, points = 4, 1, 5
	case "lizardo":
		health, attack, points = 4, 2, 8
	case "lizord":
		health, attack, points = 6, 2, 12
	case "lizardeaux":
		health, attack, points = 8, 3, 20
	}
	e := actor.NewEnemy(spawnIndex, enemyType, x, y, health, attack, points)
	z.Enemies = append(z.Enemies, e)
	return e
}

func countEvents(c *EventCollector, kind string) int {
	n := 0
	for _, ev := range c.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
