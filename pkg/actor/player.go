package actor

import (
	"fmt"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/rogue-engine/pkg/grid"
)

// InventoryCapacity is the maximum number of item stacks a player can carry.
const InventoryCapacity = 10

// Item is one inventory entry. UsesLeft only applies to items whose
// definition carries a use count; a disabled item cannot power a
// charge attack until re-enabled.
type Item struct {
	ID       string `json:"id"`
	UsesLeft int    `json:"uses_left,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// PlayerSpec is the serializable player record stored in the game
// state. The runtime d20 actor is rebuilt from it after loading.
type PlayerSpec struct {
	Name string `json:"name,omitempty"`

	X int `json:"x"`
	Y int `json:"y"`

	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	AC    int `json:"ac,omitempty"`

	Hunger int `json:"hunger"`
	Thirst int `json:"thirst"`
	Points int `json:"points"`

	Attributes map[string]int  `json:"attributes,omitempty"`
	Abilities  map[string]bool `json:"abilities,omitempty"`
	Inventory  []*Item         `json:"inventory,omitempty"`
}

// Player is the runtime representation of the player character.
type Player struct {
	Spec  *PlayerSpec
	Actor *d20.Actor // built at runtime from the spec
}

// NewPlayerFromSpec builds the runtime player from a spec. This is
// the only way to construct a Player after loading game state.
func NewPlayerFromSpec(spec *PlayerSpec) (*Player, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.MaxHP <= 0 {
		return nil, fmt.Errorf("player spec requires positive max hp")
	}

	attrs := spec.Attributes
	if attrs == nil {
		attrs = make(map[string]int)
	}

	a, err := d20.NewActor("player").
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build player actor: %w", err)
	}

	if spec.HP < spec.MaxHP {
		hp := spec.HP
		if hp < 0 {
			hp = 0
		}
		if err := a.SetHP(hp); err != nil {
			return nil, fmt.Errorf("failed to set player hp: %w", err)
		}
		spec.HP = hp
	}

	return &Player{Spec: spec, Actor: a}, nil
}

// Pos returns the player's current coordinate.
func (p *Player) Pos() grid.Coord {
	return grid.Coord{X: p.Spec.X, Y: p.Spec.Y}
}

// MoveTo updates the player's position.
func (p *Player) MoveTo(x, y int) {
	p.Spec.X = x
	p.Spec.Y = y
}

// HP returns current hit points.
func (p *Player) HP() int {
	return p.Actor.HP()
}

// Damage reduces the player's HP by n, floored at zero. Zero HP is
// terminal for the run. The spec mirror is kept in sync so the
// serialized record always matches the actor.
func (p *Player) Damage(n int) {
	if n <= 0 {
		return
	}
	hp := p.Actor.HP() - n
	if hp < 0 {
		hp = 0
	}
	_ = p.Actor.SetHP(hp)
	p.Spec.HP = hp
}

// Heal raises HP by n, capped at max.
func (p *Player) Heal(n int) {
	if n <= 0 {
		return
	}
	hp := p.Actor.HP() + n
	if hp > p.Actor.MaxHP() {
		hp = p.Actor.MaxHP()
	}
	_ = p.Actor.SetHP(hp)
	p.Spec.HP = hp
}

// IsDead reports whether the run is over.
func (p *Player) IsDead() bool {
	return p.Actor.HP() <= 0
}

// AddPoints awards points to the player.
func (p *Player) AddPoints(n int) {
	p.Spec.Points += n
}

// HasAbility reports whether the player has unlocked an ability tag.
func (p *Player) HasAbility(tag string) bool {
	return p.Spec.Abilities[tag]
}

// GrantAbility unlocks an ability tag.
func (p *Player) GrantAbility(tag string) {
	if p.Spec.Abilities == nil {
		p.Spec.Abilities = make(map[string]bool)
	}
	p.Spec.Abilities[tag] = true
}

// AddItem appends an item to the inventory. It returns false when the
// inventory is at capacity.
func (p *Player) AddItem(item *Item) bool {
	if len(p.Spec.Inventory) >= InventoryCapacity {
		return false
	}
	p.Spec.Inventory = append(p.Spec.Inventory, item)
	return true
}

// FindItem returns the first inventory entry with the given item ID,
// or nil if the player does not carry one.
func (p *Player) FindItem(id string) *Item {
	for _, it := range p.Spec.Inventory {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// RemoveItem removes the first inventory entry with the given item
// ID, preserving the order of the rest. It returns false when the
// player does not carry the item.
func (p *Player) RemoveItem(id string) bool {
	for i, it := range p.Spec.Inventory {
		if it.ID == id {
			p.Spec.Inventory = append(p.Spec.Inventory[:i], p.Spec.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// ConsumeUse decrements an item's use counter and removes the item
// from the inventory once its uses reach zero.
func (p *Player) ConsumeUse(item *Item) {
	if item.UsesLeft <= 0 {
		return
	}
	item.UsesLeft--
	if item.UsesLeft > 0 {
		return
	}
	for i, it := range p.Spec.Inventory {
		if it == item {
			p.Spec.Inventory = append(p.Spec.Inventory[:i], p.Spec.Inventory[i+1:]...)
			return
		}
	}
}
