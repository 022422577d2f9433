package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ItemDef is the content definition for an item type.
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Kind selects special behavior: "spear" (diagonal charge),
	// "horse" (knight charge), "bow" (ranged shot), "bomb",
	// "food", "drink", "key".
	Kind string `json:"kind,omitempty"`

	Damage  int  `json:"damage,omitempty"`
	Uses    int  `json:"uses,omitempty"` // 0 means not consumable by use count
	Restore int  `json:"restore,omitempty"`
	Value   int  `json:"value,omitempty"` // barter value
	Usable  bool `json:"usable"`
}

// EnemyDef is the content definition for an enemy archetype. Movement
// selects the move-planner strategy registered under that name.
type EnemyDef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Movement string `json:"movement"` // "cardinal", "diagonal", "knight", "slider"
	Health   int    `json:"health"`
	Attack   int    `json:"attack"`
	Points   int    `json:"points"`
}

// BarterOffer is a one-for-one trade an NPC will make.
type BarterOffer struct {
	Wants string `json:"wants"` // item ID the NPC asks for
	Gives string `json:"gives"` // item ID handed over in exchange
}

// NPCDef is the content definition for a non-player character.
// Teaches names an ability tag granted the first time the player
// talks to the NPC.
type NPCDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Dialogue []string     `json:"dialogue,omitempty"`
	Barter   *BarterOffer `json:"barter,omitempty"`
	Teaches  string       `json:"teaches,omitempty"`
}

// Registry is the read-only content lookup used by the game core:
// item, enemy and NPC definitions loaded once from a JSON data
// directory. Lookups after Load never touch the filesystem.
type Registry struct {
	items   map[string]*ItemDef
	enemies map[string]*EnemyDef
	npcs    map[string]*NPCDef
}

// New builds a registry directly from definitions, for callers that
// do not load content from a data directory.
func New(items []*ItemDef, enemies []*EnemyDef, npcs []*NPCDef) *Registry {
	r := &Registry{
		items:   make(map[string]*ItemDef),
		enemies: make(map[string]*EnemyDef),
		npcs:    make(map[string]*NPCDef),
	}
	for _, it := range items {
		r.items[it.ID] = it
	}
	for _, e := range enemies {
		r.enemies[e.ID] = e
	}
	for _, n := range npcs {
		r.npcs[n.ID] = n
	}
	return r
}

// Load reads items.json, enemies.json and npcs.json from dataDir.
func Load(dataDir string) (*Registry, error) {
	r := &Registry{
		items:   make(map[string]*ItemDef),
		enemies: make(map[string]*EnemyDef),
		npcs:    make(map[string]*NPCDef),
	}

	var items []*ItemDef
	if err := readJSON(filepath.Join(dataDir, "items.json"), &items); err != nil {
		return nil, fmt.Errorf("failed to load item definitions: %w", err)
	}
	for _, it := range items {
		if it.Name == "" {
			it.Name = titleCaser.String(strings.ReplaceAll(it.ID, "_", " "))
		}
		r.items[it.ID] = it
	}

	var enemies []*EnemyDef
	if err := readJSON(filepath.Join(dataDir, "enemies.json"), &enemies); err != nil {
		return nil, fmt.Errorf("failed to load enemy definitions: %w", err)
	}
	for _, e := range enemies {
		if e.Name == "" {
			e.Name = titleCaser.String(e.ID)
		}
		r.enemies[e.ID] = e
	}

	var npcs []*NPCDef
	if err := readJSON(filepath.Join(dataDir, "npcs.json"), &npcs); err != nil {
		// NPCs are optional content.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load npc definitions: %w", err)
		}
	}
	for _, n := range npcs {
		if n.Name == "" {
			n.Name = titleCaser.String(strings.ReplaceAll(n.ID, "_", " "))
		}
		r.npcs[n.ID] = n
	}

	return r, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// GetItem returns the item definition for id, or nil if unknown.
func (r *Registry) GetItem(id string) *ItemDef {
	return r.items[id]
}

// GetEnemy returns the enemy definition for id, or nil if unknown.
func (r *Registry) GetEnemy(id string) *EnemyDef {
	return r.enemies[id]
}

// GetNPC returns the NPC definition for id, or nil if unknown.
func (r *Registry) GetNPC(id string) *NPCDef {
	return r.npcs[id]
}

// EnemyIDs returns all known enemy archetype IDs, sorted.
func (r *Registry) EnemyIDs() []string {
	ids := make([]string, 0, len(r.enemies))
	for id := range r.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NPCIDs returns all known NPC IDs, sorted.
func (r *Registry) NPCIDs() []string {
	ids := make([]string, 0, len(r.npcs))
	for id := range r.npcs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ItemIDsByKind returns the IDs of all items of the given kind, sorted.
func (r *Registry) ItemIDsByKind(kind string) []string {
	var ids []string
	for id, it := range r.items {
		if it.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
