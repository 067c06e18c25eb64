package actor

import (
	"fmt"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/dream-market/pkg/item"
)

// Stats are the core attributes shared by players and enemies. Health and
// sanity are tracked separately because they are mutable resources.
type Stats struct {
	Strength int `json:"strength" yaml:"strength"`
	Agility  int `json:"agility" yaml:"agility"`
	Magic    int `json:"magic" yaml:"magic"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility.
func (s Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength": s.Strength,
		"agility":  s.Agility,
		"magic":    s.Magic,
	}
}

// Player is the session-long player character. It is created once from an
// archetype template, mutated throughout combat and narrative, and
// serialized wholesale at save points.
type Player struct {
	Name      string          `json:"name"`
	Archetype string          `json:"archetype"`
	Stats     Stats           `json:"stats"`
	Health    int             `json:"health"`
	MaxHealth int             `json:"max_health"`
	Sanity    int             `json:"sanity"`
	MaxSanity int             `json:"max_sanity"`
	Flags     map[string]bool `json:"flags,omitempty"`
	Inventory *item.Inventory `json:"inventory"`

	// Defending is combat-turn state: set by the defend action, cleared
	// after the next enemy turn. Never serialized.
	Defending bool `json:"-"`
}

// NewPlayer creates a Player from an archetype template. The template is
// realized through the d20 actor builder, which validates the sheet and
// supplies the starting hit points.
func NewPlayer(name, archetypeKey string) (*Player, error) {
	tpl, ok := ArchetypeByKey(archetypeKey)
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q", archetypeKey)
	}

	attrs := tpl.Stats.ToAttributes()
	attrs["sanity"] = tpl.Sanity
	sheet, err := d20.NewActor(tpl.Key).
		WithHP(tpl.Health).
		WithAC(10).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("invalid archetype template %q: %w", archetypeKey, err)
	}

	maxSanity := tpl.Sanity
	if v, ok := sheet.Attribute("sanity"); ok {
		maxSanity = v
	}

	p := &Player{
		Name:      name,
		Archetype: tpl.Key,
		Stats:     tpl.Stats,
		Health:    sheet.HP(),
		MaxHealth: sheet.MaxHP(),
		Sanity:    maxSanity,
		MaxSanity: maxSanity,
		Flags:     make(map[string]bool),
		Inventory: item.NewInventory(),
	}
	for _, name := range tpl.StartingItems {
		p.Inventory.Add(name, 1)
	}
	return p, nil
}

// ApplyDamage reduces health by n, clamping at 0, and reports whether the
// player is now defeated.
func (p *Player) ApplyDamage(n int) bool {
	if n > 0 {
		p.Health -= n
		if p.Health < 0 {
			p.Health = 0
		}
	}
	return p.IsDefeated()
}

// Heal restores up to n health, clamping at MaxHealth.
func (p *Player) Heal(n int) {
	if n <= 0 {
		return
	}
	p.Health += n
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// SpendSanity deducts n sanity if the player can afford it without going
// below 0, reporting whether the cost was paid.
func (p *Player) SpendSanity(n int) bool {
	if n < 0 || n > p.Sanity {
		return false
	}
	p.Sanity -= n
	return true
}

// DrainSanity reduces sanity by n, clamping at 0. Used for enemy effects,
// which unlike SpendSanity cannot be refused.
func (p *Player) DrainSanity(n int) {
	if n <= 0 {
		return
	}
	p.Sanity -= n
	if p.Sanity < 0 {
		p.Sanity = 0
	}
}

// RestoreSanity recovers up to n sanity, clamping at MaxSanity.
func (p *Player) RestoreSanity(n int) {
	if n <= 0 {
		return
	}
	p.Sanity += n
	if p.Sanity > p.MaxSanity {
		p.Sanity = p.MaxSanity
	}
}

// IsDefeated returns true when health has reached 0.
func (p *Player) IsDefeated() bool {
	return p.Health <= 0
}

// SetFlag records a narrative flag. Flags are monotonically additive
// within a session; there is deliberately no way to clear one.
func (p *Player) SetFlag(name string) {
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	p.Flags[name] = true
}

// HasFlag reports whether a narrative flag has been set.
func (p *Player) HasFlag(name string) bool {
	return p.Flags[name]
}

// HasItem reports whether the player holds at least one of the named item.
func (p *Player) HasItem(name string) bool {
	return p.Inventory != nil && p.Inventory.Has(name)
}
