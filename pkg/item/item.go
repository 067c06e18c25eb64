package item

import "strings"

// EffectKind classifies what happens when an item is used.
type EffectKind string

const (
	// EffectHeal restores the user's health by Amount.
	EffectHeal EffectKind = "heal"
	// EffectSanity restores the user's sanity by Amount.
	EffectSanity EffectKind = "sanity"
	// EffectCombatDamage deals Amount (plus a magic bonus) to the current
	// enemy. Usable only while a combat encounter is active.
	EffectCombatDamage EffectKind = "combat_damage"
	// EffectNarrative has no mechanical effect; the item gates story
	// branches instead.
	EffectNarrative EffectKind = "narrative"
)

// Item is a catalog entry. Items themselves are immutable; quantity is
// tracked per session by Inventory.
type Item struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Effect      EffectKind `json:"effect"`
	Amount      int        `json:"amount,omitempty"`
	Consumable  bool       `json:"consumable"`
}

// Canonical item names used by archetypes, enemies, and the stage graph.
const (
	DreamElixir  = "Dream Elixir"
	CalmMist     = "Calm Mist"
	FearShard    = "Fear Shard"
	HopeSeed     = "Hope Seed"
	BrokerLedger = "Broker Ledger"
)

var catalog = []Item{
	{
		Name:        DreamElixir,
		Description: "Restores 30 health.",
		Effect:      EffectHeal,
		Amount:      30,
		Consumable:  true,
	},
	{
		Name:        CalmMist,
		Description: "Restores 25 sanity.",
		Effect:      EffectSanity,
		Amount:      25,
		Consumable:  true,
	},
	{
		Name:        FearShard,
		Description: "A sliver of dread. Thrown in combat for magic damage.",
		Effect:      EffectCombatDamage,
		Amount:      20,
		Consumable:  true,
	},
	{
		Name:        HopeSeed,
		Description: "A tiny mote of hope. Some dreams remember kindness.",
		Effect:      EffectNarrative,
		Consumable:  true,
	},
	{
		Name:        BrokerLedger,
		Description: "A record of transactions. Required to broker certain sales.",
		Effect:      EffectNarrative,
		Consumable:  false,
	},
}

var catalogByName = func() map[string]Item {
	m := make(map[string]Item, len(catalog))
	for _, it := range catalog {
		m[strings.ToLower(it.Name)] = it
	}
	return m
}()

// Lookup finds a catalog entry by name. Matching is case-insensitive so
// shell input like "use dream elixir" resolves to the canonical item.
func Lookup(name string) (Item, bool) {
	it, ok := catalogByName[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// Catalog returns all defined items in declaration order.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}
