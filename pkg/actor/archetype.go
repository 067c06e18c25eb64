package actor

import "github.com/jwebster45206/dream-market/pkg/item"

// SpecialKind identifies the one special ability each archetype carries.
// Specials are dispatched by the combat engine from this tag; there is no
// per-class subtype.
type SpecialKind string

const (
	// SpecialExtract harvests a Fear Shard from the enemy's dream-stuff.
	SpecialExtract SpecialKind = "extract"
	// SpecialRewrite rewrites a rule of the dream: the enemy's next
	// attack automatically misses.
	SpecialRewrite SpecialKind = "rewrite"
	// SpecialOnslaught trades 20 sanity for a 2.5x strength strike.
	SpecialOnslaught SpecialKind = "onslaught"
	// SpecialSureStrike is a guaranteed hit for strength plus a magic bonus.
	SpecialSureStrike SpecialKind = "sure_strike"
	// SpecialStandFast is a self-heal.
	SpecialStandFast SpecialKind = "stand_fast"
	// SpecialDreamSpark is a guaranteed magic hit for 1.5x magic.
	SpecialDreamSpark SpecialKind = "dream_spark"
)

// Special describes an archetype's ability for dispatch and display.
type Special struct {
	Kind        SpecialKind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// Archetype is a player class template. Instances are fixed at compile
// time; NewPlayer snapshots one into a mutable Player.
type Archetype struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Stats         Stats    `json:"stats"`
	Health        int      `json:"health"`
	Sanity        int      `json:"sanity"`
	Special       Special  `json:"special"`
	StartingItems []string `json:"starting_items,omitempty"`
}

var archetypes = []Archetype{
	{
		Key:         "night_surgeon",
		Name:        "Night Surgeon",
		Description: "Extracts emotional items from nightmares mid-fight.",
		Stats:       Stats{Strength: 8, Agility: 6, Magic: 6},
		Health:      90,
		Sanity:      80,
		Special: Special{
			Kind:        SpecialExtract,
			Name:        "Extraction",
			Description: "Slice dream-membranes and pocket a Fear Shard.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist, item.BrokerLedger},
	},
	{
		Key:         "lucid_magician",
		Name:        "Lucid Magician",
		Description: "Bends the rules of the dream itself.",
		Stats:       Stats{Strength: 4, Agility: 7, Magic: 12},
		Health:      70,
		Sanity:      90,
		Special: Special{
			Kind:        SpecialRewrite,
			Name:        "Rewrite Rule",
			Description: "The enemy's next attack fails.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist},
	},
	{
		Key:         "insomniac",
		Name:        "Insomniac",
		Description: "Powerful, but pays in sanity rather than blood.",
		Stats:       Stats{Strength: 10, Agility: 8, Magic: 4},
		Health:      60,
		Sanity:      120,
		Special: Special{
			Kind:        SpecialOnslaught,
			Name:        "Desperate Onslaught",
			Description: "A 2.5x strength strike costing 20 sanity.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist},
	},
	{
		Key:         "broker_novice",
		Name:        "Broker",
		Description: "Balanced starter who negotiates and resells dreams.",
		Stats:       Stats{Strength: 6, Agility: 8, Magic: 6},
		Health:      80,
		Sanity:      100,
		Special: Special{
			Kind:        SpecialSureStrike,
			Name:        "Closing Argument",
			Description: "A strike that cannot miss.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist},
	},
	{
		Key:         "night_watch",
		Name:        "Night Watch",
		Description: "Tough guard-like class that excels at physical combat.",
		Stats:       Stats{Strength: 9, Agility: 5, Magic: 3},
		Health:      100,
		Sanity:      100,
		Special: Special{
			Kind:        SpecialStandFast,
			Name:        "Stand Fast",
			Description: "Steady yourself, recovering health.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist},
	},
	{
		Key:         "somnomancer",
		Name:        "Somnomancer",
		Description: "Dream-focused mage with a deep well of magic.",
		Stats:       Stats{Strength: 3, Agility: 6, Magic: 11},
		Health:      65,
		Sanity:      95,
		Special: Special{
			Kind:        SpecialDreamSpark,
			Name:        "Dream Spark",
			Description: "A focused bolt of dream-stuff that always lands.",
		},
		StartingItems: []string{item.DreamElixir, item.CalmMist},
	},
}

// Archetypes returns the class templates in menu order.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}

// ArchetypeByKey looks up a class template by its key.
func ArchetypeByKey(key string) (Archetype, bool) {
	for _, a := range archetypes {
		if a.Key == key {
			return a, true
		}
	}
	return Archetype{}, false
}
