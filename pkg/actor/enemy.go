package actor

// EnemySpecial identifies an enemy's optional special move.
type EnemySpecial string

const (
	// EnemyBellow frays the player's mind, draining sanity.
	EnemyBellow EnemySpecial = "bellow"
	// EnemySnare tangles dream-threads, reducing the player's agility
	// for the rest of the encounter.
	EnemySnare EnemySpecial = "snare"
)

// EnemyTemplate is the serializable stat block an encounter spawns from.
// Templates live in the scenario file; Enemy instances live only for the
// duration of one combat.
type EnemyTemplate struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Stats       Stats        `json:"stats" yaml:"stats"`
	Health      int          `json:"health" yaml:"health"`
	Special     EnemySpecial `json:"special,omitempty" yaml:"special,omitempty"`
	Drops       []string     `json:"drops,omitempty" yaml:"drops,omitempty"`
}

// Enemy is a live combatant instantiated fresh per encounter and
// discarded when combat resolves.
type Enemy struct {
	Name        string
	Description string
	Stats       Stats
	Health      int
	MaxHealth   int
	Special     EnemySpecial
	Drops       []string
}

// NewEnemy spawns a live enemy from a template.
func NewEnemy(t EnemyTemplate) *Enemy {
	hp := t.Health
	if hp < 0 {
		hp = 0
	}
	drops := make([]string, len(t.Drops))
	copy(drops, t.Drops)
	return &Enemy{
		Name:        t.Name,
		Description: t.Description,
		Stats:       t.Stats,
		Health:      hp,
		MaxHealth:   hp,
		Special:     t.Special,
		Drops:       drops,
	}
}

// TakeDamage reduces the enemy's health by n. Health cannot go below 0.
func (e *Enemy) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	e.Health -= n
	if e.Health < 0 {
		e.Health = 0
	}
}

// Heal increases the enemy's health by n, clamping at MaxHealth.
func (e *Enemy) Heal(n int) {
	if n <= 0 {
		return
	}
	e.Health += n
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}

// IsDefeated returns true if the enemy's health has reached 0.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}
