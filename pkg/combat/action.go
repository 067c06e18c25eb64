package combat

import "errors"

// ActionKind enumerates the player actions an encounter accepts.
type ActionKind string

const (
	ActionAttack  ActionKind = "attack"
	ActionDefend  ActionKind = "defend"
	ActionUseItem ActionKind = "use_item"
	ActionSpecial ActionKind = "special"
	ActionRun     ActionKind = "run"
)

// Action is one player decision for one combat turn. Item is set only for
// ActionUseItem.
type Action struct {
	Kind ActionKind
	Item string
}

var (
	// ErrInvalidAction is returned for unrecognized or malformed actions.
	// The turn is not consumed and no state changes.
	ErrInvalidAction = errors.New("invalid action")
	// ErrCombatOver is returned when an action is submitted to a
	// resolved encounter.
	ErrCombatOver = errors.New("combat already resolved")
	// ErrSpecialUsed is returned when the once-per-combat special has
	// already been spent this encounter.
	ErrSpecialUsed = errors.New("special already used this combat")
	// ErrInsufficientSanity is returned when a sanity-costed special
	// cannot be paid for. No sanity is spent.
	ErrInsufficientSanity = errors.New("insufficient sanity")
	// ErrItemUnusable is returned for items with no combat effect. The
	// item is not consumed and the turn is not spent.
	ErrItemUnusable = errors.New("item has no use in combat")
)
