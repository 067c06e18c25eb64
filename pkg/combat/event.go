package combat

// EventKind classifies a display event emitted during combat resolution.
type EventKind string

const (
	EventHit        EventKind = "hit"
	EventCrit       EventKind = "crit"
	EventMiss       EventKind = "miss"
	EventDefend     EventKind = "defend"
	EventItem       EventKind = "item"
	EventSpecial    EventKind = "special"
	EventSanityLoss EventKind = "sanity_loss"
	EventSnare      EventKind = "snare"
	EventFlee       EventKind = "flee"
	EventFleeFailed EventKind = "flee_failed"
	EventDrop       EventKind = "drop"
	EventOutcome    EventKind = "outcome"
)

// Event is one line of combat narration for the shell to display. Amount
// carries damage/heal numbers where relevant.
type Event struct {
	Kind   EventKind `json:"kind"`
	Text   string    `json:"text"`
	Amount int       `json:"amount,omitempty"`
}
