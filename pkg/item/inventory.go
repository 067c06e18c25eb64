package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrNotFound is returned when an item is absent from the inventory
	// (or unknown to the catalog).
	ErrNotFound = errors.New("item not found")
	// ErrInsufficientQuantity is returned when a removal asks for more
	// than the held quantity.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// Inventory tracks item quantities in insertion order. Quantities are
// never negative; an item whose quantity reaches 0 is removed entirely.
type Inventory struct {
	order  []string
	counts map[string]int
}

func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// Add accumulates qty of the named item. Known catalog names are
// canonicalized so "dream elixir" and "Dream Elixir" stack together.
// Non-positive quantities are ignored.
func (inv *Inventory) Add(name string, qty int) {
	if qty <= 0 {
		return
	}
	name = canonicalName(name)
	if _, held := inv.counts[name]; !held {
		inv.order = append(inv.order, name)
	}
	inv.counts[name] += qty
}

// Remove takes qty of the named item out of the inventory. It fails with
// ErrInsufficientQuantity if fewer than qty are held, leaving the
// inventory unchanged.
func (inv *Inventory) Remove(name string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("remove quantity must be positive, got %d", qty)
	}
	name = canonicalName(name)
	held := inv.counts[name]
	if held < qty {
		return fmt.Errorf("have %d of %q, need %d: %w", held, name, qty, ErrInsufficientQuantity)
	}
	if held == qty {
		inv.drop(name)
		return nil
	}
	inv.counts[name] = held - qty
	return nil
}

// Count returns the held quantity of the named item, 0 if absent.
func (inv *Inventory) Count(name string) int {
	return inv.counts[canonicalName(name)]
}

// Has reports whether at least one of the named item is held.
func (inv *Inventory) Has(name string) bool {
	return inv.Count(name) > 0
}

// Len returns the number of distinct items held.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Items yields (name, quantity) pairs in insertion order. The sequence is
// restartable: each range starts from the beginning.
func (inv *Inventory) Items() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range inv.order {
			if !yield(name, inv.counts[name]) {
				return
			}
		}
	}
}

func (inv *Inventory) drop(name string) {
	delete(inv.counts, name)
	for i, n := range inv.order {
		if n == name {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			return
		}
	}
}

func canonicalName(name string) string {
	if it, ok := Lookup(name); ok {
		return it.Name
	}
	return name
}

type inventoryEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// MarshalJSON serializes the inventory as an ordered list so insertion
// order survives a save/load round trip.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	entries := make([]inventoryEntry, 0, len(inv.order))
	for name, qty := range inv.Items() {
		entries = append(entries, inventoryEntry{Name: name, Quantity: qty})
	}
	return json.Marshal(entries)
}

func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var entries []inventoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	inv.order = nil
	inv.counts = make(map[string]int, len(entries))
	for _, e := range entries {
		inv.Add(e.Name, e.Quantity)
	}
	return nil
}
