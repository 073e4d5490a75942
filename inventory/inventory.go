package inventory

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
)

var (
	ErrFull          = errors.New("inventory: full")
	ErrInsufficient  = errors.New("inventory: insufficient amount")
	ErrInvalidAmount = errors.New("inventory: amount must be positive")
)

// Stack is one inventory slot.
type Stack struct {
	Item   ItemID
	Amount int
}

// Inventory is an ordered list of stacks bounded by a slot capacity. A
// stackable item type occupies at most one slot; each Add of a
// non-stackable type takes a new slot holding the whole amount.
type Inventory struct {
	catalog  *Catalog
	capacity int
	stacks   []Stack
	// first slot holding each item type
	index   *intmap.Map[ItemID, int]
	version uint64
}

// New returns an empty inventory with the given number of slots.
func New(catalog *Catalog, capacity int) *Inventory {
	return &Inventory{
		catalog:  catalog,
		capacity: capacity,
		stacks:   make([]Stack, 0, capacity),
		index:    intmap.New[ItemID, int](catalog.Len()),
	}
}

func (inv *Inventory) Catalog() *Catalog { return inv.catalog }
func (inv *Inventory) Capacity() int     { return inv.capacity }
func (inv *Inventory) Len() int          { return len(inv.stacks) }
func (inv *Inventory) Full() bool        { return len(inv.stacks) >= inv.capacity }

// Version increases on every successful mutation. Observers compare it to
// detect inventory changes without diffing stacks.
func (inv *Inventory) Version() uint64 { return inv.version }

// Stacks returns a copy of the slots in order.
func (inv *Inventory) Stacks() []Stack {
	out := make([]Stack, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}

// Find returns the first stack of item.
func (inv *Inventory) Find(item ItemID) (Stack, bool) {
	slot, ok := inv.index.Get(item)
	if !ok {
		return Stack{}, false
	}
	return inv.stacks[slot], true
}

// Count returns the total amount of item across all slots.
func (inv *Inventory) Count(item ItemID) int {
	total := 0
	for _, s := range inv.stacks {
		if s.Item == item {
			total += s.Amount
		}
	}
	return total
}

// Add merges s into an existing stack of the same stackable type or appends
// a new slot. When no slot is free it returns ErrFull and the inventory is
// unchanged, so the caller still owns the items.
func (inv *Inventory) Add(s Stack) error {
	if s.Amount <= 0 {
		return ErrInvalidAmount
	}
	def, ok := inv.catalog.Def(s.Item)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownItem, s.Item)
	}

	if def.Stackable {
		if slot, ok := inv.index.Get(s.Item); ok {
			inv.stacks[slot].Amount += s.Amount
			inv.version++
			return nil
		}
	}

	if inv.Full() {
		return ErrFull
	}
	inv.stacks = append(inv.stacks, s)
	if _, ok := inv.index.Get(s.Item); !ok {
		inv.index.Put(s.Item, len(inv.stacks)-1)
	}
	inv.version++
	return nil
}

// Remove takes amount of item from its first stack. Taking the whole stack
// or more removes the slot, so amounts never go negative. It returns how
// many units were actually taken, or ErrInsufficient if item is absent.
func (inv *Inventory) Remove(item ItemID, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	slot, ok := inv.index.Get(item)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInsufficient, inv.catalog.Key(item))
	}

	stack := &inv.stacks[slot]
	if amount < stack.Amount {
		stack.Amount -= amount
		inv.version++
		return amount, nil
	}

	taken := stack.Amount
	inv.stacks = append(inv.stacks[:slot], inv.stacks[slot+1:]...)
	inv.reindex()
	inv.version++
	return taken, nil
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	if len(inv.stacks) == 0 {
		return
	}
	inv.stacks = inv.stacks[:0]
	inv.index.Clear()
	inv.version++
}

// Clone returns an independent copy sharing the catalog.
func (inv *Inventory) Clone() *Inventory {
	c := New(inv.catalog, inv.capacity)
	c.stacks = append(c.stacks, inv.stacks...)
	c.version = inv.version
	c.reindex()
	return c
}

// Equal reports whether both inventories hold the same slots in the same
// order.
func (inv *Inventory) Equal(other *Inventory) bool {
	if other == nil || inv.capacity != other.capacity || len(inv.stacks) != len(other.stacks) {
		return false
	}
	for i := range inv.stacks {
		if inv.stacks[i] != other.stacks[i] {
			return false
		}
	}
	return true
}

func (inv *Inventory) reindex() {
	inv.index.Clear()
	for i, s := range inv.stacks {
		if _, ok := inv.index.Get(s.Item); !ok {
			inv.index.Put(s.Item, i)
		}
	}
}
