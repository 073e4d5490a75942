// Package inventory implements capacity-bounded item stacks and the
// crafting rules that consume and produce them.
package inventory

import (
	"errors"
	"fmt"
)

// ItemID identifies an item type within a Catalog. The zero value is never
// assigned.
type ItemID uint32

// Kind groups item types by how the game uses them.
type Kind uint8

const (
	Resource Kind = iota
	Consumable
	Weapon
)

func (k Kind) String() string {
	switch k {
	case Resource:
		return "resource"
	case Consumable:
		return "consumable"
	case Weapon:
		return "weapon"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ItemDef is the static description of one item type.
type ItemDef struct {
	ID          ItemID
	Key         string
	Name        string
	Kind        Kind
	Stackable   bool
	Droppable   bool
	Heal        float64
	Description string
}

var (
	ErrUnknownItem   = errors.New("inventory: unknown item")
	ErrDuplicateItem = errors.New("inventory: duplicate item key")
)

// Catalog is the immutable table of item types.
type Catalog struct {
	defs  []ItemDef
	byKey map[string]ItemID
}

// NewCatalog assigns IDs to defs in order, starting at 1. Any ID already set
// on a def is overwritten.
func NewCatalog(defs ...ItemDef) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]ItemDef, 0, len(defs)),
		byKey: make(map[string]ItemID, len(defs)),
	}
	for _, def := range defs {
		if def.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrUnknownItem)
		}
		if _, ok := c.byKey[def.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, def.Key)
		}
		def.ID = ItemID(len(c.defs) + 1)
		c.defs = append(c.defs, def)
		c.byKey[def.Key] = def.ID
	}
	return c, nil
}

// Lookup resolves an item key.
func (c *Catalog) Lookup(key string) (ItemID, bool) {
	id, ok := c.byKey[key]
	return id, ok
}

// MustID resolves an item key and panics if it is not in the catalog. Use
// it only for keys fixed at compile time.
func (c *Catalog) MustID(key string) ItemID {
	id, ok := c.byKey[key]
	if !ok {
		panic(fmt.Sprintf("inventory: item %q not in catalog", key))
	}
	return id
}

// Def returns the definition for id.
func (c *Catalog) Def(id ItemID) (ItemDef, bool) {
	if id == 0 || int(id) > len(c.defs) {
		return ItemDef{}, false
	}
	return c.defs[id-1], true
}

// Key returns the key for id, or "" if id is unknown.
func (c *Catalog) Key(id ItemID) string {
	def, ok := c.Def(id)
	if !ok {
		return ""
	}
	return def.Key
}

// Defs returns every definition in ID order.
func (c *Catalog) Defs() []ItemDef {
	out := make([]ItemDef, len(c.defs))
	copy(out, c.defs)
	return out
}

// Droppable returns the IDs zombies may drop, in ID order.
func (c *Catalog) Droppable() []ItemID {
	var ids []ItemID
	for _, def := range c.defs {
		if def.Droppable {
			ids = append(ids, def.ID)
		}
	}
	return ids
}

// Len returns the number of item types.
func (c *Catalog) Len() int {
	return len(c.defs)
}
