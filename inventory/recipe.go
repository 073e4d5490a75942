package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/kamstrup/intmap"
)

var (
	ErrUnknownRecipe    = errors.New("inventory: unknown recipe")
	ErrMissingMaterials = errors.New("inventory: missing materials")
	// ErrDuplicateRequirement is returned for a recipe naming one item in
	// two requirements.
	ErrDuplicateRequirement = errors.New("inventory: item required twice")
)

// Requirement is one input of a recipe.
type Requirement struct {
	Item   ItemID
	Amount int
}

// Recipe turns a set of requirements into a result stack. Time is how long
// the craft is shown as taking; crafting itself completes immediately.
type Recipe struct {
	ID           string
	Name         string
	Result       Stack
	Requirements []Requirement
	Time         time.Duration
}

// RecipeBook is the immutable recipe table, kept in declaration order.
type RecipeBook struct {
	recipes []Recipe
	byID    map[string]int
}

func NewRecipeBook(recipes ...Recipe) (*RecipeBook, error) {
	b := &RecipeBook{
		recipes: make([]Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrUnknownRecipe)
		}
		if _, ok := b.byID[r.ID]; ok {
			return nil, fmt.Errorf("inventory: duplicate recipe %q", r.ID)
		}
		if r.Result.Amount <= 0 {
			return nil, fmt.Errorf("inventory: recipe %q: %w", r.ID, ErrInvalidAmount)
		}
		seen := make(map[ItemID]bool, len(r.Requirements))
		for _, req := range r.Requirements {
			if req.Amount <= 0 {
				return nil, fmt.Errorf("inventory: recipe %q requirement: %w", r.ID, ErrInvalidAmount)
			}
			if seen[req.Item] {
				return nil, fmt.Errorf("inventory: recipe %q item %d: %w", r.ID, req.Item, ErrDuplicateRequirement)
			}
			seen[req.Item] = true
		}
		b.byID[r.ID] = len(b.recipes)
		b.recipes = append(b.recipes, r)
	}
	return b, nil
}

// Lookup returns the recipe with the given id.
func (b *RecipeBook) Lookup(id string) (Recipe, error) {
	i, ok := b.byID[id]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, id)
	}
	return b.recipes[i], nil
}

// All returns every recipe in declaration order.
func (b *RecipeBook) All() []Recipe {
	out := make([]Recipe, len(b.recipes))
	copy(out, b.recipes)
	return out
}

// CanCraft reports whether the first stack of every required item holds at
// least the required amount. Requirements naming the same item add up.
func (inv *Inventory) CanCraft(r Recipe) bool {
	need := intmap.New[ItemID, int](len(r.Requirements))
	for _, req := range r.Requirements {
		total, _ := need.Get(req.Item)
		total += req.Amount
		need.Put(req.Item, total)

		stack, ok := inv.Find(req.Item)
		if !ok || stack.Amount < total {
			return false
		}
	}
	return true
}

// Craft consumes the recipe's requirements and adds its result. It either
// applies completely or not at all: on any error the inventory is left
// exactly as it was.
func (inv *Inventory) Craft(r Recipe) error {
	if !inv.CanCraft(r) {
		return fmt.Errorf("%w: %s", ErrMissingMaterials, r.ID)
	}

	next := inv.Clone()
	for _, req := range r.Requirements {
		if _, err := next.Remove(req.Item, req.Amount); err != nil {
			return fmt.Errorf("craft %s: %w", r.ID, err)
		}
	}
	if err := next.Add(r.Result); err != nil {
		return fmt.Errorf("craft %s: %w", r.ID, err)
	}

	inv.stacks = next.stacks
	inv.index = next.index
	inv.version++
	return nil
}
