// Package registry provides a global registry for emoji categories.
// Categories register themselves in init() functions, and custom ones are
// added from configuration at startup, so the front ends can offer them
// without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUnknownCategory is returned when an ID has not been registered.
	ErrUnknownCategory = errors.New("registry: unknown category")
	// ErrSameCategory is returned when both seats ask for one category.
	ErrSameCategory = errors.New("registry: both players picked the same category")
	// ErrInvalidCategory is returned for categories without an ID or symbols.
	ErrInvalidCategory = errors.New("registry: invalid category")
)

// Category is a named emoji palette a player draws symbols from.
type Category struct {
	ID      string
	Title   string
	Symbols []string
}

// Preview returns the symbols joined for display, e.g. "🐶 🐱 🐵 🐰".
func (c Category) Preview() string {
	return strings.Join(c.Symbols, " ")
}

func (c Category) validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCategory)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: %q has no symbols", ErrInvalidCategory, c.ID)
	}
	return nil
}

var (
	categories = make(map[string]Category)
	order      []string
	mu         sync.RWMutex
)

// Register adds a built-in category to the registry.
// Typically called from an init() function.
// Panics if the category is invalid or its ID is already registered.
func Register(c Category) {
	if err := Add(c); err != nil {
		panic(err.Error())
	}
}

// Add registers a category supplied at runtime, such as one from a config
// file. Unlike Register it reports problems as errors.
func Add(c Category) error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.Title == "" {
		c.Title = c.ID
	}
	c.Symbols = append([]string(nil), c.Symbols...)

	mu.Lock()
	defer mu.Unlock()

	if _, exists := categories[c.ID]; exists {
		return fmt.Errorf("registry: category %q already registered", c.ID)
	}
	categories[c.ID] = c
	order = append(order, c.ID)
	return nil
}

// List returns all registered categories in registration order.
func List() []Category {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Category, 0, len(order))
	for _, id := range order {
		result = append(result, categories[id])
	}
	return result
}

// Lookup returns the category with the given ID.
func Lookup(id string) (Category, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := categories[id]
	if !ok {
		return Category{}, fmt.Errorf("%w %q", ErrUnknownCategory, id)
	}
	return c, nil
}

// Exists checks if a category with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := categories[id]
	return ok
}

// Pair resolves the categories for both seats. A category may only be used
// by one seat in a match.
func Pair(p1, p2 string) (Category, Category, error) {
	if p1 == p2 {
		return Category{}, Category{}, fmt.Errorf("%w: %q", ErrSameCategory, p1)
	}
	c1, err := Lookup(p1)
	if err != nil {
		return Category{}, Category{}, err
	}
	c2, err := Lookup(p2)
	if err != nil {
		return Category{}, Category{}, err
	}
	return c1, c2, nil
}
