// Package categories registers the built-in emoji categories.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/blink-tac-toe/internal/categories"
package categories

import "github.com/vovakirdan/blink-tac-toe/internal/registry"

// Default category IDs for each seat.
const (
	DefaultPlayer1 = "animals"
	DefaultPlayer2 = "food"
)

func init() {
	registry.Register(registry.Category{
		ID:      "animals",
		Title:   "Animals",
		Symbols: []string{"🐶", "🐱", "🐵", "🐰"},
	})
	registry.Register(registry.Category{
		ID:      "food",
		Title:   "Food",
		Symbols: []string{"🍕", "🍟", "🍔", "🍩"},
	})
	registry.Register(registry.Category{
		ID:      "sports",
		Title:   "Sports",
		Symbols: []string{"⚽", "🏀", "🏈", "🎾"},
	})
	registry.Register(registry.Category{
		ID:      "space",
		Title:   "Space",
		Symbols: []string{"🚀", "🪐", "🌙", "⭐"},
	})
	registry.Register(registry.Category{
		ID:      "weather",
		Title:   "Weather",
		Symbols: []string{"🌈", "⚡", "⛄", "🌊"},
	})
}
