package params

import "math/big"

// Category is a model size bucket.
type Category string

const (
	CategorySmall      Category = "Small (<1B)"
	CategoryMedium     Category = "Medium (1-10B)"
	CategoryLarge      Category = "Large (10-100B)"
	CategoryUltraLarge Category = "Ultra-Large (100B+)"
	CategoryUnknown    Category = "unknown"
)

var (
	oneBillion     = big.NewRat(1_000_000_000, 1)
	tenBillion     = big.NewRat(10_000_000_000, 1)
	hundredBillion = big.NewRat(100_000_000_000, 1)
)

// Classify buckets a parameter count. Bounds are lower-inclusive.
func Classify(c Count) Category {
	if !c.Known() {
		return CategoryUnknown
	}
	switch {
	case c.n.Cmp(oneBillion) < 0:
		return CategorySmall
	case c.n.Cmp(tenBillion) < 0:
		return CategoryMedium
	case c.n.Cmp(hundredBillion) < 0:
		return CategoryLarge
	default:
		return CategoryUltraLarge
	}
}

// Rank is the sort position of the category; unknown sorts last.
func (c Category) Rank() int {
	switch c {
	case CategorySmall:
		return 0
	case CategoryMedium:
		return 1
	case CategoryLarge:
		return 2
	case CategoryUltraLarge:
		return 3
	default:
		return 4
	}
}
