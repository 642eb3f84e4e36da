package params

import (
	"math/big"
	"regexp"
	"strings"
)

// magnitudeRe matches a leading number with a K/M/B scale suffix, e.g. "22.57 M" or "7B".
var magnitudeRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([KMBkmb])`)

var multipliers = map[byte]*big.Rat{
	'K': big.NewRat(1_000, 1),
	'M': big.NewRat(1_000_000, 1),
	'B': big.NewRat(1_000_000_000, 1),
}

// Count is an exact parameter count. The zero value is unknown.
type Count struct {
	n *big.Rat
}

// Unknown is the count of a model whose size could not be read.
var Unknown = Count{}

// NewCount wraps an integer count.
func NewCount(n int64) Count {
	if n < 0 {
		return Unknown
	}
	return Count{n: big.NewRat(n, 1)}
}

// ParseCount converts a magnitude string such as "7.24 B" into an exact count.
// Input without a recognized K/M/B suffix yields Unknown; there is no unscaled fallback.
func ParseCount(s string) Count {
	m := magnitudeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Unknown
	}
	amount, ok := new(big.Rat).SetString(m[1])
	if !ok {
		return Unknown
	}
	mult, ok := multipliers[strings.ToUpper(m[2])[0]]
	if !ok {
		return Unknown
	}
	return Count{n: amount.Mul(amount, mult)}
}

// Known reports whether the count was parsed.
func (c Count) Known() bool { return c.n != nil }

// Rat returns a copy of the exact value, or nil when unknown.
func (c Count) Rat() *big.Rat {
	if c.n == nil {
		return nil
	}
	return new(big.Rat).Set(c.n)
}

// Cmp orders counts ascending with unknown after every known value.
func (c Count) Cmp(o Count) int {
	switch {
	case c.n == nil && o.n == nil:
		return 0
	case c.n == nil:
		return 1
	case o.n == nil:
		return -1
	}
	return c.n.Cmp(o.n)
}

// String renders the count as a plain decimal ("7240000000"), or "unknown".
func (c Count) String() string {
	if c.n == nil {
		return "unknown"
	}
	if c.n.IsInt() {
		return c.n.Num().String()
	}
	// Sub-unit remainders only appear for inputs like "1.2345 K".
	s := c.n.FloatString(6)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
