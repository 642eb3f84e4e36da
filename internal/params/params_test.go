package params

import (
	"math/big"
	"testing"
)

func TestParseCount_Units(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"22.57 M", "22570000"},
		{"7.24 B", "7240000000"},
		{"7.24B", "7240000000"},
		{"150 b", "150000000000"},
		{"500 K", "500000"},
		{"500k", "500000"},
		{"1.5 m", "1500000"},
		{"  3 B  ", "3000000000"},
		{"1.2345 K", "1234.5"},
		{"8 B (incl. embeddings)", "8000000000"},
	}
	for _, tt := range tests {
		c := ParseCount(tt.in)
		if !c.Known() {
			t.Errorf("ParseCount(%q): expected known count", tt.in)
			continue
		}
		if got := c.String(); got != tt.want {
			t.Errorf("ParseCount(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParseCount_ExactDecimal(t *testing.T) {
	// 7.24 is not representable in binary floating point.
	c := ParseCount("7.24 B")
	want := big.NewRat(7_240_000_000, 1)
	if c.Rat().Cmp(want) != 0 {
		t.Errorf("expected exactly %s, got %s", want.RatString(), c.Rat().RatString())
	}
}

func TestParseCount_Unknown(t *testing.T) {
	for _, in := range []string{"", "   ", "N/A", "7.24", "7.24 T", "B 7", "-3 B", "abc M", ".5 B"} {
		if c := ParseCount(in); c.Known() {
			t.Errorf("ParseCount(%q): expected unknown, got %s", in, c)
		}
	}
}

func TestCount_CmpUnknownLast(t *testing.T) {
	small := ParseCount("1 M")
	large := ParseCount("1 B")
	if small.Cmp(large) >= 0 {
		t.Error("expected 1M < 1B")
	}
	if large.Cmp(Unknown) >= 0 {
		t.Error("expected known < unknown")
	}
	if Unknown.Cmp(small) <= 0 {
		t.Error("expected unknown > known")
	}
	if Unknown.Cmp(Unknown) != 0 {
		t.Error("expected unknown == unknown")
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		n    int64
		want Category
	}{
		{0, CategorySmall},
		{999_999_999, CategorySmall},
		{1_000_000_000, CategoryMedium},
		{9_999_999_999, CategoryMedium},
		{10_000_000_000, CategoryLarge},
		{99_999_999_999, CategoryLarge},
		{100_000_000_000, CategoryUltraLarge},
		{1_000_000_000_000, CategoryUltraLarge},
	}
	for _, tt := range tests {
		if got := Classify(NewCount(tt.n)); got != tt.want {
			t.Errorf("Classify(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}

func TestClassify_ParsedStrings(t *testing.T) {
	tests := map[string]Category{
		"22.57 M": CategorySmall,
		"7.24 B":  CategoryMedium,
		"70 B":    CategoryLarge,
		"150 B":   CategoryUltraLarge,
		"garbage": CategoryUnknown,
	}
	for in, want := range tests {
		if got := Classify(ParseCount(in)); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestCategory_Rank(t *testing.T) {
	order := []Category{CategorySmall, CategoryMedium, CategoryLarge, CategoryUltraLarge, CategoryUnknown}
	for i, c := range order {
		if c.Rank() != i {
			t.Errorf("%q: expected rank %d, got %d", c, i, c.Rank())
		}
	}
}
