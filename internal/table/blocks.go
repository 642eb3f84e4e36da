package table

import (
	"iter"
	"strings"
)

// Block is the run of non-blank lines that makes up one table.
type Block []string

// Blocks splits text on runs of blank (whitespace-only) lines. The sequence is
// lazy and can be ranged over any number of times.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var current Block
		for line := range strings.Lines(text) {
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) == "" {
				if len(current) > 0 {
					if !yield(current) {
						return
					}
					current = nil
				}
				continue
			}
			current = append(current, line)
		}
		if len(current) > 0 {
			yield(current)
		}
	}
}
