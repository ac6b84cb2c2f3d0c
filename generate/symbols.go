package generate

import (
	"strconv"
	"strings"
)

// SymbolGenerator produces collision-free target names from a prefix and a
// base name.  The first use of a base name is unsuffixed and later uses are
// suffixed `_1`, `_2` and so on.
type SymbolGenerator struct {
	prefix string
	counts map[string]int
	used   map[string]bool
}

// NewSymbolGenerator creates a new symbol generator with the given prefix.
func NewSymbolGenerator(prefix string) *SymbolGenerator {
	return &SymbolGenerator{
		prefix: prefix,
		counts: make(map[string]int),
		used:   make(map[string]bool),
	}
}

// Generate returns a fresh symbol for name.
func (sg *SymbolGenerator) Generate(name string) string {
	base := sg.prefix + Mangle(name)

	for {
		n := sg.counts[base]
		sg.counts[base]++

		sym := base
		if n > 0 {
			sym = base + "_" + strconv.Itoa(n)
		}

		// an explicit `x_1` may already have taken the name
		if !sg.used[sym] {
			sg.used[sym] = true
			return sym
		}
	}
}

// Count returns the number of symbols generated so far.
func (sg *SymbolGenerator) Count() int {
	return len(sg.used)
}

// Mangle converts a Fry identifier into a valid target identifier.
func Mangle(name string) string {
	return strings.ReplaceAll(name, "-", "$")
}
