package history

import (
	"fmt"
	"sort"
)

// ProductSnapshot is the audited view of a product: the fields whose
// changes are worth a history line. The catalog package maps its model
// into this before and after each update.
type ProductSnapshot struct {
	Name     string
	Price    int
	Discount int
	Type     string
	IsNew    bool
	Stock    map[string]int
	Bodega   map[string]int
}

// sizeOrder fixes the emission order of per-size lines.
var sizeOrder = []string{"S", "M", "L", "XL", "XXL"}

// DiffProductSnapshots returns one human-readable line per changed field.
// A size missing from either map counts as 0. An empty result means the
// update changed nothing auditable and no entry should be recorded.
func DiffProductSnapshots(prev, next ProductSnapshot) []string {
	var lines []string

	if prev.Name != next.Name {
		lines = append(lines, fmt.Sprintf("nombre: %s -> %s", prev.Name, next.Name))
	}
	if prev.Price != next.Price {
		lines = append(lines, fmt.Sprintf("precio: %d -> %d", prev.Price, next.Price))
	}
	if prev.Discount != next.Discount {
		lines = append(lines, fmt.Sprintf("descuento: %d -> %d", prev.Discount, next.Discount))
	}
	if prev.Type != next.Type {
		lines = append(lines, fmt.Sprintf("tipo: %s -> %s", prev.Type, next.Type))
	}
	if prev.IsNew != next.IsNew {
		lines = append(lines, fmt.Sprintf("nuevo: %t -> %t", prev.IsNew, next.IsNew))
	}

	lines = append(lines, diffCounts("stock", prev.Stock, next.Stock)...)
	lines = append(lines, diffCounts("bodega", prev.Bodega, next.Bodega)...)

	return lines
}

func diffCounts(label string, prev, next map[string]int) []string {
	var lines []string
	for _, size := range orderedKeys(prev, next) {
		before := prev[size]
		after := next[size]
		if before != after {
			lines = append(lines, fmt.Sprintf("%s[%s]: %d -> %d", label, size, before, after))
		}
	}
	return lines
}

// orderedKeys walks the canonical sizes first, then any stray labels
// alphabetically, so diff output is deterministic.
func orderedKeys(prev, next map[string]int) []string {
	seen := make(map[string]bool)
	var keys []string

	for _, s := range sizeOrder {
		if _, ok := prev[s]; ok {
			seen[s] = true
			keys = append(keys, s)
			continue
		}
		if _, ok := next[s]; ok {
			seen[s] = true
			keys = append(keys, s)
		}
	}

	var extra []string
	for _, m := range []map[string]int{prev, next} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)

	return append(keys, extra...)
}
