package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffProductSnapshots_StockKeys(t *testing.T) {
	prev := ProductSnapshot{Stock: map[string]int{"S": 2, "M": 0}}
	next := ProductSnapshot{Stock: map[string]int{"S": 2, "M": 1, "L": 3}}

	lines := DiffProductSnapshots(prev, next)

	// Missing keys count as 0, unchanged sizes emit nothing.
	assert.Equal(t, []string{
		"stock[M]: 0 -> 1",
		"stock[L]: 0 -> 3",
	}, lines)
}

func TestDiffProductSnapshots_PriceAndStock(t *testing.T) {
	prev := ProductSnapshot{
		Name:  "Jersey",
		Price: 10000,
		Stock: map[string]int{"M": 3},
	}
	next := ProductSnapshot{
		Name:  "Jersey",
		Price: 12000,
		Stock: map[string]int{"M": 1},
	}

	lines := DiffProductSnapshots(prev, next)

	assert.Contains(t, lines, "precio: 10000 -> 12000")
	assert.Contains(t, lines, "stock[M]: 3 -> 1")
	assert.Len(t, lines, 2)
}

func TestDiffProductSnapshots_AllFields(t *testing.T) {
	prev := ProductSnapshot{
		Name:     "Jersey Local",
		Price:    10000,
		Discount: 0,
		Type:     "club",
		IsNew:    true,
		Stock:    map[string]int{"S": 1},
		Bodega:   map[string]int{"S": 4},
	}
	next := ProductSnapshot{
		Name:     "Jersey Visita",
		Price:    9000,
		Discount: 500,
		Type:     "seleccion",
		IsNew:    false,
		Stock:    map[string]int{"S": 1},
		Bodega:   map[string]int{"S": 2},
	}

	lines := DiffProductSnapshots(prev, next)

	assert.Equal(t, []string{
		"nombre: Jersey Local -> Jersey Visita",
		"precio: 10000 -> 9000",
		"descuento: 0 -> 500",
		"tipo: club -> seleccion",
		"nuevo: true -> false",
		"bodega[S]: 4 -> 2",
	}, lines)
}

func TestDiffProductSnapshots_NoChanges(t *testing.T) {
	snap := ProductSnapshot{
		Name:  "Jersey",
		Price: 10000,
		Stock: map[string]int{"S": 2, "M": 1},
	}

	lines := DiffProductSnapshots(snap, snap)
	assert.Empty(t, lines)
}

func TestDiffProductSnapshots_SizeOrderIsCanonical(t *testing.T) {
	prev := ProductSnapshot{Stock: map[string]int{}}
	next := ProductSnapshot{Stock: map[string]int{"XL": 1, "S": 1, "M": 1}}

	lines := DiffProductSnapshots(prev, next)

	assert.Equal(t, []string{
		"stock[S]: 0 -> 1",
		"stock[M]: 0 -> 1",
		"stock[XL]: 0 -> 1",
	}, lines)
}
