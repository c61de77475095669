package tables

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestSymbolTable(t *testing.T) {
	t.Run("new table is empty", func(t *testing.T) {
		tbl := NewSymbolTable()

		assert.NotNil(t, tbl)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, 0, len(tbl.Symbols()))
	})

	t.Run("ids follow first sighting", func(t *testing.T) {
		tbl := NewSymbolTable()

		tbl.Reference("B", 100)
		tbl.Define("A", 101)
		tbl.Define("B", 102)

		a, ok := tbl.Get("A")
		assert.True(t, ok)
		assert.Equal(t, 2, a.ID)
		b, _ := tbl.Get("B")
		assert.Equal(t, 1, b.ID)
		assert.Equal(t, 102, b.Address)
		assert.True(t, b.Defined)
	})

	t.Run("reference keeps existing address", func(t *testing.T) {
		tbl := NewSymbolTable()

		tbl.Define("A", 5)
		sym, added := tbl.Reference("A", 9)
		assert.False(t, added)
		assert.Equal(t, 5, sym.Address)

		sym, added = tbl.Reference("X", 9)
		assert.True(t, added)
		assert.Equal(t, 9, sym.Address)
		assert.False(t, sym.Defined)
	})

	t.Run("set address", func(t *testing.T) {
		tbl := NewSymbolTable()

		assert.False(t, tbl.SetAddress("A", 1))
		tbl.Reference("A", 0)
		assert.True(t, tbl.SetAddress("A", 42))

		a, _ := tbl.Get("A")
		assert.Equal(t, 42, a.Address)
		assert.True(t, a.Defined)
	})

	t.Run("symbols sorted by id", func(t *testing.T) {
		tbl := NewSymbolTable()
		tbl.Define("C", 3)
		tbl.Define("A", 1)
		tbl.Define("B", 2)

		symbols := tbl.Symbols()
		assert.Equal(t, 3, len(symbols))
		assert.Equal(t, "C", symbols[0].Name)
		assert.Equal(t, "A", symbols[1].Name)
		assert.Equal(t, "B", symbols[2].Name)
	})
}

func TestLiteralTable(t *testing.T) {
	t.Run("deduplicates within open pool", func(t *testing.T) {
		tbl := NewLiteralTable()

		first, added := tbl.AddToOpenPool("='5'")
		assert.True(t, added)
		again, added := tbl.AddToOpenPool("='5'")
		assert.False(t, added)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, 1, tbl.Len())
		assert.Equal(t, Unresolved, first.Address)
	})

	t.Run("close pool assigns addresses", func(t *testing.T) {
		tbl := NewLiteralTable()
		tbl.AddToOpenPool("='1'")
		tbl.AddToOpenPool("='2'")

		counter := 10
		pool := tbl.ClosePool(func() int {
			counter++
			return counter
		})

		assert.Equal(t, Pool{FirstLiteralID: 1, Length: 2}, pool)
		assert.Equal(t, 0, tbl.OpenLen())
		lit, ok := tbl.Get(2)
		assert.True(t, ok)
		assert.Equal(t, 12, lit.Address)
	})

	t.Run("same text in a new pool gets a new id", func(t *testing.T) {
		tbl := NewLiteralTable()
		tbl.AddToOpenPool("='5'")
		tbl.ClosePool(func() int { return 0 })

		lit, added := tbl.AddToOpenPool("='5'")
		assert.True(t, added)
		assert.Equal(t, 2, lit.ID)

		pool := tbl.ClosePool(func() int { return 0 })
		assert.Equal(t, Pool{FirstLiteralID: 2, Length: 1}, pool)
	})

	t.Run("empty pool", func(t *testing.T) {
		tbl := NewLiteralTable()

		pool := tbl.ClosePool(func() int { return 0 })
		assert.Equal(t, Pool{FirstLiteralID: 1, Length: 0}, pool)
		assert.False(t, pool.Contains(1))
	})
}

func TestSet(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Define("A", 100)
	literals := NewLiteralTable()
	pools := NewPoolTable()

	next := func() int { return 0 }
	literals.AddToOpenPool("='5'")
	literals.AddToOpenPool("='6'")
	pools.Add(literals.ClosePool(next))
	literals.AddToOpenPool("='5'")
	pools.Add(literals.ClosePool(next))

	set := Freeze(symbols, literals, pools)

	sym, ok := set.Symbol("A")
	assert.True(t, ok)
	assert.Equal(t, 100, sym.Address)

	lit, ok := set.LiteralInPool("='5'", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, lit.ID)

	lit, ok = set.LiteralInPool("='5'", 2)
	assert.True(t, ok)
	assert.Equal(t, 3, lit.ID)

	_, ok = set.LiteralInPool("='6'", 2)
	assert.False(t, ok)
	_, ok = set.LiteralInPool("='5'", 3)
	assert.False(t, ok)

	pool, ok := set.Pool(2)
	assert.True(t, ok)
	assert.True(t, pool.Contains(3))
	assert.Equal(t, 2, len(set.Pools()))
	assert.Equal(t, 3, len(set.Literals()))
	assert.Equal(t, 1, len(set.Symbols()))
}
