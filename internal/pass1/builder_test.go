package pass1

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/asmerr"
	"github.com/retroenv/tpasm/internal/source"
	"github.com/retroenv/tpasm/internal/tables"
)

func build(t *testing.T, src string) (*tables.Set, *Builder) {
	t.Helper()

	b := New(log.NewTestLogger(t))
	set, err := b.Build(context.Background(), source.New(strings.NewReader(src)))
	assert.NoError(t, err)
	return set, b
}

func symbolAddress(t *testing.T, set *tables.Set, name string) int {
	t.Helper()

	sym, ok := set.Symbol(name)
	assert.True(t, ok, "symbol %s missing", name)
	return sym.Address
}

func TestBuildLiteralPool(t *testing.T) {
	src := "START 100\nA MOVER AREG, ='5'\n B ADD AREG, ='5'\n LTORG\n C MOVEM AREG, B\n END\n"
	set, b := build(t, src)

	symbols := set.Symbols()
	assert.Equal(t, 3, len(symbols))
	assert.Equal(t, tables.Symbol{ID: 1, Name: "A", Address: 100, Defined: true}, symbols[0])
	assert.Equal(t, tables.Symbol{ID: 2, Name: "B", Address: 101, Defined: true}, symbols[1])
	assert.Equal(t, tables.Symbol{ID: 3, Name: "C", Address: 103, Defined: true}, symbols[2])

	literals := set.Literals()
	assert.Equal(t, 1, len(literals))
	assert.Equal(t, tables.Literal{ID: 1, Text: "='5'", Address: 102}, literals[0])

	assert.Equal(t, []tables.Pool{{FirstLiteralID: 1, Length: 1}}, set.Pools())
	assert.Equal(t, 103, b.Counter())
}

func TestBuildLiteralInTwoPools(t *testing.T) {
	src := "START 200\n MOVER AREG, ='5'\n LTORG\n ADD AREG, ='5'\n SUB AREG, ='5'\n END\n"
	set, b := build(t, src)

	literals := set.Literals()
	assert.Equal(t, 2, len(literals))
	assert.Equal(t, tables.Literal{ID: 1, Text: "='5'", Address: 201}, literals[0])
	assert.Equal(t, tables.Literal{ID: 2, Text: "='5'", Address: 204}, literals[1])

	assert.Equal(t, []tables.Pool{
		{FirstLiteralID: 1, Length: 1},
		{FirstLiteralID: 2, Length: 1},
	}, set.Pools())
	assert.Equal(t, 204, b.Counter())
}

func TestBuildEqu(t *testing.T) {
	src := "START 100\nY MOVER AREG, ='1'\nX EQU Y\nZ ADD BREG, X\nEND\n"
	set, b := build(t, src)

	assert.Equal(t, 100, symbolAddress(t, set, "Y"))
	assert.Equal(t, 100, symbolAddress(t, set, "X"))
	assert.Equal(t, 101, symbolAddress(t, set, "Z"))
	assert.Equal(t, 102, b.Counter())
}

func TestBuildEquWithOffset(t *testing.T) {
	set, _ := build(t, "START 50\nY STOP\nX EQU Y+3\nEND\n")

	assert.Equal(t, 53, symbolAddress(t, set, "X"))
}

func TestBuildForwardReference(t *testing.T) {
	src := "START 10\n MOVER AREG, LATER\n ADD AREG, NEVER\nLATER STOP\nEND\n"
	set, _ := build(t, src)

	later, ok := set.Symbol("LATER")
	assert.True(t, ok)
	assert.Equal(t, 1, later.ID)
	assert.Equal(t, 12, later.Address)

	// operand only symbols keep the counter value seen at first use
	never, ok := set.Symbol("NEVER")
	assert.True(t, ok)
	assert.Equal(t, 2, never.ID)
	assert.Equal(t, 11, never.Address)
	assert.False(t, never.Defined)
}

func TestBuildDefineStorage(t *testing.T) {
	set, b := build(t, "START 100\n MOVER AREG, X\nX DS 1\nY DC 5\nEND\n")

	assert.Equal(t, 102, symbolAddress(t, set, "X"))
	assert.Equal(t, 103, symbolAddress(t, set, "Y"))
	assert.Equal(t, 103, b.Counter())
}

// A DS label directly after START is charged twice, once as the label that
// lands on the START address and once by DS itself, so the START address
// stays unused.
func TestBuildDefineStorageAfterStart(t *testing.T) {
	set, b := build(t, "START 100\nX DS 3\nY STOP\nEND\n")

	assert.Equal(t, 101, symbolAddress(t, set, "X"))
	assert.Equal(t, 102, symbolAddress(t, set, "Y"))
	assert.Equal(t, 102, b.Counter())
}

func TestBuildOrigin(t *testing.T) {
	t.Run("symbol with offset", func(t *testing.T) {
		set, _ := build(t, "START 100\nA MOVER AREG, ='1'\n ORIGIN A+5\nB ADD AREG, ='1'\nEND\n")

		assert.Equal(t, 105, symbolAddress(t, set, "B"))
		literals := set.Literals()
		assert.Equal(t, 1, len(literals))
		assert.Equal(t, 106, literals[0].Address)
	})

	t.Run("integer", func(t *testing.T) {
		set, _ := build(t, "START 100\nA STOP\n ORIGIN 300\nC STOP\n MOVER AREG, C\nEND\n")

		assert.Equal(t, 300, symbolAddress(t, set, "C"))
	})

	t.Run("directly after start", func(t *testing.T) {
		set, _ := build(t, "START 100\n ORIGIN 300\n STOP\nC STOP\nEND\n")

		assert.Equal(t, 301, symbolAddress(t, set, "C"))
	})
}

func TestBuildWithoutStart(t *testing.T) {
	set, b := build(t, "MOVER AREG, X\nADD BREG, X\nX STOP\n")

	assert.Equal(t, 3, symbolAddress(t, set, "X"))
	assert.Equal(t, 3, b.Counter())
	assert.Equal(t, 0, len(set.Pools()))
}

func TestBuildWithoutEnd(t *testing.T) {
	set, _ := build(t, "START 1\n MOVER AREG, ='7'\n")

	literals := set.Literals()
	assert.Equal(t, 1, len(literals))
	assert.Equal(t, 2, literals[0].Address)
	assert.Equal(t, []tables.Pool{{FirstLiteralID: 1, Length: 1}}, set.Pools())
}

func TestBuildStopsAtEnd(t *testing.T) {
	set, _ := build(t, "START 1\nA STOP\nEND\nB STOP ='9'\n")

	_, ok := set.Symbol("B")
	assert.False(t, ok)
	assert.Equal(t, 0, len(set.Literals()))
}

func TestBuildPoolsPartitionLiterals(t *testing.T) {
	src := "START 1\n MOVER AREG, ='1'\n ADD AREG, ='2'\n LTORG\n LTORG\n" +
		" SUB AREG, ='1'\n MULT AREG, ='3'\n MULT AREG, ='3'\n LTORG\n DIV AREG, ='4'\nEND\n"
	set, _ := build(t, src)

	next := 1
	for _, pool := range set.Pools() {
		assert.Equal(t, next, pool.FirstLiteralID)
		next += pool.Length
	}
	assert.Equal(t, len(set.Literals())+1, next)
	assert.Equal(t, 4, len(set.Pools()))
	assert.Equal(t, 5, len(set.Literals()))
}

func TestBuildCaseInsensitiveMnemonics(t *testing.T) {
	set, _ := build(t, "start 100\nA mover areg, ='5'\nend\n")

	assert.Equal(t, 100, symbolAddress(t, set, "A"))
	_, ok := set.Symbol("areg")
	assert.False(t, ok)
}

//nolint:funlen // test functions can be long
func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     error
		contains string
	}{
		{
			name:     "start operand not a number",
			src:      "START ABC\n",
			kind:     asmerr.ErrMalformedDirectiveOperand,
			contains: "'ABC' at line 1",
		},
		{
			name: "start without operand",
			src:  "START\n",
			kind: asmerr.ErrUnexpectedEndOfInput,
		},
		{
			name: "malformed literal",
			src:  "START 1\n MOVER AREG, ='5\n",
			kind: asmerr.ErrMalformedLiteral,
		},
		{
			name:     "origin forward reference",
			src:      "START 1\n MOVER AREG, X\n ORIGIN X\nX STOP\nEND\n",
			kind:     asmerr.ErrUnknownSymbolReference,
			contains: "ORIGIN",
		},
		{
			name: "origin unknown symbol",
			src:  "START 1\n ORIGIN NOWHERE+1\n",
			kind: asmerr.ErrUnknownSymbolReference,
		},
		{
			name: "origin malformed offset",
			src:  "START 1\nA STOP\n ORIGIN A+B\n",
			kind: asmerr.ErrMalformedDirectiveOperand,
		},
		{
			name: "origin literal operand",
			src:  "START 1\n ORIGIN ='1'\n",
			kind: asmerr.ErrMalformedDirectiveOperand,
		},
		{
			name: "equ without label",
			src:  "START 1\nA STOP\n EQU A\n",
			kind: asmerr.ErrMalformedDirectiveOperand,
		},
		{
			name: "equ unknown target",
			src:  "START 1\nX EQU Y\n",
			kind: asmerr.ErrUnknownSymbolReference,
		},
		{
			name: "equ without operand",
			src:  "START 1\nX EQU",
			kind: asmerr.ErrUnexpectedEndOfInput,
		},
		{
			name: "ds size not a number",
			src:  "START 1\nX DS Y\n",
			kind: asmerr.ErrMalformedDirectiveOperand,
		},
		{
			name: "ds without label",
			src:  "START 1\n DS 1\n",
			kind: asmerr.ErrMalformedDirectiveOperand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(log.NewTestLogger(t))
			_, err := b.Build(context.Background(), source.New(strings.NewReader(tt.src)))

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(log.NewTestLogger(t))
	_, err := b.Build(ctx, source.New(strings.NewReader("START 1\n")))
	assert.True(t, errors.Is(err, context.Canceled))
}
