package tables

import "github.com/retroenv/retrogolib/set"

// Literal is a literal table entry.
type Literal struct {
	ID      int
	Text    string
	Address int
}

// LiteralTable holds all literals in insertion order. Literals after the
// end of the last closed pool form the open pool.
type LiteralTable struct {
	literals  []Literal
	openStart int             // index of the first literal of the open pool
	open      set.Set[string] // texts in the open pool
}

// NewLiteralTable returns an empty literal table.
func NewLiteralTable() *LiteralTable {
	return &LiteralTable{
		open: set.New[string](),
	}
}

// AddToOpenPool adds a literal unless the open pool already contains its
// text. It returns the entry and whether it was added.
func (t *LiteralTable) AddToOpenPool(text string) (Literal, bool) {
	if t.open.Contains(text) {
		for _, lit := range t.literals[t.openStart:] {
			if lit.Text == text {
				return lit, false
			}
		}
	}

	lit := Literal{
		ID:      len(t.literals) + 1,
		Text:    text,
		Address: Unresolved,
	}
	t.literals = append(t.literals, lit)
	t.open.Add(text)
	return lit, true
}

// OpenLen returns the number of literals in the open pool.
func (t *LiteralTable) OpenLen() int {
	return len(t.literals) - t.openStart
}

// ClosePool assigns an address from next to every literal of the open pool
// in order and returns the pool that covers them. The next literal added
// starts a new pool.
func (t *LiteralTable) ClosePool(next func() int) Pool {
	for i := t.openStart; i < len(t.literals); i++ {
		t.literals[i].Address = next()
	}

	pool := Pool{
		FirstLiteralID: t.openStart + 1,
		Length:         len(t.literals) - t.openStart,
	}
	t.openStart = len(t.literals)
	t.open = set.New[string]()
	return pool
}

// Get returns the literal with the given id.
func (t *LiteralTable) Get(id int) (Literal, bool) {
	if id < 1 || id > len(t.literals) {
		return Literal{}, false
	}
	return t.literals[id-1], true
}

// Len returns the number of literals.
func (t *LiteralTable) Len() int {
	return len(t.literals)
}

// Literals returns all entries in insertion order.
func (t *LiteralTable) Literals() []Literal {
	literals := make([]Literal, len(t.literals))
	copy(literals, t.literals)
	return literals
}
