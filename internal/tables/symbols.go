// Package tables implements the symbol, literal and pool tables built by
// the first pass and read by the second.
package tables

// Unresolved marks an address that has not been assigned yet.
const Unresolved = -1

// Symbol is a symbol table entry.
type Symbol struct {
	ID      int
	Name    string
	Address int
	Defined bool // address set by a label, EQU or DS, not only a forward reference
}

// SymbolTable maps symbol names to entries, ids are assigned in first-seen order.
type SymbolTable struct {
	byName  map[string]int // name to index into symbols
	symbols []Symbol
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: make(map[string]int),
	}
}

// Get returns the entry of a symbol.
func (t *SymbolTable) Get(name string) (Symbol, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return t.symbols[i], true
}

// Has returns whether a symbol was seen.
func (t *SymbolTable) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Define records a label at the given address, keeping the id of an
// earlier sighting.
func (t *SymbolTable) Define(name string, address int) Symbol {
	i := t.index(name, address)
	t.symbols[i].Address = address
	t.symbols[i].Defined = true
	return t.symbols[i]
}

// Reference records a symbol used as an operand. The address is only used
// if the symbol was not seen before. It returns whether the symbol was added.
func (t *SymbolTable) Reference(name string, address int) (Symbol, bool) {
	if i, ok := t.byName[name]; ok {
		return t.symbols[i], false
	}
	i := t.index(name, address)
	return t.symbols[i], true
}

// SetAddress overwrites the address of a known symbol and marks it defined.
func (t *SymbolTable) SetAddress(name string, address int) bool {
	i, ok := t.byName[name]
	if !ok {
		return false
	}
	t.symbols[i].Address = address
	t.symbols[i].Defined = true
	return true
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// Symbols returns all entries sorted by id.
func (t *SymbolTable) Symbols() []Symbol {
	symbols := make([]Symbol, len(t.symbols))
	copy(symbols, t.symbols)
	return symbols
}

func (t *SymbolTable) index(name string, address int) int {
	if i, ok := t.byName[name]; ok {
		return i
	}
	t.symbols = append(t.symbols, Symbol{
		ID:      len(t.symbols) + 1,
		Name:    name,
		Address: address,
	})
	i := len(t.symbols) - 1
	t.byName[name] = i
	return i
}
