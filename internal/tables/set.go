package tables

// Set is the read-only view of the tables of a completed first pass.
type Set struct {
	symbols  *SymbolTable
	literals *LiteralTable
	pools    *PoolTable
}

// Freeze wraps the tables into a read-only set. The caller must not modify
// the tables afterwards.
func Freeze(symbols *SymbolTable, literals *LiteralTable, pools *PoolTable) *Set {
	return &Set{
		symbols:  symbols,
		literals: literals,
		pools:    pools,
	}
}

// Symbol returns the entry of a symbol.
func (s *Set) Symbol(name string) (Symbol, bool) {
	return s.symbols.Get(name)
}

// Symbols returns all symbols sorted by id.
func (s *Set) Symbols() []Symbol {
	return s.symbols.Symbols()
}

// Literals returns all literals in insertion order.
func (s *Set) Literals() []Literal {
	return s.literals.Literals()
}

// Pools returns all pools in closing order.
func (s *Set) Pools() []Pool {
	return s.pools.Pools()
}

// Pool returns the pool with the given 1-based number.
func (s *Set) Pool(number int) (Pool, bool) {
	return s.pools.Get(number)
}

// LiteralInPool searches the literal text only within the given pool.
func (s *Set) LiteralInPool(text string, number int) (Literal, bool) {
	pool, ok := s.pools.Get(number)
	if !ok {
		return Literal{}, false
	}

	for id := pool.FirstLiteralID; id < pool.FirstLiteralID+pool.Length; id++ {
		lit, _ := s.literals.Get(id)
		if lit.Text == text {
			return lit, true
		}
	}
	return Literal{}, false
}
