package tables

// Pool is a pool table entry, a range of literal ids.
type Pool struct {
	FirstLiteralID int
	Length         int
}

// Contains returns whether the literal id is inside the pool.
func (p Pool) Contains(id int) bool {
	return id >= p.FirstLiteralID && id < p.FirstLiteralID+p.Length
}

// PoolTable lists the pools in the order they were closed.
type PoolTable struct {
	pools []Pool
}

// NewPoolTable returns an empty pool table.
func NewPoolTable() *PoolTable {
	return &PoolTable{}
}

// Add appends a closed pool and returns its 1-based number.
func (t *PoolTable) Add(pool Pool) int {
	t.pools = append(t.pools, pool)
	return len(t.pools)
}

// Get returns the pool with the given 1-based number.
func (t *PoolTable) Get(number int) (Pool, bool) {
	if number < 1 || number > len(t.pools) {
		return Pool{}, false
	}
	return t.pools[number-1], true
}

// Len returns the number of closed pools.
func (t *PoolTable) Len() int {
	return len(t.pools)
}

// Pools returns all pools in closing order.
func (t *PoolTable) Pools() []Pool {
	pools := make([]Pool, len(t.pools))
	copy(pools, t.pools)
	return pools
}
