package store

import "sync"

// Collection is an insertion-ordered, in-memory keyed collection with its own
// monotonically increasing id counter. Assigning the id and storing the record
// happen under one lock, so concurrent inserts never share an id.
//
// Records are stored and returned by value; callers get copies.
type Collection[T any] struct {
	mu      sync.RWMutex
	nextID  int64
	order   []int64
	records map[int64]T
}

// NewCollection returns an empty collection whose first id is 1.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{
		nextID:  1,
		records: make(map[int64]T),
	}
}

// Insert assigns the next id, lets build produce the record for it and stores
// the result. The returned value is a copy of what was stored.
func (c *Collection[T]) Insert(build func(id int64) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	rec := build(id)
	c.records[id] = rec
	c.order = append(c.order, id)
	return rec
}

// InsertIf is Insert guarded by check, which runs under the write lock against
// the current contents. If check returns an error nothing is stored and no id
// is consumed.
func (c *Collection[T]) InsertIf(check func(existing []T) error, build func(id int64) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := check(c.snapshotLocked()); err != nil {
		var zero T
		return zero, err
	}
	id := c.nextID
	c.nextID++
	rec := build(id)
	c.records[id] = rec
	c.order = append(c.order, id)
	return rec, nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	return rec, ok
}

// All returns every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Filter returns the records accepted by keep, in insertion order. The result
// is never nil.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range c.order {
		if rec := c.records[id]; keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Collection[T]) snapshotLocked() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out
}

// Ptrs returns pointers to copies of items. The result is never nil.
func Ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		v := items[i]
		out[i] = &v
	}
	return out
}
