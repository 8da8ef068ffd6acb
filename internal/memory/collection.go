package memory

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// collection is an identity-keyed map that remembers insertion order, so
// listings and validation scans are deterministic. Overwriting an existing
// identity keeps its first position.
type collection[T any] struct {
	byID  map[uuid.UUID]T
	order []uuid.UUID
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[uuid.UUID]T)}
}

func (c *collection[T]) get(id uuid.UUID) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *collection[T]) has(id uuid.UUID) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *collection[T]) put(id uuid.UUID, v T) {
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

// remove deletes id and reports whether it was present.
func (c *collection[T]) remove(id uuid.UUID) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

func (c *collection[T]) len() int {
	return len(c.byID)
}

// values yields live values in insertion order. It reads the collection as
// it is when iterated, not when values is called.
func (c *collection[T]) values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, id := range c.order {
			if !yield(c.byID[id]) {
				return
			}
		}
	}
}

// list returns a snapshot slice in insertion order.
func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
