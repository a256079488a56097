package store

import (
	"encoding/json"
	"fmt"
)

// Record is any ledger entry addressable by a stable identifier.
type Record interface {
	RecordID() string
}

// Collection is an ordered, append-only set of records. It marshals as a
// bare JSON array so ledger documents keep their flat on-disk shape.
type Collection[T Record] struct {
	items []T
}

// NewCollection returns a collection holding the given items.
func NewCollection[T Record](items ...T) Collection[T] {
	return Collection[T]{items: items}
}

// Append adds a record to the end of the collection.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// Get returns the record with the given ID, or false when absent.
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update applies mutate to the record with the given ID in place. It
// reports whether the record was found.
func (c *Collection[T]) Update(id string, mutate func(*T)) bool {
	for i := range c.items {
		if c.items[i].RecordID() == id {
			mutate(&c.items[i])
			return true
		}
	}
	return false
}

// Find returns every record matching the predicate, in insertion order.
func (c *Collection[T]) Find(match func(T) bool) []T {
	var out []T
	for _, item := range c.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Items returns the underlying slice. Callers must not mutate it.
func (c *Collection[T]) Items() []T { return c.items }

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

// MarshalJSON encodes the collection as a JSON array, never null.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON decodes a JSON array into the collection.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.items)
}

// NextSeqID formats the next sequential identifier for a ledger that counts
// records rather than assigning UUIDs, e.g. RISK-001.
func NextSeqID(prefix string, count int) string {
	return fmt.Sprintf("%s-%03d", prefix, count+1)
}
