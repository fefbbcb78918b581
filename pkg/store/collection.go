package store

import "sync"

// Record is anything a Collection can hold.
type Record interface {
	RecordID() string
}

// Collection is an ordered set of records of one entity type. Insertion order
// is preserved and is the default tie-break order for listings.
//
// Records are stored and returned by value, so callers never hold an alias
// into the collection; writing a change back always goes through Update.
type Collection[T Record] struct {
	mu     sync.RWMutex
	entity string
	order  []string
	byID   map[string]T
}

// NewCollection creates an empty collection. The entity name is used in error
// messages ("invoice", "stockLine", ...).
func NewCollection[T Record](entity string) *Collection[T] {
	return &Collection[T]{
		entity: entity,
		byID:   make(map[string]T),
	}
}

// Entity returns the entity name this collection holds.
func (c *Collection[T]) Entity() string {
	return c.entity
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.byID[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Entity: c.entity, ID: id}
	}
	return rec, nil
}

// Has reports whether a record with the given id exists.
func (c *Collection[T]) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// List returns all records in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Filter returns the records matching pred, in insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, id := range c.order {
		if rec := c.byID[id]; pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the first record matching pred in insertion order.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if rec := c.byID[id]; pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Insert appends a new record. Fails with AlreadyExistsError when the
// identifier is already present.
func (c *Collection[T]) Insert(rec T) error {
	id := rec.RecordID()
	if id == "" {
		return &ValidationError{Field: "id", Message: "identifier must not be empty"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; exists {
		return &AlreadyExistsError{Entity: c.entity, ID: id}
	}
	c.byID[id] = rec
	c.order = append(c.order, id)
	return nil
}

// Update replaces the record with the same identifier, keeping its position
// in insertion order. Fails with NotFoundError when absent.
func (c *Collection[T]) Update(rec T) (T, error) {
	id := rec.RecordID()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; !exists {
		var zero T
		return zero, &NotFoundError{Entity: c.entity, ID: id}
	}
	c.byID[id] = rec
	return rec, nil
}

// Remove deletes the record with the given id and returns it.
func (c *Collection[T]) Remove(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, exists := c.byID[id]
	if !exists {
		var zero T
		return zero, &NotFoundError{Entity: c.entity, ID: id}
	}

	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

// Position returns the insertion-order index of the record, or false when the
// record is absent. Used together with Restore for mutation rollback.
func (c *Collection[T]) Position(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, oid := range c.order {
		if oid == id {
			return i, true
		}
	}
	return 0, false
}

// Restore re-inserts a previously removed record at the given insertion-order
// index, clamped to the current bounds. Used for mutation rollback.
func (c *Collection[T]) Restore(rec T, at int) error {
	id := rec.RecordID()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; exists {
		return &AlreadyExistsError{Entity: c.entity, ID: id}
	}
	if at < 0 {
		at = 0
	}
	if at > len(c.order) {
		at = len(c.order)
	}
	c.byID[id] = rec
	c.order = append(c.order, "")
	copy(c.order[at+1:], c.order[at:])
	c.order[at] = id
	return nil
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Replace discards all records and installs recs in the given order.
// Used when seeding or resetting a store.
func (c *Collection[T]) Replace(recs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]T, len(recs))
	c.order = c.order[:0]
	for _, rec := range recs {
		id := rec.RecordID()
		if _, exists := c.byID[id]; exists {
			continue
		}
		c.byID[id] = rec
		c.order = append(c.order, id)
	}
}
