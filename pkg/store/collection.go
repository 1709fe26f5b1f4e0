package store

import "context"

// Collection is a typed handle over one named collection file.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a record type to a collection name.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns every record, initialising the file to an empty array on first access.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	return c.LoadOr(ctx, []T{})
}

// LoadOr returns every record, writing def as the initial contents when the file is absent.
func (c *Collection[T]) LoadOr(ctx context.Context, def []T) ([]T, error) {
	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()
	return c.load(ctx, def)
}

// Save overwrites the collection with records and returns them.
func (c *Collection[T]) Save(ctx context.Context, records []T) ([]T, error) {
	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()
	return c.save(ctx, records)
}

// Update runs fn over the current records while holding the collection lock and
// persists what it returns. Nothing is written when fn fails.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()

	records, err := c.load(ctx, []T{})
	if err != nil {
		return nil, err
	}
	next, err := fn(records)
	if err != nil {
		return nil, err
	}
	return c.save(ctx, next)
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	records, err := c.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, record := range records {
		if pred(record) {
			return record, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every record matching pred, in file order.
func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if pred(record) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (c *Collection[T]) load(ctx context.Context, def []T) ([]T, error) {
	if def == nil {
		def = []T{}
	}
	var records []T
	if err := c.store.readJSON(ctx, c.name, &records, def); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) ([]T, error) {
	if records == nil {
		records = []T{}
	}
	if err := c.store.writeJSON(ctx, c.name, records); err != nil {
		return nil, err
	}
	return records, nil
}
