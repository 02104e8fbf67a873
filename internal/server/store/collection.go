package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/storage"
)

// Collection is a typed view over one collection of a Store.
type Collection[T any] struct {
	s    *Store
	name string
	id   func(*T) *domain.ID
}

func newCollection[T any](s *Store, name string, id func(*T) *domain.ID) *Collection[T] {
	s.names = append(s.names, name)
	return &Collection[T]{s: s, name: name, id: id}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List returns every record in id order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	var decodeErr error
	err := c.s.kv.Scan(ctx, recordPrefix(c.name), func(key, value []byte) bool {
		var v T
		if err := json.Unmarshal(value, &v); err != nil {
			decodeErr = fmt.Errorf("decode %s: %w", key, err)
			return false
		}
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

// Get returns the record with id.
func (c *Collection[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	var v T
	n, ok := parseID(id)
	if !ok {
		return v, ErrNotFound
	}
	return c.get(ctx, n)
}

func (c *Collection[T]) get(ctx context.Context, n int64) (T, error) {
	var v T
	data, err := c.s.kv.Get(ctx, recordKey(c.name, n))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s/%d: %w", c.name, n, err)
	}
	return v, nil
}

// Create stores v under a newly allocated id and returns it with the id set.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	n, err := c.s.nextID(ctx, c.name)
	if err != nil {
		return v, err
	}
	*c.id(&v) = domain.ID(strconv.FormatInt(n, 10))
	if err := c.put(ctx, n, v); err != nil {
		return v, err
	}
	return v, nil
}

// Update applies fn to the record with id and stores the result. fn runs
// under the store lock and must not call back into the store. The id
// field is restored after fn returns.
func (c *Collection[T]) Update(ctx context.Context, id domain.ID, fn func(*T) error) (T, error) {
	var zero T
	n, ok := parseID(id)
	if !ok {
		return zero, ErrNotFound
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	v, err := c.get(ctx, n)
	if err != nil {
		return zero, err
	}
	if err := fn(&v); err != nil {
		return zero, err
	}
	*c.id(&v) = id
	if err := c.put(ctx, n, v); err != nil {
		return zero, err
	}
	return v, nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id domain.ID) error {
	n, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, err := c.s.kv.Get(ctx, recordKey(c.name, n)); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return c.s.kv.Delete(ctx, recordKey(c.name, n))
}

// Empty reports whether the collection holds no records.
func (c *Collection[T]) Empty(ctx context.Context) (bool, error) {
	empty := true
	err := c.s.kv.Scan(ctx, recordPrefix(c.name), func(_, _ []byte) bool {
		empty = false
		return false
	})
	return empty, err
}

func (c *Collection[T]) put(ctx context.Context, n int64, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%d: %w", c.name, n, err)
	}
	return c.s.kv.Set(ctx, recordKey(c.name, n), data)
}
