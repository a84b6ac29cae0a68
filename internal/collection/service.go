// Package collection exposes a record store over HTTP: listing through the
// filter/pagination view, form-driven create and edit, delete and reload.
// Domain packages embed it and add their own actions.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

// Service binds one store to the schema its forms validate against.
type Service[T record.Record] struct {
	store  *record.Store[T]
	schema form.Schema[T]
}

// NewService constructs a collection service.
func NewService[T record.Record](store *record.Store[T], schema form.Schema[T]) *Service[T] {
	return &Service[T]{store: store, schema: schema}
}

// Store returns the underlying store for domain actions.
func (s *Service[T]) Store() *record.Store[T] {
	return s.store
}

// Ensure fills the store from its loader on first use.
func (s *Service[T]) Ensure(ctx context.Context) error {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		return fmt.Errorf("collection %s: %w", s.store.Name(), err)
	}
	return nil
}

// Reload replaces the store contents from the loader.
func (s *Service[T]) Reload(ctx context.Context) (int, error) {
	if err := s.store.Load(ctx); err != nil {
		return 0, fmt.Errorf("collection %s: %w", s.store.Name(), err)
	}
	return s.store.Len(), nil
}

// Query returns one page of the records matching f.
func (s *Service[T]) Query(ctx context.Context, f record.Filter, window shared.PageWindow) (record.Page[T], error) {
	if err := s.Ensure(ctx); err != nil {
		return record.Page[T]{}, err
	}
	return s.store.Query(f, window), nil
}

// Get returns one record.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	if err := s.Ensure(ctx); err != nil {
		var zero T
		return zero, err
	}
	return s.store.Get(id)
}

// Create opens a create-mode form, applies fields and commits.
func (s *Service[T]) Create(ctx context.Context, fields map[string]json.RawMessage) (T, error) {
	var zero T
	if err := s.Ensure(ctx); err != nil {
		return zero, err
	}
	ctrl := form.NewController[T](s.store, s.schema)
	ctrl.Open(nil)
	if err := ctrl.SetFields(fields); err != nil {
		return zero, err
	}
	return ctrl.Commit(ctx)
}

// Edit opens an edit-mode form seeded from the stored record, applies fields
// and commits.
func (s *Service[T]) Edit(ctx context.Context, id string, fields map[string]json.RawMessage) (T, error) {
	var zero T
	existing, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	ctrl := form.NewController[T](s.store, s.schema)
	ctrl.Open(&existing)
	if err := ctrl.SetFields(fields); err != nil {
		return zero, err
	}
	return ctrl.Commit(ctx)
}

// Delete removes a record.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.Ensure(ctx); err != nil {
		return err
	}
	return s.store.Remove(id)
}

// SetView merges patch into the stored criteria and optionally moves the
// stored page, then returns the resulting view.
func (s *Service[T]) SetView(ctx context.Context, patch record.FilterPatch, page *int) (record.Page[T], error) {
	if err := s.Ensure(ctx); err != nil {
		return record.Page[T]{}, err
	}
	s.store.SetFilter(patch)
	if page != nil {
		s.store.SetPage(*page)
	}
	return s.store.CurrentPage(), nil
}

// View returns the page selected by the stored criteria and window.
func (s *Service[T]) View(ctx context.Context) (record.Page[T], error) {
	if err := s.Ensure(ctx); err != nil {
		return record.Page[T]{}, err
	}
	return s.store.CurrentPage(), nil
}

// Transition applies a direct store action to one record. A refused action
// leaves the store and its subscribers untouched.
func (s *Service[T]) Transition(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var zero T
	if err := s.Ensure(ctx); err != nil {
		return zero, err
	}
	return s.store.Modify(id, fn)
}
