package record

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cfohub/cfohub/internal/shared"
)

// Loader fetches the full record list for a store, typically from the
// fixture provider.
type Loader[T Record] func(ctx context.Context) ([]T, error)

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventLoaded   EventKind = "loaded"
	EventAdded    EventKind = "added"
	EventUpdated  EventKind = "updated"
	EventRemoved  EventKind = "removed"
	EventFiltered EventKind = "filtered"
	EventReplaced EventKind = "replaced"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Store string
	Kind  EventKind
	ID    string
	Len   int
}

// Options configures a Store.
type Options[T Record] struct {
	// Name identifies the store in events, metrics and snapshots.
	Name   string
	Loader Loader[T]
	// NewID generates an id for records added without one. Defaults to UUID.
	NewID func(items []T) string
	// SetID writes a generated id into a record.
	SetID func(T, string) T
	// ExtraMatch evaluates domain-specific criteria from Filter.Extra.
	ExtraMatch func(T, map[string]string) bool
	PerPage    int
	// Prepend makes Add insert new records first instead of last.
	Prepend bool
}

// Store owns the canonical list of records for one domain. Reads return
// copies of the slice; mutations go through Add, Update, Remove, Load and
// Replace only.
type Store[T Record] struct {
	opts Options[T]

	// loadMu serialises loader runs so a slow first load cannot overwrite
	// records added after a concurrent one finished.
	loadMu sync.Mutex

	mu     sync.RWMutex
	items  []T
	loaded bool
	filter Filter
	window shared.PageWindow

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// NewStore constructs an empty store.
func NewStore[T Record](opts Options[T]) *Store[T] {
	if opts.NewID == nil {
		opts.NewID = UUID[T]
	}
	if opts.PerPage <= 0 {
		opts.PerPage = shared.DefaultPerPage
	}
	return &Store[T]{
		opts:   opts,
		filter: DefaultFilter(),
		window: shared.PageWindow{Page: 1, PerPage: opts.PerPage},
		subs:   make(map[int]func(Event)),
	}
}

// Name returns the store name.
func (s *Store[T]) Name() string {
	return s.opts.Name
}

// Load replaces the record list with the loader's result. On loader failure
// the previous list is kept and the error is returned.
func (s *Store[T]) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx)
}

// EnsureLoaded runs Load once. Concurrent callers wait for the first run and
// do not call the loader again. A store emptied by removals stays empty.
func (s *Store[T]) EnsureLoaded(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.Loaded() {
		return nil
	}
	return s.load(ctx)
}

func (s *Store[T]) load(ctx context.Context) error {
	if s.opts.Loader == nil {
		return fmt.Errorf("record %s: no loader configured", s.opts.Name)
	}
	items, err := s.opts.Loader(ctx)
	if err != nil {
		return fmt.Errorf("record %s: load: %w", s.opts.Name, err)
	}
	s.mu.Lock()
	s.items = dedupe(items)
	s.loaded = true
	n := len(s.items)
	s.mu.Unlock()
	s.publish(Event{Kind: EventLoaded, Len: n})
	return nil
}

// Loaded reports whether the store was filled by Load or Replace.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Add stores r, assigning an id when it has none. An id already present
// yields shared.ErrDuplicate.
func (s *Store[T]) Add(r T) (T, error) {
	s.mu.Lock()
	if r.RecordID() == "" {
		if s.opts.SetID == nil {
			s.mu.Unlock()
			var zero T
			return zero, fmt.Errorf("record %s: record has no id and store cannot assign one", s.opts.Name)
		}
		r = s.opts.SetID(r, s.opts.NewID(s.items))
	}
	if s.indexLocked(r.RecordID()) >= 0 {
		s.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("record %s %s: %w", s.opts.Name, r.RecordID(), shared.ErrDuplicate)
	}
	if s.opts.Prepend {
		s.items = slices.Insert(s.items, 0, r)
	} else {
		s.items = append(s.items, r)
	}
	n := len(s.items)
	s.mu.Unlock()
	s.publish(Event{Kind: EventAdded, ID: r.RecordID(), Len: n})
	return r, nil
}

// Update applies patch to the record with id and stores the result in place.
// The patch receives a copy and replaces nested values wholesale. A missing
// id yields shared.ErrNotFound.
func (s *Store[T]) Update(id string, patch func(T) T) (T, error) {
	return s.Modify(id, func(cur T) (T, error) { return patch(cur), nil })
}

// Modify is Update with a patch that may refuse the change. When fn returns
// an error the record is left untouched, no event is published and the
// error is returned as is.
func (s *Store[T]) Modify(id string, fn func(T) (T, error)) (T, error) {
	var zero T
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, fmt.Errorf("record %s %s: %w", s.opts.Name, id, shared.ErrNotFound)
	}
	updated, err := fn(s.items[idx])
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}
	if updated.RecordID() != id {
		s.mu.Unlock()
		return zero, fmt.Errorf("record %s %s: update must not change id", s.opts.Name, id)
	}
	s.items[idx] = updated
	n := len(s.items)
	s.mu.Unlock()
	s.publish(Event{Kind: EventUpdated, ID: id, Len: n})
	return updated, nil
}

// Remove deletes the record with id. A missing id yields shared.ErrNotFound.
func (s *Store[T]) Remove(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("record %s %s: %w", s.opts.Name, id, shared.ErrNotFound)
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	n := len(s.items)
	s.mu.Unlock()
	s.publish(Event{Kind: EventRemoved, ID: id, Len: n})
	return nil
}

// Replace swaps the full list, used when restoring a snapshot.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	s.items = dedupe(items)
	s.loaded = true
	n := len(s.items)
	s.mu.Unlock()
	s.publish(Event{Kind: EventReplaced, Len: n})
}

// Reset clears records and criteria.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.loaded = false
	s.filter = DefaultFilter()
	s.window.Page = 1
	s.mu.Unlock()
	s.publish(Event{Kind: EventReplaced})
}

// Get returns the record with id.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		var zero T
		return zero, fmt.Errorf("record %s %s: %w", s.opts.Name, id, shared.ErrNotFound)
	}
	return s.items[idx], nil
}

// All returns every record in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// SetFilter merges patch into the current criteria. When the criteria change
// the page window returns to page 1.
func (s *Store[T]) SetFilter(patch FilterPatch) Filter {
	s.mu.Lock()
	next := patch.Apply(s.filter)
	changed := !next.Equal(s.filter)
	s.filter = next
	if changed {
		s.window.Page = 1
	}
	s.mu.Unlock()
	if changed {
		s.publish(Event{Kind: EventFiltered})
	}
	return next
}

// Filter returns the current criteria.
func (s *Store[T]) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.clone()
}

// Filtered returns the records matching the current criteria in insertion order.
func (s *Store[T]) Filtered() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(s.filter)
}

// Select returns the records matching f without touching the stored criteria.
func (s *Store[T]) Select(f Filter) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(f.normalize())
}

// SetPage moves the stored window to page n, clamped on read.
func (s *Store[T]) SetPage(n int) {
	s.mu.Lock()
	s.window.Page = n
	s.mu.Unlock()
}

// CurrentPage returns the page of Filtered visible through the stored window.
func (s *Store[T]) CurrentPage() Page[T] {
	s.mu.RLock()
	f := s.filter.clone()
	items := s.selectLocked(f)
	window := s.window
	s.mu.RUnlock()
	return NewPage(items, window, f)
}

// Query filters and paginates with the given criteria and window.
func (s *Store[T]) Query(f Filter, window shared.PageWindow) Page[T] {
	if window.PerPage <= 0 {
		window.PerPage = s.opts.PerPage
	}
	return NewPage(s.Select(f), window, f.normalize())
}

// Subscribe registers fn for every subsequent Event and returns a function
// that removes it.
func (s *Store[T]) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store[T]) publish(ev Event) {
	ev.Store = s.opts.Name
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store[T]) selectLocked(f Filter) []T {
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if !f.Matches(it) {
			continue
		}
		if len(f.Extra) > 0 && s.opts.ExtraMatch != nil && !s.opts.ExtraMatch(it, f.Extra) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *Store[T]) indexLocked(id string) int {
	for i, it := range s.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first occurrence of each id.
func dedupe[T Record](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.RecordID()]; ok {
			continue
		}
		seen[it.RecordID()] = struct{}{}
		out = append(out, it)
	}
	return out
}
