// Package resource implements the generic collection store: a client-side
// mirror of one backend REST collection with create/update/delete operations
// that reconcile local state only after the backend confirms the write.
//
// One store instance is a single writer over its collection; the mutex exists
// because page handlers share store instances across requests, not because
// the collection has competing writers.
package resource

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// Backend is the slice of the REST client a store needs for one collection.
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id int, rec T) (T, error)
	Delete(ctx context.Context, id int) error
}

// Schema names a collection and its identifying attribute explicitly. The
// identifier is declared, never inferred from record keys, so records with
// zero or several "ID"-looking attributes stay unambiguous.
type Schema struct {
	Resource string
	IDField  string
}

// messageTTL is how long a success message stays visible before self-clearing.
const messageTTL = 3 * time.Second

// Store mirrors one backend collection.
type Store[T any] struct {
	backend Backend[T]
	schema  Schema
	idOf    func(T) int
	log     zerolog.Logger

	clearAfter time.Duration

	mu       sync.Mutex
	items    []T
	loaded   bool
	loading  bool
	mutating bool
	errMsg   string
	success  string
	msgGen   uint64
}

// Option tunes store construction.
type Option[T any] func(*Store[T])

// WithMessageTTL overrides the success-message lifetime (tests shorten it).
func WithMessageTTL[T any](d time.Duration) Option[T] {
	return func(s *Store[T]) { s.clearAfter = d }
}

// NewStore builds a store over one collection. idOf must read the attribute
// named by schema.IDField from a record.
func NewStore[T any](b Backend[T], schema Schema, idOf func(T) int, log zerolog.Logger, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		backend:    b,
		schema:     schema,
		idOf:       idOf,
		log:        log.With().Str("resource", schema.Resource).Logger(),
		clearAfter: messageTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[T]) Schema() Schema { return s.schema }

// Load replaces the local collection with the backend's. On failure the
// collection is emptied and the error message set; there is no stale cache.
func (s *Store[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.loaded = true
	if err != nil {
		s.items = nil
		s.errMsg = domain.ErrorMessage(err, "Failed to fetch data")
		s.log.Warn().Err(err).Msg("collection load failed")
		return err
	}
	s.items = items
	s.errMsg = ""
	return nil
}

// Create posts a record. On success the server's echo (carrying the assigned
// id) is appended at the end of the collection, never resorted.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	s.setMutating(true)
	created, err := s.backend.Create(ctx, rec)
	s.setMutating(false)
	if err != nil {
		s.setError(domain.ErrorMessage(err, "Failed to create"))
		return created, err
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	s.setSuccess("Item created successfully!")
	s.log.Info().Int("id", s.idOf(created)).Msg("record created")
	return created, nil
}

// Update puts a full record replacement. On success the element whose id
// matches is swapped for the server's echo, position unchanged.
func (s *Store[T]) Update(ctx context.Context, id int, rec T) (T, error) {
	s.setMutating(true)
	updated, err := s.backend.Update(ctx, id, rec)
	s.setMutating(false)
	if err != nil {
		s.setError(domain.ErrorMessage(err, "Failed to update"))
		return updated, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.setSuccess("Item updated successfully!")
	return updated, nil
}

// Delete removes a record. On success the matching element leaves the
// collection.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	s.setMutating(true)
	err := s.backend.Delete(ctx, id)
	s.setMutating(false)
	if err != nil {
		s.setError(domain.ErrorMessage(err, "Failed to delete"))
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if s.idOf(it) != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.setSuccess("Item deleted successfully!")
	return nil
}

// Items returns a copy of the current collection.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the record whose identifying field equals id.
func (s *Store[T]) Find(id int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if s.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Store[T]) Mutating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutating
}

// Error returns the outstanding error message, empty when none. Errors
// persist until the next operation completes or ClearError is called.
func (s *Store[T]) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Success returns the outstanding success message, empty once it self-clears.
func (s *Store[T]) Success() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.success
}

func (s *Store[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *Store[T]) setMutating(v bool) {
	s.mu.Lock()
	s.mutating = v
	s.mu.Unlock()
}

func (s *Store[T]) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.success = ""
	s.msgGen++
	s.mu.Unlock()
}

// setSuccess arms a fresh self-clear timer per operation. The generation
// counter makes the latest arm win: an earlier timer firing late cannot clear
// a newer message.
func (s *Store[T]) setSuccess(msg string) {
	s.mu.Lock()
	s.success = msg
	s.errMsg = ""
	s.msgGen++
	gen := s.msgGen
	s.mu.Unlock()

	time.AfterFunc(s.clearAfter, func() {
		s.mu.Lock()
		if s.msgGen == gen {
			s.success = ""
		}
		s.mu.Unlock()
	})
}
