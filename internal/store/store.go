package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
)

type family string

const (
	familyMaterials   family = "materials"
	familyFlashcards  family = "flashcards"
	familyQuizzes     family = "quizzes"
	familyQuizResults family = "quizResults"
	familyOverviews   family = "overviews"
	familyConceptMaps family = "conceptMaps"
	familyLocations   family = "locations"
	familyKeyTerms    family = "keyTerms"
	familyTasks       family = "tasks"
	familyStats       family = "stats"
	familySettings    family = "settings"
)

// Hooks receive best-effort notifications after successful writes. They run
// on their own goroutine and can never affect the write that triggered them.
type Hooks interface {
	TasksChanged(ctx context.Context, tasks []domain.Task)
	StatsChanged(ctx context.Context, stats domain.UserStats)
}

const hookTimeout = 15 * time.Second

// Store is the single owner of durable application state. Each entity
// family is one JSON document; writes are read-modify-write under a
// per-family mutex so concurrent writers never lose updates.
type Store struct {
	backend   Backend
	namespace string
	log       *logger.Logger

	mu    sync.Mutex
	locks map[family]*sync.Mutex

	hooks Hooks

	// hook deliveries run one at a time in commit order
	hookMu   sync.Mutex
	queue    []func()
	draining bool
	wg       sync.WaitGroup
}

func New(backend Backend, namespace string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		backend:   backend,
		namespace: namespace,
		log:       log.With("component", "Store", "backend", backend.Name()),
		locks:     map[family]*sync.Mutex{},
	}
}

// SetHooks installs the side-effect receiver. Pass nil to disable.
func (s *Store) SetHooks(h Hooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

// WaitHooks blocks until every in-flight hook call has returned
func (s *Store) WaitHooks() {
	s.wg.Wait()
}

func (s *Store) Close() error {
	s.wg.Wait()
	return s.backend.Close()
}

func (s *Store) key(f family) string {
	return s.namespace + ":" + string(f)
}

func (s *Store) lock(f family) func() {
	s.mu.Lock()
	m, ok := s.locks[f]
	if !ok {
		m = &sync.Mutex{}
		s.locks[f] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func (s *Store) currentHooks() Hooks {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hooks
}

// fire queues fn for delivery off the caller's goroutine. Deliveries are
// drained by a single goroutine so hooks observe snapshots in the order the
// writes committed. Panics are swallowed.
func (s *Store) fire(name string, fn func(ctx context.Context, h Hooks)) {
	h := s.currentHooks()
	if h == nil {
		return
	}
	job := func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Warn("[Store.fire] hook panicked", "hook", name, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()
		fn(ctx, h)
	}

	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.queue = append(s.queue, job)
	if !s.draining {
		s.draining = true
		s.wg.Add(1)
		go s.drain()
	}
}

func (s *Store) drain() {
	defer s.wg.Done()
	for {
		s.hookMu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.hookMu.Unlock()
			return
		}
		job := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.hookMu.Unlock()

		job()
	}
}

// read returns the decoded family or empty() when it is absent, unreadable
// or corrupt
func read[T any](ctx context.Context, s *Store, f family, empty func() T) T {
	raw, ok, err := s.backend.Get(ctx, s.key(f))
	if err != nil {
		s.log.Warn("[Store.read] backend read failed, using default", "family", f, "error", err)
		return empty()
	}
	if !ok {
		return empty()
	}
	v := empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("[Store.read] corrupt data, using default", "family", f, "error", err)
		return empty()
	}
	return v
}

// mutate performs one read-modify-write of a family while holding its lock.
// Corrupt data is replaced by empty(); a backend read failure aborts so an
// outage never overwrites stored data with an empty collection.
func mutate[T any](ctx context.Context, s *Store, f family, empty func() T, fn func(T) (T, error)) (T, error) {
	return mutateNotify(ctx, s, f, empty, fn, nil)
}

// mutateNotify is mutate with a callback run after the write commits but
// before the family lock is released.
//
// A family whose new value encodes the same as empty() is removed from the
// backend; reads of an absent family already return empty().
func mutateNotify[T any](ctx context.Context, s *Store, f family, empty func() T, fn func(T) (T, error), committed func(T)) (T, error) {
	unlock := s.lock(f)
	defer unlock()

	var zero T
	cur := empty()
	raw, ok, err := s.backend.Get(ctx, s.key(f))
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", f, err)
	}
	if ok {
		if err := json.Unmarshal(raw, &cur); err != nil {
			s.log.Warn("[Store.mutate] corrupt data reset to default", "family", f, "error", err)
			cur = empty()
		}
	}

	next, err := fn(cur)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", f, err)
	}
	if def, err := json.Marshal(empty()); err == nil && bytes.Equal(data, def) {
		if err := s.backend.Delete(ctx, s.key(f)); err != nil {
			return zero, fmt.Errorf("failed to clear %s: %w", f, err)
		}
	} else if err := s.backend.Set(ctx, s.key(f), data); err != nil {
		return zero, fmt.Errorf("failed to write %s: %w", f, err)
	}
	if committed != nil {
		committed(next)
	}
	return next, nil
}

func newMap[V any]() map[string]V { return map[string]V{} }

func readEntry[V any](ctx context.Context, s *Store, f family, materialID string) (V, bool) {
	m := read(ctx, s, f, newMap[V])
	v, ok := m[materialID]
	return v, ok
}

func writeEntry[V any](ctx context.Context, s *Store, f family, materialID string, v V) error {
	_, err := mutate(ctx, s, f, newMap[V], func(m map[string]V) (map[string]V, error) {
		if m == nil {
			m = newMap[V]()
		}
		m[materialID] = v
		return m, nil
	})
	return err
}

func deleteEntry[V any](ctx context.Context, s *Store, f family, materialID string) error {
	_, err := mutate(ctx, s, f, newMap[V], func(m map[string]V) (map[string]V, error) {
		delete(m, materialID)
		return m, nil
	})
	return err
}
