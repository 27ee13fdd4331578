// Package resolver looks up related resources for relationship validation.
//
// A Store memoizes lookups per identifier until Reset, so a document that
// names the same related resource many times costs one lookup. Its Exists
// and Acceptable methods plug into jsonapiv.Exists and jsonapiv.Acceptable.
package resolver

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/reoring/jsonapiv"
)

// DefaultMaxGoroutines bounds Warm when no limit is configured.
const DefaultMaxGoroutines = 8

// LookupFunc fetches the record for id within one resource type. found is
// false when the record does not exist.
type LookupFunc func(ctx context.Context, id string) (record any, found bool, err error)

// Acceptor decides whether an existing record may be referenced.
type Acceptor func(ctx context.Context, id jsonapiv.Identifier, record any) (bool, error)

// Option configures a Store.
type Option func(*Store)

// WithLookup registers the lookup for resource type typ.
func WithLookup(typ string, fn LookupFunc) Option {
	return func(s *Store) { s.lookups[typ] = fn }
}

// WithAcceptor registers the acceptance check for resource type typ.
func WithAcceptor(typ string, fn Acceptor) Option {
	return func(s *Store) { s.acceptors[typ] = fn }
}

// WithMaxGoroutines bounds the concurrency of Warm.
func WithMaxGoroutines(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxGoroutines = n
		}
	}
}

// Store is an identity map of resolved records. It is safe for concurrent
// use.
type Store struct {
	lookups       map[string]LookupFunc
	acceptors     map[string]Acceptor
	maxGoroutines int

	mu      sync.Mutex
	entries map[jsonapiv.Identifier]*entry
}

type entry struct {
	once   sync.Once
	record any
	found  bool
	err    error
}

func New(opts ...Option) *Store {
	s := &Store{
		lookups:       map[string]LookupFunc{},
		acceptors:     map[string]Acceptor{},
		maxGoroutines: DefaultMaxGoroutines,
		entries:       map[jsonapiv.Identifier]*entry{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Resolve returns the record for id, calling the type's lookup at most once
// per cycle. Types without a lookup resolve as not found.
func (s *Store) Resolve(ctx context.Context, id jsonapiv.Identifier) (any, bool, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		fn, ok := s.lookups[id.Type]
		if !ok {
			return
		}
		e.record, e.found, e.err = fn(ctx, id.ID)
		if e.err != nil {
			e.err = errors.Wrapf(e.err, "resolver: lookup %s", id)
		}
	})
	return e.record, e.found, e.err
}

// Exists reports whether id resolves to a record.
func (s *Store) Exists(ctx context.Context, id jsonapiv.Identifier) (bool, error) {
	_, found, err := s.Resolve(ctx, id)
	return found, err
}

// Acceptable runs the type's Acceptor against the resolved record. Types
// without an Acceptor accept every existing record.
func (s *Store) Acceptable(ctx context.Context, id jsonapiv.Identifier) (bool, error) {
	rec, found, err := s.Resolve(ctx, id)
	if err != nil || !found {
		return false, err
	}
	acc, ok := s.acceptors[id.Type]
	if !ok {
		return true, nil
	}
	return acc(ctx, id, rec)
}

// Warm resolves ids concurrently so later predicate calls hit the cache.
// It returns the lookup errors, combined.
func (s *Store) Warm(ctx context.Context, ids []jsonapiv.Identifier) error {
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.maxGoroutines)
	for _, id := range ids {
		id := id
		p.Go(func(ctx context.Context) error {
			_, _, err := s.Resolve(ctx, id)
			return err
		})
	}
	return p.Wait()
}

// Reset forgets every resolved record, starting a new cycle.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = map[jsonapiv.Identifier]*entry{}
	s.mu.Unlock()
}

// Len returns the number of identifiers seen in the current cycle.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Related collects the identifiers linked from a resource object's
// relationships, in document order. It is meant for feeding Warm.
func Related(resource jsonapiv.Value) []jsonapiv.Identifier {
	rels, ok := resource.Get("relationships")
	if !ok {
		return nil
	}
	obj, ok := rels.AsObject()
	if !ok {
		return nil
	}
	var out []jsonapiv.Identifier
	for _, name := range obj.Keys() {
		rel, _ := obj.Get(name)
		if data, ok := rel.Get("data"); ok {
			out = append(out, Linkage(data)...)
		}
	}
	return out
}

// Linkage collects the well-formed identifiers of a resource linkage (null,
// one identifier or an array of them). Malformed entries are skipped.
func Linkage(data jsonapiv.Value) []jsonapiv.Identifier {
	var out []jsonapiv.Identifier
	items, ok := data.AsArray()
	if !ok {
		items = []jsonapiv.Value{data}
	}
	for _, it := range items {
		typ, okT := stringMember(it, "type")
		id, okI := stringMember(it, "id")
		if okT && okI {
			out = append(out, jsonapiv.Identifier{Type: typ, ID: id})
		}
	}
	return out
}

func stringMember(v jsonapiv.Value, key string) (string, bool) {
	m, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return m.AsString()
}
