package ple

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// A Store owns operator identity and persistence. The engine makes no
// assumption about the storage technology behind it; it requires only
// identity-stable handles: for the lifetime of a store instance, every
// lookup of the same ID must return the same *Operator.
//
// Stores are not required to validate tree structure beyond what the
// operator model itself enforces.
type Store interface {
	// Create assigns op an ID if it has none and records it.
	Create(ctx context.Context, op *Operator) error

	// AppendChild records the parent/child edge. The in-memory edge is
	// the caller's responsibility (Operator.AddParameter); stores
	// persist it. A child unknown to the store is created first.
	AppendChild(ctx context.Context, parent, child *Operator) error

	// ByName returns every operator labeled name, in no particular
	// order. An empty result is not an error.
	ByName(ctx context.Context, name string) ([]*Operator, error)

	// Get returns the operator with the given ID, or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, id string) (*Operator, error)
}

// MemoryStore is a Store backed by a process-local map. Operator
// handles are the live tree nodes themselves, so AppendChild only has
// to make sure the child is registered.
//
// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu  sync.RWMutex
	ops map[string]*Operator
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ops: make(map[string]*Operator),
	}
}

// Create registers op, assigning a fresh ID if it has none.
func (s *MemoryStore) Create(_ context.Context, op *Operator) error {
	if op == nil {
		return fmt.Errorf("attempt to create nil operator")
	}
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op.ID] = op
	return nil
}

// AppendChild registers the child if the store has not seen it before.
// The edge itself lives in the parent's parameter list.
func (s *MemoryStore) AppendChild(ctx context.Context, parent, child *Operator) error {
	if parent == nil || child == nil {
		return fmt.Errorf("attempt to append with nil operator")
	}
	s.mu.RLock()
	_, known := s.ops[child.ID]
	s.mu.RUnlock()
	if child.ID != "" && known {
		return nil
	}
	return s.Create(ctx, child)
}

// ByName returns every registered operator labeled name.
func (s *MemoryStore) ByName(_ context.Context, name string) ([]*Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found []*Operator
	for _, op := range s.ops {
		if op.Name != "" && op.Name == name {
			found = append(found, op)
		}
	}
	return found, nil
}

// Get returns the operator with the given ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.ops[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return op, nil
}

// Len returns the number of registered operators.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ops)
}
