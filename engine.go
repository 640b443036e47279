package ple

import (
	"context"
	"fmt"
	"log/slog"
)

// An Engine owns a PatternCache and, optionally, a Store. It offers
// convenience construction of operators (pre-warming the cache for
// Regex kinds), persistence of the parameter edges it creates, name
// lookup, and evaluation against its cache.
//
// Engines hold no other state; a program normally creates one and
// shares it. Evaluation through a shared engine is safe for concurrent
// use; building a single tree from multiple goroutines is not.
type Engine struct {
	cache  *PatternCache
	store  Store
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStore attaches a Store. Operators built through the engine are
// persisted to it, and name lookups are served from it.
func WithStore(s Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

// WithCache replaces the engine's pattern cache, for example to attach
// one carrying Prometheus metrics.
func WithCache(c *PatternCache) EngineOption {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets the engine's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine initializes an engine with an empty pattern cache and no
// store.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cache:  NewPatternCache(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cache returns the engine's pattern cache.
func (e *Engine) Cache() *PatternCache {
	return e.cache
}

// Store returns the engine's store, or nil if none is attached.
func (e *Engine) Store() Store {
	return e.store
}

// NewOperator constructs an operator of the given kind, persists it if
// the engine has a store, and pre-warms the pattern cache for Regex
// kinds. An invalid pattern fails here, at construction, rather than
// at first evaluation.
func (e *Engine) NewOperator(ctx context.Context, kind Kind, opts ...OperatorOption) (*Operator, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown operator kind %q", kind)
	}
	op := NewOperator(kind, opts...)
	if op.Pattern != "" && op.Kind != Regex {
		return nil, fmt.Errorf("pattern is only valid for %s operators, not %s", Regex, op.Kind)
	}

	if op.Kind == Regex {
		if _, err := e.cache.Matcher(op.Pattern, op.CaseSensitive); err != nil {
			return nil, err
		}
		e.logger.Debug("cached pattern", "pattern", op.Pattern, "case_sensitive", op.CaseSensitive)
	}

	if e.store != nil {
		if err := e.store.Create(ctx, op); err != nil {
			return nil, fmt.Errorf("creating %s operator: %w", kind, err)
		}
	}
	return op, nil
}

// AddParameter appends child to parent and, if the engine has a store,
// persists the edge.
func (e *Engine) AddParameter(ctx context.Context, parent, child *Operator) error {
	if parent == nil {
		return fmt.Errorf("attempt to add parameter to nil operator")
	}
	if err := parent.AddParameter(child); err != nil {
		return err
	}
	if e.store != nil {
		if err := e.store.AppendChild(ctx, parent, child); err != nil {
			return fmt.Errorf("appending parameter to %s: %w", parent.Kind, err)
		}
	}
	return nil
}

// Evaluate evaluates op against data using the engine's pattern cache.
func (e *Engine) Evaluate(op *Operator, data any) (bool, error) {
	return Eval(op, data, e.cache)
}

// OperatorNamed returns the single operator labeled name. Names are
// not unique in the data model; this lookup enforces uniqueness,
// failing with ErrNotFound when no operator matches and
// ErrAmbiguousName when more than one does.
func (e *Engine) OperatorNamed(ctx context.Context, name string) (*Operator, error) {
	if e.store == nil {
		return nil, fmt.Errorf("operator lookup by name requires a store")
	}
	found, err := e.store.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", name, err)
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: name %q", ErrNotFound, name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %d operators named %q", ErrAmbiguousName, len(found), name)
	}
}

// CompoundRegexRule builds an operator of the given kind with one
// Regex parameter per pattern, in order. It is a pure construction
// helper: the result is a rule like "OR of these five patterns", ready
// to evaluate.
func (e *Engine) CompoundRegexRule(ctx context.Context, kind Kind, patterns []string, name string) (*Operator, error) {
	var opts []OperatorOption
	if name != "" {
		opts = append(opts, Name(name))
	}
	root, err := e.NewOperator(ctx, kind, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range patterns {
		child, err := e.NewOperator(ctx, Regex, Pattern(p))
		if err != nil {
			return nil, err
		}
		if err := e.AddParameter(ctx, root, child); err != nil {
			return nil, err
		}
	}
	return root, nil
}
