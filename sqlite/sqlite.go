// Package sqlite provides a ple.Store backed by a SQLite database.
//
// Operators live in a single table with a kind column; parameter edges
// live in an ordered join table. One store instance keeps the
// operators it has loaded or created, so handles are identity-stable:
// loading an operator shared by several parents yields one node
// referenced by all of them, preserving the DAG shape it was saved
// with.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gople/ple"
)

const createSchema = `
CREATE TABLE IF NOT EXISTS ple_operator (
	id             TEXT PRIMARY KEY,
	kind           TEXT NOT NULL,
	name           TEXT,
	pattern        TEXT,
	case_sensitive INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_ple_operator_name ON ple_operator(name);

CREATE TABLE IF NOT EXISTS ple_parameter (
	parent_id TEXT NOT NULL REFERENCES ple_operator(id),
	child_id  TEXT NOT NULL REFERENCES ple_operator(id),
	position  INTEGER NOT NULL,
	PRIMARY KEY (parent_id, position)
);
`

const dropSchema = `
DROP TABLE IF EXISTS ple_parameter;
DROP TABLE IF EXISTS ple_operator;
`

// Store is a ple.Store persisting operators to SQLite.
// It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	ops map[string]*ple.Operator
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open opens (creating if necessary) the SQLite database at path.
// The database is opened in WAL mode with a busy timeout, so several
// connections can read while one writes.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}

	s := &Store{
		db:     db,
		path:   path,
		logger: slog.Default(),
		ops:    make(map[string]*ple.Operator),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables creates the operator and parameter tables if they do
// not exist.
func (s *Store) CreateTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	s.logger.Debug("created tables")
	return nil
}

// DropTables removes the operator and parameter tables and forgets all
// loaded handles.
func (s *Store) DropTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, dropSchema); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}
	s.mu.Lock()
	s.ops = make(map[string]*ple.Operator)
	s.mu.Unlock()
	s.logger.Debug("dropped tables")
	return nil
}

// Create inserts op, assigning a fresh ID if it has none, and retains
// the handle.
func (s *Store) Create(ctx context.Context, op *ple.Operator) error {
	if op == nil {
		return fmt.Errorf("attempt to create nil operator")
	}
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ple_operator (id, kind, name, pattern, case_sensitive) VALUES (?, ?, ?, ?, ?)`,
		op.ID, string(op.Kind), nullable(op.Name), nullable(op.Pattern), op.CaseSensitive)
	if err != nil {
		return fmt.Errorf("inserting %s operator: %w", op.Kind, err)
	}
	s.retain(op)
	return nil
}

// AppendChild records the parent/child edge at the next position in
// the parent's parameter list. A child the store has never seen is
// created first.
func (s *Store) AppendChild(ctx context.Context, parent, child *ple.Operator) error {
	if parent == nil || child == nil {
		return fmt.Errorf("attempt to append with nil operator")
	}
	if s.cached(parent.ID) == nil {
		return fmt.Errorf("parent %s operator is not stored here", parent.Kind)
	}
	if child.ID == "" || s.cached(child.ID) == nil {
		if err := s.Create(ctx, child); err != nil {
			return err
		}
	}
	return s.appendEdge(ctx, parent.ID, child.ID)
}

func (s *Store) appendEdge(ctx context.Context, parentID, childID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var pos int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM ple_parameter WHERE parent_id = ?`,
		parentID).Scan(&pos)
	if err != nil {
		return fmt.Errorf("finding next parameter position: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ple_parameter (parent_id, child_id, position) VALUES (?, ?, ?)`,
		parentID, childID, pos)
	if err != nil {
		return fmt.Errorf("inserting parameter edge: %w", err)
	}
	return tx.Commit()
}

// SaveTree persists a transient tree built without a store: every
// operator not yet known here is created, and the parameter edges of
// those new operators are recorded. Operators the store already knows
// are left untouched, so a saved subtree can be grafted into a new
// parent without duplicating edges.
func (s *Store) SaveTree(ctx context.Context, root *ple.Operator) error {
	created := make(map[string]bool)
	err := ple.Walk(root, func(o *ple.Operator) error {
		if o.ID != "" && s.cached(o.ID) != nil {
			return nil
		}
		if created[o.ID] && o.ID != "" {
			return nil
		}
		if err := s.Create(ctx, o); err != nil {
			return err
		}
		created[o.ID] = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving tree: %w", err)
	}

	return ple.Walk(root, func(o *ple.Operator) error {
		if !created[o.ID] {
			return nil
		}
		delete(created, o.ID)
		for _, p := range o.Parameters() {
			if err := s.appendEdge(ctx, o.ID, p.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ByName returns every operator labeled name, each with its full
// parameter subtree loaded.
func (s *Store) ByName(ctx context.Context, name string) ([]*ple.Operator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM ple_operator WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("querying operators named %q: %w", name, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning operator id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying operators named %q: %w", name, err)
	}

	found := make([]*ple.Operator, 0, len(ids))
	for _, id := range ids {
		op, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		found = append(found, op)
	}
	return found, nil
}

// Get returns the operator with the given ID, loading it and its
// parameter subtree on first access. Subsequent calls for the same ID
// return the same handle.
func (s *Store) Get(ctx context.Context, id string) (*ple.Operator, error) {
	if op := s.cached(id); op != nil {
		return op, nil
	}
	return s.load(ctx, id)
}

func (s *Store) load(ctx context.Context, id string) (*ple.Operator, error) {
	var (
		kindStr       string
		name, pattern sql.NullString
		caseSensitive bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, name, pattern, case_sensitive FROM ple_operator WHERE id = ?`,
		id).Scan(&kindStr, &name, &pattern, &caseSensitive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %s", ple.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading operator %s: %w", id, err)
	}

	kind, err := ple.ParseKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("loading operator %s: %w", id, err)
	}

	var opts []ple.OperatorOption
	if name.Valid {
		opts = append(opts, ple.Name(name.String))
	}
	if pattern.Valid {
		opts = append(opts, ple.Pattern(pattern.String))
	}
	if caseSensitive {
		opts = append(opts, ple.CaseSensitive())
	}
	op := ple.NewOperator(kind, opts...)
	op.ID = id

	// Retained before the parameters load so a shared child resolves
	// to this handle instead of loading again.
	s.retain(op)

	rows, err := s.db.QueryContext(ctx,
		`SELECT child_id FROM ple_parameter WHERE parent_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading parameters of %s: %w", id, err)
	}
	defer rows.Close()

	var childIDs []string
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, fmt.Errorf("scanning parameter of %s: %w", id, err)
		}
		childIDs = append(childIDs, cid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading parameters of %s: %w", id, err)
	}

	for _, cid := range childIDs {
		child, err := s.Get(ctx, cid)
		if err != nil {
			return nil, err
		}
		if err := op.AddParameter(child); err != nil {
			return nil, fmt.Errorf("attaching parameter %s to %s: %w", cid, id, err)
		}
	}
	return op, nil
}

func (s *Store) cached(id string) *ple.Operator {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops[id]
}

func (s *Store) retain(op *ple.Operator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op.ID] = op
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
