package sqlite

import "context"

// Test hooks; compiled only with the tests.

// InsertEdgeForTest writes a raw parameter edge, bypassing the
// structural checks the public API performs.
func (s *Store) InsertEdgeForTest(ctx context.Context, parentID, childID string) error {
	return s.appendEdge(ctx, parentID, childID)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
