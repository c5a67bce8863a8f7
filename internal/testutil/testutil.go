package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haeun/braintalk/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, using the same bootstrap path as production.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}
