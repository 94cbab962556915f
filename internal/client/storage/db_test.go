package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// metadata table must exist after migration
	_, err = db.Exec(`INSERT INTO metadata (key, value) VALUES ('token', X'01')`)
	require.NoError(t, err)
}

func TestInitDatabase_IdempotentOnReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db2, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db2.Close())
}
