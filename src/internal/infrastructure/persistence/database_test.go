package persistence_test

import (
	"testing"

	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	db, err := persistence.Open(persistence.Options{Driver: persistence.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.Close(db) })

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := persistence.Open(persistence.Options{Driver: "oracle"})

	assert.ErrorContains(t, err, "unsupported database driver")
}
