package database

import (
	"path/filepath"
	"testing"
	"time"

	"flight_panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	db, err := New(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)

	// Verify database was created
	assert.NotNil(t, db)
}

func TestNew_BadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-dir", "audit.db"))
	assert.Error(t, err)
}

func TestInsertAuditBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AuditRepository()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []*models.AuditEntry{
		{SessionID: "s1", Title: "ALL FLIGHTS", Body: "MetroJet A1 Kiev Lvov\n", FlightCount: 1, CreatedAt: now},
		{SessionID: "s1", Title: "DELETING", Body: "The flight number A1 was deleted\n", CreatedAt: now.Add(time.Second)},
		{SessionID: "s2", Title: "ALL FLIGHTS", Body: "", CreatedAt: now},
	}

	require.NoError(t, repo.InsertBatch(entries))

	got, err := repo.ListBySession("s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ALL FLIGHTS", got[0].Title)
	assert.Equal(t, 1, got[0].FlightCount)
	assert.Equal(t, "DELETING", got[1].Title)
	assert.True(t, now.Add(time.Second).Equal(got[1].CreatedAt))
}

func TestInsertAuditBatch_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AuditRepository()

	// Empty batch should not error
	err := repo.InsertBatch([]*models.AuditEntry{})
	assert.NoError(t, err)
}

func TestListBySession_Unknown(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.AuditRepository().ListBySession("nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}
