package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportLegacy(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	legacyPath := filepath.Join(t.TempDir(), "registrations.json")
	legacy := `[
		{"name":"Old One","email":"one@example.com","eventId":"robo1","createdAt":"2025-11-02T08:00:00Z"},
		{"name":"Old Two","email":"two@example.com","phone":"555-0102"}
	]`
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0644))

	count, err := database.ImportLegacy(ctx, legacyPath)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	regs, err := database.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	// An entry without createdAt gets one assigned at import time.
	for _, reg := range regs {
		require.NotEmpty(t, reg.CreatedAt)
	}

	// The file is cleared so the import never repeats.
	raw, err := os.ReadFile(legacyPath)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))

	count, err = database.ImportLegacy(ctx, legacyPath)
	require.NoError(t, err)
	require.Zero(t, count, "second import must be a no-op")

	regs, err = database.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2, "no duplicate rows after re-import")
}

func TestImportLegacy_PartialFailureLeavesNoRows(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	legacyPath := filepath.Join(t.TempDir(), "registrations.json")
	legacy := `[
		{"name":"good","email":"good@example.com"},
		{"name":"bad","email":"bad@example.com"}
	]`
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0644))

	// Reject the second entry mid-import.
	_, err := database.ExecContext(ctx, `
		CREATE TRIGGER reject_bad BEFORE INSERT ON registrations
		WHEN NEW.name = 'bad'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END
	`)
	require.NoError(t, err)

	_, err = database.ImportLegacy(ctx, legacyPath)
	require.Error(t, err)

	// The failed import rolls back entirely and keeps the file intact,
	// so a later startup can retry without duplicating the first entry.
	regs, err := database.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Empty(t, regs, "a failed import must leave no rows behind")

	raw, err := os.ReadFile(legacyPath)
	require.NoError(t, err)
	require.JSONEq(t, legacy, string(raw))

	_, err = database.ExecContext(ctx, `DROP TRIGGER reject_bad`)
	require.NoError(t, err)

	count, err := database.ImportLegacy(ctx, legacyPath)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var goodRows int
	require.NoError(t, database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE name = 'good'`).Scan(&goodRows))
	require.Equal(t, 1, goodRows, "retried import must not duplicate rows")
}

func TestImportLegacy_MissingFile(t *testing.T) {
	database := setupTestDB(t)

	count, err := database.ImportLegacy(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestImportLegacy_MalformedFile(t *testing.T) {
	database := setupTestDB(t)

	path := filepath.Join(t.TempDir(), "registrations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := database.ImportLegacy(context.Background(), path)
	require.Error(t, err)
}
