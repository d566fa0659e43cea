package db

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setupTestDB creates a fresh on-disk database for one test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := NewDB(fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.InitSchema(context.Background()))
	return database
}

func strPtr(s string) *string { return &s }

func TestInsertRegistration_ReadBack(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	inserted, err := database.InsertRegistration(ctx, RegistrationFields{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   strPtr("555-0101"),
		Message: strPtr("see you there"),
		EventID: strPtr("robo1"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), inserted.ID)
	require.Equal(t, "Asha", inserted.Name)
	require.Equal(t, "asha@example.com", inserted.Email)
	require.Equal(t, "555-0101", *inserted.Phone)
	require.Nil(t, inserted.Subject)
	require.Equal(t, "robo1", *inserted.EventID)

	_, err = time.Parse(time.RFC3339, inserted.CreatedAt)
	require.NoError(t, err, "createdAt should be RFC 3339")

	// The returned record is exactly what a later read yields.
	fetched, err := database.GetRegistration(ctx, inserted.ID)
	require.NoError(t, err)
	require.Equal(t, inserted, fetched)
}

func TestInsertRegistration_OptionalFieldsStayNull(t *testing.T) {
	database := setupTestDB(t)

	reg, err := database.InsertRegistration(context.Background(), RegistrationFields{
		Name:  "Bo",
		Email: "bo@example.com",
	})
	require.NoError(t, err)
	require.Nil(t, reg.Phone)
	require.Nil(t, reg.Subject)
	require.Nil(t, reg.Message)
	require.Nil(t, reg.EventID)
}

func TestGetRegistration_NotFound(t *testing.T) {
	database := setupTestDB(t)

	_, err := database.GetRegistration(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListRegistrations_NewestFirst(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	// Insert with explicit timestamps, oldest in the middle, to make the
	// ordering observable.
	stamps := []string{
		"2026-03-01T10:00:00Z",
		"2026-01-15T09:30:00Z",
		"2026-02-20T18:45:00Z",
	}
	for i, ts := range stamps {
		_, err := database.ExecContext(ctx,
			`INSERT INTO registrations (name, email, created_at) VALUES (?, ?, ?)`,
			fmt.Sprintf("person%d", i), fmt.Sprintf("p%d@example.com", i), ts,
		)
		require.NoError(t, err)
	}

	regs, err := database.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 3)
	for i := 1; i < len(regs); i++ {
		require.GreaterOrEqual(t, regs[i-1].CreatedAt, regs[i].CreatedAt,
			"registrations must be ordered by creation time, newest first")
	}
}

func TestListRegistrations_Empty(t *testing.T) {
	database := setupTestDB(t)

	regs, err := database.ListRegistrations(context.Background())
	require.NoError(t, err)
	require.Empty(t, regs)
}

func TestConcurrentInserts_UniqueIDs(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	numRequests := 50
	ids := make(chan int64, numRequests)
	errs := make(chan error, numRequests)

	var wg sync.WaitGroup
	wg.Add(numRequests)
	for i := 0; i < numRequests; i++ {
		go func(n int) {
			defer wg.Done()
			reg, err := database.InsertRegistration(ctx, RegistrationFields{
				Name:  fmt.Sprintf("gopher%d", n),
				Email: fmt.Sprintf("gopher%d@example.com", n),
			})
			if err != nil {
				errs <- err
				return
			}
			ids <- reg.ID
		}(i)
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Errorf("unexpected insert error: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d assigned", id)
		seen[id] = true
	}
	require.Len(t, seen, numRequests, "every insert must receive its own id")
}
