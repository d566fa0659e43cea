package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// legacyEntry mirrors the JSON shape registrations were kept in before the
// database existed.
type legacyEntry struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Subject   *string `json:"subject"`
	Message   *string `json:"message"`
	EventID   *string `json:"eventId"`
	CreatedAt string  `json:"createdAt"`
}

// ImportLegacy moves any registrations still pending in the legacy JSON
// file into the database, then rewrites the file as an empty array so a
// restart imports nothing. A missing or empty file is a no-op. Runs once
// at startup, before the HTTP listener accepts traffic.
func (db *DB) ImportLegacy(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read legacy registrations: %w", err)
	}

	var entries []legacyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse legacy registrations: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	// All-or-nothing: a failed import must leave no rows behind, or the
	// next startup would re-insert the earlier entries as duplicates.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Safe to call even if committed

	for _, e := range entries {
		createdAt := e.CreatedAt
		if createdAt == "" {
			createdAt = time.Now().UTC().Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO registrations (name, email, phone, subject, message, event_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.Name, e.Email, e.Phone, e.Subject, e.Message, e.EventID, createdAt)
		if err != nil {
			return 0, fmt.Errorf("failed to import legacy registration: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tx: %w", err)
	}

	// Clear the file so the import never repeats.
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		return 0, fmt.Errorf("failed to clear legacy registrations: %w", err)
	}
	return len(entries), nil
}
