package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"registration-api/models"
)

// ErrNotFound is returned when no registration has the requested id.
var ErrNotFound = errors.New("registration not found")

// DB represents our database layer
type DB struct {
	*sql.DB
}

// NewDB initializes and connects to the SQLite database
func NewDB(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Important settings for SQLite concurrency.
	// We want to avoid "database is locked" errors during concurrent writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// InitSchema sets up the registrations table. Non-emptiness of name and
// email is enforced at the handler boundary, not here: the legacy import
// can carry rows with missing fields.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS registrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT,
		phone TEXT,
		subject TEXT,
		message TEXT,
		event_id TEXT,
		created_at TEXT
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// RegistrationFields carries the caller-supplied part of a registration.
// Identifier and creation time are assigned by the store.
type RegistrationFields struct {
	Name    string
	Email   string
	Phone   *string
	Subject *string
	Message *string
	EventID *string
}

const registrationColumns = `id, name, email, phone, subject, message, event_id, created_at`

func scanRegistration(scanner interface{ Scan(...any) error }) (models.Registration, error) {
	var reg models.Registration
	var phone, subject, message, eventID sql.NullString
	err := scanner.Scan(&reg.ID, &reg.Name, &reg.Email, &phone, &subject, &message, &eventID, &reg.CreatedAt)
	if err != nil {
		return models.Registration{}, err
	}
	reg.Phone = fromNull(phone)
	reg.Subject = fromNull(subject)
	reg.Message = fromNull(message)
	reg.EventID = fromNull(eventID)
	return reg, nil
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// InsertRegistration appends a row and returns it exactly as stored, read
// back from the database rather than the input echoed. Identifier
// assignment is delegated to sqlite's AUTOINCREMENT, which serializes
// concurrent inserts without external locking.
func (db *DB) InsertRegistration(ctx context.Context, fields RegistrationFields) (models.Registration, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	res, err := db.ExecContext(ctx, `
		INSERT INTO registrations (name, email, phone, subject, message, event_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, fields.Name, fields.Email, fields.Phone, fields.Subject, fields.Message, fields.EventID, createdAt)
	if err != nil {
		return models.Registration{}, fmt.Errorf("failed to insert registration: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Registration{}, fmt.Errorf("failed to get registration id: %w", err)
	}

	reg, err := db.GetRegistration(ctx, id)
	if err != nil {
		return models.Registration{}, fmt.Errorf("failed to read back registration: %w", err)
	}
	return reg, nil
}

// GetRegistration fetches a single registration by id.
func (db *DB) GetRegistration(ctx context.Context, id int64) (models.Registration, error) {
	row := db.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, ErrNotFound
	}
	if err != nil {
		return models.Registration{}, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// ListRegistrations returns all registrations, newest first. Rows sharing
// a creation timestamp may appear in any order among themselves.
func (db *DB) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
