package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"registration-api/models"
)

// ErrNotFound is returned when an event id has no catalog entry.
var ErrNotFound = errors.New("event not found")

// Catalog reads event descriptors from a JSON file keyed by event id.
// The file is re-read on every call, so catalog edits take effect on the
// next request without a restart.
type Catalog struct {
	path string
}

// New creates a Catalog backed by the given file.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// List returns the full catalog.
func (c *Catalog) List() (map[string]models.Event, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	events := make(map[string]models.Event)
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to parse events file: %w", err)
	}
	return events, nil
}

// Get looks up a single event. Absence is reported as ErrNotFound,
// distinct from a read or parse failure.
func (c *Catalog) Get(id string) (models.Event, error) {
	events, err := c.List()
	if err != nil {
		return models.Event{}, err
	}

	ev, ok := events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	return ev, nil
}
