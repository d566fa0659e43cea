package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"registration-api/catalog"
	"registration-api/db"
	"registration-api/models"
)

// Sender is the slice of the mailer the handlers depend on.
type Sender interface {
	SendConfirmation(ctx context.Context, reg models.Registration) error
	SendAdminNotice(ctx context.Context, reg models.Registration) error
}

type Handlers struct {
	DB        *db.DB
	Catalog   *catalog.Catalog
	Mailer    Sender
	StaticDir string
}

// SendJSON is a helper for sending JSON responses
func SendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error": "Failed to encode response"}`, http.StatusInternalServerError)
	}
}

func sendError(w http.ResponseWriter, status int, msg string) {
	SendJSON(w, status, map[string]any{"success": false, "error": msg})
}

// RegisterRequest is the submission payload. Only name and email are
// required; the rest are stored as given.
type RegisterRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	EventID *string `json:"eventId"`
}

// HandleListEvents handles GET /api/events
func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Catalog.List()
	if err != nil {
		slog.Error("failed to read event catalog", "error", err)
		sendError(w, http.StatusInternalServerError, "Failed to read events")
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{"success": true, "events": events})
}

// HandleGetEvent handles GET /api/events/{id}
func (h *Handlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Catalog.Get(r.PathValue("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		sendError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to read event catalog", "error", err)
		sendError(w, http.StatusInternalServerError, "Failed to read events")
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{"success": true, "event": ev})
}

// HandleRegister handles POST /api/register: validate, persist, respond,
// then notify in the background.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" {
		slog.Warn("registration validation failed, missing name or email")
		sendError(w, http.StatusBadRequest, "name and email required")
		return
	}

	reg, err := h.DB.InsertRegistration(r.Context(), db.RegistrationFields{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		EventID: req.EventID,
	})
	if err != nil {
		slog.Error("failed to save registration", "error", err)
		sendError(w, http.StatusInternalServerError, "Failed to save registration")
		return
	}

	slog.Info("registration saved", "id", reg.ID)
	SendJSON(w, http.StatusOK, map[string]any{"success": true, "registration": reg})

	// Detached from the request: the response is already committed and
	// neither send outcome can alter it.
	go h.notify(reg)
}

// notify sends the confirmation and admin emails for a stored registration.
// Outcomes are logged independently and never surface to the submitter.
func (h *Handlers) notify(reg models.Registration) {
	ctx := context.Background()

	if reg.Email != "" {
		if err := h.Mailer.SendConfirmation(ctx, reg); err != nil {
			slog.Warn("confirmation email failed", "id", reg.ID, "error", err)
		} else {
			slog.Info("confirmation email sent", "id", reg.ID)
		}
	}

	if err := h.Mailer.SendAdminNotice(ctx, reg); err != nil {
		slog.Warn("admin notification failed", "id", reg.ID, "error", err)
	} else {
		slog.Info("admin notification sent", "id", reg.ID)
	}
}

// HandleStatic serves the UI files, falling back to index.html so client
// side routes resolve. The fallback is a GET-only surface.
func (h *Handlers) HandleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.StaticDir, "index.html"))
}
