package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"registration-api/models"
)

// The admin surface. Shared-secret gating happens in middleware.AdminSecret
// before these handlers run.

// HandleListRegistrations handles GET /api/registrations
func (h *Handlers) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.DB.ListRegistrations(r.Context())
	if err != nil {
		slog.Error("failed to fetch registrations", "error", err)
		sendError(w, http.StatusInternalServerError, "Failed to fetch registrations")
		return
	}

	// Returning an empty array instead of null if no registrations
	if regs == nil {
		regs = []models.Registration{}
	}

	SendJSON(w, http.StatusOK, map[string]any{"success": true, "registrations": regs})
}

// HandleResend handles POST /api/registrations/{id}/resend. Unlike the
// submission path, the send is synchronous and its outcome is reported to
// the caller.
func (h *Handlers) HandleResend(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, http.StatusNotFound, "Not found")
		return
	}

	reg, err := h.DB.GetRegistration(r.Context(), id)
	if err != nil {
		// Lookup failures and absence fold together here, as the admin
		// page expects.
		sendError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.Mailer.SendConfirmation(r.Context(), reg); err != nil {
		slog.Warn("resend failed", "id", reg.ID, "error", err)
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("confirmation email resent", "id", reg.ID)
	SendJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"info":    fmt.Sprintf("confirmation resent to %s", reg.Email),
	})
}
