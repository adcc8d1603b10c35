package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"nestegg/internal/core"
	"nestegg/internal/engine"
	"nestegg/internal/store"
)

type handlers struct {
	store     store.Store
	engine    *engine.Engine
	publisher RequestPublisher
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createClient stores a new or updated profile and, when a queue is
// configured, enqueues the allocation for the batch worker.
func (h *handlers) createClient(w http.ResponseWriter, r *http.Request) {
	profile, err := parseProfileRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	ctx := r.Context()
	if err := h.store.SaveProfile(ctx, profile); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	saved, err := h.store.GetProfile(ctx, profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishAllocationRequest(ctx, saved.ID, saved.Version); err != nil {
			// The periodic stale scan picks the client up later.
			slog.ErrorContext(ctx, "failed to enqueue allocation request",
				"client_id", saved.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      saved.ID,
		"version": saved.Version,
	})
}

// allocate runs the engine inline for one client and persists the
// result before responding.
func (h *handlers) allocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("id")

	profile, err := h.store.GetProfile(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result, err := h.engine.Run(profile)
	if err != nil {
		if engine.IsConfigurationError(err) {
			slog.ErrorContext(ctx, "configuration error", "client_id", clientID, "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	if err := h.store.WriteResult(ctx, result, profile.Version); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse(result))
}

// plan returns the last persisted allocation table.
func (h *handlers) plan(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	result, err := h.store.ReadResult(r.Context(), clientID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse(result))
}

// resultResponse flattens a result onto the fixed column set so API
// consumers see the same shape the sheet deliverable carries.
func resultResponse(r core.AllocationResult) map[string]any {
	flat := r.Flatten()
	cols := make(map[string]string, len(flat))
	for name, amount := range flat {
		cols[name] = amount.String()
	}
	return map[string]any{
		"client_id":   r.ClientID,
		"allocations": cols,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
