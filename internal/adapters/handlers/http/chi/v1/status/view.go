package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/auth"
	"statushub/internal/core/domain"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MarkViewedV1 records that the caller has seen the status; idempotent
func (h *HandlerV1) MarkViewedV1(w http.ResponseWriter, r *http.Request) {

	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	statusID, err := uuid.Parse(chi.URLParam(r, "statusID"))
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	err = h.statusService.MarkViewed(r.Context(), statusID, viewerID)
	switch {
	// a hidden status answers like a missing one so privacy settings
	// never disclose existence
	case errors.Is(err, domain.ErrStatusNotFound), errors.Is(err, domain.ErrStatusNotVisible):
		http.Error(w, "status not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error marking status viewed", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// V1ViewCountResponse carries the owner-facing view count
type V1ViewCountResponse struct {
	Views int `json:"views"`
}

// ViewCountV1 returns how many viewers have seen an owned status
func (h *HandlerV1) ViewCountV1(w http.ResponseWriter, r *http.Request) {

	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	statusID, err := uuid.Parse(chi.URLParam(r, "statusID"))
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	count, err := h.statusService.ViewCount(r.Context(), callerID, statusID)
	switch {
	case errors.Is(err, domain.ErrStatusNotFound):
		http.Error(w, "status not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNotStatusOwner):
		http.Error(w, "not the status owner", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error counting status views", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if encErr := json.NewEncoder(w).Encode(V1ViewCountResponse{Views: count}); encErr != nil {
			h.logger.Error("error encoding response", "error", encErr)
		}
	}
}

// V1MediaResponse carries a fresh signed download URL
type V1MediaResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetMediaV1 resolves a time-limited download URL for the status media
func (h *HandlerV1) GetMediaV1(w http.ResponseWriter, r *http.Request) {

	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	statusID, err := uuid.Parse(chi.URLParam(r, "statusID"))
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	url, expiresAt, err := h.statusService.ResolveMedia(r.Context(), viewerID, statusID)
	switch {
	case errors.Is(err, domain.ErrStatusNotFound), errors.Is(err, domain.ErrStatusNotVisible):
		http.Error(w, "status not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNoMedia):
		http.Error(w, "status has no media", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error resolving status media", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	case url == "" || expiresAt == nil:
		h.logger.Error("response has nil values", "url", url)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if encErr := json.NewEncoder(w).Encode(V1MediaResponse{URL: url, ExpiresAt: *expiresAt}); encErr != nil {
			h.logger.Error("error encoding response", "error", encErr)
		}
	}
}
