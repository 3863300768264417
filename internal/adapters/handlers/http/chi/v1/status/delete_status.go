package status

import (
	"errors"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/auth"
	"statushub/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteStatusV1 is the function that handles owner deletion
func (h *HandlerV1) DeleteStatusV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	statusID, err := uuid.Parse(chi.URLParam(r, "statusID"))
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	err = h.statusService.DeleteStatus(r.Context(), userID, statusID)
	switch {
	case errors.Is(err, domain.ErrStatusNotFound):
		http.Error(w, "status not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNotStatusOwner):
		http.Error(w, "not the status owner", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("error deleting status", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
