package status

import (
	"encoding/json"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/auth"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1UserStatusesResponse lists one owner's active statuses, oldest first
type V1UserStatusesResponse struct {
	Statuses []V1StatusResponse `json:"statuses"`
}

// GetUserStatusesV1 is the function that handles fetching one owner's story group
func (h *HandlerV1) GetUserStatusesV1(w http.ResponseWriter, r *http.Request) {

	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	ownerID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	statuses, err := h.statusService.GetUserStatuses(r.Context(), viewerID, ownerID)
	if err != nil {
		h.logger.Error("error getting user statuses", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := V1UserStatusesResponse{Statuses: make([]V1StatusResponse, 0, len(statuses))}
	for _, st := range statuses {
		resp.Statuses = append(resp.Statuses, toStatusResponse(st))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
