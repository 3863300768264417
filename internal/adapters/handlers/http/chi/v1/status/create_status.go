package status

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/auth"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// V1CreateStatusRequest is the request to create a status. Media travels as
// base64; the response carries only the storage path, never a URL.
type V1CreateStatusRequest struct {
	ContentType      string   `json:"content_type"`
	TextContent      string   `json:"text_content,omitempty"`
	MediaBase64      string   `json:"media_base64,omitempty"`
	MediaContentType string   `json:"media_content_type,omitempty"`
	Privacy          string   `json:"privacy"`
	AllowedViewerIDs []string `json:"allowed_viewer_ids,omitempty"`
}

// V1StatusResponse is the wire shape of one status
type V1StatusResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ContentType string    `json:"content_type"`
	TextContent string    `json:"text_content,omitempty"`
	MediaPath   string    `json:"media_path,omitempty"`
	Privacy     string    `json:"privacy"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func toStatusResponse(st domain.Status) V1StatusResponse {
	return V1StatusResponse{
		ID:          st.ID.String(),
		UserID:      st.UserID.String(),
		ContentType: string(st.ContentType),
		TextContent: st.TextContent,
		MediaPath:   st.MediaPath,
		Privacy:     string(st.Privacy),
		CreatedAt:   st.CreatedAt,
		ExpiresAt:   st.ExpiresAt,
	}
}

// CreateStatusV1 is the function that handles status creation
func (h *HandlerV1) CreateStatusV1(w http.ResponseWriter, r *http.Request) {

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req V1CreateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var media []byte
	if req.MediaBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.MediaBase64)
		if err != nil {
			http.Error(w, "invalid media encoding", http.StatusBadRequest)
			return
		}
		media = decoded
	}

	allowed := make([]uuid.UUID, 0, len(req.AllowedViewerIDs))
	for _, raw := range req.AllowedViewerIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid allowed viewer id", http.StatusBadRequest)
			return
		}
		allowed = append(allowed, id)
	}

	created, err := h.statusService.CreateStatus(r.Context(), userID, port.CreateStatusInput{
		ContentType:      domain.ContentType(req.ContentType),
		TextContent:      req.TextContent,
		Media:            media,
		MediaContentType: req.MediaContentType,
		Privacy:          domain.PrivacyLevel(req.Privacy),
		AllowedViewerIDs: allowed,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidContent),
		errors.Is(err, domain.ErrInvalidPrivacy),
		errors.Is(err, domain.ErrInvalidMediaType):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrMediaTooBig):
		http.Error(w, "media too big", http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		h.logger.Error("error creating status", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toStatusResponse(*created)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}
}
