package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/auth"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandlerV1 is the handler for v1 feed routes
type HandlerV1 struct {
	feedService port.FeedService
	logger      *slog.Logger
}

// NewFeedHandlerV1 creates HandlerV1
func NewFeedHandlerV1(service port.FeedService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		feedService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.GetFeedV1)
	router.Get("/contacts", h.GetContactsFeedV1)

	return router
}

// V1FeedItem is the wire shape of one aggregated feed entry
type V1FeedItem struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarPath  string    `json:"avatar_path,omitempty"`
	StatusID    string    `json:"status_id"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	HasUnviewed bool      `json:"has_unviewed"`
}

// V1FeedResponse is the response to feed queries
type V1FeedResponse struct {
	Items []V1FeedItem `json:"items"`
}

func toFeedResponse(items []domain.FeedItem) V1FeedResponse {
	resp := V1FeedResponse{Items: make([]V1FeedItem, 0, len(items))}
	for _, item := range items {
		out := V1FeedItem{
			UserID:      item.UserID.String(),
			StatusID:    item.Latest.ID.String(),
			ContentType: string(item.Latest.ContentType),
			CreatedAt:   item.Latest.CreatedAt,
			ExpiresAt:   item.Latest.ExpiresAt,
			HasUnviewed: item.HasUnviewed,
		}
		if item.Profile != nil {
			out.Username = item.Profile.Username
			out.DisplayName = item.Profile.DisplayName
			out.AvatarPath = item.Profile.AvatarPath
		}
		resp.Items = append(resp.Items, out)
	}
	return resp
}

func (h *HandlerV1) serveFeed(w http.ResponseWriter, r *http.Request, fetch func(viewerID uuid.UUID) ([]domain.FeedItem, error)) {

	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	items, err := fetch(viewerID)
	if err != nil {
		h.logger.Error("error building feed", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toFeedResponse(items)); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// GetFeedV1 serves the global feed
func (h *HandlerV1) GetFeedV1(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(viewerID uuid.UUID) ([]domain.FeedItem, error) {
		return h.feedService.GetFeed(r.Context(), viewerID)
	})
}

// GetContactsFeedV1 serves the accepted-connections feed
func (h *HandlerV1) GetContactsFeedV1(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, func(viewerID uuid.UUID) ([]domain.FeedItem, error) {
		return h.feedService.GetContactsFeed(r.Context(), viewerID)
	})
}
