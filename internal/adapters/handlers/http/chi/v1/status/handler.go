package status

import (
	"log/slog"
	"statushub/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 status routes
type HandlerV1 struct {
	statusService port.StatusService
	logger        *slog.Logger
}

// NewStatusHandlerV1 creates HandlerV1
func NewStatusHandlerV1(service port.StatusService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		statusService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateStatusV1)
	router.Delete("/{statusID}", h.DeleteStatusV1)
	router.Post("/{statusID}/view", h.MarkViewedV1)
	router.Get("/{statusID}/views", h.ViewCountV1)
	router.Get("/{statusID}/media", h.GetMediaV1)
	router.Get("/user/{userID}", h.GetUserStatusesV1)

	return router
}
