package sweep

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the sweeper trigger route
type HandlerV1 struct {
	sweepService port.SweepService
	logger       *slog.Logger
}

// NewSweepHandlerV1 creates HandlerV1
func NewSweepHandlerV1(service port.SweepService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		sweepService: service,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.RunSweepV1)

	return router
}

// V1SweepResponse is the response to one sweeper invocation
type V1SweepResponse struct {
	Success   bool               `json:"success"`
	Timestamp time.Time          `json:"timestamp"`
	Results   domain.SweepReport `json:"results"`
}

// RunSweepV1 triggers one sweep. No request body; the external scheduler
// calls this hourly.
func (h *HandlerV1) RunSweepV1(w http.ResponseWriter, r *http.Request) {

	now := time.Now().UTC()
	report, err := h.sweepService.Run(r.Context(), now)

	resp := V1SweepResponse{
		Success:   err == nil,
		Timestamp: now,
		Results:   report,
	}

	code := http.StatusOK
	if err != nil {
		h.logger.Error("sweep run failed", "error", err)
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		h.logger.Error("error encoding response", "error", encErr)
	}
}
