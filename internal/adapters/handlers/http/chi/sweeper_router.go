package chi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"statushub/internal/adapters/handlers/http/chi/v1/sweep"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewSweeperRouter builds the trigger surface of the lifecycle sweeper. It
// carries no auth; the scheduler reaches it on an internal network only.
func NewSweeperRouter(logger *slog.Logger, sweepHandler *sweep.HandlerV1) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Mount("/sweep", sweepHandler.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return r
}
