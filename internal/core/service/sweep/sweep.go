package sweep

import (
	"log/slog"
	"statushub/internal/config"
	"statushub/internal/core/port"
)

type sweepService struct {
	uow       port.UnitOfWork
	media     port.MediaStorage
	publisher port.EventPublisher
	statusCfg config.StatusConfig
	logger    *slog.Logger
}

// NewSweepService creates a new sweep service
func NewSweepService(uow port.UnitOfWork, media port.MediaStorage, publisher port.EventPublisher, cfg config.StatusConfig, logger *slog.Logger) port.SweepService {
	return &sweepService{
		uow:       uow,
		media:     media,
		publisher: publisher,
		statusCfg: cfg,
		logger:    logger,
	}
}
