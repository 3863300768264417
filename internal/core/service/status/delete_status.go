package status

import (
	"context"
	"fmt"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// DeleteStatus removes an owned status immediately, bypassing the sweeper.
// Media removal is best-effort; a missing blob must not keep the record alive.
func (s *statusService) DeleteStatus(ctx context.Context, callerID, statusID uuid.UUID) error {

	found, err := s.uow.StatusRepo().FindByID(ctx, statusID)
	if err != nil {
		return err
	}

	if found.UserID != callerID {
		return domain.ErrNotStatusOwner
	}

	if found.MediaPath != "" {
		if rmErr := s.media.Remove(ctx, found.MediaPath); rmErr != nil {
			s.logger.Warn("failed to remove status media", "path", found.MediaPath, "error", rmErr)
		}
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		if exErr := uow.ExceptionRepo().DeleteByStatusID(ctx, statusID); exErr != nil {
			return exErr
		}

		return uow.StatusRepo().Delete(ctx, statusID)
	})
	if txErr != nil {
		return fmt.Errorf("could not delete status: %w", txErr)
	}

	s.publish(ctx, domain.StatusEvent{
		Type:       domain.EventTypeStatusDeleted,
		StatusID:   statusID,
		UserID:     callerID,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
