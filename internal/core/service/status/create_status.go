package status

import (
	"context"
	"fmt"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// CreateStatus validates the input, uploads media if present and persists the
// status with its visibility exceptions in one transaction. The record stores
// only the blob-store path; download URLs are resolved lazily.
func (s *statusService) CreateStatus(ctx context.Context, ownerID uuid.UUID, in port.CreateStatusInput) (*domain.Status, error) {

	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing owner id", domain.ErrInvalidContent)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if int64(len(in.Media)) > s.statusCfg.MediaMaxSize {
		return nil, domain.ErrMediaTooBig
	}

	statusID := uuid.New()
	now := time.Now().UTC()

	newStatus := domain.Status{
		ID:          statusID,
		UserID:      ownerID,
		ContentType: in.ContentType,
		TextContent: in.TextContent,
		Privacy:     in.Privacy,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.statusCfg.TTL),
	}

	// Media goes to the blob store before any row exists, so a failed upload
	// can never leave a record pointing at a missing object.
	if in.ContentType.HasMedia() {
		ext, err := mediaExtension(in.ContentType, in.MediaContentType)
		if err != nil {
			return nil, err
		}

		mediaPath := fmt.Sprintf("status/%s/%s%s", ownerID, statusID, ext)
		if err := s.media.Upload(ctx, mediaPath, in.Media, in.MediaContentType); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMediaUploadFailed, err)
		}
		newStatus.MediaPath = mediaPath
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		if createErr := uow.StatusRepo().Create(ctx, newStatus); createErr != nil {
			return createErr
		}

		if in.Privacy == domain.PrivacyCustom {
			if _, exErr := uow.ExceptionRepo().CreateMany(ctx, statusID, in.AllowedViewerIDs); exErr != nil {
				return exErr
			}
		}

		return nil
	})
	if txErr != nil {
		if newStatus.MediaPath != "" {
			if rmErr := s.media.Remove(ctx, newStatus.MediaPath); rmErr != nil {
				s.logger.Error("failed to remove orphaned media", "path", newStatus.MediaPath, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("could not create status: %w", txErr)
	}

	s.publish(ctx, domain.StatusEvent{
		Type:       domain.EventTypeStatusCreated,
		StatusID:   statusID,
		UserID:     ownerID,
		OccurredAt: now,
	})

	return &newStatus, nil
}

// publish is best-effort; event delivery never fails the caller's operation.
func (s *statusService) publish(ctx context.Context, event domain.StatusEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish status event", "type", event.Type, "error", err)
	}
}
