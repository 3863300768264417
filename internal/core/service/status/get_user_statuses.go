package status

import (
	"context"
	"time"

	"statushub/internal/core/domain"

	"github.com/google/uuid"
)

// GetUserStatuses returns one owner's active statuses visible to the viewer,
// oldest first. An empty result is a normal state, not an error.
func (s *statusService) GetUserStatuses(ctx context.Context, viewerID, ownerID uuid.UUID) ([]domain.Status, error) {
	return s.uow.StatusRepo().FindActiveByOwner(ctx, viewerID, ownerID, time.Now().UTC())
}

// MarkViewed records that the viewer has seen the status. Idempotent; a
// viewer never marks their own status.
func (s *statusService) MarkViewed(ctx context.Context, statusID, viewerID uuid.UUID) error {

	found, err := s.uow.StatusRepo().FindVisibleByID(ctx, viewerID, statusID)
	if err != nil {
		return err
	}

	if found.UserID == viewerID {
		return nil
	}

	return s.uow.ViewRepo().Upsert(ctx, statusID, viewerID, time.Now().UTC())
}

// ResolveMedia returns a fresh time-limited download URL for the status
// media. URLs are never cached across calls.
func (s *statusService) ResolveMedia(ctx context.Context, viewerID, statusID uuid.UUID) (string, *time.Time, error) {

	found, err := s.uow.StatusRepo().FindVisibleByID(ctx, viewerID, statusID)
	if err != nil {
		return "", nil, err
	}

	if !found.Active(time.Now().UTC()) && found.UserID != viewerID {
		return "", nil, domain.ErrStatusNotFound
	}
	if found.MediaPath == "" {
		return "", nil, domain.ErrNoMedia
	}

	return s.media.SignedURL(ctx, found.MediaPath)
}

// ViewCount returns how many viewers have seen the status. Owner only.
func (s *statusService) ViewCount(ctx context.Context, callerID, statusID uuid.UUID) (int, error) {

	found, err := s.uow.StatusRepo().FindByID(ctx, statusID)
	if err != nil {
		return 0, err
	}

	if found.UserID != callerID {
		return 0, domain.ErrNotStatusOwner
	}

	return s.uow.ViewRepo().CountByStatus(ctx, statusID)
}
