package feed

import (
	"context"
	"statushub/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// GetFeed aggregates the latest active status of every owner the viewer's
// access policy exposes.
func (f *feedService) GetFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error) {

	statuses, err := f.uow.StatusRepo().FindActiveVisible(ctx, viewerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return f.aggregate(ctx, viewerID, statuses)
}

// GetContactsFeed aggregates over the viewer's accepted connections. A user
// with no connections still sees their own status.
func (f *feedService) GetContactsFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error) {

	ownerIDs, err := f.uow.ConnectionRepo().FindAcceptedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(ownerIDs) == 0 {
		ownerIDs = []uuid.UUID{viewerID}
	}

	statuses, err := f.uow.StatusRepo().FindActiveByOwners(ctx, viewerID, ownerIDs, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return f.aggregate(ctx, viewerID, statuses)
}
