package port

import (
	"context"
	"statushub/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// CreateStatusInput carries everything a caller supplies to create a status.
// Expiry is computed by the service, never accepted as input.
type CreateStatusInput struct {
	ContentType      domain.ContentType
	TextContent      string
	Media            []byte
	MediaContentType string
	Privacy          domain.PrivacyLevel
	AllowedViewerIDs []uuid.UUID
}

// StatusService is an interface to define the status write/read path
type StatusService interface {
	CreateStatus(ctx context.Context, ownerID uuid.UUID, in CreateStatusInput) (*domain.Status, error)
	DeleteStatus(ctx context.Context, callerID, statusID uuid.UUID) error
	GetUserStatuses(ctx context.Context, viewerID, ownerID uuid.UUID) ([]domain.Status, error)
	MarkViewed(ctx context.Context, statusID, viewerID uuid.UUID) error
	ResolveMedia(ctx context.Context, viewerID, statusID uuid.UUID) (string, *time.Time, error)
	ViewCount(ctx context.Context, callerID, statusID uuid.UUID) (int, error)
}

// FeedService is an interface to define feed aggregation
type FeedService interface {
	GetFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error)
	GetContactsFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error)
}

// SweepService is the periodic lifecycle job over expired statuses
type SweepService interface {
	Run(ctx context.Context, now time.Time) (domain.SweepReport, error)
}
