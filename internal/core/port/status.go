package port

import (
	"context"
	"statushub/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// StatusRepository is an interface to define status repository interactions.
// All viewer-scoped finders enforce visibility in the store query itself;
// callers must not rely on filtering results afterwards.
type StatusRepository interface {
	Create(ctx context.Context, status domain.Status) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Status, error)
	// FindVisibleByID finds by id scoped to the viewer. A row hidden by its
	// privacy settings yields domain.ErrStatusNotVisible, a missing row
	// domain.ErrStatusNotFound.
	FindVisibleByID(ctx context.Context, viewerID, id uuid.UUID) (*domain.Status, error)
	// FindActiveByOwner returns the owner's active statuses visible to the
	// viewer, oldest first.
	FindActiveByOwner(ctx context.Context, viewerID, ownerID uuid.UUID, now time.Time) ([]domain.Status, error)
	// FindActiveVisible returns every active status the viewer may see,
	// newest first.
	FindActiveVisible(ctx context.Context, viewerID uuid.UUID, now time.Time) ([]domain.Status, error)
	// FindActiveByOwners returns active statuses of the given owners visible
	// to the viewer, newest first.
	FindActiveByOwners(ctx context.Context, viewerID uuid.UUID, ownerIDs []uuid.UUID, now time.Time) ([]domain.Status, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ArchiveExpired stamps every unarchived status past its expiry in one
	// batch and returns the affected ids.
	ArchiveExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// FindOlderThan returns all statuses created before the cutoff,
	// archived or not.
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Status, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int, error)
}

// StatusViewRepository is an interface to interact with view records
type StatusViewRepository interface {
	// Upsert records the view at most once per (status, viewer) pair.
	Upsert(ctx context.Context, statusID, viewerID uuid.UUID, viewedAt time.Time) error
	Exists(ctx context.Context, statusID, viewerID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, statusID uuid.UUID) (int, error)
}

// VisibilityExceptionRepository is an interface to interact with custom-privacy allow lists
type VisibilityExceptionRepository interface {
	CreateMany(ctx context.Context, statusID uuid.UUID, allowedUserIDs []uuid.UUID) (int, error)
	DeleteByStatusID(ctx context.Context, statusID uuid.UUID) error
}

// ConnectionRepository exposes the viewer's accepted-connection set
type ConnectionRepository interface {
	FindAcceptedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ProfileRepository looks up display profiles for feed decoration
type ProfileRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error)
}
