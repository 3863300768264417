package postgres

import (
	"context"
	"fmt"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type sqlStatusViewRepository struct {
	db SQLQuerier
}

// NewSqlStatusViewRepository creates sqlStatusViewRepository that implements port.StatusViewRepository
func NewSqlStatusViewRepository(db SQLQuerier) port.StatusViewRepository {
	return &sqlStatusViewRepository{db: db}
}

// Upsert records the view at most once per (status, viewer) pair
func (s *sqlStatusViewRepository) Upsert(ctx context.Context, statusID, viewerID uuid.UUID, viewedAt time.Time) error {
	query := `INSERT INTO status_views (status_id, viewer_id, viewed_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (status_id, viewer_id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query, statusID, viewerID, viewedAt)
	if err != nil {
		return fmt.Errorf("error upserting status view: %w", err)
	}
	return nil
}

// Exists checks whether the viewer has seen the status
func (s *sqlStatusViewRepository) Exists(ctx context.Context, statusID, viewerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM status_views WHERE status_id = $1 AND viewer_id = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, statusID, viewerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking status view: %w", err)
	}
	return exists, nil
}

// CountByStatus counts distinct viewers of one status
func (s *sqlStatusViewRepository) CountByStatus(ctx context.Context, statusID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM status_views WHERE status_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, statusID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting status views: %w", err)
	}
	return count, nil
}
