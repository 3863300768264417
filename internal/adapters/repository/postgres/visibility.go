package postgres

import (
	"context"
	"fmt"
	"statushub/internal/core/port"
	"strings"

	"github.com/google/uuid"
)

type sqlVisibilityExceptionRepository struct {
	db SQLQuerier
}

// NewSqlVisibilityExceptionRepository creates the allow-list repository
func NewSqlVisibilityExceptionRepository(db SQLQuerier) port.VisibilityExceptionRepository {
	return &sqlVisibilityExceptionRepository{db: db}
}

// CreateMany inserts one allow entry per viewer id in a single statement
func (s *sqlVisibilityExceptionRepository) CreateMany(ctx context.Context, statusID uuid.UUID, allowedUserIDs []uuid.UUID) (int, error) {
	if len(allowedUserIDs) == 0 {
		return 0, nil
	}

	// Remove duplicates
	unique := make(map[uuid.UUID]bool, len(allowedUserIDs))
	values := make([]string, 0, len(allowedUserIDs))
	args := make([]any, 0, len(allowedUserIDs)+1)
	args = append(args, statusID)
	for _, id := range allowedUserIDs {
		if unique[id] {
			continue
		}
		unique[id] = true
		args = append(args, id)
		values = append(values, fmt.Sprintf("($1, $%d)", len(args)))
	}

	query := `INSERT INTO status_visibility_exceptions (status_id, allowed_user_id) VALUES ` + strings.Join(values, ", ")

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error inserting visibility exceptions: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

// DeleteByStatusID removes every allow entry of one status
func (s *sqlVisibilityExceptionRepository) DeleteByStatusID(ctx context.Context, statusID uuid.UUID) error {
	query := `DELETE FROM status_visibility_exceptions WHERE status_id = $1`

	if _, err := s.db.ExecContext(ctx, query, statusID); err != nil {
		return fmt.Errorf("error deleting visibility exceptions: %w", err)
	}
	return nil
}
