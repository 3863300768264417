package postgres

import (
	"context"
	"fmt"
	"statushub/internal/core/port"

	"github.com/google/uuid"
)

type sqlConnectionRepository struct {
	db SQLQuerier
}

// NewSqlConnectionRepository creates sqlConnectionRepository that implements port.ConnectionRepository
func NewSqlConnectionRepository(db SQLQuerier) port.ConnectionRepository {
	return &sqlConnectionRepository{db: db}
}

// FindAcceptedIDs returns the ids of every accepted connection of one user,
// whichever side initiated it.
func (s *sqlConnectionRepository) FindAcceptedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT CASE WHEN user_id = $1 THEN connected_user_id ELSE user_id END
              FROM connections
              WHERE status = 'accepted' AND (user_id = $1 OR connected_user_id = $1)`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying connections: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning connection: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connections: %w", err)
	}
	return ids, nil
}
