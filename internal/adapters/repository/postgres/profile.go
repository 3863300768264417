package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlProfileRepository struct {
	db SQLQuerier
}

// NewSqlProfileRepository creates sqlProfileRepository that implements port.ProfileRepository
func NewSqlProfileRepository(db SQLQuerier) port.ProfileRepository {
	return &sqlProfileRepository{db: db}
}

// FindByIDs looks up display profiles by id list
func (s *sqlProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error) {
	profiles := make(map[uuid.UUID]domain.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	query := `SELECT id, username, display_name, avatar_path FROM profiles WHERE id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Profile
		var displayName, avatarPath sql.NullString
		if err := rows.Scan(&p.ID, &p.Username, &displayName, &avatarPath); err != nil {
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		if displayName.Valid {
			p.DisplayName = displayName.String
		}
		if avatarPath.Valid {
			p.AvatarPath = avatarPath.String
		}
		profiles[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}
