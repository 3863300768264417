package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlStatusRepository struct {
	db SQLQuerier
}

// NewSqlStatusRepository creates sqlStatusRepository that implements port.StatusRepository
func NewSqlStatusRepository(db SQLQuerier) port.StatusRepository {
	return &sqlStatusRepository{
		db: db,
	}
}

const statusColumns = `id, user_id, content_type, text_content, media_path, privacy, created_at, expires_at, archived, archived_at`

// visibilityPredicate gates every viewer-scoped query. $1 must be the viewer
// id; the owner always sees their own statuses, only_me has no other branch.
const visibilityPredicate = `(
	    s.user_id = $1
	 OR s.privacy = 'public'
	 OR (s.privacy IN ('friends', 'followers') AND EXISTS (
	        SELECT 1 FROM connections c
	        WHERE c.status = 'accepted'
	          AND ((c.user_id = s.user_id AND c.connected_user_id = $1)
	            OR (c.user_id = $1 AND c.connected_user_id = s.user_id))))
	 OR (s.privacy = 'custom' AND EXISTS (
	        SELECT 1 FROM status_visibility_exceptions e
	        WHERE e.status_id = s.id AND e.allowed_user_id = $1))
	)`

// Create inserts a new status row
func (s *sqlStatusRepository) Create(ctx context.Context, status domain.Status) error {
	query := `INSERT INTO statuses (id, user_id, content_type, text_content, media_path, privacy, created_at, expires_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		status.ID,
		status.UserID,
		status.ContentType,
		nullString(status.TextContent),
		nullString(status.MediaPath),
		status.Privacy,
		status.CreatedAt,
		status.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting status: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	status, err := scanStatus(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusNotFound
		}
		return nil, err
	}
	return status, nil
}

// FindVisibleByID finds by id scoped to the viewer
func (s *sqlStatusRepository) FindVisibleByID(ctx context.Context, viewerID, id uuid.UUID) (*domain.Status, error) {
	query := `SELECT s.` + selectAliased() + `, ` + visibilityPredicate + ` AS visible
              FROM statuses s
              WHERE s.id = $2`

	var st domain.Status
	var textContent, mediaPath sql.NullString
	var archivedAt sql.NullTime
	var visible bool

	err := s.db.QueryRowContext(ctx, query, viewerID, id).Scan(
		&st.ID,
		&st.UserID,
		&st.ContentType,
		&textContent,
		&mediaPath,
		&st.Privacy,
		&st.CreatedAt,
		&st.ExpiresAt,
		&st.Archived,
		&archivedAt,
		&visible,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusNotFound
		}
		return nil, err
	}
	if !visible {
		return nil, domain.ErrStatusNotVisible
	}

	if textContent.Valid {
		st.TextContent = textContent.String
	}
	if mediaPath.Valid {
		st.MediaPath = mediaPath.String
	}
	if archivedAt.Valid {
		st.ArchivedAt = &archivedAt.Time
	}
	return &st, nil
}

// FindActiveByOwner returns the owner's active statuses visible to the viewer, oldest first
func (s *sqlStatusRepository) FindActiveByOwner(ctx context.Context, viewerID, ownerID uuid.UUID, now time.Time) ([]domain.Status, error) {
	query := `SELECT s.` + selectAliased() + `
              FROM statuses s
              WHERE s.user_id = $2
                AND s.archived = false
                AND s.expires_at > $3
                AND ` + visibilityPredicate + `
              ORDER BY s.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, viewerID, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("error querying owner statuses: %w", err)
	}
	return collectStatuses(rows)
}

// FindActiveVisible returns every active status the viewer may see, newest first
func (s *sqlStatusRepository) FindActiveVisible(ctx context.Context, viewerID uuid.UUID, now time.Time) ([]domain.Status, error) {
	query := `SELECT s.` + selectAliased() + `
              FROM statuses s
              WHERE s.archived = false
                AND s.expires_at > $2
                AND ` + visibilityPredicate + `
              ORDER BY s.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, viewerID, now)
	if err != nil {
		return nil, fmt.Errorf("error querying visible statuses: %w", err)
	}
	return collectStatuses(rows)
}

// FindActiveByOwners returns active statuses of the given owners visible to the viewer, newest first
func (s *sqlStatusRepository) FindActiveByOwners(ctx context.Context, viewerID uuid.UUID, ownerIDs []uuid.UUID, now time.Time) ([]domain.Status, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	query := `SELECT s.` + selectAliased() + `
              FROM statuses s
              WHERE s.user_id = ANY($2)
                AND s.archived = false
                AND s.expires_at > $3
                AND ` + visibilityPredicate + `
              ORDER BY s.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, viewerID, pq.Array(ownerIDs), now)
	if err != nil {
		return nil, fmt.Errorf("error querying owners statuses: %w", err)
	}
	return collectStatuses(rows)
}

// Delete removes a status row; views and exceptions go with it via cascade
func (s *sqlStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM statuses WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrStatusNotFound
	}
	return nil
}

// ArchiveExpired stamps every unarchived status past its expiry in one batch
func (s *sqlStatusRepository) ArchiveExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `UPDATE statuses
              SET archived = true, archived_at = $1
              WHERE archived = false AND expires_at < $1
              RETURNING id`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error archiving expired statuses: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning archived id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archived ids: %w", err)
	}
	return ids, nil
}

// FindOlderThan returns all statuses created before the cutoff, archived or not
func (s *sqlStatusRepository) FindOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE created_at < $1`

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying old statuses: %w", err)
	}
	return collectStatuses(rows)
}

// DeleteBatch removes the given status rows in one statement
func (s *sqlStatusRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM statuses WHERE id = ANY($1)`

	result, err := s.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting statuses: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

func selectAliased() string {
	return `id, s.user_id, s.content_type, s.text_content, s.media_path, s.privacy, s.created_at, s.expires_at, s.archived, s.archived_at`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatus(row rowScanner) (*domain.Status, error) {
	var st domain.Status
	var textContent, mediaPath sql.NullString
	var archivedAt sql.NullTime

	err := row.Scan(
		&st.ID,
		&st.UserID,
		&st.ContentType,
		&textContent,
		&mediaPath,
		&st.Privacy,
		&st.CreatedAt,
		&st.ExpiresAt,
		&st.Archived,
		&archivedAt,
	)
	if err != nil {
		return nil, err
	}

	if textContent.Valid {
		st.TextContent = textContent.String
	}
	if mediaPath.Valid {
		st.MediaPath = mediaPath.String
	}
	if archivedAt.Valid {
		st.ArchivedAt = &archivedAt.Time
	}
	return &st, nil
}

func collectStatuses(rows *sql.Rows) ([]domain.Status, error) {
	defer rows.Close()

	var statuses []domain.Status
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning status: %w", err)
		}
		statuses = append(statuses, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statuses: %w", err)
	}
	return statuses, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
