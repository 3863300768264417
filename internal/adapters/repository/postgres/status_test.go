package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"statushub/internal/core/domain"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertProfile(t *testing.T, db *sql.DB, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO profiles (id, username, display_name) VALUES ($1, $2, $3)`, id, username, username)
	require.NoError(t, err)
	return id
}

func insertConnection(t *testing.T, db *sql.DB, userID, connectedID uuid.UUID, status string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO connections (user_id, connected_user_id, status) VALUES ($1, $2, $3)`, userID, connectedID, status)
	require.NoError(t, err)
}

func newStatus(ownerID uuid.UUID, privacy domain.PrivacyLevel, createdAt time.Time) domain.Status {
	return domain.Status{
		ID:          uuid.New(),
		UserID:      ownerID,
		ContentType: domain.ContentTypeText,
		TextContent: "hi",
		Privacy:     privacy,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(24 * time.Hour),
	}
}

func TestStatusRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup, truncateAll := NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSqlStatusRepository(db)
	now := time.Now().UTC()

	t.Run("create and find round trip", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")

		st := newStatus(ownerID, domain.PrivacyPublic, now)
		st.ContentType = domain.ContentTypeImage
		st.TextContent = ""
		st.MediaPath = "status/" + ownerID.String() + "/" + st.ID.String() + ".jpg"

		require.NoError(t, repo.Create(ctx, st))

		found, err := repo.FindByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, st.ID, found.ID)
		assert.Equal(t, st.MediaPath, found.MediaPath)
		assert.Empty(t, found.TextContent)
		assert.False(t, found.Archived)
		assert.Nil(t, found.ArchivedAt)
	})

	t.Run("find missing status", func(t *testing.T) {
		truncateAll()

		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, domain.ErrStatusNotFound)
	})

	t.Run("find visible by id distinguishes hidden from missing", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		friendID := insertProfile(t, db, "friend")
		strangerID := insertProfile(t, db, "stranger")

		insertConnection(t, db, ownerID, friendID, "accepted")

		friends := newStatus(ownerID, domain.PrivacyFriends, now.Add(-time.Hour))
		require.NoError(t, repo.Create(ctx, friends))

		found, err := repo.FindVisibleByID(ctx, friendID, friends.ID)
		require.NoError(t, err)
		assert.Equal(t, friends.ID, found.ID)

		owned, err := repo.FindVisibleByID(ctx, ownerID, friends.ID)
		require.NoError(t, err)
		assert.Equal(t, friends.ID, owned.ID)

		_, err = repo.FindVisibleByID(ctx, strangerID, friends.ID)
		assert.ErrorIs(t, err, domain.ErrStatusNotVisible)

		_, err = repo.FindVisibleByID(ctx, strangerID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrStatusNotFound)
	})

	t.Run("visibility predicate", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		friendID := insertProfile(t, db, "friend")
		allowedID := insertProfile(t, db, "allowed")
		strangerID := insertProfile(t, db, "stranger")

		// The friendship row points friend -> owner; the predicate must match
		// both directions.
		insertConnection(t, db, friendID, ownerID, "accepted")
		insertConnection(t, db, strangerID, ownerID, "pending")

		public := newStatus(ownerID, domain.PrivacyPublic, now.Add(-4*time.Hour))
		friends := newStatus(ownerID, domain.PrivacyFriends, now.Add(-3*time.Hour))
		onlyMe := newStatus(ownerID, domain.PrivacyOnlyMe, now.Add(-2*time.Hour))
		custom := newStatus(ownerID, domain.PrivacyCustom, now.Add(-time.Hour))
		for _, st := range []domain.Status{public, friends, onlyMe, custom} {
			require.NoError(t, repo.Create(ctx, st))
		}

		exceptionRepo := NewSqlVisibilityExceptionRepository(db)
		_, err := exceptionRepo.CreateMany(ctx, custom.ID, []uuid.UUID{allowedID})
		require.NoError(t, err)

		visibleIDs := func(viewerID uuid.UUID) map[uuid.UUID]bool {
			statuses, err := repo.FindActiveVisible(ctx, viewerID, now)
			require.NoError(t, err)
			ids := make(map[uuid.UUID]bool, len(statuses))
			for _, st := range statuses {
				ids[st.ID] = true
			}
			return ids
		}

		ownerSees := visibleIDs(ownerID)
		assert.Len(t, ownerSees, 4, "the owner sees everything they posted")

		friendSees := visibleIDs(friendID)
		assert.True(t, friendSees[public.ID])
		assert.True(t, friendSees[friends.ID])
		assert.False(t, friendSees[onlyMe.ID])
		assert.False(t, friendSees[custom.ID])

		allowedSees := visibleIDs(allowedID)
		assert.True(t, allowedSees[public.ID])
		assert.False(t, allowedSees[friends.ID])
		assert.True(t, allowedSees[custom.ID])

		strangerSees := visibleIDs(strangerID)
		assert.True(t, strangerSees[public.ID])
		assert.False(t, strangerSees[friends.ID], "a pending connection grants nothing")
		assert.False(t, strangerSees[onlyMe.ID])
		assert.False(t, strangerSees[custom.ID])
	})

	t.Run("expired and archived statuses are invisible", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")

		expired := newStatus(ownerID, domain.PrivacyPublic, now.Add(-30*time.Hour))
		archived := newStatus(ownerID, domain.PrivacyPublic, now.Add(-time.Hour))
		live := newStatus(ownerID, domain.PrivacyPublic, now.Add(-time.Minute))
		for _, st := range []domain.Status{expired, archived, live} {
			require.NoError(t, repo.Create(ctx, st))
		}
		_, err := db.Exec(`UPDATE statuses SET archived = true, archived_at = $1 WHERE id = $2`, now, archived.ID)
		require.NoError(t, err)

		statuses, err := repo.FindActiveVisible(ctx, ownerID, now)
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, live.ID, statuses[0].ID)
	})

	t.Run("owner statuses come back oldest first", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")

		second := newStatus(ownerID, domain.PrivacyPublic, now.Add(-time.Hour))
		first := newStatus(ownerID, domain.PrivacyPublic, now.Add(-2*time.Hour))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, first))

		statuses, err := repo.FindActiveByOwner(ctx, ownerID, ownerID, now)
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.Equal(t, first.ID, statuses[0].ID)
		assert.Equal(t, second.ID, statuses[1].ID)
	})

	t.Run("owners filter returns newest first", func(t *testing.T) {
		truncateAll()
		aID := insertProfile(t, db, "a")
		bID := insertProfile(t, db, "b")
		cID := insertProfile(t, db, "c")

		fromA := newStatus(aID, domain.PrivacyPublic, now.Add(-2*time.Hour))
		fromB := newStatus(bID, domain.PrivacyPublic, now.Add(-time.Hour))
		fromC := newStatus(cID, domain.PrivacyPublic, now.Add(-time.Minute))
		for _, st := range []domain.Status{fromA, fromB, fromC} {
			require.NoError(t, repo.Create(ctx, st))
		}

		statuses, err := repo.FindActiveByOwners(ctx, aID, []uuid.UUID{aID, bID}, now)
		require.NoError(t, err)
		require.Len(t, statuses, 2, "c is not in the owner set")
		assert.Equal(t, fromB.ID, statuses[0].ID)
		assert.Equal(t, fromA.ID, statuses[1].ID)
	})

	t.Run("archive expired is a converging batch", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")

		expired := newStatus(ownerID, domain.PrivacyPublic, now.Add(-30*time.Hour))
		live := newStatus(ownerID, domain.PrivacyPublic, now.Add(-time.Hour))
		require.NoError(t, repo.Create(ctx, expired))
		require.NoError(t, repo.Create(ctx, live))

		ids, err := repo.ArchiveExpired(ctx, now)
		require.NoError(t, err)
		require.Len(t, ids, 1)
		assert.Equal(t, expired.ID, ids[0])

		archived, err := repo.FindByID(ctx, expired.ID)
		require.NoError(t, err)
		assert.True(t, archived.Archived)
		require.NotNil(t, archived.ArchivedAt)

		// Re-running with the same clock does nothing.
		ids, err = repo.ArchiveExpired(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("purge selection and batch delete", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")

		old := newStatus(ownerID, domain.PrivacyPublic, now.Add(-50*time.Hour))
		recent := newStatus(ownerID, domain.PrivacyPublic, now.Add(-30*time.Hour))
		require.NoError(t, repo.Create(ctx, old))
		require.NoError(t, repo.Create(ctx, recent))

		found, err := repo.FindOlderThan(ctx, now.Add(-48*time.Hour))
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, old.ID, found[0].ID)

		deleted, err := repo.DeleteBatch(ctx, []uuid.UUID{old.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		_, err = repo.FindByID(ctx, old.ID)
		assert.ErrorIs(t, err, domain.ErrStatusNotFound)
	})

	t.Run("delete cascades to views and exceptions", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		viewerID := insertProfile(t, db, "viewer")

		st := newStatus(ownerID, domain.PrivacyCustom, now)
		require.NoError(t, repo.Create(ctx, st))

		viewRepo := NewSqlStatusViewRepository(db)
		exceptionRepo := NewSqlVisibilityExceptionRepository(db)
		_, err := exceptionRepo.CreateMany(ctx, st.ID, []uuid.UUID{viewerID})
		require.NoError(t, err)
		require.NoError(t, viewRepo.Upsert(ctx, st.ID, viewerID, now))

		require.NoError(t, repo.Delete(ctx, st.ID))

		var views, exceptions int
		require.NoError(t, db.QueryRow(`SELECT count(*) FROM status_views`).Scan(&views))
		require.NoError(t, db.QueryRow(`SELECT count(*) FROM status_visibility_exceptions`).Scan(&exceptions))
		assert.Zero(t, views)
		assert.Zero(t, exceptions)
	})

	t.Run("delete missing status", func(t *testing.T) {
		truncateAll()

		err := repo.Delete(ctx, uuid.New())

		assert.ErrorIs(t, err, domain.ErrStatusNotFound)
	})
}

func TestStatusViewRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup, truncateAll := NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	statusRepo := NewSqlStatusRepository(db)
	viewRepo := NewSqlStatusViewRepository(db)
	now := time.Now().UTC()

	t.Run("upsert is idempotent", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		viewerID := insertProfile(t, db, "viewer")

		st := newStatus(ownerID, domain.PrivacyPublic, now)
		require.NoError(t, statusRepo.Create(ctx, st))

		require.NoError(t, viewRepo.Upsert(ctx, st.ID, viewerID, now))
		require.NoError(t, viewRepo.Upsert(ctx, st.ID, viewerID, now.Add(time.Minute)))

		count, err := viewRepo.CountByStatus(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		exists, err := viewRepo.Exists(ctx, st.ID, viewerID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("exists is per viewer", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		viewerID := insertProfile(t, db, "viewer")
		otherID := insertProfile(t, db, "other")

		st := newStatus(ownerID, domain.PrivacyPublic, now)
		require.NoError(t, statusRepo.Create(ctx, st))
		require.NoError(t, viewRepo.Upsert(ctx, st.ID, viewerID, now))

		exists, err := viewRepo.Exists(ctx, st.ID, otherID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestConnectionRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup, truncateAll := NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSqlConnectionRepository(db)

	t.Run("accepted ids are bidirectional", func(t *testing.T) {
		truncateAll()
		meID := insertProfile(t, db, "me")
		outboundID := insertProfile(t, db, "outbound")
		inboundID := insertProfile(t, db, "inbound")
		pendingID := insertProfile(t, db, "pending")

		insertConnection(t, db, meID, outboundID, "accepted")
		insertConnection(t, db, inboundID, meID, "accepted")
		insertConnection(t, db, meID, pendingID, "pending")

		ids, err := repo.FindAcceptedIDs(ctx, meID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{outboundID, inboundID}, ids)
	})

	t.Run("no connections yields an empty set", func(t *testing.T) {
		truncateAll()
		meID := insertProfile(t, db, "me")

		ids, err := repo.FindAcceptedIDs(ctx, meID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestProfileRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup, truncateAll := NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSqlProfileRepository(db)

	truncateAll()
	aID := insertProfile(t, db, "a")
	bID := insertProfile(t, db, "b")

	profiles, err := repo.FindByIDs(ctx, []uuid.UUID{aID, bID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, profiles, 2, "unknown ids are simply absent")
	assert.Equal(t, "a", profiles[aID].Username)
	assert.Equal(t, "b", profiles[bID].Username)
}

func TestVisibilityExceptionRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup, truncateAll := NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	statusRepo := NewSqlStatusRepository(db)
	repo := NewSqlVisibilityExceptionRepository(db)
	now := time.Now().UTC()

	t.Run("create many deduplicates", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		allowedID := insertProfile(t, db, "allowed")

		st := newStatus(ownerID, domain.PrivacyCustom, now)
		require.NoError(t, statusRepo.Create(ctx, st))

		inserted, err := repo.CreateMany(ctx, st.ID, []uuid.UUID{allowedID, allowedID})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
	})

	t.Run("delete by status id", func(t *testing.T) {
		truncateAll()
		ownerID := insertProfile(t, db, "owner")
		allowedID := insertProfile(t, db, "allowed")

		st := newStatus(ownerID, domain.PrivacyCustom, now)
		require.NoError(t, statusRepo.Create(ctx, st))
		_, err := repo.CreateMany(ctx, st.ID, []uuid.UUID{allowedID})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteByStatusID(ctx, st.ID))

		var count int
		require.NoError(t, db.QueryRow(`SELECT count(*) FROM status_visibility_exceptions`).Scan(&count))
		assert.Zero(t, count)
	})
}
