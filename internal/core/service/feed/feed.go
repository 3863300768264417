package feed

import (
	"context"
	"log/slog"
	"sort"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"

	"github.com/google/uuid"
)

type feedService struct {
	uow    port.UnitOfWork
	logger *slog.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(uow port.UnitOfWork, logger *slog.Logger) port.FeedService {
	return &feedService{uow: uow, logger: logger}
}

// aggregate reduces a newest-first status list to one item per owner,
// computes per-viewer unread state and applies the feed ordering: the
// viewer's own item first, then unviewed before viewed, then newest first.
func (f *feedService) aggregate(ctx context.Context, viewerID uuid.UUID, statuses []domain.Status) ([]domain.FeedItem, error) {

	// The per-owner reduction keeps the first status encountered, which is
	// only the latest one if the list is newest-first. Re-sort instead of
	// trusting the store's call order.
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].CreatedAt.After(statuses[j].CreatedAt)
	})

	seen := make(map[uuid.UUID]struct{}, len(statuses))
	items := make([]domain.FeedItem, 0, len(statuses))
	for _, st := range statuses {
		if _, ok := seen[st.UserID]; ok {
			continue
		}
		seen[st.UserID] = struct{}{}

		item := domain.FeedItem{UserID: st.UserID, Latest: st}

		if st.UserID == viewerID {
			// An owner never sees their own status as unread.
			items = append(items, item)
			continue
		}

		viewed, err := f.uow.ViewRepo().Exists(ctx, st.ID, viewerID)
		if err != nil {
			return nil, err
		}
		item.HasUnviewed = !viewed
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.UserID == viewerID) != (b.UserID == viewerID) {
			return a.UserID == viewerID
		}
		if a.HasUnviewed != b.HasUnviewed {
			return a.HasUnviewed
		}
		return a.Latest.CreatedAt.After(b.Latest.CreatedAt)
	})

	if err := f.decorate(ctx, items); err != nil {
		// Feeds still render without display profiles.
		f.logger.Warn("failed to load feed profiles", "error", err)
	}

	return items, nil
}

func (f *feedService) decorate(ctx context.Context, items []domain.FeedItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.UserID)
	}

	profiles, err := f.uow.ProfileRepo().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		if p, ok := profiles[items[i].UserID]; ok {
			profile := p
			items[i].Profile = &profile
		}
	}
	return nil
}
