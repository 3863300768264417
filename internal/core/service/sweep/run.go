package sweep

import (
	"context"
	"fmt"
	"statushub/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// Run executes one sweeper invocation: archive statuses past their expiry,
// then purge records and media past the retention window. Both passes are
// pure functions of now vs stored timestamps, so re-running with no time
// elapsed is a no-op and missed invocations still converge.
func (s *sweepService) Run(ctx context.Context, now time.Time) (domain.SweepReport, error) {

	report := domain.SweepReport{Errors: []string{}}

	archiveErr := s.archivePass(ctx, now, &report)
	if archiveErr != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("archive pass: %v", archiveErr))
		s.logger.Error("archive pass failed", "error", archiveErr)
	}

	// The purge pass runs regardless of the archive outcome.
	purgeErr := s.purgePass(ctx, now, &report)
	if purgeErr != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("purge pass: %v", purgeErr))
		s.logger.Error("purge pass failed", "error", purgeErr)
	}

	if archiveErr != nil && purgeErr != nil {
		return report, fmt.Errorf("sweep failed to reach store: %w", archiveErr)
	}

	s.logger.Info("sweep completed", "archived", report.Archived, "deleted", report.Deleted, "errors", len(report.Errors))
	return report, nil
}

// archivePass soft-hides everything past expiry in one batch. Media is left
// untouched until the purge pass.
func (s *sweepService) archivePass(ctx context.Context, now time.Time, report *domain.SweepReport) error {

	ids, err := s.uow.StatusRepo().ArchiveExpired(ctx, now)
	if err != nil {
		return err
	}
	report.Archived = len(ids)

	if len(ids) > 0 && s.publisher != nil {
		event := domain.StatusEvent{
			Type:       domain.EventTypeStatusArchived,
			StatusIDs:  ids,
			OccurredAt: now,
		}
		if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
			s.logger.Warn("failed to publish archive event", "error", pubErr)
		}
	}

	return nil
}

// purgePass deletes records and backing media older than the retention
// window. A blob that is already gone must not keep its record alive.
func (s *sweepService) purgePass(ctx context.Context, now time.Time, report *domain.SweepReport) error {

	cutoff := now.Add(-s.statusCfg.Retention)
	expired, err := s.uow.StatusRepo().FindOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, st := range expired {
		if st.MediaPath != "" {
			if rmErr := s.media.Remove(ctx, st.MediaPath); rmErr != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("remove media %s: %v", st.MediaPath, rmErr))
				s.logger.Warn("failed to remove status media", "path", st.MediaPath, "error", rmErr)
			}
		}
		ids = append(ids, st.ID)
	}

	deleted, err := s.uow.StatusRepo().DeleteBatch(ctx, ids)
	if err != nil {
		return err
	}
	report.Deleted = deleted

	return nil
}
