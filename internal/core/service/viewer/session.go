package viewer

import (
	"context"
	"log/slog"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State represents the playback state of a viewer session
type State int

const (
	StateLoading State = iota
	StatePlaying
	StateClosed
)

// Session drives playback of one owner's active statuses: auto-advance on a
// fixed timer, manual navigation, view marking and owner deletion. A session
// is bound to the context it was opened with and must be Closed when the
// caller navigates away.
type Session struct {
	mu       sync.Mutex
	svc      port.StatusService
	viewerID uuid.UUID
	advance  time.Duration
	logger   *slog.Logger
	ctx      context.Context

	state     State
	statuses  []domain.Status
	index     int
	timer     *time.Timer
	gen       int
	enteredAt time.Time
	mediaURL  string
}

// Open fetches the owner's active statuses and starts playback at the oldest
// one. A malformed owner id or an empty status list yields an already-closed
// session, not an error; only store failures are errors.
func Open(ctx context.Context, svc port.StatusService, viewerID uuid.UUID, ownerID string, advance time.Duration, logger *slog.Logger) (*Session, error) {

	s := &Session{
		svc:      svc,
		viewerID: viewerID,
		advance:  advance,
		logger:   logger,
		ctx:      ctx,
		state:    StateLoading,
	}

	owner, err := uuid.Parse(ownerID)
	if err != nil || owner == uuid.Nil {
		s.state = StateClosed
		return s, nil
	}

	statuses, err := svc.GetUserStatuses(ctx, viewerID, owner)
	if err != nil {
		s.state = StateClosed
		return s, err
	}
	if len(statuses) == 0 {
		s.state = StateClosed
		return s, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = statuses
	s.enter(0)
	return s, nil
}

// enter moves playback to item i: resolve its media URL fresh, mark it
// viewed and arm a single cancellable auto-advance timer. Callers hold mu.
func (s *Session) enter(i int) {
	s.cancelTimerLocked()
	s.state = StatePlaying
	s.index = i
	s.mediaURL = ""

	current := s.statuses[i]
	if current.ContentType.HasMedia() {
		url, _, err := s.svc.ResolveMedia(s.ctx, s.viewerID, current.ID)
		if err != nil {
			s.logger.Warn("failed to resolve status media", "status_id", current.ID, "error", err)
		} else {
			s.mediaURL = url
		}
	}

	if err := s.svc.MarkViewed(s.ctx, current.ID, s.viewerID); err != nil {
		s.logger.Warn("failed to mark status viewed", "status_id", current.ID, "error", err)
	}

	s.enteredAt = time.Now()
	gen := s.gen
	s.timer = time.AfterFunc(s.advance, func() {
		s.autoAdvance(gen)
	})
}

// cancelTimerLocked stops the pending auto-advance and invalidates any timer
// callback already in flight. Callers hold mu.
func (s *Session) cancelTimerLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) autoAdvance(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A stale callback lost the race against a manual transition or close.
	if gen != s.gen || s.state != StatePlaying {
		return
	}
	s.advanceLocked()
}

func (s *Session) advanceLocked() {
	if s.index+1 >= len(s.statuses) {
		s.closeLocked()
		return
	}
	s.enter(s.index + 1)
}

// Next advances immediately, cancelling the running timer first so the timer
// and the manual input cannot both advance.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return
	}
	s.cancelTimerLocked()
	s.advanceLocked()
}

// Previous steps back one item; no-op on the first one.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return
	}
	if s.index == 0 {
		return
	}
	s.enter(s.index - 1)
}

// DeleteCurrent removes the currently shown status. Only the owner may
// delete; the store rejects everyone else.
func (s *Session) DeleteCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return domain.ErrStatusNotFound
	}

	current := s.statuses[s.index]
	if current.UserID != s.viewerID {
		return domain.ErrNotStatusOwner
	}

	if err := s.svc.DeleteStatus(s.ctx, s.viewerID, current.ID); err != nil {
		return err
	}

	s.statuses = append(s.statuses[:s.index], s.statuses[s.index+1:]...)
	if len(s.statuses) == 0 {
		s.closeLocked()
		return nil
	}

	next := s.index
	if next >= len(s.statuses) {
		next = len(s.statuses) - 1
	}
	s.enter(next)
	return nil
}

// Close ends the session. No timer may fire afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.cancelTimerLocked()
	s.state = StateClosed
	s.mediaURL = ""
}

// State returns the current playback state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the status being shown, if any
func (s *Session) Current() (domain.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return domain.Status{}, false
	}
	return s.statuses[s.index], true
}

// Index returns the current position within the story group
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Len returns how many statuses remain in the story group
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.statuses)
}

// MediaURL returns the signed URL for the current item, empty for text
// statuses. Re-resolved on every entry, never cached across entries.
func (s *Session) MediaURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaURL
}

// Progress derives one fill value per segment: items before the current
// index are full, the current one fills with elapsed time, later ones are
// empty.
func (s *Session) Progress(now time.Time) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := make([]float64, len(s.statuses))
	if s.state != StatePlaying {
		return segments
	}

	for i := range segments {
		switch {
		case i < s.index:
			segments[i] = 1
		case i == s.index:
			elapsed := now.Sub(s.enteredAt)
			frac := float64(elapsed) / float64(s.advance)
			if frac < 0 {
				frac = 0
			}
			if frac > 1 {
				frac = 1
			}
			segments[i] = frac
		}
	}
	return segments
}
