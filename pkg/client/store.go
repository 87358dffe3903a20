package client

import (
	"context"

	"github.com/rs/zerolog"
)

// ActivityLister fetches filtered activity pages. *Client satisfies it; tests
// substitute a stub.
type ActivityLister interface {
	ListActivities(ctx context.Context, filter Filter) (Page, error)
}

// RecordStore reconciles server activity pages with the caller's overlay.
// Fetching is a pure read: repeated calls with the same filter never mutate
// local or server state.
type RecordStore struct {
	api     ActivityLister
	overlay *Overlay
	role    string
	userID  uint
	logger  zerolog.Logger
}

// NewRecordStore builds a store for the given caller. overlay may be nil for
// staff roles, which never consult it.
func NewRecordStore(api ActivityLister, overlay *Overlay, role string, userID uint, logger zerolog.Logger) *RecordStore {
	return &RecordStore{
		api:     api,
		overlay: overlay,
		role:    role,
		userID:  userID,
		logger:  logger.With().Str("component", "record_store").Logger(),
	}
}

// Fetch retrieves one page and, for student callers, drops activities the
// student has hidden. Pagination totals stay server truth, so a page with
// hidden items renders short rather than backfilling from the next page.
func (s *RecordStore) Fetch(ctx context.Context, filter Filter) (Page, error) {
	page, err := s.api.ListActivities(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	if s.role != RoleStudent || s.overlay == nil {
		return page, nil
	}

	visible := make([]Activity, 0, len(page.Items))
	for _, item := range page.Items {
		hidden, err := s.overlay.IsHidden(s.userID, item.ID)
		if err != nil {
			return Page{}, err
		}
		if hidden {
			continue
		}
		visible = append(visible, item)
	}

	if dropped := len(page.Items) - len(visible); dropped > 0 {
		s.logger.Debug().Int("hidden", dropped).Msg("overlay filtered activities from page")
	}

	page.Items = visible

	return page, nil
}

// Hide soft-hides an activity from the current student's view. It never
// contacts the server and is a no-op for staff callers.
func (s *RecordStore) Hide(activityID uint) error {
	if s.role != RoleStudent || s.overlay == nil {
		return nil
	}

	return s.overlay.Hide(s.userID, activityID)
}
