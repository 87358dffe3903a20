package client

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	page  Page
	calls int
}

func (s *stubLister) ListActivities(_ context.Context, _ Filter) (Page, error) {
	s.calls++

	items := make([]Activity, len(s.page.Items))
	copy(items, s.page.Items)

	return Page{Items: items, Pagination: s.page.Pagination}, nil
}

func serverPage() Page {
	return Page{
		Items: []Activity{
			{ID: 1, ActivityType: ActivityPushup, Count: 30, Status: StatusPending},
			{ID: 2, ActivityType: ActivitySitup, Count: 20, Status: StatusVerified},
			{ID: 3, ActivityType: ActivityBackup, Count: 15, Status: StatusRejected},
		},
		Pagination: Pagination{Page: 1, PageSize: 10, TotalItems: 3, TotalPages: 1},
	}
}

func TestStudentFetchExcludesHiddenActivities(t *testing.T) {
	overlay := NewOverlay(NewMemoryStore())
	require.NoError(t, overlay.Hide(7, 2))

	store := NewRecordStore(&stubLister{page: serverPage()}, overlay, RoleStudent, 7, zerolog.Nop())

	page, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		require.NotEqual(t, uint(2), item.ID)
	}
}

func TestTeacherFetchIgnoresStudentOverlay(t *testing.T) {
	overlay := NewOverlay(NewMemoryStore())
	require.NoError(t, overlay.Hide(7, 2))

	store := NewRecordStore(&stubLister{page: serverPage()}, overlay, RoleTeacher, 9, zerolog.Nop())

	page, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
}

func TestFetchKeepsServerPaginationTotals(t *testing.T) {
	overlay := NewOverlay(NewMemoryStore())
	require.NoError(t, overlay.Hide(7, 1))
	require.NoError(t, overlay.Hide(7, 3))

	store := NewRecordStore(&stubLister{page: serverPage()}, overlay, RoleStudent, 7, zerolog.Nop())

	page, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, int64(3), page.Pagination.TotalItems)
	require.Equal(t, 1, page.Pagination.TotalPages)
}

func TestFetchIsPureRead(t *testing.T) {
	lister := &stubLister{page: serverPage()}
	store := NewRecordStore(lister, NewOverlay(NewMemoryStore()), RoleStudent, 7, zerolog.Nop())

	first, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	second, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 2, lister.calls)
}

func TestHideIsNoOpForStaff(t *testing.T) {
	overlay := NewOverlay(NewMemoryStore())
	store := NewRecordStore(&stubLister{page: serverPage()}, overlay, RoleAdmin, 4, zerolog.Nop())

	require.NoError(t, store.Hide(2))

	ids, err := overlay.ListHidden(4)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestStudentHideThenFetchNeverReturnsIt(t *testing.T) {
	lister := &stubLister{page: serverPage()}
	overlay := NewOverlay(NewMemoryStore())
	store := NewRecordStore(lister, overlay, RoleStudent, 7, zerolog.Nop())

	require.NoError(t, store.Hide(1))

	for i := 0; i < 3; i++ {
		page, err := store.Fetch(context.Background(), Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		for _, item := range page.Items {
			require.NotEqual(t, uint(1), item.ID)
		}
	}
}
