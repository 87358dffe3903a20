package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fetchRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *fetchRecorder) fetch(_ context.Context, filter Filter) (Page, error) {
	r.mu.Lock()
	r.queries = append(r.queries, filter.Search)
	r.mu.Unlock()

	return Page{Pagination: Pagination{Page: filter.Page, TotalPages: 3}}, nil
}

func (r *fetchRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.queries))
	copy(out, r.queries)

	return out
}

func TestSearchDebouncesToSingleFetch(t *testing.T) {
	recorder := &fetchRecorder{}
	results := make(chan Page, 4)

	pagination := NewPaginationController(10)
	controller := NewSearchController(recorder.fetch, pagination,
		WithDebounce(80*time.Millisecond),
		WithResultHandler(func(p Page) { results <- p }),
	)

	controller.SetQuery("a")
	time.Sleep(10 * time.Millisecond)
	controller.SetQuery("an")
	time.Sleep(10 * time.Millisecond)
	controller.SetQuery("and")

	select {
	case <-results:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced fetch never fired")
	}

	require.Equal(t, []string{"and"}, recorder.recorded())

	select {
	case <-results:
		t.Fatal("unexpected extra fetch")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSearchResetsToPageOne(t *testing.T) {
	recorder := &fetchRecorder{}
	results := make(chan Page, 4)

	pagination := NewPaginationController(10)
	pagination.SetTotalPages(3)
	controller := NewSearchController(recorder.fetch, pagination,
		WithDebounce(10*time.Millisecond),
		WithResultHandler(func(p Page) { results <- p }),
	)

	pagination.GoTo(3)
	<-results
	require.Equal(t, 3, pagination.Current())

	controller.SetQuery("push")

	select {
	case page := <-results:
		require.Equal(t, 1, page.Pagination.Page)
	case <-time.After(2 * time.Second):
		t.Fatal("search fetch never fired")
	}
	require.Equal(t, 1, pagination.Current())
}

func TestStaleFetchResultIsDiscarded(t *testing.T) {
	releaseX := make(chan struct{})
	started := make(chan string, 4)
	results := make(chan string, 4)

	fetch := func(_ context.Context, filter Filter) (Page, error) {
		started <- filter.Search
		if filter.Search == "x" {
			<-releaseX
		}

		return Page{
			Items:      []Activity{{ImageURL: filter.Search}},
			Pagination: Pagination{TotalPages: 1},
		}, nil
	}

	pagination := NewPaginationController(10)
	controller := NewSearchController(fetch, pagination,
		WithDebounce(10*time.Millisecond),
		WithResultHandler(func(p Page) { results <- p.Items[0].ImageURL }),
	)

	controller.SetQuery("x")
	select {
	case q := <-started:
		require.Equal(t, "x", q)
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch never started")
	}

	controller.SetQuery("y")
	select {
	case q := <-results:
		require.Equal(t, "y", q)
	case <-time.After(2 * time.Second):
		t.Fatal("second fetch never resolved")
	}

	close(releaseX)

	select {
	case q := <-results:
		t.Fatalf("stale result %q was applied", q)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRefreshKeepsCurrentPage(t *testing.T) {
	recorder := &fetchRecorder{}
	results := make(chan Page, 4)

	pagination := NewPaginationController(10)
	pagination.SetTotalPages(3)
	controller := NewSearchController(recorder.fetch, pagination,
		WithDebounce(10*time.Millisecond),
		WithResultHandler(func(p Page) { results <- p }),
	)

	pagination.GoTo(2)
	<-results

	controller.Refresh()
	select {
	case page := <-results:
		require.Equal(t, 2, page.Pagination.Page)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh fetch never resolved")
	}
	require.Equal(t, 2, pagination.Current())
}
