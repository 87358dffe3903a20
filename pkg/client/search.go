package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the delay between the last keystroke and the fetch it
// triggers.
const DefaultDebounce = 500 * time.Millisecond

// FetchFunc retrieves one page of activities. RecordStore.Fetch satisfies it.
type FetchFunc func(ctx context.Context, filter Filter) (Page, error)

// SearchController drives a list view: it debounces free text input, applies
// filter changes, and serializes results so the view always reflects the
// most recently issued request. Every fetch carries a generation number;
// a response whose generation is no longer current is dropped, so a slow
// stale fetch can never overwrite a newer one.
type SearchController struct {
	mu         sync.Mutex
	fetch      FetchFunc
	pagination *PaginationController
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	base       Filter
	query      string
	onResult   func(Page)
	onError    func(error)
	ctx        context.Context
	logger     zerolog.Logger
}

// SearchOption customises controller construction.
type SearchOption func(*SearchController)

// WithDebounce overrides the debounce delay. Tests shorten it.
func WithDebounce(d time.Duration) SearchOption {
	return func(s *SearchController) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithResultHandler registers the callback receiving accepted pages.
func WithResultHandler(fn func(Page)) SearchOption {
	return func(s *SearchController) {
		s.onResult = fn
	}
}

// WithErrorHandler registers the callback receiving fetch failures.
func WithErrorHandler(fn func(error)) SearchOption {
	return func(s *SearchController) {
		s.onError = fn
	}
}

// WithContext sets the context attached to issued fetches.
func WithContext(ctx context.Context) SearchOption {
	return func(s *SearchController) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithSearchLogger attaches a structured logger.
func WithSearchLogger(logger zerolog.Logger) SearchOption {
	return func(s *SearchController) {
		s.logger = logger.With().Str("component", "search_controller").Logger()
	}
}

// NewSearchController wires a controller to its fetch function and
// pagination state. Page navigation refetches through the same generation
// gate as searches, so a stale page can never clobber a newer one.
func NewSearchController(fetch FetchFunc, pagination *PaginationController, opts ...SearchOption) *SearchController {
	s := &SearchController{
		fetch:      fetch,
		pagination: pagination,
		delay:      DefaultDebounce,
		ctx:        context.Background(),
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	pagination.SetNavigate(func(page int) {
		s.fireAt(page, false)
	})

	return s
}

// SetQuery records a new raw search input. The fetch fires once the input
// has been stable for the debounce delay; intermediate values never reach
// the server.
func (s *SearchController) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.fireAt(1, true)
	})
	s.mu.Unlock()
}

// SetFilter replaces the non-search filter fields (class, student, status)
// and refetches immediately from page one.
func (s *SearchController) SetFilter(base Filter) {
	s.mu.Lock()
	base.Search = ""
	base.Page = 0
	s.base = base
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.fireAt(1, true)
}

// Refresh refetches the current page with unchanged filters. Called after a
// verification or deletion invalidates the displayed list.
func (s *SearchController) Refresh() {
	s.fireAt(s.pagination.Current(), false)
}

func (s *SearchController) fireAt(page int, resetPage bool) {
	s.mu.Lock()
	s.generation++
	gen := s.generation

	if resetPage {
		s.pagination.Reset()
		page = 1
	}

	filter := s.base
	filter.Search = s.query
	filter.Page = page
	filter.PageSize = s.pagination.PageSize()
	ctx := s.ctx
	s.mu.Unlock()

	go func() {
		result, err := s.fetch(ctx, filter)
		s.apply(gen, result, err)
	}()
}

func (s *SearchController) apply(gen uint64, result Page, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug().Uint64("generation", gen).Msg("discarded stale fetch result")

		return
	}
	onResult := s.onResult
	onError := s.onError
	s.mu.Unlock()

	if err != nil {
		if onError != nil {
			onError(err)
		}

		return
	}

	s.pagination.SetTotalPages(result.Pagination.TotalPages)
	if onResult != nil {
		onResult(result)
	}
}
