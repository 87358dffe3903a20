package client

import "sync"

// PaginationController tracks the current and total page for one list view.
// Both values stay at or above one; out of range navigation is clamped, not
// rejected.
type PaginationController struct {
	mu          sync.Mutex
	currentPage int
	totalPages  int
	pageSize    int
	navigate    func(page int)
}

// NewPaginationController builds a controller starting at page one.
func NewPaginationController(pageSize int) *PaginationController {
	if pageSize <= 0 {
		pageSize = 10
	}

	return &PaginationController{
		currentPage: 1,
		totalPages:  1,
		pageSize:    pageSize,
	}
}

// SetNavigate registers the callback invoked after a successful GoTo.
func (p *PaginationController) SetNavigate(fn func(page int)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.navigate = fn
}

// GoTo moves to the requested page, clamped to [1, totalPages], and triggers
// the registered refetch with otherwise unchanged filters.
func (p *PaginationController) GoTo(page int) int {
	p.mu.Lock()

	if page < 1 {
		page = 1
	}
	if page > p.totalPages {
		page = p.totalPages
	}

	p.currentPage = page
	navigate := p.navigate
	p.mu.Unlock()

	if navigate != nil {
		navigate(page)
	}

	return page
}

// Reset returns to page one without triggering a refetch. Used when a filter
// change is about to issue its own fetch.
func (p *PaginationController) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.currentPage = 1
}

// SetTotalPages records the server reported total and pulls the current page
// back into range when the list shrank underneath it.
func (p *PaginationController) SetTotalPages(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total < 1 {
		total = 1
	}

	p.totalPages = total
	if p.currentPage > total {
		p.currentPage = total
	}
}

// Current returns the current page.
func (p *PaginationController) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.currentPage
}

// TotalPages returns the last server reported page count.
func (p *PaginationController) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.totalPages
}

// PageSize returns the fixed page size for this view.
func (p *PaginationController) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pageSize
}
