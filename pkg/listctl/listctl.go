package listctl

import (
	"context"
	"sync"
	"time"

	"github.com/rvasanth/distributor-console/pkg/models"
)

// Filters is the visible filter state of a list-and-export view. Free-text
// search is client-side only; every other field is a server-side filter
// that takes effect when applied, not while being edited.
type Filters struct {
	Page     int
	PageSize int
	Search   string
	From     time.Time
	To       time.Time
	Status   string
}

// serverEqual reports whether the server-side filter fields (everything
// except Page and Search) match.
func (f Filters) serverEqual(o Filters) bool {
	return f.PageSize == o.PageSize &&
		f.From.Equal(o.From) &&
		f.To.Equal(o.To) &&
		f.Status == o.Status
}

func (f Filters) query() models.ListQuery {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return models.ListQuery{
		Limit:  f.PageSize,
		Offset: (page - 1) * f.PageSize,
		From:   f.From,
		To:     f.To,
		Status: f.Status,
	}
}

// Fetcher retrieves one page of rows plus the total row count.
type Fetcher[T any] func(ctx context.Context, q models.ListQuery) ([]T, int, error)

// Matcher reports whether a row matches a free-text search term.
type Matcher[T any] func(item T, query string) bool

// Controller is the page/size/search/date-range filter state machine
// shared by every statement view. Edited filters do not touch the network;
// only Apply (or a page change) refetches, so typing in a filter never
// issues a request per keystroke.
type Controller[T any] struct {
	fetch Fetcher[T]
	match Matcher[T]

	mu      sync.Mutex
	edited  Filters
	applied Filters
	items   []T
	total   int
	fetched bool
}

// New creates a Controller starting at page 1 with the given page size.
func New[T any](fetch Fetcher[T], match Matcher[T], pageSize int) *Controller[T] {
	initial := Filters{Page: 1, PageSize: pageSize}
	return &Controller[T]{
		fetch:   fetch,
		match:   match,
		edited:  initial,
		applied: initial,
	}
}

// Edit mutates the pending filter state without fetching.
func (c *Controller[T]) Edit(mutate func(*Filters)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate(&c.edited)
}

// Apply commits the edited filters and refetches. Changing any filter
// other than free-text search resets the page to 1.
func (c *Controller[T]) Apply(ctx context.Context) error {
	c.mu.Lock()
	next := c.edited
	if !next.serverEqual(c.applied) {
		next.Page = 1
	}
	c.mu.Unlock()

	return c.runFetch(ctx, next)
}

// SetPage moves to the given page and refetches. Page moves never reset
// the other filters.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	next := c.applied
	next.Page = page
	c.edited = next
	c.mu.Unlock()

	return c.runFetch(ctx, next)
}

// SetSearch updates the free-text term. It filters the already-fetched
// page client-side and never triggers a network call.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edited.Search = term
	c.applied.Search = term
}

// Sync reconciles an incoming filter snapshot (one UI request) with the
// applied state: search-only changes stay client-side, page moves refetch
// that page, and any other change applies with a page reset. A fetch also
// runs the first time through.
func (c *Controller[T]) Sync(ctx context.Context, incoming Filters) error {
	c.mu.Lock()
	if incoming.PageSize <= 0 {
		incoming.PageSize = c.applied.PageSize
	}
	if incoming.Page < 1 {
		incoming.Page = 1
	}

	needFetch := !c.fetched
	if !incoming.serverEqual(c.applied) {
		incoming.Page = 1
		needFetch = true
	} else if incoming.Page != c.applied.Page {
		needFetch = true
	}

	if !needFetch {
		c.edited.Search = incoming.Search
		c.applied.Search = incoming.Search
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.runFetch(ctx, incoming)
}

func (c *Controller[T]) runFetch(ctx context.Context, next Filters) error {
	items, total, err := c.fetch(ctx, next.query())
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.edited = next
	c.applied = next
	c.items = items
	c.total = total
	c.fetched = true
	c.mu.Unlock()
	return nil
}

// Items returns the visible slice: the fetched page filtered by the
// current search term.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.applied.Search == "" || c.match == nil {
		return append([]T(nil), c.items...)
	}

	var visible []T
	for _, item := range c.items {
		if c.match(item, c.applied.Search) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Total returns the server-reported total row count.
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Applied returns the last applied filter state.
func (c *Controller[T]) Applied() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}
