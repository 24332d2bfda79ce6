package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/JaimeStill/catalog-lab/pkg/debounce"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/urlstate"
)

// Fetcher loads a page of results for the given query state.
type Fetcher[T any] func(ctx context.Context, query url.Values) (*pagination.Page[T], error)

// Controller drives a server-paginated list view. Filter edits on
// debounced keys settle through a quiet interval before reaching the
// URL state; every URL change triggers a fetch. Responses apply
// last-request-wins: a fetch superseded by a newer one is canceled and
// its result discarded, so rapid parameter changes can never render a
// stale page over a fresh one.
type Controller[T any] struct {
	mu        sync.Mutex
	store     *urlstate.Store
	defaults  map[string]any
	fetch     Fetcher[T]
	onUpdate  func()
	debounced map[string]*debounce.Synchronizer

	seq     uint64
	cancel  context.CancelFunc
	page    *pagination.Page[T]
	err     error
	loading bool
	stale   bool
}

// NewController creates a Controller over u. debouncedKeys names the
// filter parameters that settle through delay before fetching; edits to
// any other parameter fetch immediately. onUpdate, when non-nil, runs
// after every completed fetch.
func NewController[T any](u *url.URL, defaults map[string]any, debouncedKeys []string, delay time.Duration, fetch Fetcher[T], onUpdate func()) *Controller[T] {
	c := &Controller[T]{
		defaults: defaults,
		fetch:    fetch,
		onUpdate: onUpdate,
		stale:    true,
	}
	c.store = urlstate.NewStore(u, defaults, func(*url.URL) { c.refresh() })

	state := c.store.Read()
	c.debounced = make(map[string]*debounce.Synchronizer, len(debouncedKeys))
	for _, key := range debouncedKeys {
		c.debounced[key] = debounce.New(stringValue(state[key]), delay, func(value string) {
			c.store.Write(map[string]any{key: value, "page": 1})
		})
	}
	return c
}

// EditFilter records a filter edit. Debounced keys settle after the
// quiet interval; other keys take effect immediately. Any filter change
// returns the view to the first page.
func (c *Controller[T]) EditFilter(key, value string) {
	if s, ok := c.debounced[key]; ok {
		s.Edit(value)
		return
	}
	c.store.Write(map[string]any{key: value, "page": 1})
}

// FilterValue returns the in-progress value of a debounced filter, or
// the current URL state for any other key.
func (c *Controller[T]) FilterValue(key string) string {
	if s, ok := c.debounced[key]; ok {
		return s.Value()
	}
	return stringValue(c.store.Read()[key])
}

// Flush settles all pending filter edits immediately.
func (c *Controller[T]) Flush() {
	for _, s := range c.debounced {
		s.Flush()
	}
}

// SetPage navigates to the given page.
func (c *Controller[T]) SetPage(page int) {
	c.store.Write(map[string]any{"page": page})
}

// SetLimit changes the page size and returns to the first page.
func (c *Controller[T]) SetLimit(limit int) {
	c.store.Write(map[string]any{"limit": limit, "page": 1})
}

// SetSort changes the sort column and direction and returns to the
// first page.
func (c *Controller[T]) SetSort(sortBy, sortOrder string) {
	c.store.Write(map[string]any{"sortBy": sortBy, "sortOrder": sortOrder, "page": 1})
}

// Navigate applies an externally changed query, as on history
// back/forward. Debounced filters resynchronize to the external values
// unless the change merely echoes their own last settled emission, so
// in-progress edits survive the round trip through the URL.
func (c *Controller[T]) Navigate(query url.Values) {
	state := urlstate.Read(query, c.defaults)
	for key, s := range c.debounced {
		s.Sync(stringValue(state[key]))
	}
	c.store.Write(state)
}

// URL returns a copy of the current list URL.
func (c *Controller[T]) URL() *url.URL {
	return c.store.URL()
}

// Params returns the current logical parameter state.
func (c *Controller[T]) Params() map[string]any {
	return c.store.Read()
}

// Page returns the most recent result and fetch error. Accessing a
// stale controller schedules a refresh; the snapshot returned is the
// previous result until the refresh completes.
func (c *Controller[T]) Page() (*pagination.Page[T], error) {
	c.mu.Lock()
	stale := c.stale && !c.loading
	page, err := c.page, c.err
	c.mu.Unlock()

	if stale {
		c.refresh()
	}
	return page, err
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Invalidate marks the current result stale after an external mutation
// such as a create or delete. The next access refetches.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

// Refresh fetches the current state immediately.
func (c *Controller[T]) Refresh() {
	c.refresh()
}

// Close cancels any in-flight fetch and pending filter timers.
func (c *Controller[T]) Close() {
	for _, s := range c.debounced {
		s.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// refresh starts a fetch for the current URL state, superseding any
// fetch already in flight.
func (c *Controller[T]) refresh() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.loading = true
	c.stale = false
	query := c.store.URL().Query()
	c.mu.Unlock()

	go func() {
		page, err := c.fetch(ctx, query)

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return
		}
		c.loading = false
		c.cancel = nil
		if err != nil {
			c.err = err
		} else {
			c.page = page
			c.err = nil
		}
		onUpdate := c.onUpdate
		c.mu.Unlock()

		if onUpdate != nil {
			onUpdate()
		}
	}()
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// FilterDebounceDelay is the default quiet interval for list filter
// text inputs.
const FilterDebounceDelay = 300 * time.Millisecond

// ProductListController creates a Controller bound to the products
// endpoint. Text filters (name, sku, ownerName) are debounced; status,
// paging, and sorting apply immediately.
func (c *Client) ProductListController(u *url.URL, onUpdate func()) *Controller[Product] {
	return NewController(u, ProductListDefaults(),
		[]string{"name", "sku", "ownerName"}, FilterDebounceDelay,
		func(ctx context.Context, query url.Values) (*pagination.Page[Product], error) {
			return c.ListProducts(ctx, ProductListParamsFromQuery(query))
		}, onUpdate)
}

// OwnerListController creates a Controller bound to the owners
// endpoint. Text filters (name, email) are debounced.
func (c *Client) OwnerListController(u *url.URL, onUpdate func()) *Controller[Owner] {
	return NewController(u, OwnerListDefaults(),
		[]string{"name", "email"}, FilterDebounceDelay,
		func(ctx context.Context, query url.Values) (*pagination.Page[Owner], error) {
			return c.ListOwners(ctx, OwnerListParamsFromQuery(query))
		}, onUpdate)
}
