package client_test

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/catalog-lab/pkg/client"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
)

type fetchLog struct {
	mu      sync.Mutex
	queries []url.Values
}

func (l *fetchLog) record(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *fetchLog) all() []url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]url.Values(nil), l.queries...)
}

func listURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("http://localhost:5173/products")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func waitUpdate(t *testing.T, updates <-chan struct{}) {
	t.Helper()
	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch to complete")
	}
}

func expectNoUpdate(t *testing.T, updates <-chan struct{}, d time.Duration) {
	t.Helper()
	select {
	case <-updates:
		t.Fatal("unexpected fetch")
	case <-time.After(d):
	}
}

func TestController_DebouncedFilterFetchesOnce(t *testing.T) {
	log := &fetchLog{}
	updates := make(chan struct{}, 16)

	fetch := func(_ context.Context, query url.Values) (*pagination.Page[string], error) {
		log.record(query)
		page := pagination.NewPage([]string{"row"}, 1)
		return &page, nil
	}

	ctrl := client.NewController(listURL(t), client.ProductListDefaults(),
		[]string{"name"}, 30*time.Millisecond, fetch,
		func() { updates <- struct{}{} })
	defer ctrl.Close()

	ctrl.EditFilter("name", "w")
	ctrl.EditFilter("name", "wi")
	ctrl.EditFilter("name", "widget")

	waitUpdate(t, updates)
	expectNoUpdate(t, updates, 100*time.Millisecond)

	queries := log.all()
	if len(queries) != 1 {
		t.Fatalf("fetched %d times, want 1", len(queries))
	}
	if got := queries[0].Get("name"); got != "widget" {
		t.Errorf("name = %q, want widget", got)
	}

	if got := ctrl.URL().Query().Get("name"); got != "widget" {
		t.Errorf("url name = %q, want widget", got)
	}
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	log := &fetchLog{}
	updates := make(chan struct{}, 16)

	fetch := func(_ context.Context, query url.Values) (*pagination.Page[string], error) {
		log.record(query)
		page := pagination.NewPage[string](nil, 0)
		return &page, nil
	}

	ctrl := client.NewController(listURL(t), client.ProductListDefaults(),
		[]string{"name"}, 10*time.Millisecond, fetch,
		func() { updates <- struct{}{} })
	defer ctrl.Close()

	ctrl.SetPage(4)
	waitUpdate(t, updates)

	ctrl.EditFilter("name", "widget")
	ctrl.Flush()
	waitUpdate(t, updates)

	queries := log.all()
	last := queries[len(queries)-1]
	if last.Has("page") {
		t.Errorf("filter change should reset to the first page, got %v", last)
	}
	if last.Get("name") != "widget" {
		t.Errorf("name = %q", last.Get("name"))
	}
}

func TestController_LastRequestWins(t *testing.T) {
	updates := make(chan struct{}, 16)
	release := make(chan struct{})

	fetch := func(ctx context.Context, query url.Values) (*pagination.Page[string], error) {
		page, _ := strconv.Atoi(query.Get("page"))
		if page == 2 {
			// Simulate a slow response superseded by the next request.
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		result := pagination.NewPage([]string{"page-" + query.Get("page")}, page)
		return &result, nil
	}

	ctrl := client.NewController(listURL(t), client.ProductListDefaults(),
		nil, 0, fetch,
		func() { updates <- struct{}{} })
	defer ctrl.Close()

	ctrl.SetPage(2)
	ctrl.SetPage(3)

	waitUpdate(t, updates)
	close(release)
	expectNoUpdate(t, updates, 100*time.Millisecond)

	page, err := ctrl.Page()
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 3 {
		t.Errorf("Total = %d, want result of the newest request", page.Total)
	}
	if len(page.Items) != 1 || page.Items[0] != "page-3" {
		t.Errorf("Items = %v", page.Items)
	}
}

func TestController_InvalidateRefetchesOnAccess(t *testing.T) {
	log := &fetchLog{}
	updates := make(chan struct{}, 16)

	fetch := func(_ context.Context, query url.Values) (*pagination.Page[string], error) {
		log.record(query)
		page := pagination.NewPage([]string{"row"}, 1)
		return &page, nil
	}

	ctrl := client.NewController(listURL(t), client.ProductListDefaults(),
		nil, 0, fetch,
		func() { updates <- struct{}{} })
	defer ctrl.Close()

	ctrl.Page()
	waitUpdate(t, updates)

	// Loaded and fresh: access does not refetch.
	ctrl.Page()
	expectNoUpdate(t, updates, 50*time.Millisecond)

	ctrl.Invalidate()
	ctrl.Page()
	waitUpdate(t, updates)

	if got := len(log.all()); got != 2 {
		t.Errorf("fetched %d times, want 2", got)
	}
}

func TestController_NavigateEchoDoesNotRefetch(t *testing.T) {
	log := &fetchLog{}
	updates := make(chan struct{}, 16)

	fetch := func(_ context.Context, query url.Values) (*pagination.Page[string], error) {
		log.record(query)
		page := pagination.NewPage[string](nil, 0)
		return &page, nil
	}

	ctrl := client.NewController(listURL(t), client.ProductListDefaults(),
		[]string{"name"}, 10*time.Millisecond, fetch,
		func() { updates <- struct{}{} })
	defer ctrl.Close()

	ctrl.EditFilter("name", "widget")
	ctrl.Flush()
	waitUpdate(t, updates)

	// The settled edit comes back as a URL change. It is an echo of the
	// controller's own write, so nothing refetches and the local filter
	// value survives.
	ctrl.Navigate(ctrl.URL().Query())
	expectNoUpdate(t, updates, 100*time.Millisecond)

	if got := ctrl.FilterValue("name"); got != "widget" {
		t.Errorf("FilterValue(name) = %q, want widget", got)
	}

	// A genuinely external change resynchronizes and refetches.
	external, _ := url.ParseQuery("name=gizmo")
	ctrl.Navigate(external)
	waitUpdate(t, updates)

	if got := ctrl.FilterValue("name"); got != "gizmo" {
		t.Errorf("FilterValue(name) = %q, want gizmo", got)
	}
}
