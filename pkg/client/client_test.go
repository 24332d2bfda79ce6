package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/JaimeStill/catalog-lab/pkg/client"
	"github.com/JaimeStill/catalog-lab/pkg/handlers"
	"github.com/google/uuid"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	return c
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handlers.Response{
		Success:    status < 400,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func TestClient_ListProducts(t *testing.T) {
	var gotQuery url.Values

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()

		respond(w, http.StatusOK, handlers.MessageRetrieved, map[string]any{
			"items": []client.Product{{ID: uuid.New(), Name: "Widget Classic", Sku: "WGT-001"}},
			"total": 12,
		})
	})

	page, err := c.ListProducts(context.Background(), client.ProductListParams{
		Sku:  "W1",
		Page: 2,
	})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	if page.Total != 12 || len(page.Items) != 1 {
		t.Errorf("page = total %d items %d", page.Total, len(page.Items))
	}
	if page.Items[0].Sku != "WGT-001" {
		t.Errorf("Sku = %q", page.Items[0].Sku)
	}

	if gotQuery.Get("sku") != "W1" || gotQuery.Get("page") != "2" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotQuery.Has("name") || gotQuery.Has("limit") || gotQuery.Has("sortBy") {
		t.Errorf("default-valued params should be omitted: %v", gotQuery)
	}
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusConflict, "product sku already exists", nil)
	})

	_, err := c.CreateProduct(context.Background(), client.ProductCreate{
		Name:    "Widget Classic",
		Sku:     "WGT-001",
		OwnerID: uuid.New(),
	})

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Message != "product sku already exists" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestClient_DeleteOwner(t *testing.T) {
	id := uuid.New()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path != "/api/owners/"+id.String() {
			t.Errorf("path = %q", r.URL.Path)
		}
		respond(w, http.StatusOK, handlers.MessageDeleted, nil)
	})

	if err := c.DeleteOwner(context.Background(), id); err != nil {
		t.Fatalf("DeleteOwner() error = %v", err)
	}
}

func TestProductListParams_Query(t *testing.T) {
	tests := []struct {
		name   string
		params client.ProductListParams
		want   string
	}{
		{
			"all defaults encode empty",
			client.ProductListParams{Page: 1, Limit: 10, SortBy: "name", SortOrder: "asc"},
			"",
		},
		{
			"zero values encode empty",
			client.ProductListParams{},
			"",
		},
		{
			"deviations only",
			client.ProductListParams{Sku: "W1", Page: 2, Limit: 10, SortBy: "price", SortOrder: "desc"},
			"page=2&sku=W1&sortBy=price&sortOrder=desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Query().Encode(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProductListParamsFromQuery(t *testing.T) {
	values, _ := url.ParseQuery("sku=W1&page=3&sortOrder=desc&limit=banana")

	params := client.ProductListParamsFromQuery(values)

	want := client.ProductListParams{
		Sku:       "W1",
		Page:      3,
		Limit:     10,
		SortBy:    "name",
		SortOrder: "desc",
	}
	if params != want {
		t.Errorf("params = %+v, want %+v", params, want)
	}
}

func TestOwnerListParams_RoundTrip(t *testing.T) {
	params := client.OwnerListParams{
		Name:      "acme",
		Page:      2,
		Limit:     25,
		SortBy:    "email",
		SortOrder: "desc",
	}

	got := client.OwnerListParamsFromQuery(params.Query())
	if got != params {
		t.Errorf("round trip = %+v, want %+v", got, params)
	}
}
