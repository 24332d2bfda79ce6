package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JaimeStill/catalog-lab/pkg/decode"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/urlstate"
	"github.com/google/uuid"
)

// Product is a catalogue product as returned by the API. Image arrives
// base64-encoded and unmarshals into raw bytes.
type Product struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Sku           string        `json:"sku"`
	Price         float64       `json:"price"`
	Inventory     int           `json:"inventory"`
	Status        string        `json:"status"`
	OwnerID       uuid.UUID     `json:"ownerId"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	Image         []byte        `json:"image,omitempty"`
	ImageMimeType *string       `json:"imageMimeType,omitempty"`
}

// OwnerSummary is the owner relation embedded in a product.
type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProductCreate is the payload for creating a product.
type ProductCreate struct {
	Name          string    `json:"name"`
	Sku           string    `json:"sku"`
	Price         float64   `json:"price"`
	Inventory     int       `json:"inventory"`
	Status        string    `json:"status,omitempty"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Image         *string   `json:"image,omitempty"`
	ImageMimeType *string   `json:"imageMimeType,omitempty"`
}

// ProductUpdate is a partial product update. Image and ImageMimeType
// must be set or cleared together; use decode.Set and decode.Null to
// control which state travels on the wire.
type ProductUpdate struct {
	Name          *string              `json:"name,omitempty"`
	Sku           *string              `json:"sku,omitempty"`
	Price         *float64             `json:"price,omitempty"`
	Inventory     *int                 `json:"inventory,omitempty"`
	Status        *string              `json:"status,omitempty"`
	OwnerID       *uuid.UUID           `json:"ownerId,omitempty"`
	Image         decode.Field[string] `json:"image,omitzero"`
	ImageMimeType decode.Field[string] `json:"imageMimeType,omitzero"`
}

// ProductListParams are the list parameters for the products endpoint.
// Zero values mean "use the server default".
type ProductListParams struct {
	Name      string
	Sku       string
	OwnerName string
	Status    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ProductListDefaults returns the default product list state. The URL
// carries only deviations from these values.
func ProductListDefaults() map[string]any {
	return map[string]any{
		"name":      "",
		"sku":       "",
		"ownerName": "",
		"status":    "",
		"page":      1,
		"limit":     10,
		"sortBy":    "name",
		"sortOrder": pagination.SortAsc,
	}
}

// Query encodes the parameters as a query string, omitting values that
// match their defaults. Zero page and limit fall back to the defaults.
func (p ProductListParams) Query() url.Values {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	return urlstate.Write(url.Values{}, ProductListDefaults(), map[string]any{
		"name":      p.Name,
		"sku":       p.Sku,
		"ownerName": p.OwnerName,
		"status":    p.Status,
		"page":      p.Page,
		"limit":     p.Limit,
		"sortBy":    p.SortBy,
		"sortOrder": p.SortOrder,
	})
}

// ProductListParamsFromQuery reconstructs parameters from a query
// string, applying defaults for absent or unparseable values.
func ProductListParamsFromQuery(query url.Values) ProductListParams {
	state := urlstate.Read(query, ProductListDefaults())
	return ProductListParams{
		Name:      state["name"].(string),
		Sku:       state["sku"].(string),
		OwnerName: state["ownerName"].(string),
		Status:    state["status"].(string),
		Page:      state["page"].(int),
		Limit:     state["limit"].(int),
		SortBy:    state["sortBy"].(string),
		SortOrder: state["sortOrder"].(string),
	}
}

// ListProducts returns a page of products matching params.
func (c *Client) ListProducts(ctx context.Context, params ProductListParams) (*pagination.Page[Product], error) {
	var page pagination.Page[Product]
	if err := c.do(ctx, http.MethodGet, "/api/products", params.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ProductsByOwner returns all products belonging to the given owner.
func (c *Client) ProductsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	var items []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/owner/"+ownerID.String(), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id.String(), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product and returns the stored entity.
func (c *Client) CreateProduct(ctx context.Context, create ProductCreate) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, create, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update and returns the stored entity.
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, update ProductUpdate) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id.String(), nil, update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id.String(), nil, nil, nil)
}
