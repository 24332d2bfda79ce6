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

// Owner is a product owner as returned by the API. Products is
// populated on detail reads only.
type Owner struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Phone    *string          `json:"phone,omitempty"`
	Products []ProductSummary `json:"products,omitempty"`
}

// ProductSummary is the product relation embedded in an owner detail.
type ProductSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Sku    string    `json:"sku"`
	Price  float64   `json:"price"`
	Status string    `json:"status"`
}

// OwnerCreate is the payload for creating a product owner.
type OwnerCreate struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// OwnerUpdate is a partial owner update. Phone uses decode.Null to
// clear a stored number.
type OwnerUpdate struct {
	Name  *string              `json:"name,omitempty"`
	Email *string              `json:"email,omitempty"`
	Phone decode.Field[string] `json:"phone,omitzero"`
}

// OwnerListParams are the list parameters for the owners endpoint.
// Zero values mean "use the server default".
type OwnerListParams struct {
	Name      string
	Email     string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// OwnerListDefaults returns the default owner list state.
func OwnerListDefaults() map[string]any {
	return map[string]any{
		"name":      "",
		"email":     "",
		"page":      1,
		"limit":     10,
		"sortBy":    "name",
		"sortOrder": pagination.SortAsc,
	}
}

// Query encodes the parameters as a query string, omitting values that
// match their defaults. Zero page and limit fall back to the defaults.
func (p OwnerListParams) Query() url.Values {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	return urlstate.Write(url.Values{}, OwnerListDefaults(), map[string]any{
		"name":      p.Name,
		"email":     p.Email,
		"page":      p.Page,
		"limit":     p.Limit,
		"sortBy":    p.SortBy,
		"sortOrder": p.SortOrder,
	})
}

// OwnerListParamsFromQuery reconstructs parameters from a query string,
// applying defaults for absent or unparseable values.
func OwnerListParamsFromQuery(query url.Values) OwnerListParams {
	state := urlstate.Read(query, OwnerListDefaults())
	return OwnerListParams{
		Name:      state["name"].(string),
		Email:     state["email"].(string),
		Page:      state["page"].(int),
		Limit:     state["limit"].(int),
		SortBy:    state["sortBy"].(string),
		SortOrder: state["sortOrder"].(string),
	}
}

// ListOwners returns a page of product owners matching params.
func (c *Client) ListOwners(ctx context.Context, params OwnerListParams) (*pagination.Page[Owner], error) {
	var page pagination.Page[Owner]
	if err := c.do(ctx, http.MethodGet, "/api/owners", params.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOwner returns a single owner by id, including its products.
func (c *Client) GetOwner(ctx context.Context, id uuid.UUID) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodGet, "/api/owners/"+id.String(), nil, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// CreateOwner creates a product owner and returns the stored entity.
func (c *Client) CreateOwner(ctx context.Context, create OwnerCreate) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodPost, "/api/owners", nil, create, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// UpdateOwner applies a partial update and returns the stored entity.
func (c *Client) UpdateOwner(ctx context.Context, id uuid.UUID, update OwnerUpdate) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodPut, "/api/owners/"+id.String(), nil, update, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// DeleteOwner removes an owner by id. Owners with products cannot be
// deleted; the server responds with a conflict.
func (c *Client) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/owners/"+id.String(), nil, nil, nil)
}
