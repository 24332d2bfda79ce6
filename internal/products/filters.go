package products

import (
	"net/url"

	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/query"
)

// SortFields lists the sortable fields accepted for product listings.
var SortFields = []string{"name", "sku", "price", "inventory", "status"}

// Filters contains optional filtering criteria for product queries.
// Name, Sku, and OwnerName match as case-insensitive substrings
// (OwnerName through the owner relation); Status matches exactly.
type Filters struct {
	Name      *string
	Sku       *string
	OwnerName *string
	Status    *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("sku"); v != "" {
		f.Sku = &v
	}
	if v := values.Get("ownerName"); v != "" {
		f.OwnerName = &v
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}
	return f
}

// BuildQuery converts filters and pagination into a query descriptor.
// Empty filters are omitted entirely; the owner relation is always
// joined for product listings.
func BuildQuery(f Filters, page pagination.PageRequest) query.Descriptor {
	d := query.NewDescriptor(page.Offset(), page.Limit, query.Order{
		Field:      page.SortBy,
		Descending: page.Descending(),
	})
	d.Relate("owner")

	if f.Name != nil {
		d.Filter("name", query.Contains(*f.Name))
	}
	if f.Sku != nil {
		d.Filter("sku", query.Contains(*f.Sku))
	}
	if f.OwnerName != nil {
		d.Filter("ownerName", query.Contains(*f.OwnerName))
	}
	if f.Status != nil {
		d.Filter("status", query.Equals(*f.Status))
	}

	return d
}
