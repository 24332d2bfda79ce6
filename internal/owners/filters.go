package owners

import (
	"net/url"

	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/query"
)

// SortFields lists the sortable fields accepted for owner listings.
var SortFields = []string{"name", "email", "phone"}

// Filters contains optional filtering criteria for owner queries.
// Name matches as a case-insensitive substring; Email matches exactly.
type Filters struct {
	Name  *string
	Email *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("email"); v != "" {
		f.Email = &v
	}
	return f
}

// BuildQuery converts filters and pagination into a query descriptor.
// Empty filters are omitted entirely.
func BuildQuery(f Filters, page pagination.PageRequest) query.Descriptor {
	d := query.NewDescriptor(page.Offset(), page.Limit, query.Order{
		Field:      page.SortBy,
		Descending: page.Descending(),
	})

	if f.Name != nil {
		d.Filter("name", query.Contains(*f.Name))
	}
	if f.Email != nil {
		d.Filter("email", query.Equals(*f.Email))
	}

	return d
}
