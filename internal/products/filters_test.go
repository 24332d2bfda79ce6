package products_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/catalog-lab/internal/products"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/query"
)

func TestFiltersFromQuery(t *testing.T) {
	values, _ := url.ParseQuery("name=widget&status=ACTIVE&page=2")

	f := products.FiltersFromQuery(values)

	if f.Name == nil || *f.Name != "widget" {
		t.Errorf("Name = %v, want widget", f.Name)
	}
	if f.Status == nil || *f.Status != "ACTIVE" {
		t.Errorf("Status = %v, want ACTIVE", f.Status)
	}
	if f.Sku != nil || f.OwnerName != nil {
		t.Errorf("unset filters should stay nil: %+v", f)
	}
}

func TestBuildQuery(t *testing.T) {
	empty := ""
	sku := "W1"
	page := pagination.PageRequest{Page: 2, Limit: 5, SortBy: "price", SortOrder: pagination.SortDesc}

	d := products.BuildQuery(products.Filters{Name: &empty, Sku: &sku}, page)

	if len(d.Where) != 1 {
		t.Fatalf("Where = %v, want only sku", d.Where)
	}
	if m := d.Where["sku"]; m.Kind != query.MatchContains || m.Value != "W1" {
		t.Errorf("sku match = %+v", m)
	}
	if d.Skip != 5 || d.Take != 5 {
		t.Errorf("window = skip %d take %d, want 5/5", d.Skip, d.Take)
	}
	if d.Order.Field != "price" || !d.Order.Descending {
		t.Errorf("order = %+v, want price desc", d.Order)
	}
	if len(d.Relations) != 1 || d.Relations[0] != "owner" {
		t.Errorf("relations = %v, want [owner]", d.Relations)
	}
}

func TestBuildQuery_StatusEquals(t *testing.T) {
	status := "INACTIVE"
	page := pagination.PageRequest{Page: 1, Limit: 10}

	d := products.BuildQuery(products.Filters{Status: &status}, page)

	if m := d.Where["status"]; m.Kind != query.MatchEquals || m.Value != "INACTIVE" {
		t.Errorf("status match = %+v, want exact INACTIVE", m)
	}
}

func TestBuildQuery_GeneratedSQL(t *testing.T) {
	ownerName := "acme"
	page := pagination.PageRequest{Page: 1, Limit: 10, SortOrder: pagination.SortAsc}

	d := products.BuildQuery(products.Filters{OwnerName: &ownerName}, page)
	sql, args := query.NewBuilder(products.Projection(), "name").
		ApplyDescriptor(d).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.product p" +
		" INNER JOIN public.product_owner po ON po.id = p.owner_id" +
		" WHERE po.name ILIKE $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "%acme%" {
		t.Errorf("args = %v", args)
	}
}
