package products_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JaimeStill/catalog-lab/internal/products"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/google/uuid"
)

const productColumnsSQL = "p.id, p.name, p.sku, p.price, p.inventory, p.status, " +
	"p.owner_id, p.image, p.image_mime_type, p.created_at, p.updated_at, po.name, po.email"

const productFromSQL = "public.product p INNER JOIN public.product_owner po ON po.id = p.owner_id"

var productColumns = []string{
	"id", "name", "sku", "price", "inventory", "status",
	"owner_id", "image", "image_mime_type", "created_at", "updated_at",
	"owner_name", "owner_email",
}

func newProductRepo(t *testing.T) (products.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultLimit: 10, AllowedLimits: []int{5, 10, 25, 50}}

	return products.New(db, logger, cfg, 64), mock
}

func productRow(mock sqlmock.Sqlmock, id, ownerID uuid.UUID, name, sku string) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(productColumns).AddRow(
		id.String(), name, sku, 19.99, 12, "ACTIVE",
		ownerID.String(), nil, nil, now, now,
		"Acme Supply Co", "contact@acmesupply.test",
	)
}

func TestRepo_List_Defaults(t *testing.T) {
	repo, mock := newProductRepo(t)
	id, ownerID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM " + productFromSQL,
	)).WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + productColumnsSQL + " FROM " + productFromSQL +
			" ORDER BY p.name ASC LIMIT 10 OFFSET 0",
	)).WillReturnRows(productRow(mock, id, ownerID, "Widget Classic", "WGT-001"))

	page, err := repo.List(context.Background(), pagination.PageRequest{}, products.Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = total %d items %d", page.Total, len(page.Items))
	}

	p := page.Items[0]
	if p.Sku != "WGT-001" {
		t.Errorf("Sku = %q", p.Sku)
	}
	if p.Owner == nil || p.Owner.Name != "Acme Supply Co" || p.Owner.ID != ownerID {
		t.Errorf("Owner = %+v", p.Owner)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_List_FilterAndWindow(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM " + productFromSQL + " WHERE p.sku ILIKE $1",
	)).WithArgs("%W1%").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + productColumnsSQL + " FROM " + productFromSQL +
			" WHERE p.sku ILIKE $1 ORDER BY p.price DESC LIMIT 5 OFFSET 5",
	)).WithArgs("%W1%").
		WillReturnRows(mock.NewRows(productColumns))

	sku := "W1"
	page, err := repo.List(context.Background(),
		pagination.PageRequest{Page: 2, Limit: 5, SortBy: "price", SortOrder: pagination.SortDesc},
		products.Filters{Sku: &sku},
	)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if page.Total != 12 || len(page.Items) != 0 {
		t.Errorf("page = total %d items %d", page.Total, len(page.Items))
	}
	if page.Items == nil {
		t.Error("Items should be empty, not nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Create_DuplicateSkuStopsBeforeWrite(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS (SELECT 1 FROM product WHERE sku = $1)",
	)).WithArgs("WGT-001").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.Create(context.Background(), products.CreateCommand{
		Name:    "Widget Classic",
		Sku:     "WGT-001",
		Price:   19.99,
		OwnerID: uuid.New(),
	})

	if !errors.Is(err, products.ErrDuplicate) {
		t.Fatalf("Create() error = %v, want ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("insert must not run on duplicate sku: %v", err)
	}
}

func TestRepo_Create_UnknownOwnerStopsBeforeWrite(t *testing.T) {
	repo, mock := newProductRepo(t)
	ownerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS (SELECT 1 FROM product WHERE sku = $1)",
	)).WithArgs("WGT-001").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS (SELECT 1 FROM product_owner WHERE id = $1)",
	)).WithArgs(ownerID).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.Create(context.Background(), products.CreateCommand{
		Name:    "Widget Classic",
		Sku:     "WGT-001",
		Price:   19.99,
		OwnerID: ownerID,
	})

	if !errors.Is(err, products.ErrOwnerNotFound) {
		t.Fatalf("Create() error = %v, want ErrOwnerNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Create_ValidationRejectsWithoutQueries(t *testing.T) {
	repo, mock := newProductRepo(t)

	tests := []struct {
		name string
		cmd  products.CreateCommand
		want error
	}{
		{
			"missing name",
			products.CreateCommand{Sku: "W1", OwnerID: uuid.New()},
			products.ErrValidation,
		},
		{
			"negative price",
			products.CreateCommand{Name: "Widget", Sku: "W1", Price: -1, OwnerID: uuid.New()},
			products.ErrValidation,
		},
		{
			"missing owner",
			products.CreateCommand{Name: "Widget", Sku: "W1"},
			products.ErrValidation,
		},
		{
			"mime type without image",
			products.CreateCommand{
				Name: "Widget", Sku: "W1", OwnerID: uuid.New(),
				ImageMimeType: strPtr("image/png"),
			},
			products.ErrImagePairViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("validation failures must not touch the database: %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Run("existing product", func(t *testing.T) {
		repo, mock := newProductRepo(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		repo, mock := newProductRepo(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), id)
		if !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("Delete() error = %v, want ErrNotFound", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}

func TestRepo_Find_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+productColumnsSQL+" FROM "+productFromSQL+" WHERE p.id = $1",
	)).WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), id)
	if !errors.Is(err, products.ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
}

func strPtr(s string) *string { return &s }
