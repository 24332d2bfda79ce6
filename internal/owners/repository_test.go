package owners_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JaimeStill/catalog-lab/internal/owners"
	"github.com/JaimeStill/catalog-lab/pkg/decode"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/google/uuid"
)

var ownerColumns = []string{"id", "name", "email", "phone", "created_at", "updated_at"}

func newOwnerRepo(t *testing.T) (owners.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultLimit: 10, AllowedLimits: []int{5, 10, 25, 50}}

	return owners.New(db, logger, cfg), mock
}

func ownerRow(mock sqlmock.Sqlmock, id uuid.UUID, name, email string) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(ownerColumns).AddRow(id.String(), name, email, nil, now, now)
}

func TestRepo_List_Defaults(t *testing.T) {
	repo, mock := newOwnerRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM public.product_owner po",
	)).WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT po.id, po.name, po.email, po.phone, po.created_at, po.updated_at" +
			" FROM public.product_owner po ORDER BY po.name ASC LIMIT 10 OFFSET 0",
	)).WillReturnRows(ownerRow(mock, id, "Acme Supply Co", "contact@acmesupply.test"))

	page, err := repo.List(context.Background(), pagination.PageRequest{}, owners.Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = total %d items %d", page.Total, len(page.Items))
	}
	if page.Items[0].Email != "contact@acmesupply.test" {
		t.Errorf("Email = %q", page.Items[0].Email)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Find_LoadsProducts(t *testing.T) {
	repo, mock := newOwnerRepo(t)
	id, productID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT po.id, po.name, po.email, po.phone, po.created_at, po.updated_at" +
			" FROM public.product_owner po WHERE po.id = $1",
	)).WithArgs(id).
		WillReturnRows(ownerRow(mock, id, "Acme Supply Co", "contact@acmesupply.test"))

	mock.ExpectQuery("SELECT id, name, sku, price, status").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"id", "name", "sku", "price", "status"}).
			AddRow(productID.String(), "Widget Classic", "WGT-001", 19.99, "ACTIVE"))

	owner, err := repo.Find(context.Background(), id)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(owner.Products) != 1 || owner.Products[0].Sku != "WGT-001" {
		t.Errorf("Products = %+v", owner.Products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Create(t *testing.T) {
	t.Run("duplicate email stops before write", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT EXISTS (SELECT 1 FROM product_owner WHERE email = $1)",
		)).WithArgs("contact@acmesupply.test").
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.Create(context.Background(), owners.CreateCommand{
			Name:  "Acme Supply Co",
			Email: "contact@acmesupply.test",
		})

		if !errors.Is(err, owners.ErrDuplicate) {
			t.Fatalf("Create() error = %v, want ErrDuplicate", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("insert must not run on duplicate email: %v", err)
		}
	})

	t.Run("valid owner inserted in transaction", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT EXISTS (SELECT 1 FROM product_owner WHERE email = $1)",
		)).WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO product_owner").
			WithArgs("Acme Supply Co", "contact@acmesupply.test", nil).
			WillReturnRows(ownerRow(mock, id, "Acme Supply Co", "contact@acmesupply.test"))
		mock.ExpectCommit()

		owner, err := repo.Create(context.Background(), owners.CreateCommand{
			Name:  "Acme Supply Co",
			Email: "contact@acmesupply.test",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if owner.ID != id {
			t.Errorf("ID = %s, want %s", owner.ID, id)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("invalid payload rejected without queries", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)

		tests := []owners.CreateCommand{
			{Email: "contact@acmesupply.test"},
			{Name: "Acme Supply Co"},
			{Name: "Acme Supply Co", Email: "not-an-email"},
		}

		for _, cmd := range tests {
			if _, err := repo.Create(context.Background(), cmd); !errors.Is(err, owners.ErrValidation) {
				t.Errorf("Create(%+v) error = %v, want ErrValidation", cmd, err)
			}
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}

func TestRepo_Delete(t *testing.T) {
	t.Run("referencing products block deletion", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM product WHERE owner_id = $1",
		)).WithArgs(id).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))

		err := repo.Delete(context.Background(), id)
		if !errors.Is(err, owners.ErrHasProducts) {
			t.Fatalf("Delete() error = %v, want ErrHasProducts", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("delete must not run while products reference the owner: %v", err)
		}
	})

	t.Run("owner without products deleted", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM product WHERE owner_id = $1",
		)).WithArgs(id).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM product_owner").
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

	t.Run("missing owner", func(t *testing.T) {
		repo, mock := newOwnerRepo(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM product WHERE owner_id = $1",
		)).WithArgs(id).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM product_owner").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), id)
		if !errors.Is(err, owners.ErrNotFound) {
			t.Fatalf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepo_Update_ClearsPhone(t *testing.T) {
	repo, mock := newOwnerRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT po.id, po.name, po.email, po.phone, po.created_at, po.updated_at" +
			" FROM public.product_owner po WHERE po.id = $1",
	)).WithArgs(id).
		WillReturnRows(mock.NewRows(ownerColumns).
			AddRow(id.String(), "Acme Supply Co", "contact@acmesupply.test", "+1-555-0100", now, now))

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE product_owner").
		WithArgs("Acme Supply Co", "contact@acmesupply.test", nil, id).
		WillReturnRows(ownerRow(mock, id, "Acme Supply Co", "contact@acmesupply.test"))
	mock.ExpectCommit()

	update := owners.UpdateCommand{Phone: decode.Null[string]()}

	owner, err := repo.Update(context.Background(), id, update)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if owner.Phone != nil {
		t.Errorf("Phone = %v, want cleared", *owner.Phone)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
