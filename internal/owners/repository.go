package owners

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/JaimeStill/catalog-lab/pkg/query"
	"github.com/JaimeStill/catalog-lab/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a product owners repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "owners"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.Page[ProductOwner], error) {
	page.Normalize(r.pagination)
	desc := BuildQuery(filters, page)

	qb := query.NewBuilder(projection, defaultSort).ApplyDescriptor(desc)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count owners: %w", err)
	}

	pageSQL, pageArgs := qb.BuildSlice(desc.Skip, desc.Take)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOwner)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}

	result := pagination.NewPage(items, total)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ProductOwner, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("id", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOwner)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrHasProducts)
	}

	products, err := r.loadProducts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load owner products: %w", err)
	}
	o.Products = products

	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*ProductOwner, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	exists, err := r.emailExists(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("check owner email: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	q := `
		INSERT INTO product_owner (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, phone, created_at, updated_at`

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ProductOwner, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Email, cmd.Phone}, scanOwner)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrHasProducts)
	}

	r.logger.Info("owner created", "id", o.ID, "email", o.Email)
	return &o, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*ProductOwner, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("id", id)
	current, err := repository.QueryOne(ctx, r.db, q, args, scanOwner)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrHasProducts)
	}

	if cmd.Name != nil {
		current.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Email != nil {
		current.Email = strings.TrimSpace(*cmd.Email)
	}
	if cmd.Phone.Present {
		if cmd.Phone.Valid {
			phone := cmd.Phone.Value
			current.Phone = &phone
		} else {
			current.Phone = nil
		}
	}

	if current.Name == "" || current.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	update := `
		UPDATE product_owner
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, email, phone, created_at, updated_at`

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ProductOwner, error) {
		return repository.QueryOne(ctx, tx, update, []any{current.Name, current.Email, current.Phone, id}, scanOwner)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrHasProducts)
	}

	r.logger.Info("owner updated", "id", o.ID, "email", o.Email)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM product WHERE owner_id = $1", id,
	).Scan(&count); err != nil {
		return fmt.Errorf("count owner products: %w", err)
	}
	if count > 0 {
		return ErrHasProducts
	}

	// FK RESTRICT remains the backstop for a product created concurrently
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM product_owner WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate, ErrHasProducts)
	}

	r.logger.Info("owner deleted", "id", id)
	return nil
}

func (r *repo) loadProducts(ctx context.Context, ownerID uuid.UUID) ([]ProductRef, error) {
	q := `
		SELECT id, name, sku, price, status
		FROM product
		WHERE owner_id = $1
		ORDER BY name ASC`

	return repository.QueryMany(ctx, r.db, q, []any{ownerID}, scanProductRef)
}

func (r *repo) emailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM product_owner WHERE email = $1)", email,
	).Scan(&exists)
	return exists, err
}

func validateCreate(cmd CreateCommand) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(cmd.Email) == "" || !strings.Contains(cmd.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	return nil
}
