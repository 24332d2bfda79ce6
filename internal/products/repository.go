package products

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
	db            *sql.DB
	logger        *slog.Logger
	pagination    pagination.Config
	maxImageBytes int64
}

// New creates a products repository implementing the System interface.
// maxImageBytes caps the decoded size of embedded image attachments.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, maxImageBytes int64) System {
	return &repo{
		db:            db,
		logger:        logger.With("system", "products"),
		pagination:    pagination,
		maxImageBytes: maxImageBytes,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.Page[Product], error) {
	page.Normalize(r.pagination)
	desc := BuildQuery(filters, page)

	qb := query.NewBuilder(projection, defaultSort).ApplyDescriptor(desc)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	pageSQL, pageArgs := qb.BuildSlice(desc.Skip, desc.Take)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	result := pagination.NewPage(items, total)
	return &result, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	exists, err := r.ownerExists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ownerId", ownerID).
		BuildAll()

	return repository.QueryMany(ctx, r.db, q, args, scanProduct)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Product, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("id", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrOwnerNotFound)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Product, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}
	if cmd.Status == "" {
		cmd.Status = StatusActive
	}

	var image *ImageData
	if cmd.Image != nil {
		var err error
		image, err = ValidateImage(*cmd.Image, cmd.ImageMimeType, r.maxImageBytes)
		if err != nil {
			return nil, err
		}
	} else if cmd.ImageMimeType != nil {
		return nil, ErrImagePairViolation
	}

	exists, err := r.skuExists(ctx, cmd.Sku)
	if err != nil {
		return nil, fmt.Errorf("check product sku: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	ownerOK, err := r.ownerExists(ctx, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if !ownerOK {
		return nil, ErrOwnerNotFound
	}

	q := `
		INSERT INTO product (name, sku, price, inventory, status, owner_id, image, image_mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{cmd.Name, cmd.Sku, cmd.Price, cmd.Inventory, cmd.Status, cmd.OwnerID, nil, nil}
	if image != nil {
		args[6] = image.Bytes
		args[7] = image.MimeType
	}

	// unique and FK constraints backstop the pre-checks against races
	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRowContext(ctx, q, args...).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrOwnerNotFound)
	}

	r.logger.Info("product created", "id", id, "sku", cmd.Sku)
	return r.Find(ctx, id)
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Product, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.merge(ctx, current, cmd); err != nil {
		return nil, err
	}

	q := `
		UPDATE product
		SET name = $1, sku = $2, price = $3, inventory = $4, status = $5,
			owner_id = $6, image = $7, image_mime_type = $8, updated_at = NOW()
		WHERE id = $9`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, q,
			current.Name, current.Sku, current.Price, current.Inventory,
			current.Status, current.OwnerID, current.Image, current.ImageMimeType, id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrOwnerNotFound)
	}

	r.logger.Info("product updated", "id", id, "sku", current.Sku)
	return r.Find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM product WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate, ErrOwnerNotFound)
	}

	r.logger.Info("product deleted", "id", id)
	return nil
}

// merge applies the update command onto the current row, revalidating
// owner references and image payloads before anything is written.
func (r *repo) merge(ctx context.Context, current *Product, cmd UpdateCommand) error {
	if cmd.Name != nil {
		current.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Sku != nil {
		current.Sku = strings.TrimSpace(*cmd.Sku)
	}
	if cmd.Price != nil {
		current.Price = *cmd.Price
	}
	if cmd.Inventory != nil {
		current.Inventory = *cmd.Inventory
	}
	if cmd.Status != nil {
		current.Status = *cmd.Status
	}

	if current.Name == "" || current.Sku == "" {
		return fmt.Errorf("%w: name and sku are required", ErrValidation)
	}
	if current.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if current.Inventory < 0 {
		return fmt.Errorf("%w: inventory must not be negative", ErrValidation)
	}
	if err := current.Status.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if cmd.OwnerID != nil {
		exists, err := r.ownerExists(ctx, *cmd.OwnerID)
		if err != nil {
			return fmt.Errorf("check owner: %w", err)
		}
		if !exists {
			return ErrOwnerNotFound
		}
		current.OwnerID = *cmd.OwnerID
		current.Owner = nil
	}

	return r.mergeImage(current, cmd)
}

// mergeImage enforces the attachment pair invariant: image and
// imageMimeType change together or not at all.
func (r *repo) mergeImage(current *Product, cmd UpdateCommand) error {
	if !cmd.Image.Present && !cmd.ImageMimeType.Present {
		return nil
	}
	if cmd.Image.Present != cmd.ImageMimeType.Present {
		return ErrImagePairViolation
	}

	// explicit null for both clears the stored attachment
	if !cmd.Image.Valid && !cmd.ImageMimeType.Valid {
		current.Image = nil
		current.ImageMimeType = nil
		return nil
	}
	if !cmd.Image.Valid || !cmd.ImageMimeType.Valid {
		return ErrImagePairViolation
	}

	declared := cmd.ImageMimeType.Value
	image, err := ValidateImage(cmd.Image.Value, &declared, r.maxImageBytes)
	if err != nil {
		return err
	}

	current.Image = image.Bytes
	current.ImageMimeType = &image.MimeType
	return nil
}

func (r *repo) skuExists(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM product WHERE sku = $1)", sku,
	).Scan(&exists)
	return exists, err
}

func (r *repo) ownerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM product_owner WHERE id = $1)", id,
	).Scan(&exists)
	return exists, err
}

func validateCreate(cmd CreateCommand) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(cmd.Sku) == "" {
		return fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if cmd.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if cmd.Inventory < 0 {
		return fmt.Errorf("%w: inventory must not be negative", ErrValidation)
	}
	if cmd.Status != "" {
		if err := cmd.Status.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if cmd.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: ownerId is required", ErrValidation)
	}
	return nil
}
