package owners

import (
	"context"

	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for product owner storage and retrieval operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.Page[ProductOwner], error)
	Find(ctx context.Context, id uuid.UUID) (*ProductOwner, error)
	Create(ctx context.Context, cmd CreateCommand) (*ProductOwner, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*ProductOwner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
