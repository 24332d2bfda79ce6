package products

import (
	"github.com/JaimeStill/catalog-lab/pkg/query"
	"github.com/JaimeStill/catalog-lab/pkg/repository"
)

// Product listings always join the owner relation so detail columns and
// the ownerName filter resolve in a single query.
var projection = query.
	NewProjectionMap("public", "product", "p").
	Join("INNER JOIN public.product_owner po ON po.id = p.owner_id").
	Project("id", "id").
	Project("name", "name").
	Project("sku", "sku").
	Project("price", "price").
	Project("inventory", "inventory").
	Project("status", "status").
	Project("owner_id", "ownerId").
	Project("image", "image").
	Project("image_mime_type", "imageMimeType").
	Project("created_at", "createdAt").
	Project("updated_at", "updatedAt").
	Project("po.name", "ownerName").
	Project("po.email", "ownerEmail")

const defaultSort = "name"

func scanProduct(s repository.Scanner) (Product, error) {
	var (
		p     Product
		owner OwnerRef
	)

	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Sku,
		&p.Price,
		&p.Inventory,
		&p.Status,
		&p.OwnerID,
		&p.Image,
		&p.ImageMimeType,
		&p.CreatedAt,
		&p.UpdatedAt,
		&owner.Name,
		&owner.Email,
	)
	if err != nil {
		return p, err
	}

	owner.ID = p.OwnerID
	p.Owner = &owner
	return p, nil
}
