package owners

import (
	"github.com/JaimeStill/catalog-lab/pkg/query"
	"github.com/JaimeStill/catalog-lab/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "product_owner", "po").
	Project("id", "id").
	Project("name", "name").
	Project("email", "email").
	Project("phone", "phone").
	Project("created_at", "createdAt").
	Project("updated_at", "updatedAt")

const defaultSort = "name"

func scanOwner(s repository.Scanner) (ProductOwner, error) {
	var o ProductOwner
	err := s.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanProductRef(s repository.Scanner) (ProductRef, error) {
	var p ProductRef
	err := s.Scan(&p.ID, &p.Name, &p.Sku, &p.Price, &p.Status)
	return p, err
}
