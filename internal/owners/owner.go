// Package owners provides the domain system for managing product owners:
// CRUD with email uniqueness and referential restrict against products.
package owners

import (
	"time"

	"github.com/JaimeStill/catalog-lab/pkg/decode"
	"github.com/google/uuid"
)

// ProductOwner represents a product owner stored in the database.
// Products is populated on detail reads only.
type ProductOwner struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     *string      `json:"phone,omitempty"`
	Products  []ProductRef `json:"products,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ProductRef is the owner-side view of a referencing product.
type ProductRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Sku    string    `json:"sku"`
	Price  float64   `json:"price"`
	Status string    `json:"status"`
}

// CreateCommand contains the data required to create a product owner.
type CreateCommand struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateCommand contains a partial product owner update. Absent fields
// are left unchanged; Phone distinguishes absent from explicit null so
// a stored phone can be cleared.
type UpdateCommand struct {
	Name  *string              `json:"name,omitempty"`
	Email *string              `json:"email,omitempty"`
	Phone decode.Field[string] `json:"phone,omitzero"`
}
