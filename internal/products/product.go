// Package products provides the domain system for managing catalogue
// products: CRUD with SKU uniqueness, owner reference resolution, and
// embedded-image attachment validation.
package products

import (
	"fmt"
	"time"

	"github.com/JaimeStill/catalog-lab/pkg/decode"
	"github.com/google/uuid"
)

// Status indicates whether a product is visible in the catalogue.
type Status string

// Product statuses.
const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Validate checks that the status is a known value.
func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive:
		return nil
	default:
		return fmt.Errorf("invalid status %q (must be ACTIVE or INACTIVE)", s)
	}
}

// Product represents a catalogue product stored in the database. The
// owner relation is loaded eagerly. Image bytes marshal to base64 in
// JSON; Image and ImageMimeType are always both present or both absent.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Sku           string    `json:"sku"`
	Price         float64   `json:"price"`
	Inventory     int       `json:"inventory"`
	Status        Status    `json:"status"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Owner         *OwnerRef `json:"owner,omitempty"`
	Image         []byte    `json:"image,omitempty"`
	ImageMimeType *string   `json:"imageMimeType,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OwnerRef is the product-side view of the owning product owner.
type OwnerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateCommand contains the data required to create a product. Image
// travels as base64 text alongside a declared MIME type.
type CreateCommand struct {
	Name          string    `json:"name"`
	Sku           string    `json:"sku"`
	Price         float64   `json:"price"`
	Inventory     int       `json:"inventory"`
	Status        Status    `json:"status,omitempty"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Image         *string   `json:"image,omitempty"`
	ImageMimeType *string   `json:"imageMimeType,omitempty"`
}

// UpdateCommand contains a partial product update. Absent fields are
// left unchanged. Image and ImageMimeType distinguish absent from
// explicit null: null for both clears the stored attachment, and the
// pair must always change together.
type UpdateCommand struct {
	Name          *string              `json:"name,omitempty"`
	Sku           *string              `json:"sku,omitempty"`
	Price         *float64             `json:"price,omitempty"`
	Inventory     *int                 `json:"inventory,omitempty"`
	Status        *Status              `json:"status,omitempty"`
	OwnerID       *uuid.UUID           `json:"ownerId,omitempty"`
	Image         decode.Field[string] `json:"image,omitzero"`
	ImageMimeType decode.Field[string] `json:"imageMimeType,omitzero"`
}
