package main

import (
	"context"
	"database/sql"
	"fmt"
)

func init() {
	registerSeeder(&catalogSeeder{})
}

// catalogSeeder populates product owners and their products with
// sample data. Existing rows with matching natural keys are skipped
// so the seeder can run repeatedly.
type catalogSeeder struct{}

func (s *catalogSeeder) Name() string {
	return "catalog"
}

func (s *catalogSeeder) Description() string {
	return "Seeds sample product owners and products"
}

type ownerSeed struct {
	name  string
	email string
	phone *string
}

type productSeed struct {
	name       string
	sku        string
	price      float64
	inventory  int
	status     string
	ownerEmail string
}

func strPtr(s string) *string { return &s }

var ownerSeeds = []ownerSeed{
	{name: "Acme Supply Co", email: "contact@acmesupply.test", phone: strPtr("+1-555-0100")},
	{name: "Globex Retail", email: "sales@globex.test", phone: strPtr("+1-555-0101")},
	{name: "Initech Wholesale", email: "orders@initech.test", phone: nil},
	{name: "Umbrella Goods", email: "hello@umbrellagoods.test", phone: strPtr("+1-555-0103")},
}

var productSeeds = []productSeed{
	{name: "Widget Classic", sku: "WGT-001", price: 19.99, inventory: 240, status: "ACTIVE", ownerEmail: "contact@acmesupply.test"},
	{name: "Widget Pro", sku: "WGT-002", price: 49.99, inventory: 85, status: "ACTIVE", ownerEmail: "contact@acmesupply.test"},
	{name: "Widget Legacy", sku: "WGT-090", price: 9.99, inventory: 0, status: "INACTIVE", ownerEmail: "contact@acmesupply.test"},
	{name: "Gizmo Standard", sku: "GZM-100", price: 34.50, inventory: 120, status: "ACTIVE", ownerEmail: "sales@globex.test"},
	{name: "Gizmo Deluxe", sku: "GZM-101", price: 89.00, inventory: 32, status: "ACTIVE", ownerEmail: "sales@globex.test"},
	{name: "Sprocket Mini", sku: "SPK-210", price: 4.25, inventory: 1500, status: "ACTIVE", ownerEmail: "orders@initech.test"},
	{name: "Sprocket Max", sku: "SPK-220", price: 12.75, inventory: 640, status: "ACTIVE", ownerEmail: "orders@initech.test"},
	{name: "Sprocket Retired", sku: "SPK-005", price: 2.00, inventory: 12, status: "INACTIVE", ownerEmail: "orders@initech.test"},
	{name: "Canopy Compact", sku: "CNP-300", price: 59.95, inventory: 48, status: "ACTIVE", ownerEmail: "hello@umbrellagoods.test"},
	{name: "Canopy Grande", sku: "CNP-301", price: 112.00, inventory: 17, status: "ACTIVE", ownerEmail: "hello@umbrellagoods.test"},
}

func (s *catalogSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	ownerIDs := make(map[string]string, len(ownerSeeds))

	for _, o := range ownerSeeds {
		var id string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM product_owner WHERE email = $1`,
			o.email,
		).Scan(&id)

		switch {
		case err == sql.ErrNoRows:
			err = tx.QueryRowContext(ctx,
				`INSERT INTO product_owner (name, email, phone)
				 VALUES ($1, $2, $3)
				 RETURNING id`,
				o.name, o.email, o.phone,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert owner %s: %w", o.email, err)
			}
		case err != nil:
			return fmt.Errorf("query owner %s: %w", o.email, err)
		}

		ownerIDs[o.email] = id
	}

	for _, p := range productSeeds {
		ownerID, ok := ownerIDs[p.ownerEmail]
		if !ok {
			return fmt.Errorf("product %s references unknown owner %s", p.sku, p.ownerEmail)
		}

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM product WHERE sku = $1)`,
			p.sku,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("query product %s: %w", p.sku, err)
		}
		if exists {
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO product (name, sku, price, inventory, status, owner_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.name, p.sku, p.price, p.inventory, p.status, ownerID,
		)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.sku, err)
		}
	}

	return nil
}
