package products

import "github.com/JaimeStill/catalog-lab/pkg/query"

// Projection exposes the package projection to external tests.
func Projection() *query.ProjectionMap {
	return projection
}
