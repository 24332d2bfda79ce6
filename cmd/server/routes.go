package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/catalog-lab/internal/config"
	"github.com/JaimeStill/catalog-lab/internal/middleware"
	"github.com/JaimeStill/catalog-lab/internal/owners"
	"github.com/JaimeStill/catalog-lab/internal/products"
	"github.com/JaimeStill/catalog-lab/internal/routes"
)

// buildRoutes wires the resource handlers into the route system and
// wraps the result with the middleware chain.
func buildRoutes(db *sql.DB, logger *slog.Logger, cfg *config.Config) http.Handler {
	r := routes.New(logger)

	productSys := products.New(db, logger, cfg.Pagination, cfg.Images.MaxSizeBytes())
	r.RegisterGroup(products.NewHandler(productSys, logger, cfg.Pagination).Routes())

	ownerSys := owners.New(db, logger, cfg.Pagination)
	r.RegisterGroup(owners.NewHandler(ownerSys, logger, cfg.Pagination).Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	handler := r.Build()
	handler = middleware.TrimSlash()(handler)
	handler = middleware.CORS(cfg.CORS)(handler)
	handler = middleware.Logger(logger)(handler)

	return handler
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
