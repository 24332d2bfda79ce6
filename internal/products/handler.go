package products

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/catalog-lab/internal/routes"
	"github.com/JaimeStill/catalog-lab/pkg/handlers"
	"github.com/JaimeStill/catalog-lab/pkg/pagination"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for product CRUD operations and the
// per-owner sub-resource listing.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a products HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group configuration for product endpoints.
// The owner sub-resource is registered before "/{id}" so the literal
// segment takes precedence.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/products",
		Description: "Catalogue product management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/owner/{ownerId}", Handler: h.ListByOwner},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List handles GET /api/products to retrieve a paginated list of products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	if err := page.ValidateSort(SortFields); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, handlers.MessageRetrieved, result)
}

// ListByOwner handles GET /api/products/owner/{ownerId} to retrieve all
// products referencing an owner.
func (h *Handler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.PathValue("ownerId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid owner id: %w", err))
		return
	}

	result, err := h.sys.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, handlers.MessageRetrieved, result)
}

// Find handles GET /api/products/{id} to retrieve a single product with its owner.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid product id: %w", err))
		return
	}

	result, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, handlers.MessageRetrieved, result)
}

// Create handles POST /api/products to create a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusCreated, handlers.MessageCreated, result)
}

// Update handles PUT /api/products/{id} to update an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid product id: %w", err))
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, handlers.MessageUpdated, result)
}

// Delete handles DELETE /api/products/{id} to delete a product.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid product id: %w", err))
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, handlers.MessageDeleted)
}
