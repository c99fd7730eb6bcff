package transport

import (
	"io"
	"net/http"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/middleware"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(repo repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers the product routes on the /restaurants subrouter
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{restaurantId}/products", h.Create)
	r.Put("/{restaurantId}/products/{productId}", h.Update)
	r.Get("/{restaurantId}/products", h.List)
	r.Delete("/{restaurantId}/products/{productId}", h.Delete)
}

// Create handles POST /restaurants/{restaurantId}/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on create product")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on create product")
		return
	}

	product, err := parseProduct(body, restaurantID)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on create product")
		return
	}

	if err := h.repo.Create(r.Context(), product); err != nil {
		respondError(w, h.logger, err, "Unexpected error on create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("name", product.Name),
		zap.Int("restaurant_id", restaurantID),
	)
	w.WriteHeader(http.StatusCreated)
}

// Update handles PUT /restaurants/{restaurantId}/products/{productId}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := apierror.ParseID(chi.URLParam(r, "productId"), "Invalid product's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update product")
		return
	}
	restaurantID, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update product")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update product")
		return
	}

	product, err := parseProduct(body, restaurantID)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update product")
		return
	}
	product.ID = id

	if err := h.repo.Update(r.Context(), product); err != nil {
		respondError(w, h.logger, err, "Unexpected error on update product")
		return
	}

	h.logger.Info("Product updated", zap.Int("id", id))
	w.WriteHeader(http.StatusCreated)
}

// List handles GET /restaurants/{restaurantId}/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on list products")
		return
	}

	products, err := h.repo.List(r.Context(), restaurantID)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Delete handles DELETE /restaurants/{restaurantId}/products/{productId}.
// The restaurant id is not checked against the product's owner; the delete is
// keyed by product id alone.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := apierror.ParseID(chi.URLParam(r, "productId"), "Invalid product's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on delete product")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "Unexpected error on delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusCreated)
}
