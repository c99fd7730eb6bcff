package transport

import (
	"io"
	"net/http"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/middleware"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RestaurantHandler handles HTTP requests for restaurant operations
type RestaurantHandler struct {
	repo        repository.RestaurantRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(repo repository.RestaurantRepository, productRepo repository.ProductRepository, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		repo:        repo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// RegisterRoutes registers the restaurant routes on the /restaurants subrouter
func (h *RestaurantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{restaurantId}", h.Update)
	r.Get("/{restaurantId}", h.Show)
	r.Get("/", h.List)
	r.Delete("/{restaurantId}", h.Delete)
}

// Create handles POST /restaurants
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on create restaurant")
		return
	}

	restaurant, err := parseRestaurant(body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on create restaurant")
		return
	}

	if err := h.repo.Create(r.Context(), restaurant); err != nil {
		respondError(w, h.logger, err, "Unexpected error on create restaurant")
		return
	}

	h.logger.Info("Restaurant created", zap.String("name", restaurant.Name))
	w.WriteHeader(http.StatusCreated)
}

// Update handles PUT /restaurants/{restaurantId}
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update restaurant")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update restaurant")
		return
	}

	restaurant, err := parseRestaurant(body)
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on update restaurant")
		return
	}
	restaurant.ID = id

	if err := h.repo.Update(r.Context(), restaurant); err != nil {
		respondError(w, h.logger, err, "Unexpected error on update restaurant")
		return
	}

	h.logger.Info("Restaurant updated", zap.Int("id", id))
	w.WriteHeader(http.StatusCreated)
}

// showResponse is the Show wire body: the restaurant's own fields plus its
// product list. Products is always present, empty or not.
type showResponse struct {
	*domain.Restaurant
	Products []domain.Product `json:"products"`
}

// Show handles GET /restaurants/{restaurantId}. The restaurant and its
// product list are fetched concurrently and merged into one body.
func (h *RestaurantHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on show restaurant")
		return
	}

	var (
		restaurant *domain.Restaurant
		products   []domain.Product
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		restaurant, err = h.repo.Show(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = h.productRepo.List(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, h.logger, err, "Unexpected error on show restaurant")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, showResponse{restaurant, products})
}

// List handles GET /restaurants
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repo.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on list restaurants")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, restaurants)
}

// Delete handles DELETE /restaurants/{restaurantId}
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := apierror.ParseID(chi.URLParam(r, "restaurantId"), "Invalid restaurant's id")
	if err != nil {
		respondError(w, h.logger, err, "Unexpected error on delete restaurant")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "Unexpected error on delete restaurant")
		return
	}

	h.logger.Info("Restaurant deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusCreated)
}
