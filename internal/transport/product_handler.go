package transport

import (
	"errors"
	"net/http"
	"strconv"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest is the admin payload for adding a catalog entry.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Brand       string   `json:"brand" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Gender      string   `json:"gender" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	OldPrice    float64  `json:"oldPrice" validate:"gte=0"`
	NewPrice    float64  `json:"newPrice" validate:"gte=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Featured    bool     `json:"featured"`
	Features    []string `json:"features"`
}

// ProductHandler handles HTTP requests for catalog browsing.
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers catalog routes. Browsing is public; catalog
// management requires an admin token.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Get)
	r.Get("/api/categories", h.Categories)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Post("/api/products", h.Create)
	})
}

// List handles the filtered, paginated catalog listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := service.ListParams{
		Categories:  query["category"],
		Brands:      query["brand"],
		Genders:     query["gender"],
		PriceRanges: query["priceRange"],
		Search:      query.Get("search"),
	}

	if raw := query.Get("featured"); raw != "" {
		featured := raw == "true"
		params.Featured = &featured
	}
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			params.Page = page
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}

	page, err := h.catalog.ListProducts(r.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// Get handles fetching one product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.String("product_id", id.String()), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Categories handles listing the catalog categories with images.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Create handles adding a catalog entry (admin only).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Brand:       domain.Brand(req.Brand),
		Category:    domain.Category(req.Category),
		Gender:      domain.Gender(req.Gender),
		Description: req.Description,
		Image:       req.Image,
		OldPrice:    req.OldPrice,
		NewPrice:    req.NewPrice,
		Stock:       req.Quantity,
		Featured:    req.Featured,
		Features:    req.Features,
	}

	if err := h.catalog.AddProduct(r.Context(), product); err != nil {
		var invalid domain.ErrProductInvalid
		if errors.As(err, &invalid) {
			middleware.RespondWithError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		h.logger.Error("Failed to add product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	h.logger.Info("Product added", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}
