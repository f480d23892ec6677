package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrInvalidFilter reports an unknown category, brand, gender, or
	// price range in a listing request. Maps to 400 at the boundary.
	ErrInvalidFilter = errors.New("invalid filter value")
)

// ListParams are the raw query values for a catalog listing, validated
// against the domain enums before they reach the repository.
type ListParams struct {
	Categories  []string
	Brands      []string
	Genders     []string
	PriceRanges []string
	Featured    *bool
	Search      string
	Page        int
	Limit       int
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products   []*domain.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// CategoryView is a category with its display image.
type CategoryView struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CatalogService exposes product browsing and catalog management.
type CatalogService interface {
	ListProducts(ctx context.Context, params ListParams) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Categories(ctx context.Context) ([]CategoryView, error)
	AddProduct(ctx context.Context, product *domain.Product) error
}

type catalogService struct {
	products repository.ProductRepository
}

// NewCatalogService creates a CatalogService over the given repository.
func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

// ListProducts validates the filter values and returns the matching
// page of products.
func (s *catalogService) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	filter := repository.ProductFilter{
		PriceRanges: params.PriceRanges,
		Featured:    params.Featured,
		Search:      params.Search,
		Page:        params.Page,
		PageSize:    params.Limit,
	}

	for _, raw := range params.Categories {
		category := domain.Category(raw)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: category %q", ErrInvalidFilter, raw)
		}
		filter.Categories = append(filter.Categories, category)
	}
	for _, raw := range params.Brands {
		brand := domain.Brand(raw)
		if !brand.IsValid() {
			return nil, fmt.Errorf("%w: brand %q", ErrInvalidFilter, raw)
		}
		filter.Brands = append(filter.Brands, brand)
	}
	for _, raw := range params.Genders {
		gender := domain.Gender(raw)
		if !gender.IsValid() {
			return nil, fmt.Errorf("%w: gender %q", ErrInvalidFilter, raw)
		}
		filter.Genders = append(filter.Genders, gender)
	}
	for _, raw := range params.PriceRanges {
		if _, ok := domain.PriceRanges[raw]; !ok {
			return nil, fmt.Errorf("%w: priceRange %q", ErrInvalidFilter, raw)
		}
	}

	filter.Normalize()

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.PageSize)))
	}

	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

// GetProduct returns a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Categories returns the categories present in the catalog, each with
// its display image (fallback image for unmapped names).
func (s *catalogService) Categories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.products.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{
			Name:  string(category),
			Image: domain.CategoryImage(category),
		})
	}
	return views, nil
}

// AddProduct validates and inserts a catalog entry.
func (s *catalogService) AddProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := product.Validate(); err != nil {
		return err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	return nil
}
