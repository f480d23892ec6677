package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

// memoryProductRepository serves the catalog from memory. It backs the
// storefront when no database is configured, so browsing keeps working
// with the fixture catalog instead of failing at startup.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

// NewMemoryProductRepository creates a ProductRepository over the given
// products. Pass FixtureProducts() for the built-in catalog.
func NewMemoryProductRepository(products []*domain.Product) ProductRepository {
	copied := make([]*domain.Product, len(products))
	copy(copied, products)
	return &memoryProductRepository{products: copied}
}

func (r *memoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	r.products = append(r.products, &clone)
	return nil
}

func (r *memoryProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *memoryProductRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error) {
	filter.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*domain.Product{}
	for _, product := range r.products {
		if matchesFilter(product, filter) {
			matched = append(matched, product)
		}
	}

	// Newest first, matching the postgres repository's ordering.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	page := make([]*domain.Product, 0, end-start)
	for _, product := range matched[start:end] {
		clone := *product
		page = append(page, &clone)
	}

	return page, total, nil
}

func (r *memoryProductRepository) DistinctCategories(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[domain.Category]bool{}
	categories := []domain.Category{}
	for _, product := range r.products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories, nil
}

func (r *memoryProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func matchesFilter(product *domain.Product, filter ProductFilter) bool {
	if len(filter.Categories) > 0 && !containsCategory(filter.Categories, product.Category) {
		return false
	}
	if len(filter.Brands) > 0 && !containsBrand(filter.Brands, product.Brand) {
		return false
	}
	if len(filter.Genders) > 0 && !containsGender(filter.Genders, product.Gender) {
		return false
	}
	if len(filter.PriceRanges) > 0 && !matchesAnyPriceRange(product.NewPrice, filter.PriceRanges) {
		return false
	}
	if filter.Featured != nil && product.Featured != *filter.Featured {
		return false
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			return false
		}
	}
	return true
}

func matchesAnyPriceRange(price float64, keys []string) bool {
	for _, key := range keys {
		if band, ok := domain.PriceRanges[key]; ok && band.Contains(price) {
			return true
		}
	}
	return false
}

func containsCategory(values []domain.Category, v domain.Category) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsBrand(values []domain.Brand, v domain.Brand) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsGender(values []domain.Gender, v domain.Gender) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
