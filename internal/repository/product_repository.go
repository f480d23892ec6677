package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter narrows a catalog listing. Slice fields are OR'd within
// themselves and AND'd across fields; empty slices mean "no filter".
// Values are validated against the domain enums before they reach the
// repository.
type ProductFilter struct {
	Categories  []domain.Category
	Brands      []domain.Brand
	Genders     []domain.Gender
	PriceRanges []string
	Featured    *bool
	Search      string
	Page        int
	PageSize    int
}

// Normalize applies listing defaults for pagination.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 12
	}
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error)
	DistinctCategories(ctx context.Context) ([]domain.Category, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a ProductRepository backed by postgres.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	features, err := json.Marshal(product.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	query := `
		INSERT INTO products (id, name, brand, category, gender, description, image,
			old_price, new_price, stock, featured, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Brand,
		product.Category,
		product.Gender,
		product.Description,
		product.Image,
		product.OldPrice,
		product.NewPrice,
		product.Stock,
		product.Featured,
		features,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, brand, category, gender, description, image,
			old_price, new_price, stock, featured, features, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products matching the filter, with a total count for
// pagination. Results are ordered newest-first.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error) {
	filter.Normalize()

	conditions := []string{}
	args := []interface{}{}

	appendIn := func(column string, values []string) {
		placeholders := make([]string, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	}

	if len(filter.Categories) > 0 {
		values := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			values[i] = string(c)
		}
		appendIn("category", values)
	}
	if len(filter.Brands) > 0 {
		values := make([]string, len(filter.Brands))
		for i, b := range filter.Brands {
			values[i] = string(b)
		}
		appendIn("brand", values)
	}
	if len(filter.Genders) > 0 {
		values := make([]string, len(filter.Genders))
		for i, g := range filter.Genders {
			values[i] = string(g)
		}
		appendIn("gender", values)
	}

	if len(filter.PriceRanges) > 0 {
		bands := []string{}
		for _, key := range filter.PriceRanges {
			band, ok := domain.PriceRanges[key]
			if !ok {
				continue
			}
			args = append(args, band.Min)
			if band.Max != nil {
				args = append(args, *band.Max)
				bands = append(bands, fmt.Sprintf("(new_price >= $%d AND new_price < $%d)", len(args)-1, len(args)))
			} else {
				bands = append(bands, fmt.Sprintf("new_price >= $%d", len(args)))
			}
		}
		if len(bands) > 0 {
			conditions = append(conditions, "("+strings.Join(bands, " OR ")+")")
		}
	}

	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions, fmt.Sprintf("featured = $%d", len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	query := fmt.Sprintf(`
		SELECT id, name, brand, category, gender, description, image,
			old_price, new_price, stock, featured, features, created_at, updated_at
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// DistinctCategories returns the categories present in the catalog.
func (r *productRepository) DistinctCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Count returns the number of products in the catalog.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var features []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.Category,
		&product.Gender,
		&product.Description,
		&product.Image,
		&product.OldPrice,
		&product.NewPrice,
		&product.Stock,
		&product.Featured,
		&features,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &product.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
	}

	return product, nil
}
