package repository

import (
	"context"
	"testing"
	"time"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

func pgTestProduct(name string, brand domain.Brand, category domain.Category, price float64) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Brand:     brand,
		Category:  category,
		Gender:    domain.GenderUnisex,
		OldPrice:  price,
		NewPrice:  price,
		Stock:     10,
		Features:  []string{"UV400 protection"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProductRepositoryCreateAndFind(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := pgTestProduct("pg-aviator", domain.BrandRayBan, domain.CategorySunglasses, 2199)
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Name != "pg-aviator" {
		t.Errorf("expected name pg-aviator, got %q", found.Name)
	}
	if len(found.Features) != 1 || found.Features[0] != "UV400 protection" {
		t.Errorf("features did not survive the round trip: %+v", found.Features)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryCreateRejectsInvalid(t *testing.T) {
	repo := NewProductRepository(testDB)

	invalid := pgTestProduct("pg-bad", domain.BrandRayBan, domain.CategorySunglasses, 100)
	invalid.NewPrice = 200 // above OldPrice

	if err := repo.Create(context.Background(), invalid); err == nil {
		t.Fatal("expected validation error for discounted price above original")
	}
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	seed := []*domain.Product{
		pgTestProduct("pg-filter-sun", domain.BrandCarrera, domain.CategorySunglasses, 160000),
		pgTestProduct("pg-filter-eye", domain.BrandCarrera, domain.CategoryEyeglasses, 90000),
		pgTestProduct("pg-filter-lux", domain.BrandPrada, domain.CategoryDesignerFrames, 550000),
	}
	for _, product := range seed {
		if err := repo.Create(ctx, product); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	products, total, err := repo.List(ctx, ProductFilter{
		Brands:      []domain.Brand{domain.BrandCarrera},
		PriceRanges: []string{"150000-300000"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("expected exactly 1 match, got total=%d len=%d", total, len(products))
	}
	if products[0].Name != "pg-filter-sun" {
		t.Errorf("expected pg-filter-sun, got %q", products[0].Name)
	}

	products, _, err = repo.List(ctx, ProductFilter{
		PriceRanges: []string{"above-500000"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, product := range products {
		if product.NewPrice < 500000 {
			t.Errorf("product %q below the price band leaked into above-500000", product.Name)
		}
	}
}

func TestProductRepositoryListSearch(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := pgTestProduct("pg-searchable-persol", domain.BrandPersol, domain.CategorySunglasses, 12999)
	product.Description = "Handmade acetate frames from Italy"
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	products, _, err := repo.List(ctx, ProductFilter{Search: "SEARCHABLE"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, p := range products {
		if p.ID == product.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected case-insensitive search to match the product name")
	}
}

func TestProductRepositoryDistinctCategories(t *testing.T) {
	repo := NewProductRepository(testDB)

	categories, err := repo.DistinctCategories(context.Background())
	if err != nil {
		t.Fatalf("DistinctCategories failed: %v", err)
	}

	seen := map[domain.Category]bool{}
	for _, category := range categories {
		if seen[category] {
			t.Errorf("duplicate category %s", category)
		}
		seen[category] = true
	}
}
