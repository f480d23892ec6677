package repository

import (
	"time"

	"vision-vogue/internal/domain"

	"github.com/google/uuid"
)

// FixtureProducts returns the built-in catalog. It seeds an empty
// postgres catalog at startup and backs the in-memory repository when
// no database is configured. IDs are deterministic so cart and likes
// state survives a restart in fixture mode.
func FixtureProducts() []*domain.Product {
	now := time.Now().UTC()
	fixtures := []*domain.Product{
		{
			Name:        "Classic Wayfarer",
			Brand:       domain.BrandRayBan,
			Category:    domain.CategorySunglasses,
			Gender:      domain.GenderUnisex,
			Description: "Iconic Ray-Ban Wayfarer sunglasses with UV protection",
			Image:       "/assets/sunglasses/sun3.png",
			OldPrice:    2999,
			NewPrice:    2499,
			Stock:       50,
			Featured:    true,
			Features:    []string{"UV400 protection", "Acetate frame"},
		},
		{
			Name:        "Titanium Round",
			Brand:       domain.BrandWarbyParker,
			Category:    domain.CategoryEyeglasses,
			Gender:      domain.GenderMen,
			Description: "Lightweight titanium round frames for everyday wear",
			Image:       "/assets/vision/vision2.png",
			OldPrice:    1999,
			NewPrice:    1499,
			Stock:       30,
		},
		{
			Name:        "Cat Eye Crystal",
			Brand:       domain.BrandKateSpade,
			Category:    domain.CategoryEyeglasses,
			Gender:      domain.GenderWomen,
			Description: "Elegant crystal cat eye frames with modern design",
			Image:       "/assets/vision/vision7.png",
			OldPrice:    2499,
			NewPrice:    1999,
			Stock:       25,
			Featured:    true,
		},
		{
			Name:        "Sport Shield",
			Brand:       domain.BrandOakley,
			Category:    domain.CategorySportsEyewear,
			Gender:      domain.GenderUnisex,
			Description: "High-performance sport shield with impact protection",
			Image:       "/assets/sports/sports1.png",
			OldPrice:    3499,
			NewPrice:    2999,
			Stock:       20,
			Featured:    true,
			Features:    []string{"Impact resistant", "Anti-fog coating"},
		},
		{
			Name:        "Kids Flex",
			Brand:       domain.BrandRayBan,
			Category:    domain.CategoryKidsEyewear,
			Gender:      domain.GenderUnisex,
			Description: "Durable and flexible frames for active kids",
			Image:       "/assets/sports/sports2.png",
			OldPrice:    1499,
			NewPrice:    999,
			Stock:       40,
		},
		{
			Name:        "Designer Aviator",
			Brand:       domain.BrandGucci,
			Category:    domain.CategoryDesignerFrames,
			Gender:      domain.GenderUnisex,
			Description: "Luxury aviator frames with gold-plated details",
			Image:       "/assets/sunglasses/sun4.png",
			OldPrice:    4999,
			NewPrice:    4499,
			Stock:       15,
			Featured:    true,
		},
		{
			Name:        "Reading Classic",
			Brand:       domain.BrandFosterGrant,
			Category:    domain.CategoryReadingGlasses,
			Gender:      domain.GenderUnisex,
			Description: "Classic reading glasses with anti-glare coating",
			Image:       "/assets/vision/vision2.png",
			OldPrice:    999,
			NewPrice:    799,
			Stock:       60,
			Features:    []string{"Anti-glare coating"},
		},
		{
			Name:        "Sport Wrap",
			Brand:       domain.BrandOakley,
			Category:    domain.CategorySportsEyewear,
			Gender:      domain.GenderMen,
			Description: "Wraparound sport frames with polarized lenses",
			Image:       "/assets/sports/sports3.png",
			OldPrice:    2999,
			NewPrice:    2499,
			Stock:       25,
			Featured:    true,
			Features:    []string{"Polarized lenses"},
		},
	}

	for _, product := range fixtures {
		product.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("vision-vogue/product/"+product.Name))
		product.CreatedAt = now
		product.UpdatedAt = now
	}

	return fixtures
}
