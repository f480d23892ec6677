package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand is one of the eyewear brands carried by the store.
type Brand string

const (
	BrandRayBan      Brand = "Ray-Ban"
	BrandOakley      Brand = "Oakley"
	BrandCarrera     Brand = "Carrera"
	BrandGucci       Brand = "Gucci"
	BrandPrada       Brand = "Prada"
	BrandTomFord     Brand = "Tom Ford"
	BrandWarbyParker Brand = "Warby Parker"
	BrandFosterGrant Brand = "Foster Grant"
	BrandKateSpade   Brand = "Kate Spade"
	BrandPersol      Brand = "Persol"
)

// Brands lists every valid brand, in catalog display order.
var Brands = []Brand{
	BrandRayBan,
	BrandOakley,
	BrandCarrera,
	BrandGucci,
	BrandPrada,
	BrandTomFord,
	BrandWarbyParker,
	BrandFosterGrant,
	BrandKateSpade,
	BrandPersol,
}

// Category is a product category.
type Category string

const (
	CategorySunglasses     Category = "Sunglasses"
	CategoryEyeglasses     Category = "Eyeglasses"
	CategoryReadingGlasses Category = "Reading Glasses"
	CategorySportsEyewear  Category = "Sports Eyewear"
	CategoryKidsEyewear    Category = "Kids Eyewear"
	CategoryDesignerFrames Category = "Designer Frames"
)

// Categories lists every valid category, in catalog display order.
var Categories = []Category{
	CategorySunglasses,
	CategoryEyeglasses,
	CategoryReadingGlasses,
	CategorySportsEyewear,
	CategoryKidsEyewear,
	CategoryDesignerFrames,
}

// Gender is the audience a frame is designed for.
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// Genders lists every valid gender value.
var Genders = []Gender{GenderMen, GenderWomen, GenderUnisex}

// IsValid reports whether b is a known brand.
func (b Brand) IsValid() bool {
	for _, known := range Brands {
		if b == known {
			return true
		}
	}
	return false
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsValid reports whether g is a known gender value.
func (g Gender) IsValid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// PriceRange is a half-open price band used by the catalog filter. A nil
// Max means the band is unbounded above.
type PriceRange struct {
	Min float64
	Max *float64
}

// Contains reports whether price falls inside the range.
func (p PriceRange) Contains(price float64) bool {
	if price < p.Min {
		return false
	}
	if p.Max != nil && price >= *p.Max {
		return false
	}
	return true
}

func priceCeil(v float64) *float64 { return &v }

// PriceRanges maps the filter keys exposed on the products endpoint to
// their price bands.
var PriceRanges = map[string]PriceRange{
	"under-150000":  {Min: 0, Max: priceCeil(150000)},
	"150000-300000": {Min: 150000, Max: priceCeil(300000)},
	"300000-500000": {Min: 300000, Max: priceCeil(500000)},
	"above-500000":  {Min: 500000, Max: nil},
}

// Product is a catalog entry. NewPrice is the selling price; OldPrice is
// the pre-discount price and must not be lower than NewPrice.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Brand       Brand     `json:"brand" db:"brand"`
	Category    Category  `json:"category" db:"category"`
	Gender      Gender    `json:"gender" db:"gender"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	OldPrice    float64   `json:"oldPrice" db:"old_price"`
	NewPrice    float64   `json:"newPrice" db:"new_price"`
	Stock       int       `json:"quantity" db:"stock"`
	Featured    bool      `json:"featured" db:"featured"`
	Features    []string  `json:"features,omitempty" db:"features"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks the catalog invariants on a product record.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrProductInvalid("name is required")
	}
	if !p.Brand.IsValid() {
		return ErrProductInvalid("unknown brand: " + string(p.Brand))
	}
	if !p.Category.IsValid() {
		return ErrProductInvalid("unknown category: " + string(p.Category))
	}
	if !p.Gender.IsValid() {
		return ErrProductInvalid("unknown gender: " + string(p.Gender))
	}
	if p.NewPrice < 0 {
		return ErrProductInvalid("price must not be negative")
	}
	if p.OldPrice < p.NewPrice {
		return ErrProductInvalid("discounted price exceeds original price")
	}
	if p.Stock < 0 {
		return ErrProductInvalid("stock must not be negative")
	}
	return nil
}

// ErrProductInvalid reports a product that violates catalog invariants.
type ErrProductInvalid string

func (e ErrProductInvalid) Error() string { return "invalid product: " + string(e) }

// CategoryImages maps category names to their display images.
var CategoryImages = map[Category]string{
	CategorySunglasses:     "https://images.unsplash.com/photo-1511499767150-a48a237f0083?q=80&w=1000&auto=format&fit=crop",
	CategoryEyeglasses:     "https://images.unsplash.com/photo-1574258495973-f010dfbb5371?q=80&w=1000&auto=format&fit=crop",
	CategorySportsEyewear:  "https://images.unsplash.com/photo-1572635196237-14b3f281503f?q=80&w=1000&auto=format&fit=crop",
	CategoryKidsEyewear:    "https://images.unsplash.com/photo-1577744486770-2f42fd04686f?q=80&w=1000&auto=format&fit=crop",
	CategoryDesignerFrames: "https://images.unsplash.com/photo-1473496169904-658ba7c44d8a?q=80&w=1000&auto=format&fit=crop",
	CategoryReadingGlasses: "https://images.unsplash.com/photo-1591076482161-42ce6da69f67?q=80&w=1000&auto=format&fit=crop",
}

// CategoryImage returns the display image for a category, falling back
// to the eyeglasses image for unmapped names.
func CategoryImage(c Category) string {
	if img, ok := CategoryImages[c]; ok {
		return img
	}
	return CategoryImages[CategoryEyeglasses]
}
