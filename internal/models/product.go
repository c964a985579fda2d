package models

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// sizeOrder is the canonical taxonomy for apparel sizes. Sizes not present
// here sort after all recognized sizes, keeping their submitted order.
var sizeOrder = []string{"XS", "S", "M", "L", "XL", "XXL"}

func sizeRank(name string) int {
	for i, s := range sizeOrder {
		if s == name {
			return i
		}
	}
	return len(sizeOrder)
}

// SizeVariant is a purchasable size with its own price.
type SizeVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ColorVariant is a purchasable color; Value holds the CSS/hex value.
type ColorVariant struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SizeList is a JSONB-backed ordered list of size variants.
type SizeList []SizeVariant

func (s SizeList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SizeList) Scan(value interface{}) error {
	if value == nil {
		*s = make(SizeList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// ColorList is a JSONB-backed list of color variants.
type ColorList []ColorVariant

func (c ColorList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ColorList) Scan(value interface{}) error {
	if value == nil {
		*c = make(ColorList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// StringList is a JSONB-backed list of strings (badges, image ids).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = make(StringList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// SortSizes returns sizes ordered by the canonical taxonomy. Unrecognized
// names sort last; the sort is stable so their relative order is preserved.
func SortSizes(sizes []SizeVariant) []SizeVariant {
	sorted := make([]SizeVariant, len(sizes))
	copy(sorted, sizes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sizeRank(sorted[i].Name) < sizeRank(sorted[j].Name)
	})
	return sorted
}

// BasePrice derives the canonical display price: the price of the first size
// in taxonomy order when sizes are present, otherwise the submitted price.
func BasePrice(sizes []SizeVariant, submitted float64) float64 {
	if len(sizes) == 0 {
		return submitted
	}
	return SortSizes(sizes)[0].Price
}

// DiscountedPrice applies the discount percentage and rounds to two decimal
// places. Rounding happens here only; stored prices stay unrounded.
func DiscountedPrice(price, discountPercentage float64) float64 {
	discounted := price * (1 - discountPercentage/100)
	return math.Round(discounted*100) / 100
}

// Product represents a catalog product with variant pricing.
type Product struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string     `json:"name" gorm:"not null"`
	Description        string     `json:"description"`
	Price              float64    `json:"price" gorm:"not null"`
	DiscountPercentage float64    `json:"discountPercentage" gorm:"not null;default:0"`
	StockQuantity      int        `json:"stockQuantity" gorm:"not null;default:0"`
	Sizes              SizeList   `json:"sizes" gorm:"type:jsonb"`
	Colors             ColorList  `json:"colors" gorm:"type:jsonb"`
	CategoryID         string     `json:"categoryId" gorm:"index"`
	Badges             StringList `json:"badges" gorm:"type:jsonb"`
	MainImageID        string     `json:"mainImageId"`
	GalleryImageIDs    StringList `json:"galleryImageIds" gorm:"type:jsonb"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// FirstSize returns the name of the first size in taxonomy order.
func (p *Product) FirstSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0].Name
}

// FirstColor returns the name of the first listed color.
func (p *Product) FirstColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0].Name
}

// UpsertProductRequest represents a request to create or update a product
type UpsertProductRequest struct {
	Name               string         `json:"name" binding:"required"`
	Description        string         `json:"description"`
	Price              float64        `json:"price"`
	DiscountPercentage float64        `json:"discountPercentage"`
	StockQuantity      int            `json:"stockQuantity"`
	Sizes              []SizeVariant  `json:"sizes"`
	Colors             []ColorVariant `json:"colors"`
	CategoryID         string         `json:"categoryId"`
	Badges             []string       `json:"badges"`
	MainImageID        string         `json:"mainImageId"`
	GalleryImageIDs    []string       `json:"galleryImageIds"`
}

// ProductView is a product joined with resolved image URLs and the
// presentation-time discounted price.
type ProductView struct {
	Product
	DiscountedPrice float64  `json:"discountedPrice"`
	MainImageURL    string   `json:"mainImageUrl,omitempty"`
	GalleryURLs     []string `json:"galleryUrls,omitempty"`
}
