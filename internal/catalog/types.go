package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Color is a selectable product variant swatch.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// GalleryImage is an extra product image, optionally tied to a colour.
type GalleryImage struct {
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// UnmarshalJSON accepts both the legacy bare-URL form and the {url,color} object.
func (g *GalleryImage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*g = GalleryImage{URL: url}
		return nil
	}
	var obj struct {
		URL   string  `json:"url"`
		Color *string `json:"color"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*g = GalleryImage{URL: obj.URL}
	if obj.Color != nil {
		g.Color = *obj.Color
	}
	return nil
}

// FAQ is a product question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Product is a catalog entry.
type Product struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category"`
	Price           decimal.Decimal     `json:"price"`
	OriginalPrice   decimal.NullDecimal `json:"original_price"`
	Stock           int                 `json:"stock"`
	Status          string              `json:"status,omitempty"`
	ImageURL        string              `json:"image_url,omitempty"`
	Colors          []Color             `json:"colors,omitempty"`
	Sizes           []string            `json:"sizes,omitempty"`
	GalleryImages   []GalleryImage      `json:"gallery_images,omitempty"`
	VideoURL        string              `json:"video_url,omitempty"`
	IsFeatured      bool                `json:"is_featured,omitempty"`
	RelatedProducts []int64             `json:"related_products,omitempty"`
	FAQs            []FAQ               `json:"faqs,omitempty"`
	CreatedAt       string              `json:"created_at,omitempty"`
}

// ProductID is the relation key for products.
func ProductID(p Product) int64 { return p.ID }

// ShowOriginalPrice reports whether the original price should be shown
// struck through: only when present and greater than the selling price.
func (p Product) ShowOriginalPrice() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}

// Image returns the primary image or placeholder when absent.
func (p Product) Image(placeholder string) string {
	if url := strings.TrimSpace(p.ImageURL); url != "" {
		return url
	}
	return placeholder
}

// Gallery lists the primary image followed by gallery images that are
// untagged or tagged with color. An empty color keeps untagged images only.
func (p Product) Gallery(placeholder, color string) []string {
	out := []string{p.Image(placeholder)}
	for _, img := range p.GalleryImages {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		if img.Color == "" || img.Color == color {
			out = append(out, url)
		}
	}
	return out
}

// DefaultColor is the first listed colour, or empty.
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0].Name
}

// Collection groups products for merchandising.
type Collection struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	Description  string    `json:"description,omitempty"`
	CoverImage   string    `json:"cover_image,omitempty"`
	FormatType   string    `json:"format_type,omitempty"`
	IsActive     bool      `json:"is_active,omitempty"`
	ShowOnHome   bool      `json:"show_on_home,omitempty"`
	DisplayOrder int       `json:"display_order,omitempty"`
	ProductCount int       `json:"product_count"`
	Products     []Product `json:"products,omitempty"`
	CreatedAt    string    `json:"created_at,omitempty"`
}

// DisplayTitle resolves the collection heading: title, else name.
func (c Collection) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return strings.TrimSpace(c.Name)
}

// Cover returns the cover image or placeholder when absent.
func (c Collection) Cover(placeholder string) string {
	if url := strings.TrimSpace(c.CoverImage); url != "" {
		return url
	}
	return placeholder
}

// Category is a product category; grouped listings nest one level of
// subcategories under each parent.
type Category struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	ParentID      *int64     `json:"parent_id,omitempty"`
	ParentName    string     `json:"parent_name,omitempty"`
	IsActive      bool       `json:"is_active"`
	Subcategories []Category `json:"subcategories,omitempty"`
}

// Names lists the category name followed by its subcategory names.
func (c Category) Names() []string {
	out := make([]string, 0, 1+len(c.Subcategories))
	out = append(out, c.Name)
	for _, sub := range c.Subcategories {
		out = append(out, sub.Name)
	}
	return out
}

// Review is one verified customer review.
type Review struct {
	ID           int64  `json:"id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Rating summarises the verified reviews of a product.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ProductReviews is the reviews payload of a product.
type ProductReviews struct {
	Reviews []Review `json:"reviews"`
	Rating  Rating   `json:"rating"`
}
