// Package shop narrows and orders the full product listing for the shop
// page: category and subcategory, price band, then sort order. It is pure;
// the listing and the category tree come from the catalog client.
package shop

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"finitefield.org/vurel-web/internal/catalog"
)

// ErrInvalidQuery is wrapped by ParseQuery for unusable parameters.
var ErrInvalidQuery = errors.New("shop: invalid query")

// Sort is a listing order.
type Sort string

const (
	// SortNewest keeps the order the catalog returned.
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNameAsc   Sort = "name_asc"
)

// Sorts lists the accepted orders, default first.
var Sorts = []Sort{SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc}

// PriceRange is an inclusive price band. An invalid Max leaves it open-ended.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.NullDecimal
}

// Contains reports whether price lies within the band, bounds included.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	return !r.Max.Valid || !price.GreaterThan(r.Max.Decimal)
}

func upTo(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// PriceRanges are the selectable bands; index 0 matches every price.
var PriceRanges = []PriceRange{
	{},
	{Max: upTo(500)},
	{Min: decimal.NewFromInt(500), Max: upTo(1000)},
	{Min: decimal.NewFromInt(1000), Max: upTo(2000)},
	{Min: decimal.NewFromInt(2000)},
}

// Query selects and orders products. The zero value lists everything in
// catalog order.
type Query struct {
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Price       int    `json:"price"`
	Sort        Sort   `json:"sort"`
}

// ParseQuery reads category, subcategory, price (a PriceRanges index) and
// sort. "All" and empty select every category; a subcategory without a
// category is ignored.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Category:    strings.TrimSpace(values.Get("category")),
		Subcategory: strings.TrimSpace(values.Get("subcategory")),
		Sort:        Sort(strings.TrimSpace(values.Get("sort"))),
	}
	if strings.EqualFold(q.Category, "all") {
		q.Category = ""
	}
	if q.Category == "" {
		q.Subcategory = ""
	}

	if raw := strings.TrimSpace(values.Get("price")); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx >= len(PriceRanges) {
			return Query{}, fmt.Errorf("%w: price %q", ErrInvalidQuery, raw)
		}
		q.Price = idx
	}

	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if !slices.Contains(Sorts, q.Sort) {
		return Query{}, fmt.Errorf("%w: sort %q", ErrInvalidQuery, q.Sort)
	}
	return q, nil
}

// ActiveFilters counts the narrowing filters in effect.
func (q Query) ActiveFilters() int {
	n := 0
	if q.Category != "" {
		n++
	}
	if q.Subcategory != "" {
		n++
	}
	if q.Price != 0 {
		n++
	}
	return n
}

// Apply filters products by q and returns them in q's order. A parent
// category also matches its subcategories; a category missing from the tree
// matches by exact name. Name ordering collates for locale. products is not
// modified.
func Apply(products []catalog.Product, categories []catalog.Category, q Query, locale language.Tag) []catalog.Product {
	allowed := allowedCategories(categories, q)
	band := PriceRanges[0]
	if q.Price > 0 && q.Price < len(PriceRanges) {
		band = PriceRanges[q.Price]
	}

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if allowed != nil && !allowed[p.Category] {
			continue
		}
		if !band.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b catalog.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b catalog.Product) int { return b.Price.Cmp(a.Price) })
	case SortNameAsc:
		col := collate.New(locale)
		slices.SortStableFunc(out, func(a, b catalog.Product) int { return col.CompareString(a.Name, b.Name) })
	}
	return out
}

// allowedCategories returns nil when every category passes.
func allowedCategories(categories []catalog.Category, q Query) map[string]bool {
	switch {
	case q.Category == "":
		return nil
	case q.Subcategory != "":
		return map[string]bool{q.Subcategory: true}
	}
	for _, c := range categories {
		if c.Name != q.Category {
			continue
		}
		allowed := make(map[string]bool, 1+len(c.Subcategories))
		for _, name := range c.Names() {
			allowed[name] = true
		}
		return allowed
	}
	return map[string]bool{q.Category: true}
}
