package storefront

import (
	"strconv"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/format"
)

// ProductCard is the list/grid rendering of a product.
type ProductCard struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Image         string `json:"image"`
	Href          string `json:"href"`
}

// CollectionCard is the grid rendering of a collection.
type CollectionCard struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Cover        string `json:"cover"`
	ProductCount int    `json:"product_count"`
	Href         string `json:"href"`
}

func productCard(p catalog.Product, prices *format.Prices, placeholder string) ProductCard {
	card := ProductCard{
		ID:       p.ID,
		Name:     content.Plain(p.Name),
		Category: content.Plain(p.Category),
		Price:    prices.Format(p.Price),
		Image:    p.Image(placeholder),
		Href:     "/product/" + strconv.FormatInt(p.ID, 10),
	}
	if p.ShowOriginalPrice() {
		card.OriginalPrice = prices.Format(p.OriginalPrice.Decimal)
	}
	return card
}

func productCards(products []catalog.Product, prices *format.Prices, placeholder string) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, productCard(p, prices, placeholder))
	}
	return out
}

func collectionCard(c catalog.Collection, placeholder string) CollectionCard {
	count := c.ProductCount
	if count == 0 && len(c.Products) > 0 {
		count = len(c.Products)
	}
	return CollectionCard{
		ID:           c.ID,
		Title:        content.Plain(c.DisplayTitle()),
		Description:  content.Plain(c.Description),
		Cover:        c.Cover(placeholder),
		ProductCount: count,
		Href:         "/collections/" + strconv.FormatInt(c.ID, 10),
	}
}

func collectionCards(collections []catalog.Collection, placeholder string) []CollectionCard {
	out := make([]CollectionCard, 0, len(collections))
	for _, c := range collections {
		out = append(out, collectionCard(c, placeholder))
	}
	return out
}
