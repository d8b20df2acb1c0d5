package storefront

import (
	"context"
	"sync"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/format"
	"finitefield.org/vurel-web/internal/shop"
)

// ShopView is the filterable product listing. The full catalog and the
// category tree load once at mount; the query is applied on every Snapshot.
// Either fetch failing leaves its part empty.
type ShopView struct {
	*lifecycle
	deps  Deps
	query shop.Query

	products   []catalog.Product
	categories []catalog.Category
}

// CategoryOption is a selectable category with its subcategory names.
type CategoryOption struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// ShopSnapshot is the render state of a ShopView.
type ShopSnapshot struct {
	Query         shop.Query       `json:"query"`
	Categories    []CategoryOption `json:"categories"`
	PriceRanges   []string         `json:"price_ranges"`
	Sorts         []shop.Sort      `json:"sorts"`
	ActiveFilters int              `json:"active_filters"`
	Total         int              `json:"total"`
	Products      []ProductCard    `json:"products"`
}

// NewShopView mounts the listing for q and starts loading.
func NewShopView(ctx context.Context, deps Deps, q shop.Query) *ShopView {
	deps = deps.withDefaults(ctx)
	v := &ShopView{lifecycle: newLifecycle("shop", deps.Logger), deps: deps, query: q}
	go v.load(context.WithoutCancel(ctx))
	return v
}

func (v *ShopView) load(ctx context.Context) {
	var (
		wg            sync.WaitGroup
		products      []catalog.Product
		categories    []catalog.Category
		productsErr   error
		categoriesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = v.deps.Catalog.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, categoriesErr = v.deps.Catalog.Categories(ctx)
	}()
	wg.Wait()

	if productsErr != nil {
		logCatalogFailure(v.logger, "products", productsErr)
		products = nil
	}
	if categoriesErr != nil {
		logCatalogFailure(v.logger, "categories", categoriesErr)
		categories = nil
	}

	v.commit(func() {
		v.products = products
		v.categories = categories
	})
}

// Snapshot returns the filtered, ordered listing.
func (v *ShopView) Snapshot() ShopSnapshot {
	v.mu.Lock()
	products, categories := v.products, v.categories
	v.mu.Unlock()

	filtered := shop.Apply(products, categories, v.query, v.deps.Prices.Locale())
	return ShopSnapshot{
		Query:         v.query,
		Categories:    categoryOptions(categories),
		PriceRanges:   priceLabels(v.deps.Prices),
		Sorts:         shop.Sorts,
		ActiveFilters: v.query.ActiveFilters(),
		Total:         len(filtered),
		Products:      productCards(filtered, v.deps.Prices, v.deps.Placeholder),
	}
}

func categoryOptions(categories []catalog.Category) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		opt := CategoryOption{Name: content.Plain(c.Name)}
		for _, sub := range c.Subcategories {
			opt.Subcategories = append(opt.Subcategories, content.Plain(sub.Name))
		}
		out = append(out, opt)
	}
	return out
}

func priceLabels(prices *format.Prices) []string {
	out := make([]string, 0, len(shop.PriceRanges))
	for _, r := range shop.PriceRanges {
		switch {
		case r.Min.IsZero() && !r.Max.Valid:
			out = append(out, "All Prices")
		case r.Min.IsZero():
			out = append(out, "Under "+prices.Format(r.Max.Decimal))
		case !r.Max.Valid:
			out = append(out, "Above "+prices.Format(r.Min))
		default:
			out = append(out, prices.Format(r.Min)+" - "+prices.Format(r.Max.Decimal))
		}
	}
	return out
}
