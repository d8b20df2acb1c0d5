package storefront

import (
	"context"
	"html/template"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/relation"
)

// FeaturedProductsView lists the featured products; failures leave it empty.
type FeaturedProductsView struct {
	*lifecycle
	deps     Deps
	products []catalog.Product
}

// ProductListSnapshot is the render state of a product grid.
type ProductListSnapshot struct {
	Visible  bool          `json:"visible"`
	Products []ProductCard `json:"products"`
}

// NewFeaturedProductsView mounts the grid and starts loading.
func NewFeaturedProductsView(ctx context.Context, deps Deps) *FeaturedProductsView {
	deps = deps.withDefaults(ctx)
	v := &FeaturedProductsView{lifecycle: newLifecycle("featured_products", deps.Logger), deps: deps}
	go func() {
		products, err := deps.Catalog.Featured(context.WithoutCancel(ctx))
		if err != nil {
			logCatalogFailure(v.logger, "featured-products", err)
			products = nil
		}
		v.commit(func() { v.products = products })
	}()
	return v
}

// Snapshot returns the current render state.
func (v *FeaturedProductsView) Snapshot() ProductListSnapshot {
	v.mu.Lock()
	products := v.products
	v.mu.Unlock()

	cards := productCards(products, v.deps.Prices, v.deps.Placeholder)
	return ProductListSnapshot{Visible: len(cards) > 0, Products: cards}
}

// ProductView is the product detail page with its related products.
type ProductView struct {
	*lifecycle
	deps Deps
	id   int64

	status  Status
	product catalog.Product
	related []catalog.Product
	reviews catalog.ProductReviews
}

// ProductDetail is the full rendering of one product.
type ProductDetail struct {
	ProductCard
	Description template.HTML   `json:"description"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status,omitempty"`
	Colors      []catalog.Color `json:"colors,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Gallery     []string        `json:"gallery"`
	VideoURL    string          `json:"video_url,omitempty"`
	FAQs        []catalog.FAQ   `json:"faqs,omitempty"`
}

// ProductSnapshot is the render state of a ProductView.
type ProductSnapshot struct {
	Status  Status           `json:"status"`
	Product *ProductDetail   `json:"product,omitempty"`
	Related []ProductCard    `json:"related"`
	Reviews []catalog.Review `json:"reviews"`
	Rating  catalog.Rating   `json:"rating"`
}

// NewProductView mounts the detail view for id. The related products are
// resolved against the full catalog only when the product lists any; the
// reviews are fetched afterwards and leave the section empty on failure.
func NewProductView(ctx context.Context, deps Deps, id int64) *ProductView {
	deps = deps.withDefaults(ctx)
	v := &ProductView{
		lifecycle: newLifecycle("product", deps.Logger),
		deps:      deps,
		id:        id,
		status:    StatusLoading,
	}
	go v.load(context.WithoutCancel(ctx))
	return v
}

func (v *ProductView) load(ctx context.Context) {
	product, err := v.deps.Catalog.GetByID(ctx, v.id)
	if err != nil {
		logCatalogFailure(v.logger, "product", err)
		v.commit(func() { v.status = StatusNotFound })
		return
	}
	if v.Closed() {
		v.discard()
		return
	}

	related, err := relation.ResolveFetched(ctx, product.RelatedProducts, v.deps.Catalog.ListAll, catalog.ProductID)
	if err != nil {
		logCatalogFailure(v.logger, "products", err)
		related = nil
	}
	if v.Closed() {
		v.discard()
		return
	}

	reviews, err := v.deps.Catalog.Reviews(ctx, v.id)
	if err != nil {
		logCatalogFailure(v.logger, "product-reviews", err)
		reviews = catalog.ProductReviews{}
	}

	v.commit(func() {
		v.status = StatusReady
		v.product = product
		v.related = related
		v.reviews = reviews
	})
}

// Snapshot returns the current render state.
func (v *ProductView) Snapshot() ProductSnapshot {
	v.mu.Lock()
	status, product, related, reviews := v.status, v.product, v.related, v.reviews
	v.mu.Unlock()

	snap := ProductSnapshot{
		Status:  status,
		Related: productCards(related, v.deps.Prices, v.deps.Placeholder),
		Reviews: sanitizeReviews(reviews.Reviews),
		Rating:  reviews.Rating,
	}
	if status != StatusReady {
		return snap
	}

	faqs := make([]catalog.FAQ, 0, len(product.FAQs))
	for _, f := range product.FAQs {
		faqs = append(faqs, catalog.FAQ{Question: content.Plain(f.Question), Answer: content.Plain(f.Answer)})
	}
	snap.Product = &ProductDetail{
		ProductCard: productCard(product, v.deps.Prices, v.deps.Placeholder),
		Description: content.Markdown(product.Description),
		Stock:       product.Stock,
		Status:      product.Status,
		Colors:      product.Colors,
		Sizes:       product.Sizes,
		Gallery:     product.Gallery(v.deps.Placeholder, product.DefaultColor()),
		VideoURL:    product.VideoURL,
		FAQs:        faqs,
	}
	return snap
}

func sanitizeReviews(in []catalog.Review) []catalog.Review {
	out := make([]catalog.Review, 0, len(in))
	for _, r := range in {
		r.ReviewerName = content.Plain(r.ReviewerName)
		r.ReviewText = content.Plain(r.ReviewText)
		out = append(out, r)
	}
	return out
}
