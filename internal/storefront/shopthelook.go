package storefront

import (
	"context"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/relation"
	"finitefield.org/vurel-web/internal/settings"
)

// ShopTheLookView resolves the configured product ids against the full
// catalog. The catalog is only fetched when the section is enabled and has ids.
type ShopTheLookView struct {
	*lifecycle
	deps Deps

	look     settings.ShopTheLook
	products []catalog.Product
}

// ShopTheLookSnapshot is the render state of a ShopTheLookView. Loop holds
// the products twice for a seamless carousel.
type ShopTheLookSnapshot struct {
	Visible  bool          `json:"visible"`
	Title    string        `json:"title"`
	Products []ProductCard `json:"products"`
	Loop     []ProductCard `json:"loop"`
}

// NewShopTheLookView mounts the carousel and starts loading.
func NewShopTheLookView(ctx context.Context, deps Deps) *ShopTheLookView {
	deps = deps.withDefaults(ctx)
	v := &ShopTheLookView{lifecycle: newLifecycle("shop_the_look", deps.Logger), deps: deps}
	go v.load(context.WithoutCancel(ctx))
	return v
}

func (v *ShopTheLookView) load(ctx context.Context) {
	look, _ := loadSetting[settings.ShopTheLook](ctx, v.deps, v.logger, settings.KindShopTheLook)

	var products []catalog.Product
	if look.Enabled {
		if v.Closed() {
			v.discard()
			return
		}
		var err error
		products, err = relation.ResolveFetched(ctx, look.ProductIDs, v.deps.Catalog.ListAll, catalog.ProductID)
		if err != nil {
			logCatalogFailure(v.logger, "products", err)
			products = nil
		}
	}

	v.commit(func() {
		v.look = look
		v.products = products
	})
}

// Snapshot returns the current render state.
func (v *ShopTheLookView) Snapshot() ShopTheLookSnapshot {
	v.mu.Lock()
	look, products := v.look, v.products
	v.mu.Unlock()

	cards := productCards(products, v.deps.Prices, v.deps.Placeholder)
	title := content.Plain(look.Title)
	if title == "" {
		title = "Shop The Look"
	}
	return ShopTheLookSnapshot{
		Visible:  look.Enabled && len(cards) > 0,
		Title:    title,
		Products: cards,
		Loop:     relation.Loop(cards),
	}
}
