package storefront

import (
	"context"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/settings"
)

// CollectionsSnapshot is the render state of a collections grid or list.
type CollectionsSnapshot struct {
	Visible     bool             `json:"visible"`
	Collections []CollectionCard `json:"collections"`
}

// CollectionsView renders a set of collections; failures leave it empty.
type CollectionsView struct {
	*lifecycle
	deps        Deps
	collections []catalog.Collection
}

// NewCollectionsGridView mounts the homepage collections grid, served by
// the collections-for-home configuration resource.
func NewCollectionsGridView(ctx context.Context, deps Deps) *CollectionsView {
	deps = deps.withDefaults(ctx)
	v := &CollectionsView{lifecycle: newLifecycle("collections_grid", deps.Logger), deps: deps}
	go func() {
		home, _ := loadSetting[settings.HomeCollections](context.WithoutCancel(ctx), deps, v.logger, settings.KindCollectionsForHome)
		v.commit(func() { v.collections = home })
	}()
	return v
}

// NewCollectionsListView mounts the full collections listing.
func NewCollectionsListView(ctx context.Context, deps Deps) *CollectionsView {
	deps = deps.withDefaults(ctx)
	v := &CollectionsView{lifecycle: newLifecycle("collections_list", deps.Logger), deps: deps}
	go func() {
		collections, err := deps.Catalog.ListCollections(context.WithoutCancel(ctx))
		if err != nil {
			logCatalogFailure(v.logger, "collections", err)
			collections = nil
		}
		v.commit(func() { v.collections = collections })
	}()
	return v
}

// Snapshot returns the current render state.
func (v *CollectionsView) Snapshot() CollectionsSnapshot {
	v.mu.Lock()
	collections := v.collections
	v.mu.Unlock()

	cards := collectionCards(collections, v.deps.Placeholder)
	return CollectionsSnapshot{Visible: len(cards) > 0, Collections: cards}
}

// CollectionView is one collection page with its products.
type CollectionView struct {
	*lifecycle
	deps Deps
	id   int64

	status     Status
	collection catalog.Collection
	products   []catalog.Product
}

// CollectionSnapshot is the render state of a CollectionView.
type CollectionSnapshot struct {
	Status     Status          `json:"status"`
	Collection *CollectionCard `json:"collection,omitempty"`
	Products   []ProductCard   `json:"products"`
}

// NewCollectionView mounts the page for collection id. Products embedded in
// the collection payload are used as is; otherwise they are fetched separately.
func NewCollectionView(ctx context.Context, deps Deps, id int64) *CollectionView {
	deps = deps.withDefaults(ctx)
	v := &CollectionView{
		lifecycle: newLifecycle("collection", deps.Logger),
		deps:      deps,
		id:        id,
		status:    StatusLoading,
	}
	go v.load(context.WithoutCancel(ctx))
	return v
}

func (v *CollectionView) load(ctx context.Context) {
	collection, err := v.deps.Catalog.GetCollectionByID(ctx, v.id)
	if err != nil {
		logCatalogFailure(v.logger, "collection", err)
		v.commit(func() { v.status = StatusNotFound })
		return
	}

	products := collection.Products
	if products == nil {
		if v.Closed() {
			v.discard()
			return
		}
		products, err = v.deps.Catalog.CollectionProducts(ctx, v.id)
		if err != nil {
			logCatalogFailure(v.logger, "collection-products", err)
			products = []catalog.Product{}
		}
	}

	v.commit(func() {
		v.status = StatusReady
		v.collection = collection
		v.products = products
	})
}

// Snapshot returns the current render state.
func (v *CollectionView) Snapshot() CollectionSnapshot {
	v.mu.Lock()
	status, collection, products := v.status, v.collection, v.products
	v.mu.Unlock()

	snap := CollectionSnapshot{
		Status:   status,
		Products: productCards(products, v.deps.Prices, v.deps.Placeholder),
	}
	if status == StatusReady {
		card := collectionCard(collection, v.deps.Placeholder)
		card.ProductCount = len(products)
		snap.Collection = &card
	}
	return snap
}
