// Package storefront assembles view models from remote settings and catalog
// data. Each view owns its fetches and timers and degrades to local defaults
// or empty sections when the remote service fails.
package storefront

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/format"
	"finitefield.org/vurel-web/internal/observability"
	"finitefield.org/vurel-web/internal/remote"
	"finitefield.org/vurel-web/internal/settings"
)

const defaultPlaceholder = "/placeholder.svg"

// SettingsSource fetches configuration resources.
type SettingsSource interface {
	Fetch(ctx context.Context, kind settings.Kind) (settings.Resource, error)
}

// CatalogSource reads products and collections.
type CatalogSource interface {
	ListAll(ctx context.Context) ([]catalog.Product, error)
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
	Reviews(ctx context.Context, id int64) (catalog.ProductReviews, error)
	Featured(ctx context.Context) ([]catalog.Product, error)
	Categories(ctx context.Context) ([]catalog.Category, error)
	ListCollections(ctx context.Context) ([]catalog.Collection, error)
	GetCollectionByID(ctx context.Context, id int64) (catalog.Collection, error)
	CollectionProducts(ctx context.Context, id int64) ([]catalog.Product, error)
}

// Deps carries the collaborators and tunables shared by every view.
type Deps struct {
	Settings SettingsSource
	Catalog  CatalogSource
	// Logger defaults to the logger on the mount context.
	Logger      *zap.Logger
	Prices      *format.Prices
	Placeholder string

	HeroInterval  time.Duration
	CountdownTick time.Duration
	Now           func() time.Time
}

func (d Deps) withDefaults(ctx context.Context) Deps {
	if d.Logger == nil {
		d.Logger = observability.FromContext(ctx)
	}
	if d.Prices == nil {
		d.Prices = format.NewPrices("INR", "en-IN")
	}
	if d.Placeholder == "" {
		d.Placeholder = defaultPlaceholder
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Settings == nil {
		d.Settings = offline{}
	}
	if d.Catalog == nil {
		d.Catalog = offline{}
	}
	return d
}

// offline stands in for unconfigured sources; every call fails as a network error.
type offline struct{}

func (offline) err(path string) error {
	return &remote.NetworkError{URL: path, Err: remote.ErrNoBaseURL}
}

func (o offline) Fetch(_ context.Context, kind settings.Kind) (settings.Resource, error) {
	return nil, o.err(kind.Path())
}

func (o offline) ListAll(context.Context) ([]catalog.Product, error) {
	return nil, o.err("/api/products")
}

func (o offline) GetByID(context.Context, int64) (catalog.Product, error) {
	return catalog.Product{}, o.err("/api/products")
}

func (o offline) Reviews(context.Context, int64) (catalog.ProductReviews, error) {
	return catalog.ProductReviews{}, o.err("/api/products")
}

func (o offline) Featured(context.Context) ([]catalog.Product, error) {
	return nil, o.err("/api/featured-products")
}

func (o offline) Categories(context.Context) ([]catalog.Category, error) {
	return nil, o.err("/api/categories/grouped")
}

func (o offline) ListCollections(context.Context) ([]catalog.Collection, error) {
	return nil, o.err("/api/collections")
}

func (o offline) GetCollectionByID(context.Context, int64) (catalog.Collection, error) {
	return catalog.Collection{}, o.err("/api/collections")
}

func (o offline) CollectionProducts(context.Context, int64) ([]catalog.Product, error) {
	return nil, o.err("/api/collections")
}

// loadSetting fetches kind and falls back to settings.Default on any failure.
// The second result reports whether the default was used.
func loadSetting[T settings.Resource](ctx context.Context, deps Deps, logger *zap.Logger, kind settings.Kind) (T, bool) {
	res, err := deps.Settings.Fetch(ctx, kind)
	if err == nil {
		if typed, ok := res.(T); ok {
			return typed, false
		}
		err = fmt.Errorf("storefront: unexpected %T for %s", res, kind)
	}

	logger.Warn("settings fetch failed, using default",
		zap.String("kind", string(kind)),
		zap.String("failure", remote.Classify(err)),
		zap.Error(err),
	)
	observability.CountFallback(string(kind))
	fallback, _ := settings.Default(kind, deps.Now()).(T)
	return fallback, true
}

// logCatalogFailure records a swallowed catalog error.
func logCatalogFailure(logger *zap.Logger, resource string, err error) {
	logger.Warn("catalog fetch failed",
		zap.String("resource", resource),
		zap.String("failure", remote.Classify(err)),
		zap.Error(err),
	)
}
