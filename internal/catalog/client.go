package catalog

import (
	"context"
	"fmt"
	"strconv"

	"finitefield.org/vurel-web/internal/remote"
)

// Getter is the transport Client depends on; *remote.Client satisfies it.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, dst any) error
}

// Client reads products and collections from the storefront API.
// Every method is a single attempt with no server-side filtering.
type Client struct {
	remote Getter
}

// NewClient wraps a remote transport.
func NewClient(getter Getter) *Client {
	return &Client{remote: getter}
}

// get decodes path into a T. A client without transport fails like an
// unreachable service instead of panicking.
func get[T any](ctx context.Context, c *Client, resource, path string) (T, error) {
	var out T
	if c == nil || c.remote == nil {
		return out, &remote.NetworkError{URL: path, Err: remote.ErrNoBaseURL}
	}
	err := c.remote.GetJSON(ctx, resource, path, &out)
	return out, err
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}

func collectionPath(id int64) string {
	return "/api/collections/" + strconv.FormatInt(id, 10)
}

// ListAll returns the full unfiltered product list.
func (c *Client) ListAll(ctx context.Context) ([]Product, error) {
	out, err := get[[]Product](ctx, c, "products", "/api/products")
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return out, nil
}

// GetByID returns one product. A missing product satisfies errors.Is(err, remote.ErrNotFound).
func (c *Client) GetByID(ctx context.Context, id int64) (Product, error) {
	out, err := get[Product](ctx, c, "product", productPath(id))
	if err != nil {
		return Product{}, fmt.Errorf("catalog: get product %d: %w", id, err)
	}
	return out, nil
}

// Reviews returns the verified reviews of a product with its rating summary.
func (c *Client) Reviews(ctx context.Context, id int64) (ProductReviews, error) {
	out, err := get[ProductReviews](ctx, c, "product-reviews", productPath(id)+"/reviews")
	if err != nil {
		return ProductReviews{}, fmt.Errorf("catalog: product %d reviews: %w", id, err)
	}
	return out, nil
}

// Featured returns the products flagged for the homepage.
func (c *Client) Featured(ctx context.Context) ([]Product, error) {
	out, err := get[[]Product](ctx, c, "featured-products", "/api/featured-products")
	if err != nil {
		return nil, fmt.Errorf("catalog: featured products: %w", err)
	}
	return out, nil
}

// Categories returns the active top-level categories with their subcategories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	out, err := get[[]Category](ctx, c, "categories", "/api/categories/grouped")
	if err != nil {
		return nil, fmt.Errorf("catalog: grouped categories: %w", err)
	}
	return out, nil
}

// ListCollections returns every active collection.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	out, err := get[[]Collection](ctx, c, "collections", "/api/collections")
	if err != nil {
		return nil, fmt.Errorf("catalog: list collections: %w", err)
	}
	return out, nil
}

// GetCollectionByID returns one collection with whatever products the
// service embeds. A missing collection satisfies errors.Is(err, remote.ErrNotFound).
func (c *Client) GetCollectionByID(ctx context.Context, id int64) (Collection, error) {
	out, err := get[Collection](ctx, c, "collection", collectionPath(id))
	if err != nil {
		return Collection{}, fmt.Errorf("catalog: get collection %d: %w", id, err)
	}
	return out, nil
}

// CollectionProducts returns the products assigned to a collection.
func (c *Client) CollectionProducts(ctx context.Context, id int64) ([]Product, error) {
	out, err := get[[]Product](ctx, c, "collection-products", collectionPath(id)+"/products")
	if err != nil {
		return nil, fmt.Errorf("catalog: collection %d products: %w", id, err)
	}
	return out, nil
}
