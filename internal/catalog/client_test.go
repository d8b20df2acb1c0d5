package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"finitefield.org/vurel-web/internal/remote"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return NewClient(remote.NewClient(ts.URL))
}

func TestGetByIDDecodesProduct(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string]string{
		"/api/products/7": `{
			"id": 7, "name": "Linen Shirt", "category": "Shirts",
			"price": 1299, "original_price": 1999.5, "stock": 4,
			"image_url": "", "colors": [{"name":"Navy","value":"#001"}],
			"gallery_images": ["/a.jpg", {"url":"/b.jpg","color":"Navy"}, {"url":"/c.jpg","color":null}, {"url":"/d.jpg","color":"Red"}],
			"related_products": [9, 10],
			"faqs": [{"question":"Fit?","answer":"True to size"}]
		}`,
	})

	p, err := client.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
	require.True(t, p.Price.Equal(decimal.NewFromInt(1299)))
	require.True(t, p.ShowOriginalPrice())
	require.Equal(t, []int64{9, 10}, p.RelatedProducts)
	require.Equal(t, "/placeholder.svg", p.Image("/placeholder.svg"))
	require.Equal(t, []string{"/placeholder.svg", "/a.jpg", "/b.jpg", "/c.jpg"}, p.Gallery("/placeholder.svg", p.DefaultColor()))
	require.Len(t, p.FAQs, 1)
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, nil)
	_, err := client.GetByID(context.Background(), 404)
	require.True(t, errors.Is(err, remote.ErrNotFound))
	require.Equal(t, remote.FailureNotFound, remote.Classify(err))
}

func TestListAllAndCollections(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string]string{
		"/api/products":               `[{"id":1,"name":"A","price":"10"},{"id":3,"name":"B","price":20}]`,
		"/api/featured-products":      `[{"id":3,"name":"B","price":20,"is_featured":true}]`,
		"/api/collections":            `[{"id":1,"title":"Summer","product_count":2},{"id":2,"name":"Winter","product_count":0}]`,
		"/api/collections/1":          `{"id":1,"title":"Summer","product_count":2}`,
		"/api/collections/1/products": `[{"id":1,"name":"A","price":10}]`,
	})
	ctx := context.Background()

	products, err := client.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	featured, err := client.Featured(ctx)
	require.NoError(t, err)
	require.True(t, featured[0].IsFeatured)

	collections, err := client.ListCollections(ctx)
	require.NoError(t, err)
	require.Equal(t, "Summer", collections[0].DisplayTitle())
	require.Equal(t, "Winter", collections[1].DisplayTitle())

	col, err := client.GetCollectionByID(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, col.Products)

	colProducts, err := client.CollectionProducts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, colProducts, 1)

	_, err = client.GetCollectionByID(ctx, 99)
	require.ErrorIs(t, err, remote.ErrNotFound)
}

func TestShowOriginalPrice(t *testing.T) {
	t.Parallel()

	price := decimal.NewFromInt(100)
	tests := []struct {
		name     string
		original decimal.NullDecimal
		want     bool
	}{
		{name: "absent", original: decimal.NullDecimal{}, want: false},
		{name: "lower", original: decimal.NewNullDecimal(decimal.NewFromInt(80)), want: false},
		{name: "equal", original: decimal.NewNullDecimal(decimal.NewFromInt(100)), want: false},
		{name: "higher", original: decimal.NewNullDecimal(decimal.NewFromInt(150)), want: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := Product{Price: price, OriginalPrice: tc.original}
			require.Equal(t, tc.want, p.ShowOriginalPrice())
		})
	}
}

func TestCollectionCoverFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/placeholder.svg", Collection{}.Cover("/placeholder.svg"))
	require.Equal(t, "/c.jpg", Collection{CoverImage: "/c.jpg"}.Cover("/placeholder.svg"))
}

func TestReviewsAndCategories(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string]string{
		"/api/products/7/reviews": `{"reviews":[{"id":1,"reviewer_name":"Asha","rating":5,"review_text":"Lovely"}],"rating":{"average":4.5,"count":2}}`,
		"/api/categories/grouped": `[{"id":1,"name":"Women","is_active":true,"subcategories":[{"id":4,"name":"Kurtas","parent_id":1}]}]`,
	})
	ctx := context.Background()

	reviews, err := client.Reviews(ctx, 7)
	require.NoError(t, err)
	require.Len(t, reviews.Reviews, 1)
	require.Equal(t, "Asha", reviews.Reviews[0].ReviewerName)
	require.Equal(t, Rating{Average: 4.5, Count: 2}, reviews.Rating)

	_, err = client.Reviews(ctx, 8)
	require.ErrorIs(t, err, remote.ErrNotFound)

	categories, err := client.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, []string{"Women", "Kurtas"}, categories[0].Names())
	require.Equal(t, int64(1), *categories[0].Subcategories[0].ParentID)
}

func TestNilTransportFailsAsNetworkError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := NewClient(nil)

	calls := map[string]func() error{
		"list":        func() error { _, err := client.ListAll(ctx); return err },
		"get":         func() error { _, err := client.GetByID(ctx, 1); return err },
		"reviews":     func() error { _, err := client.Reviews(ctx, 1); return err },
		"featured":    func() error { _, err := client.Featured(ctx); return err },
		"categories":  func() error { _, err := client.Categories(ctx); return err },
		"collections": func() error { _, err := client.ListCollections(ctx); return err },
		"collection":  func() error { _, err := client.GetCollectionByID(ctx, 1); return err },
		"products":    func() error { _, err := client.CollectionProducts(ctx, 1); return err },
	}
	for name, call := range calls {
		err := call()
		require.ErrorIs(t, err, remote.ErrNoBaseURL, name)
		require.Equal(t, remote.FailureNetwork, remote.Classify(err), name)
	}

	var nilClient *Client
	_, err := nilClient.ListAll(ctx)
	require.ErrorIs(t, err, remote.ErrNoBaseURL)
}
