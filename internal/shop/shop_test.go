package shop

import (
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"finitefield.org/vurel-web/internal/catalog"
)

func item(id int64, name, category string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: name, Category: category, Price: decimal.NewFromInt(price)}
}

var (
	listing = []catalog.Product{
		item(1, "saree", "Sarees", 2500),
		item(2, "Kurta", "Kurtas", 800),
		item(3, "Anarkali", "Women", 1000),
		item(4, "Belt", "Accessories", 300),
		item(5, "blazer", "Men", 2000),
	}
	tree = []catalog.Category{
		{ID: 1, Name: "Women", Subcategories: []catalog.Category{{ID: 11, Name: "Kurtas"}, {ID: 12, Name: "Sarees"}}},
		{ID: 2, Name: "Men"},
	}
)

func ids(products []catalog.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  []int64
	}{
		{name: "everything", query: Query{}, want: []int64{1, 2, 3, 4, 5}},
		{name: "parent includes subcategories", query: Query{Category: "Women"}, want: []int64{1, 2, 3}},
		{name: "subcategory only", query: Query{Category: "Women", Subcategory: "Kurtas"}, want: []int64{2}},
		{name: "leaf category", query: Query{Category: "Men"}, want: []int64{5}},
		{name: "category outside tree matches by name", query: Query{Category: "Accessories"}, want: []int64{4}},
		{name: "unknown category", query: Query{Category: "Shoes"}, want: []int64{}},
		{name: "under 500", query: Query{Price: 1}, want: []int64{4}},
		{name: "500 to 1000 inclusive", query: Query{Price: 2}, want: []int64{2, 3}},
		{name: "1000 to 2000 inclusive", query: Query{Price: 3}, want: []int64{3, 5}},
		{name: "above 2000 inclusive", query: Query{Price: 4}, want: []int64{1, 5}},
		{name: "category and price", query: Query{Category: "Women", Price: 2}, want: []int64{2, 3}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ids(Apply(listing, tree, tc.query, language.English)))
		})
	}
}

func TestApplySorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort Sort
		want []int64
	}{
		{sort: SortNewest, want: []int64{1, 2, 3, 4, 5}},
		{sort: SortPriceAsc, want: []int64{4, 2, 3, 5, 1}},
		{sort: SortPriceDesc, want: []int64{1, 5, 3, 2, 4}},
		{sort: SortNameAsc, want: []int64{3, 4, 5, 2, 1}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.sort), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ids(Apply(listing, tree, Query{Sort: tc.sort}, language.English)))
		})
	}
}

func TestApplyKeepsInputAndTiesStable(t *testing.T) {
	t.Parallel()

	in := []catalog.Product{item(1, "A", "X", 100), item(2, "B", "X", 50), item(3, "C", "X", 100)}
	out := Apply(in, nil, Query{Sort: SortPriceDesc}, language.English)
	require.Equal(t, []int64{1, 3, 2}, ids(out))
	require.Equal(t, []int64{1, 2, 3}, ids(in))
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	require.Equal(t, Query{Sort: SortNewest}, q)
	require.Zero(t, q.ActiveFilters())

	q, err = ParseQuery(url.Values{"category": {"Women"}, "subcategory": {"Kurtas"}, "price": {"2"}, "sort": {"price_desc"}})
	require.NoError(t, err)
	require.Equal(t, Query{Category: "Women", Subcategory: "Kurtas", Price: 2, Sort: SortPriceDesc}, q)
	require.Equal(t, 3, q.ActiveFilters())

	q, err = ParseQuery(url.Values{"category": {"All"}, "subcategory": {"Kurtas"}})
	require.NoError(t, err)
	require.Empty(t, q.Category)
	require.Empty(t, q.Subcategory)

	for _, bad := range []url.Values{
		{"price": {"9"}},
		{"price": {"-1"}},
		{"price": {"cheap"}},
		{"sort": {"rating"}},
	} {
		_, err := ParseQuery(bad)
		require.True(t, errors.Is(err, ErrInvalidQuery), bad.Encode())
	}
}

func TestPriceRangeBounds(t *testing.T) {
	t.Parallel()

	band := PriceRanges[2]
	require.True(t, band.Contains(decimal.NewFromInt(500)))
	require.True(t, band.Contains(decimal.NewFromInt(1000)))
	require.False(t, band.Contains(decimal.RequireFromString("1000.01")))
	require.True(t, PriceRanges[4].Contains(decimal.NewFromInt(1_000_000)))
}
