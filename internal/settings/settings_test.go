package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/vurel-web/internal/remote"
)

func TestDefaultSaleBannerEndsThreeDaysFromNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	got, ok := Default(KindSaleBanner, now).(SaleBanner)
	require.True(t, ok)
	require.True(t, got.Enabled)
	require.Equal(t, "LIMITED TIME OFFER - UP TO 50% OFF", got.Text)
	require.Equal(t, now.Add(72*time.Hour), got.EndDate)
}

func TestDefaultCoversEveryKind(t *testing.T) {
	t.Parallel()

	now := time.Now()
	for _, kind := range Kinds {
		res := Default(kind, now)
		require.NotNil(t, res, "kind %s", kind)
		require.Equal(t, kind, res.Kind())
	}
	require.Nil(t, Default(Kind("unknown"), now))
}

func TestDefaultValues(t *testing.T) {
	t.Parallel()

	now := time.Now()
	hero := Default(KindHero, now).(Hero)
	require.Len(t, hero.Slides, 3)
	require.Equal(t, "New Season Arrivals", hero.Slides[0].Title)
	require.Equal(t, "/shop", hero.Slides[2].Href)

	// Callers cannot mutate the shared defaults.
	hero.Slides[0].Title = "changed"
	require.Equal(t, "New Season Arrivals", Default(KindHero, now).(Hero).Slides[0].Title)

	look := Default(KindShopTheLook, now).(ShopTheLook)
	require.True(t, look.Enabled)
	require.Equal(t, "Shop The Look", look.Title)
	require.NotNil(t, look.ProductIDs)
	require.Empty(t, look.ProductIDs)

	story := Default(KindOurStory, now).(OurStory)
	require.False(t, story.Enabled)

	marquee := Default(KindScrollingText, now).(ScrollingText)
	require.True(t, marquee.Enabled)
	require.Equal(t, "FREE SHIPPING ON ORDERS OVER $100 • NEW ARRIVALS WEEKLY • SUSTAINABLE FASHION • ", marquee.Text)

	testimonials := Default(KindTestimonials, now).(Testimonials)
	require.False(t, testimonials.Enabled)
	require.Equal(t, "What Our Fellows Say", testimonials.Title)
}

func TestFetchDecodesEachKind(t *testing.T) {
	t.Parallel()

	routes := map[string]string{
		"/api/settings/hero":           `{"slides":[{"title":"Remote","image":"/r.jpg","cta":"Go","href":"/go"}],"recommended_size":"1920x1080"}`,
		"/api/settings/sale-banner":    `{"enabled":true,"text":"FLASH","end_date":"2025-12-31T23:59:59"}`,
		"/api/settings/our-story":      `{"enabled":true,"title":"Story","description":"**bold**","video_url":"/v.mp4"}`,
		"/api/settings/shop-the-look":  `{"enabled":true,"title":"Look","product_ids":[3,7]}`,
		"/api/settings/testimonials":   `{"enabled":true,"title":"Fans","videos":[{"name":"Asha","video_url":"/t.mp4"}]}`,
		"/api/settings/scrolling-text": `{"enabled":false,"text":"hello"}`,
		"/api/collections/home":        `[{"id":1,"title":"Summer","product_count":3}]`,
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	client := NewClient(remote.NewClient(ts.URL))
	ctx := context.Background()

	res, err := client.Fetch(ctx, KindSaleBanner)
	require.NoError(t, err)
	banner := res.(SaleBanner)
	require.Equal(t, "FLASH", banner.Text)
	require.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), banner.EndDate)

	res, err = client.Fetch(ctx, KindShopTheLook)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 7}, res.(ShopTheLook).ProductIDs)

	res, err = client.Fetch(ctx, KindHero)
	require.NoError(t, err)
	require.Equal(t, "Remote", res.(Hero).Slides[0].Title)

	res, err = client.Fetch(ctx, KindCollectionsForHome)
	require.NoError(t, err)
	require.Equal(t, "Summer", res.(HomeCollections)[0].DisplayTitle())

	for _, kind := range Kinds {
		res, err := client.Fetch(ctx, kind)
		require.NoError(t, err, "kind %s", kind)
		require.Equal(t, kind, res.Kind())
	}
}

func TestFetchFailures(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/settings/sale-banner":
			_, _ = w.Write([]byte(`{"enabled":true,"end_date":"next tuesday"}`))
		default:
			http.Error(w, "down", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(ts.Close)

	client := NewClient(remote.NewClient(ts.URL))

	_, err := client.Fetch(context.Background(), KindSaleBanner)
	require.Equal(t, remote.FailureDecode, remote.Classify(err))

	_, err = client.Fetch(context.Background(), KindHero)
	require.Equal(t, remote.FailureHTTP, remote.Classify(err))

	_, err = client.Fetch(context.Background(), Kind("nope"))
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewClient(nil).Fetch(context.Background(), KindHero)
	require.Equal(t, remote.FailureNetwork, remote.Classify(err))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "", want: time.Time{}},
		{in: "2025-01-02T03:04:05Z", want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2025-01-02T03:04:05.250", want: time.Date(2025, 1, 2, 3, 4, 5, 250_000_000, time.UTC)},
		{in: "2025-01-02T03:04", want: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)},
		{in: "2025-01-02 03:04:05", want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2025-01-02", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ParseTime(tc.in)
		require.NoError(t, err, tc.in)
		require.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}

	_, err := ParseTime("31/12/2025")
	require.Error(t, err)
}
