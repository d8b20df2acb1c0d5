package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"finitefield.org/vurel-web/internal/catalog"
)

// Kind names a remote configuration resource.
type Kind string

const (
	KindHero               Kind = "hero"
	KindSaleBanner         Kind = "sale-banner"
	KindOurStory           Kind = "our-story"
	KindShopTheLook        Kind = "shop-the-look"
	KindTestimonials       Kind = "testimonials"
	KindScrollingText      Kind = "scrolling-text"
	KindCollectionsForHome Kind = "collections-for-home"
)

// Kinds lists every kind served by Client.Fetch.
var Kinds = []Kind{
	KindHero,
	KindSaleBanner,
	KindOurStory,
	KindShopTheLook,
	KindTestimonials,
	KindScrollingText,
	KindCollectionsForHome,
}

// Path returns the API path the kind is served from.
func (k Kind) Path() string {
	if k == KindCollectionsForHome {
		return "/api/collections/home"
	}
	return "/api/settings/" + string(k)
}

// Resource is a fetched or defaulted configuration payload.
type Resource interface {
	Kind() Kind
}

// Slide is one hero rotation entry.
type Slide struct {
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	CTA         string `json:"cta" yaml:"cta"`
	Href        string `json:"href" yaml:"href"`
}

// Hero holds the slider content.
type Hero struct {
	Slides          []Slide `json:"slides" yaml:"slides"`
	RecommendedSize string  `json:"recommended_size,omitempty" yaml:"recommended_size"`
}

func (Hero) Kind() Kind { return KindHero }

// SaleBanner is the promotional strip with a countdown.
type SaleBanner struct {
	Enabled bool      `json:"enabled"`
	Text    string    `json:"text"`
	EndDate time.Time `json:"end_date"`
}

func (SaleBanner) Kind() Kind { return KindSaleBanner }

// UnmarshalJSON accepts RFC 3339 end dates as well as the zone-less ISO
// layouts the settings service stores; zone-less values are read as UTC.
// An empty end_date leaves EndDate zero.
func (b *SaleBanner) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled bool   `json:"enabled"`
		Text    string `json:"text"`
		EndDate string `json:"end_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	end, err := ParseTime(raw.EndDate)
	if err != nil {
		return err
	}
	*b = SaleBanner{Enabled: raw.Enabled, Text: raw.Text, EndDate: end}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp layouts seen in settings payloads.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("settings: unrecognised timestamp %q", value)
}

// OurStory configures the brand video section.
type OurStory struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	VideoURL    string `json:"video_url" yaml:"video_url"`
}

func (OurStory) Kind() Kind { return KindOurStory }

// ShopTheLook lists the products featured in the look carousel.
type ShopTheLook struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	Title      string  `json:"title" yaml:"title"`
	ProductIDs []int64 `json:"product_ids" yaml:"product_ids"`
}

func (ShopTheLook) Kind() Kind { return KindShopTheLook }

// Testimonial is a customer video.
type Testimonial struct {
	Name      string `json:"name" yaml:"name"`
	VideoURL  string `json:"video_url" yaml:"video_url"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail"`
}

// Testimonials configures the customer video carousel.
type Testimonials struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Title   string        `json:"title" yaml:"title"`
	Videos  []Testimonial `json:"videos" yaml:"videos"`
}

func (Testimonials) Kind() Kind { return KindTestimonials }

// ScrollingText is the marquee strip.
type ScrollingText struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Text    string `json:"text" yaml:"text"`
}

func (ScrollingText) Kind() Kind { return KindScrollingText }

// HomeCollections are the collections flagged for the homepage.
type HomeCollections []catalog.Collection

func (HomeCollections) Kind() Kind { return KindCollectionsForHome }
