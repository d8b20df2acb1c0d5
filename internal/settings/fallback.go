package settings

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Hero       Hero `yaml:"hero"`
	SaleBanner struct {
		Enabled  bool          `yaml:"enabled"`
		Text     string        `yaml:"text"`
		Duration time.Duration `yaml:"duration"`
	} `yaml:"sale_banner"`
	OurStory      OurStory      `yaml:"our_story"`
	ShopTheLook   ShopTheLook   `yaml:"shop_the_look"`
	Testimonials  Testimonials  `yaml:"testimonials"`
	ScrollingText ScrollingText `yaml:"scrolling_text"`
}

var defaults = mustParseDefaults(defaultsYAML)

func mustParseDefaults(data []byte) defaultsFile {
	var d defaultsFile
	if err := yaml.Unmarshal(data, &d); err != nil {
		panic(fmt.Sprintf("settings: parse embedded defaults: %v", err))
	}
	return d
}

// Default returns the local stand-in for kind, shaped exactly like a fetched
// resource. It performs no I/O. Time-relative fields are computed from now:
// the sale banner ends three days after now. Unknown kinds return nil.
func Default(kind Kind, now time.Time) Resource {
	switch kind {
	case KindHero:
		return Hero{
			Slides:          slices.Clone(defaults.Hero.Slides),
			RecommendedSize: defaults.Hero.RecommendedSize,
		}
	case KindSaleBanner:
		return SaleBanner{
			Enabled: defaults.SaleBanner.Enabled,
			Text:    defaults.SaleBanner.Text,
			EndDate: now.Add(defaults.SaleBanner.Duration),
		}
	case KindOurStory:
		return defaults.OurStory
	case KindShopTheLook:
		out := defaults.ShopTheLook
		out.ProductIDs = []int64{}
		return out
	case KindTestimonials:
		out := defaults.Testimonials
		out.Videos = slices.Clone(defaults.Testimonials.Videos)
		if out.Videos == nil {
			out.Videos = []Testimonial{}
		}
		return out
	case KindScrollingText:
		return defaults.ScrollingText
	case KindCollectionsForHome:
		return HomeCollections{}
	default:
		return nil
	}
}

// DefaultHeroSlides returns a copy of the built-in hero slides.
func DefaultHeroSlides() []Slide {
	return slices.Clone(defaults.Hero.Slides)
}
