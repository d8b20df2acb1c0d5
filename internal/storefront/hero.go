package storefront

import (
	"context"

	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/rotation"
	"finitefield.org/vurel-web/internal/settings"
)

// HeroView is the rotating slider. It renders the built-in slides until the
// remote slides arrive; a successful fetch with no slides keeps the defaults.
type HeroView struct {
	*lifecycle
	rotation *rotation.Engine

	slides   []settings.Slide
	fallback bool
}

// HeroSnapshot is the render state of a HeroView.
type HeroSnapshot struct {
	Visible  bool             `json:"visible"`
	Slides   []settings.Slide `json:"slides"`
	Current  int              `json:"current"`
	Fallback bool             `json:"fallback"`
}

// NewHeroView mounts the slider and starts automatic rotation.
func NewHeroView(ctx context.Context, deps Deps) *HeroView {
	deps = deps.withDefaults(ctx)
	v := &HeroView{
		lifecycle: newLifecycle("hero", deps.Logger),
		slides:    settings.DefaultHeroSlides(),
		fallback:  true,
	}
	v.rotation = rotation.NewEngine(len(v.slides),
		rotation.WithPeriod(deps.HeroInterval),
		rotation.WithOnChange(func(int) { v.notify() }),
	)

	v.mu.Lock()
	v.rotation.Start()
	v.onCloseLocked(v.rotation.Stop)
	v.mu.Unlock()

	go v.load(context.WithoutCancel(ctx), deps)
	return v
}

func (v *HeroView) load(ctx context.Context, deps Deps) {
	hero, fallback := loadSetting[settings.Hero](ctx, deps, v.logger, settings.KindHero)
	slides := sanitizeSlides(hero.Slides)
	v.commit(func() {
		if fallback || len(slides) == 0 {
			return
		}
		v.slides = slides
		v.fallback = false
		v.rotation.SetLength(len(slides))
		v.rotation.Start()
	})
}

func sanitizeSlides(in []settings.Slide) []settings.Slide {
	out := make([]settings.Slide, 0, len(in))
	for _, s := range in {
		out = append(out, settings.Slide{
			Title:       content.Plain(s.Title),
			Subtitle:    content.Plain(s.Subtitle),
			Description: content.Plain(s.Description),
			Image:       s.Image,
			CTA:         content.Plain(s.CTA),
			Href:        s.Href,
		})
	}
	return out
}

// Next advances to the following slide. The automatic timer is unaffected.
func (v *HeroView) Next() int {
	i := v.rotation.Next()
	v.notify()
	return i
}

// Prev moves to the previous slide. The automatic timer is unaffected.
func (v *HeroView) Prev() int {
	i := v.rotation.Prev()
	v.notify()
	return i
}

// GoTo jumps to slide i; out-of-range targets are ignored.
func (v *HeroView) GoTo(i int) (int, bool) {
	idx, ok := v.rotation.GoTo(i)
	if ok {
		v.notify()
	}
	return idx, ok
}

// Snapshot returns the current render state.
func (v *HeroView) Snapshot() HeroSnapshot {
	v.mu.Lock()
	slides := make([]settings.Slide, len(v.slides))
	copy(slides, v.slides)
	fallback := v.fallback
	v.mu.Unlock()

	return HeroSnapshot{
		Visible:  len(slides) > 0,
		Slides:   slides,
		Current:  v.rotation.Index(),
		Fallback: fallback,
	}
}
