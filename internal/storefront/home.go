package storefront

import (
	"context"
	"sync"
)

// view is the lifecycle surface every section exposes.
type view interface {
	Ready() <-chan struct{}
	Changes() <-chan struct{}
	Close()
}

// HomeView is the storefront homepage. It mounts every section, is Ready
// once all of them are and relays their changes.
type HomeView struct {
	*lifecycle

	Banner       *SaleBannerView
	Hero         *HeroView
	Marquee      *MarqueeView
	Featured     *FeaturedProductsView
	Collections  *CollectionsView
	OurStory     *OurStoryView
	Testimonials *TestimonialsView
	ShopTheLook  *ShopTheLookView

	children []view
	done     chan struct{}
	wg       sync.WaitGroup
}

// HomeSnapshot aggregates the homepage sections in page order.
type HomeSnapshot struct {
	Banner       SaleBannerSnapshot   `json:"sale_banner"`
	Hero         HeroSnapshot         `json:"hero"`
	Marquee      MarqueeSnapshot      `json:"marquee"`
	Featured     ProductListSnapshot  `json:"featured_products"`
	Collections  CollectionsSnapshot  `json:"collections"`
	OurStory     OurStorySnapshot     `json:"our_story"`
	Testimonials TestimonialsSnapshot `json:"testimonials"`
	ShopTheLook  ShopTheLookSnapshot  `json:"shop_the_look"`
}

// NewHomeView mounts all homepage sections. Each section loads independently.
func NewHomeView(ctx context.Context, deps Deps) *HomeView {
	deps = deps.withDefaults(ctx)
	v := &HomeView{
		lifecycle:    newLifecycle("home", deps.Logger),
		Banner:       NewSaleBannerView(ctx, deps),
		Hero:         NewHeroView(ctx, deps),
		Marquee:      NewMarqueeView(ctx, deps),
		Featured:     NewFeaturedProductsView(ctx, deps),
		Collections:  NewCollectionsGridView(ctx, deps),
		OurStory:     NewOurStoryView(ctx, deps),
		Testimonials: NewTestimonialsView(ctx, deps),
		ShopTheLook:  NewShopTheLookView(ctx, deps),
		done:         make(chan struct{}),
	}
	v.children = []view{
		v.Banner, v.Hero, v.Marquee, v.Featured,
		v.Collections, v.OurStory, v.Testimonials, v.ShopTheLook,
	}

	v.mu.Lock()
	v.onCloseLocked(v.closeChildren)
	v.mu.Unlock()

	v.wg.Add(len(v.children) + 1)
	go v.awaitReady()
	for _, child := range v.children {
		go v.relay(child)
	}
	return v
}

func (v *HomeView) awaitReady() {
	defer v.wg.Done()
	for _, child := range v.children {
		select {
		case <-child.Ready():
		case <-v.done:
			return
		}
	}
	v.markReady()
}

func (v *HomeView) relay(child view) {
	defer v.wg.Done()
	for {
		select {
		case <-child.Changes():
			v.notify()
		case <-v.done:
			return
		}
	}
}

func (v *HomeView) closeChildren() {
	close(v.done)
	v.wg.Wait()
	for _, child := range v.children {
		child.Close()
	}
}

// Snapshot returns the render state of every section.
func (v *HomeView) Snapshot() HomeSnapshot {
	return HomeSnapshot{
		Banner:       v.Banner.Snapshot(),
		Hero:         v.Hero.Snapshot(),
		Marquee:      v.Marquee.Snapshot(),
		Featured:     v.Featured.Snapshot(),
		Collections:  v.Collections.Snapshot(),
		OurStory:     v.OurStory.Snapshot(),
		Testimonials: v.Testimonials.Snapshot(),
		ShopTheLook:  v.ShopTheLook.Snapshot(),
	}
}
