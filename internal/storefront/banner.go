package storefront

import (
	"context"
	"time"

	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/countdown"
	"finitefield.org/vurel-web/internal/settings"
)

// SaleBannerView is the promotional strip with a live countdown.
type SaleBannerView struct {
	*lifecycle
	engine *countdown.Engine

	banner    settings.SaleBanner
	loaded    bool
	fallback  bool
	dismissed bool
}

// SaleBannerSnapshot is the render state of a SaleBannerView.
type SaleBannerSnapshot struct {
	Visible   bool                `json:"visible"`
	Text      string              `json:"text"`
	EndDate   time.Time           `json:"end_date"`
	State     countdown.State     `json:"state"`
	Remaining countdown.Breakdown `json:"remaining"`
	Fallback  bool                `json:"fallback"`
}

// NewSaleBannerView mounts the banner: it fetches the sale-banner settings in
// the background, falls back to the default on failure and starts the countdown.
func NewSaleBannerView(ctx context.Context, deps Deps) *SaleBannerView {
	deps = deps.withDefaults(ctx)
	v := &SaleBannerView{lifecycle: newLifecycle("sale_banner", deps.Logger)}
	v.engine = countdown.NewEngine(
		countdown.WithClock(deps.Now),
		countdown.WithPeriod(deps.CountdownTick),
		countdown.WithOnChange(func(countdown.Snapshot) { v.notify() }),
	)
	go v.load(context.WithoutCancel(ctx), deps)
	return v
}

func (v *SaleBannerView) load(ctx context.Context, deps Deps) {
	banner, fallback := loadSetting[settings.SaleBanner](ctx, deps, v.logger, settings.KindSaleBanner)
	banner.Text = content.Plain(banner.Text)
	v.commit(func() {
		v.banner = banner
		v.fallback = fallback
		v.loaded = true
		v.engine.Arm(banner.EndDate)
		v.engine.Start()
		v.onCloseLocked(v.engine.Stop)
	})
}

// Dismiss hides the banner for the rest of the view's life. The countdown
// keeps its own state.
func (v *SaleBannerView) Dismiss() {
	v.mu.Lock()
	changed := !v.dismissed
	v.dismissed = true
	v.mu.Unlock()
	if changed {
		v.notify()
	}
}

// Snapshot returns the current render state.
func (v *SaleBannerView) Snapshot() SaleBannerSnapshot {
	v.mu.Lock()
	banner, loaded, fallback, dismissed := v.banner, v.loaded, v.fallback, v.dismissed
	v.mu.Unlock()

	cd := v.engine.Snapshot()
	return SaleBannerSnapshot{
		Visible:   loaded && banner.Enabled && !dismissed,
		Text:      banner.Text,
		EndDate:   banner.EndDate,
		State:     cd.State,
		Remaining: cd.Remaining,
		Fallback:  fallback,
	}
}
