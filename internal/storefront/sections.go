package storefront

import (
	"context"
	"html/template"
	"strings"

	"finitefield.org/vurel-web/internal/content"
	"finitefield.org/vurel-web/internal/settings"
)

// OurStoryView is the brand video section. It renders only when enabled and
// a video is configured; a failed fetch hides it.
type OurStoryView struct {
	*lifecycle
	story settings.OurStory
}

// OurStorySnapshot is the render state of an OurStoryView.
type OurStorySnapshot struct {
	Visible     bool          `json:"visible"`
	Title       string        `json:"title"`
	Description template.HTML `json:"description"`
	VideoURL    string        `json:"video_url"`
}

// NewOurStoryView mounts the section and starts loading.
func NewOurStoryView(ctx context.Context, deps Deps) *OurStoryView {
	deps = deps.withDefaults(ctx)
	v := &OurStoryView{lifecycle: newLifecycle("our_story", deps.Logger)}
	go func() {
		story, _ := loadSetting[settings.OurStory](context.WithoutCancel(ctx), deps, v.logger, settings.KindOurStory)
		v.commit(func() { v.story = story })
	}()
	return v
}

// Snapshot returns the current render state.
func (v *OurStoryView) Snapshot() OurStorySnapshot {
	v.mu.Lock()
	story := v.story
	v.mu.Unlock()

	title := content.Plain(story.Title)
	if title == "" {
		title = "Our Story"
	}
	video := strings.TrimSpace(story.VideoURL)
	return OurStorySnapshot{
		Visible:     story.Enabled && video != "",
		Title:       title,
		Description: content.Markdown(story.Description),
		VideoURL:    video,
	}
}

// TestimonialsView is the customer video carousel.
type TestimonialsView struct {
	*lifecycle
	testimonials settings.Testimonials
}

// TestimonialsSnapshot is the render state of a TestimonialsView.
type TestimonialsSnapshot struct {
	Visible bool                   `json:"visible"`
	Title   string                 `json:"title"`
	Videos  []settings.Testimonial `json:"videos"`
}

// NewTestimonialsView mounts the carousel and starts loading.
func NewTestimonialsView(ctx context.Context, deps Deps) *TestimonialsView {
	deps = deps.withDefaults(ctx)
	v := &TestimonialsView{lifecycle: newLifecycle("testimonials", deps.Logger)}
	go func() {
		t, _ := loadSetting[settings.Testimonials](context.WithoutCancel(ctx), deps, v.logger, settings.KindTestimonials)
		v.commit(func() { v.testimonials = t })
	}()
	return v
}

// Snapshot returns the current render state.
func (v *TestimonialsView) Snapshot() TestimonialsSnapshot {
	v.mu.Lock()
	t := v.testimonials
	v.mu.Unlock()

	videos := make([]settings.Testimonial, 0, len(t.Videos))
	for _, video := range t.Videos {
		if strings.TrimSpace(video.VideoURL) == "" {
			continue
		}
		videos = append(videos, settings.Testimonial{
			Name:      content.Plain(video.Name),
			VideoURL:  video.VideoURL,
			Thumbnail: video.Thumbnail,
		})
	}
	title := content.Plain(t.Title)
	if title == "" {
		title = "What Our Fellows Say"
	}
	return TestimonialsSnapshot{
		Visible: t.Enabled && len(videos) > 0,
		Title:   title,
		Videos:  videos,
	}
}

// MarqueeView is the scrolling announcement strip.
type MarqueeView struct {
	*lifecycle
	text settings.ScrollingText
}

// MarqueeSnapshot is the render state of a MarqueeView.
type MarqueeSnapshot struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// NewMarqueeView mounts the strip and starts loading.
func NewMarqueeView(ctx context.Context, deps Deps) *MarqueeView {
	deps = deps.withDefaults(ctx)
	v := &MarqueeView{lifecycle: newLifecycle("marquee", deps.Logger)}
	go func() {
		text, _ := loadSetting[settings.ScrollingText](context.WithoutCancel(ctx), deps, v.logger, settings.KindScrollingText)
		v.commit(func() { v.text = text })
	}()
	return v
}

// Snapshot returns the current render state.
func (v *MarqueeView) Snapshot() MarqueeSnapshot {
	v.mu.Lock()
	text := v.text
	v.mu.Unlock()

	stripped := content.Strip(text.Text)
	return MarqueeSnapshot{
		Visible: text.Enabled && strings.TrimSpace(stripped) != "",
		Text:    stripped,
	}
}
