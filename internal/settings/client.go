package settings

import (
	"context"
	"errors"
	"fmt"

	"finitefield.org/vurel-web/internal/remote"
)

// ErrUnknownKind is returned by Fetch for kinds it does not serve.
var ErrUnknownKind = errors.New("settings: unknown kind")

// Getter is the transport Client depends on; *remote.Client satisfies it.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, dst any) error
}

// Client fetches configuration resources. Each call is a single attempt.
type Client struct {
	remote Getter
}

// NewClient wraps a remote transport.
func NewClient(getter Getter) *Client {
	return &Client{remote: getter}
}

// Fetch retrieves kind from the settings service. Failures carry the
// remote taxonomy (see remote.Classify); callers choose Default on error.
func (c *Client) Fetch(ctx context.Context, kind Kind) (Resource, error) {
	switch kind {
	case KindHero:
		return fetch[Hero](ctx, c, kind)
	case KindSaleBanner:
		return fetch[SaleBanner](ctx, c, kind)
	case KindOurStory:
		return fetch[OurStory](ctx, c, kind)
	case KindShopTheLook:
		return fetch[ShopTheLook](ctx, c, kind)
	case KindTestimonials:
		return fetch[Testimonials](ctx, c, kind)
	case KindScrollingText:
		return fetch[ScrollingText](ctx, c, kind)
	case KindCollectionsForHome:
		return fetch[HomeCollections](ctx, c, kind)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func fetch[T Resource](ctx context.Context, c *Client, kind Kind) (Resource, error) {
	if c == nil || c.remote == nil {
		return nil, fmt.Errorf("settings: fetch %s: %w", kind, &remote.NetworkError{URL: kind.Path(), Err: remote.ErrNoBaseURL})
	}
	var out T
	if err := c.remote.GetJSON(ctx, "settings/"+string(kind), kind.Path(), &out); err != nil {
		return nil, fmt.Errorf("settings: fetch %s: %w", kind, err)
	}
	return out, nil
}
