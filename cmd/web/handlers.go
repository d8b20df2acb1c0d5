package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/vurel-web/internal/observability"
	"finitefield.org/vurel-web/internal/shop"
	"finitefield.org/vurel-web/internal/storefront"
)

type handlers struct {
	deps storefront.Deps
}

// mounted is a view that can be awaited, rendered and torn down.
type mounted[S any] interface {
	Ready() <-chan struct{}
	Snapshot() S
	Close()
}

// render waits for v's initial load, bounded by the request context, and
// returns its snapshot. The view is closed either way.
func render[S any](r *http.Request, v mounted[S]) (S, bool) {
	defer v.Close()
	select {
	case <-v.Ready():
		return v.Snapshot(), true
	case <-r.Context().Done():
		var zero S
		return zero, false
	}
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	snap, ok := render[storefront.HomeSnapshot](r, storefront.NewHomeView(r.Context(), h.deps))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) shop(w http.ResponseWriter, r *http.Request) {
	q, err := shop.ParseQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_query"})
		return
	}
	snap, ok := render[storefront.ShopSnapshot](r, storefront.NewShopView(r.Context(), h.deps, q))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) collections(w http.ResponseWriter, r *http.Request) {
	snap, ok := render[storefront.CollectionsSnapshot](r, storefront.NewCollectionsListView(r.Context(), h.deps))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) collection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	snap, ok := render[storefront.CollectionSnapshot](r, storefront.NewCollectionView(r.Context(), h.deps, id))
	if !ok {
		return
	}
	if snap.Status == storefront.StatusNotFound {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) product(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	snap, ok := render[storefront.ProductSnapshot](r, storefront.NewProductView(r.Context(), h.deps, id))
	if !ok {
		return
	}
	if snap.Status == storefront.StatusNotFound {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// homeEvents streams countdown and hero updates until the client disconnects.
func (h *handlers) homeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	banner := storefront.NewSaleBannerView(ctx, h.deps)
	defer banner.Close()
	hero := storefront.NewHeroView(ctx, h.deps)
	defer hero.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(event string, payload any) bool {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("encode event", zap.String("event", event), zap.Error(err))
			return false
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send("hero", hero.Snapshot()) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			logger.Debug("event stream closed", zap.String("view_id", banner.ID()))
			return
		case <-banner.Changes():
			if !send("countdown", banner.Snapshot()) {
				return
			}
		case <-hero.Changes():
			if !send("hero", hero.Snapshot()) {
				return
			}
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_id"})
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
