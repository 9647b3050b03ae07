package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/ariefcatur/go-order-lookup/internal/lookup"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the lookup page. Every request gets its own page and
// widget; the fetcher is shared.
type Handler struct {
	Fetcher  lookup.Fetcher
	Location *time.Location
	Log      *zap.SugaredLogger
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.index)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	page := NewPage()
	wd, err := lookup.NewWidget(page, h.Fetcher, h.Location, h.Log)
	if err != nil {
		h.Log.Errorw("widget init failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	if q.Has("order_id") {
		page.Input = q.Get("order_id")
		wd.Lookup(r.Context(), page.Input)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		h.Log.Errorw("render page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
