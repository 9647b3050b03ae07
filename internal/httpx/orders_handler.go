package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/ariefcatur/go-order-lookup/internal/orders"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_httpx.go -package=mocks github.com/ariefcatur/go-order-lookup/internal/httpx OrderStore,OrderCache

type OrderStore interface {
	GetOrder(ctx context.Context, orderUID string) (*orders.Order, error)
}

type OrderCache interface {
	Get(ctx context.Context, orderUID string) (*orders.Order, bool, error)
	Set(ctx context.Context, o *orders.Order) error
	Keys(ctx context.Context) ([]string, error)
}

type OrdersHandler struct {
	Store OrderStore
	Cache OrderCache
	Log   *zap.SugaredLogger
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/order/{id}", h.getOrder)
	r.Get("/debug", h.debug)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderUID := chi.URLParam(r, "id")
	if orderUID == "" {
		writeErr(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) cache
	o, ok, err := h.Cache.Get(ctx, orderUID)
	if err != nil {
		h.Log.Warnw("cache get failed", "order_uid", orderUID, "error", err)
	}
	if ok {
		writeJSON(w, http.StatusOK, o)
		return
	}

	// 2) fallback DB, then back-fill cache
	o, err = h.Store.GetOrder(ctx, orderUID)
	if errors.Is(err, orders.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.Log.Errorw("get order failed", "order_uid", orderUID, "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.Cache.Set(ctx, o); err != nil {
		h.Log.Warnw("cache set failed", "order_uid", orderUID, "error", err)
	}
	writeJSON(w, http.StatusOK, o)
}

type debugResp struct {
	CacheSize int      `json:"cache_size"`
	OrderIDs  []string `json:"order_ids"`
}

func (h *OrdersHandler) debug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ids, err := h.Cache.Keys(ctx)
	if err != nil {
		h.Log.Errorw("cache keys failed", "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, debugResp{CacheSize: len(ids), OrderIDs: ids})
}
