package lookup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Widget fetches one order by id and renders it into the regions of a
// surface. Lookup may be called concurrently; only the most recently
// dispatched lookup is allowed to update the regions when it completes.
type Widget struct {
	fetcher Fetcher
	loc     *time.Location
	log     *zap.SugaredLogger

	mu    sync.Mutex
	seq   uint64
	state State
	r     regions
}

func NewWidget(s Surface, f Fetcher, loc *time.Location, log *zap.SugaredLogger) (*Widget, error) {
	r, err := bind(s)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Widget{fetcher: f, loc: loc, log: log, state: StateIdle, r: r}, nil
}

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Widget) Lookup(ctx context.Context, raw string) {
	id := strings.TrimSpace(raw)
	if id == "" {
		w.mu.Lock()
		w.showError(MsgEmptyInput)
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.r.errBanner.SetVisible(false)
	w.r.info.SetVisible(false)
	w.r.loading.SetVisible(true)
	w.setState(StateLoading)
	w.mu.Unlock()

	w.log.Debugw("lookup started", "order_uid", id, "seq", seq)
	o, err := w.fetcher.Fetch(ctx, id)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.seq {
		w.log.Debugw("stale lookup discarded", "order_uid", id, "seq", seq, "latest", w.seq)
		return
	}
	w.r.loading.SetVisible(false)
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			w.log.Debugw("lookup failed", "order_uid", id, "kind", le.Kind.String(), "status", le.Status, "error", le.Err)
			w.showError(le.Message)
			return
		}
		w.log.Debugw("lookup failed", "order_uid", id, "error", err)
		w.showError(err.Error())
		return
	}
	w.render(o)
	w.r.info.SetVisible(true)
	w.setState(StateShown)
}

// render overwrites every detail region, so nothing of a prior order survives.
func (w *Widget) render(o *Order) {
	v := Render(o, w.loc)
	w.r.details.SetBlocks(v.Summary)
	w.r.delivery.SetBlocks(v.Delivery)
	w.r.payment.SetBlocks(v.Payment)
	w.r.items.SetBlocks(v.Items...)
}

func (w *Widget) showError(msg string) {
	w.r.errBanner.SetText(msg)
	w.r.errBanner.SetVisible(true)
	w.setState(StateError)
}

func (w *Widget) setState(to State) {
	if !CanTransition(w.state, to) {
		w.log.Warnw("unexpected widget transition", "from", w.state, "to", to)
	}
	w.state = to
}
