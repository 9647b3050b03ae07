package lookup

import (
	"fmt"
	"io"
	"sync"
)

// Terminal is a text surface. It prints when the loading indicator, the
// error banner or the order info region becomes visible.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	regions map[string]*termRegion
}

type termRegion struct {
	t       *Terminal
	id      string
	visible bool
	text    string
	blocks  []Block
}

func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out, regions: map[string]*termRegion{}}
	for _, id := range []string{RegionLoading, RegionError, RegionOrderInfo,
		RegionOrderDetails, RegionDeliveryInfo, RegionPaymentInfo, RegionItemsList} {
		t.regions[id] = &termRegion{t: t, id: id}
	}
	return t
}

func (t *Terminal) Region(id string) (Region, bool) {
	r, ok := t.regions[id]
	return r, ok
}

func (r *termRegion) SetVisible(v bool) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	was := r.visible
	r.visible = v
	// the banner reprints on every show; repeated empty input shows it again
	if !v || (was && r.id != RegionError) {
		return
	}
	switch r.id {
	case RegionLoading:
		fmt.Fprintln(r.t.out, "Loading...")
	case RegionError:
		fmt.Fprintf(r.t.out, "Error: %s\n", r.text)
	case RegionOrderInfo:
		r.t.printOrder()
	}
}

func (r *termRegion) SetText(s string) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.text = s
	r.blocks = nil
}

func (r *termRegion) SetBlocks(bs ...Block) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.text = ""
	r.blocks = bs
}

func (t *Terminal) printOrder() {
	for _, sec := range []struct{ title, id string }{
		{"Order Details", RegionOrderDetails},
		{"Delivery Info", RegionDeliveryInfo},
		{"Payment Info", RegionPaymentInfo},
		{"Items", RegionItemsList},
	} {
		fmt.Fprintf(t.out, "== %s\n", sec.title)
		for i, b := range t.regions[sec.id].blocks {
			if i > 0 {
				fmt.Fprintln(t.out, "  --")
			}
			for _, f := range b {
				fmt.Fprintf(t.out, "  %s: %s\n", f.Label, f.Value)
			}
		}
	}
}
