package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/ariefcatur/go-order-lookup/internal/lookup"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("index.html").
	Funcs(template.FuncMap{
		"hidden": func(r *PageRegion) string {
			if r.Visible {
				return ""
			}
			return "hidden"
		},
	}).
	ParseFS(templatesFS, "templates/index.html"))

// PageRegion is one element of the lookup page.
type PageRegion struct {
	Visible bool
	Text    string
	Blocks  []lookup.Block
}

func (r *PageRegion) SetVisible(v bool) { r.Visible = v }

func (r *PageRegion) SetText(s string) {
	r.Text = s
	r.Blocks = nil
}

func (r *PageRegion) SetBlocks(bs ...lookup.Block) {
	r.Text = ""
	r.Blocks = bs
}

// Page is the server-side lookup page. The order info region starts hidden,
// as do the loading indicator and the error banner.
type Page struct {
	Input string

	Loading      *PageRegion
	Error        *PageRegion
	OrderInfo    *PageRegion
	OrderDetails *PageRegion
	DeliveryInfo *PageRegion
	PaymentInfo  *PageRegion
	ItemsList    *PageRegion
}

func NewPage() *Page {
	return &Page{
		Loading:      &PageRegion{},
		Error:        &PageRegion{},
		OrderInfo:    &PageRegion{},
		OrderDetails: &PageRegion{},
		DeliveryInfo: &PageRegion{},
		PaymentInfo:  &PageRegion{},
		ItemsList:    &PageRegion{},
	}
}

func (p *Page) Region(id string) (lookup.Region, bool) {
	var r *PageRegion
	switch id {
	case lookup.RegionLoading:
		r = p.Loading
	case lookup.RegionError:
		r = p.Error
	case lookup.RegionOrderInfo:
		r = p.OrderInfo
	case lookup.RegionOrderDetails:
		r = p.OrderDetails
	case lookup.RegionDeliveryInfo:
		r = p.DeliveryInfo
	case lookup.RegionPaymentInfo:
		r = p.PaymentInfo
	case lookup.RegionItemsList:
		r = p.ItemsList
	default:
		return nil, false
	}
	return r, true
}

func (p *Page) Render(w io.Writer) error {
	return pageTmpl.Execute(w, p)
}
