package lookup

import "fmt"

// Region ids every surface must provide. RegionInput is the identifier field
// the host reads from; the widget itself only writes to the others.
const (
	RegionInput        = "orderId"
	RegionLoading      = "loading"
	RegionError        = "error"
	RegionOrderInfo    = "orderInfo"
	RegionOrderDetails = "orderDetails"
	RegionDeliveryInfo = "deliveryInfo"
	RegionPaymentInfo  = "paymentInfo"
	RegionItemsList    = "itemsList"
)

type Field struct {
	Label string
	Value string
}

// Block is one group of labeled fields, e.g. one line item.
type Block []Field

// Region is a display area the widget writes into. SetText and SetBlocks
// replace the previous content.
type Region interface {
	SetVisible(bool)
	SetText(string)
	SetBlocks(...Block)
}

type Surface interface {
	Region(id string) (Region, bool)
}

type regions struct {
	loading, errBanner, info          Region
	details, delivery, payment, items Region
}

func bind(s Surface) (regions, error) {
	var r regions
	for _, b := range []struct {
		id  string
		dst *Region
	}{
		{RegionLoading, &r.loading},
		{RegionError, &r.errBanner},
		{RegionOrderInfo, &r.info},
		{RegionOrderDetails, &r.details},
		{RegionDeliveryInfo, &r.delivery},
		{RegionPaymentInfo, &r.payment},
		{RegionItemsList, &r.items},
	} {
		reg, ok := s.Region(b.id)
		if !ok || reg == nil {
			return regions{}, fmt.Errorf("surface has no %q region", b.id)
		}
		*b.dst = reg
	}
	return r, nil
}
