package lookup

import (
	"fmt"
	"time"
)

// DateLayout mirrors the en-US locale date/time format.
const DateLayout = "1/2/2006, 3:04:05 PM"

// View is a rendered order, one field group per region.
type View struct {
	Summary  Block
	Delivery Block
	Payment  Block
	Items    []Block
}

// Zone-less layouts are read in the display location.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Money formats minor currency units as dollars with two decimals.
// A missing amount reads as zero; a non-numeric one as NaN.
func Money(c Cents) string {
	if c.Invalid {
		return "$NaN"
	}
	return "$" + c.Value.Shift(-2).StringFixed(2)
}

// FormatDate renders an RFC 3339 (or zone-less ISO) timestamp in loc.
// Anything else is "Invalid Date".
func FormatDate(s string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc).Format(DateLayout)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Format(DateLayout)
		}
	}
	return "Invalid Date"
}

func Render(o *Order, loc *time.Location) View {
	d, p := o.Delivery, o.Payment
	v := View{
		Summary: Block{
			{"Order UID", o.OrderUID.String()},
			{"Track Number", o.TrackNumber.String()},
			{"Entry", o.Entry.String()},
			{"Locale", o.Locale.String()},
			{"Customer ID", o.CustomerID.String()},
			{"Delivery Service", o.DeliveryService.String()},
			{"Date Created", FormatDate(string(o.DateCreated), loc)},
		},
		Delivery: Block{
			{"Name", d.Name.String()},
			{"Phone", d.Phone.String()},
			{"Address", fmt.Sprintf("%s, %s, %s %s", d.City, d.Address, d.Region, d.Zip)},
			{"Email", d.Email.String()},
		},
		Payment: Block{
			{"Transaction", p.Transaction.String()},
			{"Amount", Money(p.Amount)},
			{"Currency", p.Currency.String()},
			{"Provider", p.Provider.String()},
			{"Bank", p.Bank.String()},
			{"Delivery Cost", Money(p.DeliveryCost)},
		},
		Items: make([]Block, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, Block{
			{"Name", it.Name.String()},
			{"Brand", it.Brand.String()},
			{"Price", Money(it.Price)},
			{"Sale", it.Sale.String() + "%"},
			{"Total Price", Money(it.TotalPrice)},
			{"Status", it.Status.String()},
		})
	}
	return v
}
