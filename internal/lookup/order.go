package lookup

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Order is an order response as the widget reads it. Every field is optional
// and scalars are taken in whatever JSON type they arrive in, so one oddly
// shaped field never costs the rest of the order.
type Order struct {
	OrderUID        Text     `json:"order_uid"`
	TrackNumber     Text     `json:"track_number"`
	Entry           Text     `json:"entry"`
	Locale          Text     `json:"locale"`
	CustomerID      Text     `json:"customer_id"`
	DeliveryService Text     `json:"delivery_service"`
	DateCreated     Text     `json:"date_created"`
	Delivery        Delivery `json:"delivery"`
	Payment         Payment  `json:"payment"`
	Items           Items    `json:"items"`
}

type Delivery struct {
	Name    Text `json:"name"`
	Phone   Text `json:"phone"`
	Zip     Text `json:"zip"`
	City    Text `json:"city"`
	Address Text `json:"address"`
	Region  Text `json:"region"`
	Email   Text `json:"email"`
}

type Payment struct {
	Transaction  Text  `json:"transaction"`
	Currency     Text  `json:"currency"`
	Provider     Text  `json:"provider"`
	Amount       Cents `json:"amount"`
	Bank         Text  `json:"bank"`
	DeliveryCost Cents `json:"delivery_cost"`
}

type Item struct {
	Name       Text  `json:"name"`
	Brand      Text  `json:"brand"`
	Price      Cents `json:"price"`
	Sale       Text  `json:"sale"`
	TotalPrice Cents `json:"total_price"`
	Status     Text  `json:"status"`
}

type Items []Item

// Text is any JSON scalar as display text: strings unquoted, numbers and
// booleans as written, null as empty. Objects and arrays keep their JSON.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '{' || b[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = Text(buf.String())
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Cents is an amount in minor currency units. Invalid is set when the field
// is present but does not read as a number.
type Cents struct {
	Value   decimal.Decimal
	Invalid bool
}

func (c *Cents) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = Cents{}
	if t == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(t)))
	if err != nil {
		c.Invalid = true
		return nil
	}
	c.Value = d
	return nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// Non-object delivery, payment or item values decode as empty.

func (d *Delivery) UnmarshalJSON(b []byte) error {
	type plain Delivery
	*d = Delivery{}
	if !isObject(b) {
		return nil
	}
	return json.Unmarshal(b, (*plain)(d))
}

func (p *Payment) UnmarshalJSON(b []byte) error {
	type plain Payment
	*p = Payment{}
	if !isObject(b) {
		return nil
	}
	return json.Unmarshal(b, (*plain)(p))
}

func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	*it = Item{}
	if !isObject(b) {
		return nil
	}
	return json.Unmarshal(b, (*plain)(it))
}

func (is *Items) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*is = nil
		return nil
	}
	var list []Item
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*is = list
	return nil
}

// errorText reads the "error" member of a failure body. Empty, zero, false
// and structured values yield "".
func errorText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case '{', '[', 'n', 'f':
		return ""
	case 't':
		return "true"
	}
	if d, err := decimal.NewFromString(string(raw)); err != nil || d.IsZero() {
		return ""
	}
	return string(raw)
}
