package orders

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/order.json")
	require.NoError(t, err)
	return b
}

func TestParseSample(t *testing.T) {
	o, err := Parse(loadSample(t))
	require.NoError(t, err)
	require.Equal(t, "b563feb7b2b84b6test", o.OrderUID)
	require.Equal(t, 1817, o.Payment.Amount)
	require.Len(t, o.Items, 1)
	require.Equal(t, 202, o.Items[0].Status)
	require.Equal(t, 2021, o.DateCreated.Year())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(string) string
		field string
	}{
		{"no uid", func(s string) string {
			return strings.Replace(s, `"order_uid": "b563feb7b2b84b6test"`, `"order_uid": ""`, 1)
		}, "Order.OrderUID"},
		{"no items", func(s string) string {
			i := strings.Index(s, `"items": [`)
			j := strings.Index(s, `"locale"`)
			return s[:i] + `"items": [],` + "\n  " + s[j:]
		}, "Order.Items"},
		{"bad email", func(s string) string {
			return strings.Replace(s, "test@gmail.com", "not-an-email", 1)
		}, "Order.Delivery.Email"},
		{"negative amount", func(s string) string {
			return strings.Replace(s, `"amount": 1817`, `"amount": -1`, 1)
		}, "Order.Payment.Amount"},
		{"no date", func(s string) string {
			return strings.Replace(s, `"date_created": "2021-11-26T06:22:19Z",`, ``, 1)
		}, "Order.DateCreated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.edit(string(loadSample(t)))))
			require.ErrorIs(t, err, ErrInvalidOrder)
			require.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`{"order_uid": 12`))
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestParseMany(t *testing.T) {
	one := loadSample(t)

	list, err := ParseMany(one)
	require.NoError(t, err)
	require.Len(t, list, 1)

	two := "[" + string(one) + "," + string(one) + "]"
	list, err = ParseMany([]byte(two))
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = ParseMany([]byte(`[` + string(one) + `, {}]`))
	require.ErrorIs(t, err, ErrInvalidOrder)
	require.Contains(t, err.Error(), "order #1")
}

func TestSampleIsValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		o := Sample()
		require.NoError(t, Validate(o))
		require.Equal(t, o.Payment.GoodsTotal+o.Payment.DeliveryCost, o.Payment.Amount)
	}
	require.NotEqual(t, Sample().OrderUID, Sample().OrderUID)
}
