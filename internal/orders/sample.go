package orders

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

var sampleItems = []struct {
	name, brand string
	price       int
}{
	{"Mascaras", "Vivienne Sabo", 453},
	{"Lipstick", "Maybelline", 1290},
	{"Face Cream", "Nivea", 799},
	{"Shampoo", "Head & Shoulders", 560},
}

// Sample builds a valid order with a fresh uid, for local testing.
func Sample() *Order {
	uid := strings.ReplaceAll(uuid.NewString(), "-", "")[:19]
	track := "WBIL" + strings.ToUpper(uid[:10])

	n := 1 + rand.IntN(len(sampleItems))
	items := make([]Item, 0, n)
	goods := 0
	for i := 0; i < n; i++ {
		s := sampleItems[i]
		sale := rand.IntN(50)
		total := s.price * (100 - sale) / 100
		goods += total
		items = append(items, Item{
			ChrtID:      int64(9934930 + i),
			TrackNumber: track,
			Price:       s.price,
			Rid:         strings.ReplaceAll(uuid.NewString(), "-", "")[:21],
			Name:        s.name,
			Sale:        sale,
			Size:        "0",
			TotalPrice:  total,
			NmID:        int64(2389212 + i),
			Brand:       s.brand,
			Status:      202,
		})
	}

	const deliveryCost = 1500
	return &Order{
		OrderUID:    uid,
		TrackNumber: track,
		Entry:       "WBIL",
		Delivery: Delivery{
			Name:    "Test Testov",
			Phone:   "+9720000000",
			Zip:     "2639809",
			City:    "Kiryat Mozkin",
			Address: "Ploshad Mira 15",
			Region:  "Kraiot",
			Email:   "test@gmail.com",
		},
		Payment: Payment{
			Transaction:  uid,
			Currency:     "USD",
			Provider:     "wbpay",
			Amount:       goods + deliveryCost,
			PaymentDt:    time.Now().Unix(),
			Bank:         "alpha",
			DeliveryCost: deliveryCost,
			GoodsTotal:   goods,
		},
		Items:           items,
		Locale:          "en",
		CustomerID:      "test",
		DeliveryService: "meest",
		Shardkey:        "9",
		SmID:            99,
		DateCreated:     time.Now().UTC().Truncate(time.Second),
		OofShard:        "1",
	}
}
