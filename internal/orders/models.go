package orders

import "time"

type Order struct {
	OrderUID          string    `json:"order_uid" validate:"required,max=64"`
	TrackNumber       string    `json:"track_number" validate:"required,max=64"`
	Entry             string    `json:"entry" validate:"required,max=32"`
	Delivery          Delivery  `json:"delivery"`
	Payment           Payment   `json:"payment"`
	Items             []Item    `json:"items" validate:"required,min=1,dive"`
	Locale            string    `json:"locale" validate:"required,max=8"`
	InternalSignature string    `json:"internal_signature" validate:"max=128"`
	CustomerID        string    `json:"customer_id" validate:"required,max=64"`
	DeliveryService   string    `json:"delivery_service" validate:"required,max=64"`
	Shardkey          string    `json:"shardkey" validate:"max=16"`
	SmID              int       `json:"sm_id" validate:"gte=0"`
	DateCreated       time.Time `json:"date_created" validate:"required"`
	OofShard          string    `json:"oof_shard" validate:"max=16"`
}

type Delivery struct {
	Name    string `json:"name" validate:"required,max=128"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Zip     string `json:"zip" validate:"max=16"`
	City    string `json:"city" validate:"required,max=128"`
	Address string `json:"address" validate:"required,max=256"`
	Region  string `json:"region" validate:"max=128"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// Payment amounts are minor currency units (cents).
type Payment struct {
	Transaction  string `json:"transaction" validate:"required,max=64"`
	RequestID    string `json:"request_id" validate:"max=64"`
	Currency     string `json:"currency" validate:"required,len=3"`
	Provider     string `json:"provider" validate:"required,max=64"`
	Amount       int    `json:"amount" validate:"gte=0"`
	PaymentDt    int64  `json:"payment_dt" validate:"gte=0"`
	Bank         string `json:"bank" validate:"max=64"`
	DeliveryCost int    `json:"delivery_cost" validate:"gte=0"`
	GoodsTotal   int    `json:"goods_total" validate:"gte=0"`
	CustomFee    int    `json:"custom_fee" validate:"gte=0"`
}

type Item struct {
	ChrtID      int64  `json:"chrt_id" validate:"gte=0"`
	TrackNumber string `json:"track_number" validate:"max=64"`
	Price       int    `json:"price" validate:"gte=0"`
	Rid         string `json:"rid" validate:"max=64"`
	Name        string `json:"name" validate:"required,max=128"`
	Sale        int    `json:"sale" validate:"gte=0,lte=100"`
	Size        string `json:"size" validate:"max=32"`
	TotalPrice  int    `json:"total_price" validate:"gte=0"`
	NmID        int64  `json:"nm_id" validate:"gte=0"`
	Brand       string `json:"brand" validate:"max=128"`
	Status      int    `json:"status"`
}
