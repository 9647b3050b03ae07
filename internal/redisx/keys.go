package redisx

import "time"

const (
	// Cached order JSON: order:{order_uid} -> full order as served by GET /order/{id}
	KeyOrder = "order:%s"

	// SCAN pattern for the debug listing
	PatternOrder = "order:*"
)

var TTLOrderCache = time.Hour
