package ingest

import (
	"context"

	"github.com/ariefcatur/go-order-lookup/internal/orders"
	"go.uber.org/zap"
)

type Loader interface {
	LoadAll(ctx context.Context, skip func(uid string, err error)) ([]*orders.Order, error)
}

type Restorer interface {
	Restore(ctx context.Context, list []*orders.Order) error
}

// Warm copies every stored order into the cache and returns how many were
// written. Orders that fail to load are logged and left out.
func Warm(ctx context.Context, src Loader, dst Restorer, log *zap.SugaredLogger) (int, error) {
	list, err := src.LoadAll(ctx, func(uid string, err error) {
		log.Warnw("order not restored", "order_uid", uid, "error", err)
	})
	if err != nil {
		return 0, err
	}
	if err := dst.Restore(ctx, list); err != nil {
		return 0, err
	}
	return len(list), nil
}
