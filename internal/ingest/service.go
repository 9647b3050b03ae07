package ingest

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-order-lookup/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_ingest.go -package=mocks github.com/ariefcatur/go-order-lookup/internal/ingest Saver,CacheWriter,Loader,Restorer

type Saver interface {
	SaveOrder(ctx context.Context, o *orders.Order) error
}

type CacheWriter interface {
	Set(ctx context.Context, o *orders.Order) error
}

type Service struct {
	Repo  Saver
	Cache CacheWriter
	Log   *zap.SugaredLogger
}

// HandleOrder is the consumer handler. Invalid messages are logged and
// acknowledged; only storage failures leave the message uncommitted.
func (s *Service) HandleOrder(ctx context.Context, m kafkago.Message) error {
	o, err := orders.Parse(m.Value)
	if err != nil {
		s.Log.Warnw("skipping invalid order message",
			"partition", m.Partition, "offset", m.Offset, "key", string(m.Key), "error", err)
		return nil
	}

	if err := s.Repo.SaveOrder(ctx, o); err != nil {
		return fmt.Errorf("save order %s: %w", o.OrderUID, err)
	}
	if err := s.Cache.Set(ctx, o); err != nil {
		s.Log.Warnw("cache set failed", "order_uid", o.OrderUID, "error", err)
	}

	s.Log.Infow("order processed", "order_uid", o.OrderUID, "items", len(o.Items), "offset", m.Offset)
	return nil
}
