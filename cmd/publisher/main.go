package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-order-lookup/internal/config"
	kafkax "github.com/ariefcatur/go-order-lookup/internal/kafka"
	"github.com/ariefcatur/go-order-lookup/internal/logx"
	"github.com/ariefcatur/go-order-lookup/internal/orders"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
)

// publisher [-n N] [file.json...]
//
// Files hold one order or a JSON array of orders and are validated before
// anything is sent. Without files, N generated orders are published.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	n := flag.Int("n", 1, "number of generated orders when no files are given")
	flag.StringVar(&cfg.KafkaTopic, "topic", cfg.KafkaTopic, "target topic")
	flag.Parse()

	log := logx.New(cfg.ServiceName+"-publisher", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	var list []*orders.Order
	for _, path := range flag.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		parsed, err := orders.ParseMany(b)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		list = append(list, parsed...)
	}
	if flag.NArg() == 0 {
		for i := 0; i < *n; i++ {
			list = append(list, orders.Sample())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, len(list)+1, log)
	prod.Start(ctx)

	for _, o := range list {
		prod.Publish(orders.PartitionKey(o.OrderUID), kafkax.MustMarshal(o),
			kafkago.Header{Key: "x-producer", Value: []byte(cfg.ServiceName + "-publisher")},
		)
		log.Infow("order queued", "order_uid", o.OrderUID, "items", len(o.Items))
	}

	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}
