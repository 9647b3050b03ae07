package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler harus return nil hanya jika proses sukses & boleh commit offset.
type Handler func(ctx context.Context, m kafka.Message) error

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	r       reader
	workers int
	log     *zap.SugaredLogger
	route   kafka.Hash
	backoff time.Duration
}

func NewConsumer(brokers []string, group, topic string, workers int, log *zap.SugaredLogger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})
	return newConsumer(r, workers, log)
}

func newConsumer(r reader, workers int, log *zap.SugaredLogger) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{r: r, workers: workers, log: log, backoff: 200 * time.Millisecond}
}

// Start blocks until ctx is cancelled or the reader fails.
//
// Messages with the same key always go to the same worker, so one order's
// messages are applied in offset order. Offsets are committed per partition
// only up to the first message whose handler failed; that message and
// everything after it are redelivered after a restart or rebalance.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	slots := make([]int, c.workers)
	jobs := make([]chan kafka.Message, c.workers)
	for i := range jobs {
		slots[i] = i
		jobs[i] = make(chan kafka.Message, 256)
	}
	acks := make(chan ack, c.workers*256)
	tr := newTracker()

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(in <-chan kafka.Message) {
			defer wg.Done()
			for m := range in {
				err := h(ctx, m)
				if err != nil {
					c.log.Errorw("handler error", "offset", m.Offset, "partition", m.Partition, "error", err)
				}
				acks <- ack{m: m, ok: err == nil}
				if err != nil && ctx.Err() == nil {
					time.Sleep(c.backoff) // backoff ringan
				}
			}
		}(jobs[i])
	}

	committed := make(chan struct{})
	go func() {
		defer close(committed)
		for a := range acks {
			m, ok := tr.done(a.m, a.ok)
			if !ok {
				continue
			}
			// commit pakai context baru supaya kerja yang sudah selesai tetap ke-commit saat shutdown
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := c.r.CommitMessages(cctx, m); err != nil {
				c.log.Errorw("commit failed", "offset", m.Offset, "partition", m.Partition, "error", err)
			}
			cancel()
		}
	}()

	stop := func() {
		for _, ch := range jobs {
			close(ch)
		}
		wg.Wait()
		close(acks)
		<-committed
	}

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			stop()
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		tr.add(m)
		select {
		case jobs[c.worker(m, slots)] <- m:
		case <-ctx.Done():
			stop()
			return nil
		}
	}
}

// worker picks a worker by key hash, or by partition for keyless messages.
func (c *Consumer) worker(m kafka.Message, slots []int) int {
	if len(m.Key) == 0 {
		return m.Partition % len(slots)
	}
	return c.route.Balance(m, slots...)
}

type ack struct {
	m  kafka.Message
	ok bool
}

// tracker keeps the dispatched offsets of every partition in order and
// releases the longest prefix that has been handled successfully.
type tracker struct {
	mu    sync.Mutex
	parts map[int]*partition
}

type partition struct {
	pending []kafka.Message
	ok      map[int64]bool
	blocked bool
	last    int64
}

func newTracker() *tracker { return &tracker{parts: map[int]*partition{}} }

func (t *tracker) add(m kafka.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.parts[m.Partition]
	if p == nil || m.Offset <= p.last {
		// first sight of the partition, or the reader rewound to the
		// committed offset after a rebalance
		p = &partition{ok: map[int64]bool{}}
		t.parts[m.Partition] = p
	}
	p.last = m.Offset
	if p.blocked {
		return
	}
	p.pending = append(p.pending, m)
}

// done records the outcome of m and returns the message to commit, if the
// committable prefix of its partition grew.
func (t *tracker) done(m kafka.Message, ok bool) (kafka.Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.parts[m.Partition]
	if p == nil {
		return kafka.Message{}, false
	}
	if !ok {
		// nothing past a failed offset may be committed
		p.blocked = true
		p.pending, p.ok = nil, map[int64]bool{}
		return kafka.Message{}, false
	}
	if p.blocked {
		return kafka.Message{}, false
	}
	p.ok[m.Offset] = true

	var last kafka.Message
	advanced := false
	for len(p.pending) > 0 && p.ok[p.pending[0].Offset] {
		last = p.pending[0]
		delete(p.ok, last.Offset)
		p.pending = p.pending[1:]
		advanced = true
	}
	return last, advanced
}
