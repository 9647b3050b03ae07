package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeReader struct {
	msgs chan kafka.Message
	err  error

	mu      sync.Mutex
	commits []kafka.Message
	closed  bool
}

func newFakeReader(msgs []kafka.Message, err error) *fakeReader {
	ch := make(chan kafka.Message, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return &fakeReader{msgs: ch, err: err}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m, ok := <-r.msgs:
		if ok {
			return m, nil
		}
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
	if r.err != nil {
		return kafka.Message{}, r.err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// lastCommit is the highest committed offset of partition p, or -1.
func (r *fakeReader) lastCommit(p int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := int64(-1)
	for _, m := range r.commits {
		if m.Partition == p && m.Offset > last {
			last = m.Offset
		}
	}
	return last
}

func start(t *testing.T, c *Consumer, h Handler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Start(ctx, h) }()
	t.Cleanup(cancel)
	return cancel, errc
}

func TestConsumerKeepsPerKeyOrder(t *testing.T) {
	var msgs []kafka.Message
	keys := []string{"order-a", "order-b", "order-c"}
	for i := 0; i < 60; i++ {
		msgs = append(msgs, kafka.Message{Partition: 0, Offset: int64(i), Key: []byte(keys[i%len(keys)])})
	}
	r := newFakeReader(msgs, nil)
	c := newConsumer(r, 4, zaptest.NewLogger(t).Sugar())

	var mu sync.Mutex
	seen := map[string][]int64{}
	cancel, errc := start(t, c, func(ctx context.Context, m kafka.Message) error {
		time.Sleep(time.Duration(rand.IntN(2000)) * time.Microsecond)
		mu.Lock()
		seen[string(m.Key)] = append(seen[string(m.Key)], m.Offset)
		mu.Unlock()
		return nil
	})

	require.Eventually(t, func() bool { return r.lastCommit(0) == 59 }, 5*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-errc)

	mu.Lock()
	defer mu.Unlock()
	for _, k := range keys {
		require.Len(t, seen[k], 20, k)
		require.IsIncreasing(t, seen[k], k)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	require.True(t, r.closed)
	for i := 1; i < len(r.commits); i++ {
		require.Greater(t, r.commits[i].Offset, r.commits[i-1].Offset)
	}
}

func TestConsumerDoesNotCommitPastFailure(t *testing.T) {
	var msgs []kafka.Message
	for i := 0; i < 6; i++ {
		msgs = append(msgs, kafka.Message{Partition: 0, Offset: int64(i), Key: []byte(fmt.Sprintf("p0-%d", i))})
	}
	for i := 0; i < 3; i++ {
		msgs = append(msgs, kafka.Message{Partition: 1, Offset: int64(i), Key: []byte(fmt.Sprintf("p1-%d", i))})
	}
	r := newFakeReader(msgs, nil)
	c := newConsumer(r, 3, zaptest.NewLogger(t).Sugar())
	c.backoff = 0

	var mu sync.Mutex
	handled := 0
	cancel, errc := start(t, c, func(ctx context.Context, m kafka.Message) error {
		mu.Lock()
		handled++
		mu.Unlock()
		if m.Partition == 0 && m.Offset == 2 {
			return errors.New("db down")
		}
		return nil
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return handled == len(msgs) && r.lastCommit(1) == 2
	}, 5*time.Second, 5*time.Millisecond)
	require.Never(t, func() bool { return r.lastCommit(0) > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-errc)
	require.LessOrEqual(t, r.lastCommit(0), int64(1))
}

func TestConsumerReturnsReaderError(t *testing.T) {
	r := newFakeReader([]kafka.Message{{Offset: 0, Key: []byte("a")}}, errors.New("broker gone"))
	c := newConsumer(r, 2, zaptest.NewLogger(t).Sugar())

	_, errc := start(t, c, func(context.Context, kafka.Message) error { return nil })

	select {
	case err := <-errc:
		require.EqualError(t, err, "broker gone")
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return")
	}
	require.Equal(t, int64(0), r.lastCommit(0))
	r.mu.Lock()
	defer r.mu.Unlock()
	require.True(t, r.closed)
}

func TestConsumerRoutesKeyToOneWorker(t *testing.T) {
	c := newConsumer(nil, 8, zaptest.NewLogger(t).Sugar())
	slots := []int{0, 1, 2, 3, 4, 5, 6, 7}

	for _, k := range []string{"b563feb7b2b84b6test", "x", "order-42"} {
		want := c.worker(kafka.Message{Key: []byte(k), Partition: 0}, slots)
		for p := 0; p < 5; p++ {
			require.Equal(t, want, c.worker(kafka.Message{Key: []byte(k), Partition: p}, slots), k)
		}
	}
	require.Equal(t, 3, c.worker(kafka.Message{Partition: 11}, slots))
}

func TestTrackerCommitsContiguousPrefix(t *testing.T) {
	tr := newTracker()
	msg := func(off int64) kafka.Message { return kafka.Message{Partition: 0, Offset: off} }
	for i := int64(0); i < 4; i++ {
		tr.add(msg(i))
	}

	_, ok := tr.done(msg(1), true)
	require.False(t, ok)
	m, ok := tr.done(msg(0), true)
	require.True(t, ok)
	require.Equal(t, int64(1), m.Offset)
	_, ok = tr.done(msg(3), true)
	require.False(t, ok)
	m, ok = tr.done(msg(2), true)
	require.True(t, ok)
	require.Equal(t, int64(3), m.Offset)

	tr.add(msg(4))
	tr.add(msg(5))
	_, ok = tr.done(msg(4), false)
	require.False(t, ok)
	_, ok = tr.done(msg(5), true)
	require.False(t, ok)

	// redelivery from the committed offset starts the partition over
	tr.add(msg(4))
	m, ok = tr.done(msg(4), true)
	require.True(t, ok)
	require.Equal(t, int64(4), m.Offset)
}
