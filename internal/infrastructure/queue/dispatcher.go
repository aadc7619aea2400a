package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the dispatcher's workers have exited.
var ErrStopped = errors.New("mutation queue stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(ctx context.Context) error
	done chan error
}

// Dispatcher serialises registry mutations. Jobs are routed to a fixed set of
// workers by hashing their key, so all mutations of one registry run one at a
// time and in submission order.
type Dispatcher struct {
	workers []chan job
	log     zerolog.Logger

	startOnce sync.Once
	stopped   chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
// Calling Start more than once has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		var wg sync.WaitGroup
		for i, ch := range d.workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.runWorker(ctx, i, ch)
			}()
		}
		go func() {
			wg.Wait()
			close(d.stopped)
		}()
	})
}

// Done is closed once every worker has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.stopped
}

// Do enqueues fn behind every earlier job for key and waits for its result.
// Once a job is accepted Do always waits for it, so a caller never sees a
// context error for a mutation that went on to commit. A job whose context is
// already done when dequeued is skipped and reports the context error.
func (d *Dispatcher) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}
	idx := d.shardIndex(key)

	select {
	case d.workers[idx] <- j:
		metrics.QueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-d.stopped:
		select {
		case err := <-j.done:
			return err
		default:
			return ErrStopped
		}
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	depth := metrics.QueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			depth.Dec()
			j.done <- d.run(id, j)
		}
	}
}

func (d *Dispatcher) run(id int, j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("key", j.key).Int("worker_id", id).Msg("mutation panicked")
			err = errors.New("mutation panicked")
		}
		metrics.MutationDuration.WithLabelValues(j.key).Observe(time.Since(start).Seconds())
	}()

	return j.fn(j.ctx)
}
