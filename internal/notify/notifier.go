package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/metrics"
	"github.com/hance08/walletsync/internal/model"
)

// Notifier receives deposit batches. Implementations must not block the
// caller for delivery and must never report delivery failures.
type Notifier interface {
	Notify(batch model.DepositBatch)
}

// Sink delivers one batch to one destination.
type Sink interface {
	Name() string
	Send(ctx context.Context, batch model.DepositBatch) error
	Close() error
}

type Options struct {
	QueueSize   int
	SendTimeout time.Duration
	Metrics     *metrics.Metrics
}

// Dispatcher queues batches in a bounded channel drained by one background
// worker that hands each batch to every sink.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan model.DepositBatch
	done   chan struct{}
}

var _ Notifier = (*Dispatcher)(nil)

func NewDispatcher(opts Options, sinks ...Sink) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 15 * time.Second
	}
	d := &Dispatcher{
		sinks:   sinks,
		timeout: opts.SendTimeout,
		metrics: opts.Metrics,
		queue:   make(chan model.DepositBatch, opts.QueueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify enqueues a batch. Empty batches are ignored and a full queue drops
// the batch with a warning.
func (d *Dispatcher) Notify(batch model.DepositBatch) {
	if len(batch.Transactions) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logx.Warn("NOTIFY", "dispatcher closed, dropping ", len(batch.Transactions), " ", batch.Currency, " deposits")
		d.metrics.Notification("queue", "dropped")
		return
	}

	select {
	case d.queue <- batch:
	default:
		logx.Warn("NOTIFY", "queue full, dropping ", len(batch.Transactions), " ", batch.Currency, " deposits")
		d.metrics.Notification("queue", "dropped")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for batch := range d.queue {
		d.deliver(batch)
	}
}

func (d *Dispatcher) deliver(batch model.DepositBatch) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := sink.Send(ctx, batch)
		cancel()
		if err != nil {
			logx.Warn("NOTIFY", sink.Name(), " delivery failed for ", batch.Currency, ": ", err)
			d.metrics.Notification(sink.Name(), "failed")
			continue
		}
		logx.Info("NOTIFY", sink.Name(), " delivered ", len(batch.Transactions), " ", batch.Currency, " deposits")
		d.metrics.Notification(sink.Name(), "sent")
	}
}

// Close stops accepting batches, waits for queued ones to be delivered and
// closes the sinks.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	for _, sink := range d.sinks {
		if err := sink.Close(); err != nil {
			logx.Warn("NOTIFY", "closing ", sink.Name(), ": ", err)
		}
	}
}
