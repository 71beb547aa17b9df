package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher records activity events off the request path. Events are sharded
// by ShardKey so that everything touching one image (or one user) is recorded
// in publish order.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Once ctx is cancelled each worker
// records the events already queued and exits; publish nothing after that.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish queues event for its worker. A full worker channel drops the event
// rather than stall the request that produced it.
func (d *Dispatcher) Publish(event domain.ActivityEvent) {
	idx := d.shardIndex(event.ShardKey())
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- event:
	default:
		depth.Dec()
		d.log.Warn().
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

// runWorker records events until ctx is cancelled, then records whatever is
// still buffered before returning.
func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	// Recording outlives the request that published the event.
	recordCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			d.drain(recordCtx, id, ch)
			return
		case event := <-ch:
			d.record(recordCtx, id, event)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	drained := 0
	for {
		select {
		case event := <-ch:
			d.record(ctx, id, event)
			drained++
		default:
			if drained > 0 {
				d.log.Info().Int("worker_id", id).Int("events", drained).Msg("activity queue drained")
			}
			return
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.ActivityEvent) {
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
	if err := d.service.Record(ctx, event); err != nil {
		d.log.Error().Err(err).
			Str("kind", string(event.Kind)).
			Str("shard_key", event.ShardKey()).
			Int("worker_id", id).
			Msg("activity recording failed")
	}
}
