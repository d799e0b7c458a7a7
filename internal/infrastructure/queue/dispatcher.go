package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/api/metrics"
	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes price ticks to a fixed set of workers using consistent
// hashing on the symbol, guaranteeing per-instrument tick ordering.
type Dispatcher struct {
	workers []chan ports.TickInput
	service ports.TickService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TickService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TickInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TickInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a tick to the worker responsible for its symbol.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(tick ports.TickInput) {
	d.workers[d.shardIndex(tick.Symbol)] <- tick
}

// EnqueueBatch enqueues multiple ticks preserving per-instrument ordering.
func (d *Dispatcher) EnqueueBatch(ticks []ports.TickInput) {
	for _, t := range ticks {
		d.Enqueue(t)
	}
}

// shardIndex maps a symbol deterministically to a worker index.
func (d *Dispatcher) shardIndex(symbol string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TickInput) {
	depth := metrics.TickQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case tick, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.process(ctx, id, tick)
		}
	}
}

// process runs a single tick through the service and records the outcome:
// dedup hits are counted on their own and never as successes.
func (d *Dispatcher) process(ctx context.Context, id int, tick ports.TickInput) {
	start := time.Now()
	processed, err := d.service.Process(ctx, tick)
	if err != nil {
		metrics.TicksErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		metrics.TickProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("symbol", tick.Symbol).
			Int("worker_id", id).
			Msg("tick processing failed")
		return
	}
	if !processed {
		metrics.TickDedupHitsTotal.Inc()
		return
	}
	metrics.TicksProcessedTotal.WithLabelValues(tick.Source).Inc()
	metrics.TickProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}

// errorReason buckets a processing error for the TicksErrorsTotal label.
func errorReason(err error) string {
	if errors.Is(err, domain.ErrInstrumentNotFound) {
		return "instrument_not_found"
	}
	return "process_failed"
}
