package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/pkg/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher journals master-session events through a fixed set of workers.
// Events are sharded by master id, so each master's transitions are written
// in the order they happened.
type Dispatcher struct {
	workers []chan domain.SessionEvent
	repo    ports.JournalRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var _ ports.SessionJournal = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.JournalRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SessionEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SessionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Cancelling ctx aborts the workers
// without draining; use Stop for an orderly shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the queues and waits until the workers have written every
// buffered event or ctx expires. Events recorded after Stop are dropped.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record enqueues an event without blocking. When the worker's buffer is
// full the event is dropped and counted.
func (d *Dispatcher) Record(event domain.SessionEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.JournalEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("event_id", event.ID).Msg("journal stopped, event dropped")
		return
	}

	idx := d.shardIndex(event.MasterID)
	select {
	case d.workers[idx] <- event:
		metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.JournalEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("event_id", event.ID).
			Str("master_id", event.MasterID).
			Int("worker_id", idx).
			Msg("journal queue full, event dropped")
	}
}

// shardIndex maps a master id deterministically to a worker index.
func (d *Dispatcher) shardIndex(masterID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(masterID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SessionEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.JournalQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, event)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, event domain.SessionEvent) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := d.repo.InsertEvent(writeCtx, &event); err != nil {
		metrics.JournalEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("event_id", event.ID).
			Str("master_id", event.MasterID).
			Int("worker_id", id).
			Msg("journal write failed")
		return
	}
	metrics.JournalEventsTotal.WithLabelValues("written").Inc()
}
