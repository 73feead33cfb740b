// Package engine runs the producer/consumer core.
//
// An Engine owns one record queue, one lifecycle controller, one producer
// goroutine and N consumer goroutines. The host drives it with RequestStart
// and RequestStop and renders what it receives through the On* hooks.
//
// # Locks
//
// There are exactly two locks and they are never nested:
//   - the queue lock, held for a single append or remove
//   - the consumed pager lock, shared by all consumers
//
// The lifecycle state is an atomic cell and takes no lock.
//
// # Hooks
//
// All On* hooks run on a single dispatcher goroutine, in emit order per
// emitting goroutine. Hooks must not block and must not call Shutdown
// synchronously.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/randomizedcoder/prodcons/internal/config"
	"github.com/randomizedcoder/prodcons/internal/events"
	"github.com/randomizedcoder/prodcons/internal/lifecycle"
	"github.com/randomizedcoder/prodcons/internal/queue"
	"github.com/randomizedcoder/prodcons/internal/record"
)

var (
	// ErrAlreadyStarted is returned by Start on a running Engine.
	ErrAlreadyStarted = errors.New("engine: already started")
	// ErrShutdown is returned by Start after Shutdown.
	ErrShutdown = errors.New("engine: shut down")
)

// producerLane is the event lane owned by the producer. Consumer k
// (1-based) owns lane k.
const producerLane = 0

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithValueSource replaces the payload generator.
func WithValueSource(src record.ValueSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.values = src
		}
	}
}

// Engine is the producer/consumer core.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
	values record.ValueSource

	queue    *queue.SyncQueue[record.Record]
	state    *lifecycle.Controller
	bus      *events.Bus
	produced *Pager
	consumed *Pager

	runs          atomic.Uint64
	totalProduced atomic.Uint64
	totalConsumed atomic.Uint64
	runID         atomic.Value // string

	mu           sync.Mutex
	started      bool
	shutdown     bool
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// New creates an Engine. No goroutines run until Start.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		logger:   slog.Default(),
		values:   record.Uniform,
		queue:    queue.NewSync[record.Record](),
		state:    lifecycle.New(),
		produced: NewPager(cfg.PageThreshold),
		consumed: NewPager(cfg.PageThreshold),
	}
	e.runID.Store("")

	for _, opt := range opts {
		opt(e)
	}

	bus, err := events.New(cfg.EventBuffer, cfg.Consumers+1, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	e.bus = bus

	e.state.Observe(func(from, to lifecycle.State) {
		e.logger.Debug("lifecycle transition", "from", from, "to", to)
	})

	return e, nil
}

// Start launches the producer, the consumers, and the event dispatcher.
// They run until ctx is done or Shutdown is called.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return ErrShutdown
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.bus.Start()

	e.wg.Add(1)
	go e.runProducer(ctx)

	for id := 1; id <= e.cfg.Consumers; id++ {
		e.wg.Add(1)
		go e.runConsumer(ctx, id)
	}

	e.logger.Info("engine started",
		"consumers", e.cfg.Consumers,
		"tick_interval", e.cfg.TickInterval(),
		"run_iterations", e.cfg.RunIterations(),
		"page_threshold", e.cfg.PageThreshold,
		"wake_on_enqueue", e.cfg.WakeOnEnqueue,
	)
	return nil
}

// Shutdown stops every goroutine, waits for them, and delivers any events
// still queued. Safe to call multiple times and from multiple goroutines.
//
// Hooks run on the event dispatcher, which Shutdown waits for. A hook that
// wants to stop the engine must use go e.Shutdown().
func (e *Engine) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.mu.Lock()
		e.shutdown = true
		cancel := e.cancel
		e.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		e.wg.Wait()
		e.bus.Close()

		e.logger.Info("engine stopped",
			"runs", e.runs.Load(),
			"produced", e.totalProduced.Load(),
			"consumed", e.totalConsumed.Load(),
			"pending", e.queue.Len(),
		)
	})
}

// RequestStart handles a start press: Idle starts a run, Running stops the
// current run, Start is ignored. Returns the resulting state.
func (e *Engine) RequestStart() lifecycle.State {
	return e.state.RequestStart()
}

// RequestStop stops a pending or active run. Returns the resulting state.
func (e *Engine) RequestStop() lifecycle.State {
	return e.state.RequestStop()
}

// State returns the current lifecycle state.
func (e *Engine) State() lifecycle.State {
	return e.state.Load()
}

// OnRecordProduced registers fn for every produced record.
func (e *Engine) OnRecordProduced(fn func(record.Record)) {
	e.bus.OnRecordProduced(fn)
}

// OnRecordConsumed registers fn for every record removed by any consumer.
func (e *Engine) OnRecordConsumed(fn func(record.Record)) {
	e.bus.OnRecordConsumed(fn)
}

// OnPaneClearRequested registers fn for pagination resets.
func (e *Engine) OnPaneClearRequested(fn func(events.Pane)) {
	e.bus.OnPaneClearRequested(fn)
}

// OnButtonLabelChange registers fn for run begin/end relabels.
func (e *Engine) OnButtonLabelChange(fn func(string)) {
	e.bus.OnButtonLabelChange(fn)
}

// OnEvent registers fn for every event, including the consumer ID of
// consumed records.
func (e *Engine) OnEvent(fn func(events.Event)) {
	e.bus.OnEvent(fn)
}

// ProducedCount returns the produced pane counter.
func (e *Engine) ProducedCount() int {
	return e.produced.Value()
}

// ConsumedCount returns the shared consumed pane counter.
func (e *Engine) ConsumedCount() int {
	return e.consumed.Value()
}

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	State    lifecycle.State
	RunID    string
	Runs     uint64
	Produced uint64
	Consumed uint64
	Pending  int
}

// Stats returns a snapshot. Fields are read independently and may not be
// mutually consistent while goroutines are running.
func (e *Engine) Stats() Stats {
	return Stats{
		State:    e.state.Load(),
		RunID:    e.runID.Load().(string),
		Runs:     e.runs.Load(),
		Produced: e.totalProduced.Load(),
		Consumed: e.totalConsumed.Load(),
		Pending:  e.queue.Len(),
	}
}

func (e *Engine) emit(lane int, ev events.Event) {
	if err := e.bus.Emit(lane, ev); err != nil {
		e.logger.Warn("event not delivered", "kind", ev.Kind, "lane", lane, "error", err)
	}
}
