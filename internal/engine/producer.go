package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randomizedcoder/prodcons/internal/events"
	"github.com/randomizedcoder/prodcons/internal/lifecycle"
	"github.com/randomizedcoder/prodcons/internal/record"
	"github.com/randomizedcoder/prodcons/internal/tick"
)

// runProducer polls the lifecycle once per tick and executes a run each
// time it finds a pending start.
func (e *Engine) runProducer(ctx context.Context) {
	defer e.wg.Done()

	log := e.logger.With("component", "producer")
	log.Debug("producer started")

	ticker := tick.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	for {
		if e.state.Load() == lifecycle.Start && e.state.Begin() {
			if !e.produce(ctx, ticker, log) {
				log.Debug("producer stopping")
				return
			}
			continue
		}

		if !ticker.Wait(ctx) {
			log.Debug("producer stopping")
			return
		}
	}
}

// produce executes one run. Returns false if ctx was cancelled mid-run.
func (e *Engine) produce(ctx context.Context, ticker tick.Ticker, log *slog.Logger) bool {
	runID := uuid.NewString()
	e.runID.Store(runID)
	e.runs.Add(1)

	total := e.cfg.RunIterations()
	log = log.With("run_id", runID)
	log.Info("run started", "iterations", total)

	e.emit(producerLane, events.Event{Kind: events.Label, Label: events.LabelRun, RunID: runID})

	var (
		produced     int
		stoppedEarly bool
		alive        = true
		started      = time.Now()
	)

	defer func() {
		// Fails harmlessly if a stop already moved the state on.
		e.state.Finish()
		e.produced.Reset()
		e.emit(producerLane, events.Event{Kind: events.Label, Label: events.LabelStart, RunID: runID})

		log.Info("run finished",
			"produced", produced,
			"stopped_early", stoppedEarly,
			"elapsed", time.Since(started),
			"pending", e.queue.Len(),
		)
	}()

	onWrap := func() {
		e.emit(producerLane, events.Event{Kind: events.PaneClear, Pane: events.PaneProduced, RunID: runID})
	}

	ticker.Reset()
	for seq := 1; seq <= total; seq++ {
		r := record.New(seq, e.values(e.cfg.ValueRange))

		e.queue.Push(r)
		produced++
		e.totalProduced.Add(1)

		e.emit(producerLane, events.Event{Kind: events.Produced, Record: r, RunID: runID})
		e.produced.Inc(onWrap)

		if e.state.Load() != lifecycle.Running {
			stoppedEarly = seq < total
			break
		}

		if !ticker.Wait(ctx) {
			stoppedEarly = seq < total
			alive = false
			break
		}
	}

	return alive
}
