package engine

import (
	"context"

	"github.com/randomizedcoder/prodcons/internal/events"
	"github.com/randomizedcoder/prodcons/internal/lifecycle"
	"github.com/randomizedcoder/prodcons/internal/tick"
)

// runConsumer drains the queue until ctx is done. Consumers are symmetric;
// id only names the event lane and the log attribute.
func (e *Engine) runConsumer(ctx context.Context, id int) {
	defer e.wg.Done()

	log := e.logger.With("component", "consumer", "consumer_id", id)
	log.Debug("consumer started")

	ticker := tick.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	var wake <-chan struct{}
	if e.cfg.WakeOnEnqueue {
		wake = e.queue.Ready()
	}

	onWrap := func() {
		e.emit(id, events.Event{Kind: events.PaneClear, Pane: events.PaneConsumed})
	}

	var consumed uint64
	for {
		r, ok := e.queue.Pop()
		if ok {
			consumed++
			e.totalConsumed.Add(1)
			e.emit(id, events.Event{Kind: events.Consumed, Record: r, Consumer: id})
			e.consumed.Inc(onWrap)
		}

		if e.state.Load() == lifecycle.Idle {
			e.consumed.Reset()
		}

		// With enqueue wakeups, keep draining while records are available.
		if ok && wake != nil && ctx.Err() == nil {
			continue
		}

		if !ticker.WaitSignal(ctx, wake) {
			log.Debug("consumer stopping", "consumed", consumed)
			return
		}
	}
}
