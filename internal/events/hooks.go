package events

import (
	"sync"

	"github.com/randomizedcoder/prodcons/internal/record"
)

// Hooks holds host callbacks. Registration is safe at any time, including
// while events are being delivered.
type Hooks struct {
	mu        sync.RWMutex
	all       []func(Event)
	produced  []func(record.Record)
	consumed  []func(record.Record)
	paneClear []func(Pane)
	label     []func(string)
}

// OnEvent registers fn for every event.
func (h *Hooks) OnEvent(fn func(Event)) {
	h.mu.Lock()
	h.all = append(h.all, fn)
	h.mu.Unlock()
}

// OnRecordProduced registers fn for every produced record.
func (h *Hooks) OnRecordProduced(fn func(record.Record)) {
	h.mu.Lock()
	h.produced = append(h.produced, fn)
	h.mu.Unlock()
}

// OnRecordConsumed registers fn for every record removed by any consumer.
func (h *Hooks) OnRecordConsumed(fn func(record.Record)) {
	h.mu.Lock()
	h.consumed = append(h.consumed, fn)
	h.mu.Unlock()
}

// OnPaneClearRequested registers fn for pagination resets.
func (h *Hooks) OnPaneClearRequested(fn func(Pane)) {
	h.mu.Lock()
	h.paneClear = append(h.paneClear, fn)
	h.mu.Unlock()
}

// OnButtonLabelChange registers fn for run begin/end relabels.
func (h *Hooks) OnButtonLabelChange(fn func(string)) {
	h.mu.Lock()
	h.label = append(h.label, fn)
	h.mu.Unlock()
}

func (h *Hooks) deliver(ev Event) {
	// Snapshot so a hook may register further hooks without deadlocking.
	h.mu.RLock()
	all, produced, consumed := h.all, h.produced, h.consumed
	paneClear, label := h.paneClear, h.label
	h.mu.RUnlock()

	for _, fn := range all {
		fn(ev)
	}

	switch ev.Kind {
	case Produced:
		for _, fn := range produced {
			fn(ev.Record)
		}
	case Consumed:
		for _, fn := range consumed {
			fn(ev.Record)
		}
	case PaneClear:
		for _, fn := range paneClear {
			fn(ev.Pane)
		}
	case Label:
		for _, fn := range label {
			fn(ev.Label)
		}
	}
}
