package events_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/randomizedcoder/prodcons/internal/events"
	"github.com/randomizedcoder/prodcons/internal/record"
)

func newBus(t *testing.T, capacity, lanes int) *events.Bus {
	t.Helper()
	b, err := events.New(capacity, lanes, nil)
	if err != nil {
		t.Fatalf("events.New() error: %v", err)
	}
	return b
}

func TestBus_DeliversByKind(t *testing.T) {
	b := newBus(t, 64, 2)

	var mu sync.Mutex
	var produced, consumed []record.Record
	var panes []events.Pane
	var labels []string
	var all int

	b.OnEvent(func(events.Event) { mu.Lock(); all++; mu.Unlock() })
	b.OnRecordProduced(func(r record.Record) { mu.Lock(); produced = append(produced, r); mu.Unlock() })
	b.OnRecordConsumed(func(r record.Record) { mu.Lock(); consumed = append(consumed, r); mu.Unlock() })
	b.OnPaneClearRequested(func(p events.Pane) { mu.Lock(); panes = append(panes, p); mu.Unlock() })
	b.OnButtonLabelChange(func(l string) { mu.Lock(); labels = append(labels, l); mu.Unlock() })

	b.Start()

	mustEmit(t, b, 0, events.Event{Kind: events.Label, Label: events.LabelRun})
	mustEmit(t, b, 0, events.Event{Kind: events.Produced, Record: record.New(1, 5)})
	mustEmit(t, b, 1, events.Event{Kind: events.Consumed, Record: record.New(1, 5), Consumer: 1})
	mustEmit(t, b, 0, events.Event{Kind: events.PaneClear, Pane: events.PaneProduced})
	mustEmit(t, b, 0, events.Event{Kind: events.Label, Label: events.LabelStart})

	b.Close()

	mu.Lock()
	defer mu.Unlock()

	if all != 5 {
		t.Errorf("expected 5 events via OnEvent, got %d", all)
	}
	if len(produced) != 1 || produced[0] != record.New(1, 5) {
		t.Errorf("unexpected produced records: %v", produced)
	}
	if len(consumed) != 1 || consumed[0] != record.New(1, 5) {
		t.Errorf("unexpected consumed records: %v", consumed)
	}
	if len(panes) != 1 || panes[0] != events.PaneProduced {
		t.Errorf("unexpected pane clears: %v", panes)
	}
	if len(labels) != 2 || labels[0] != events.LabelRun || labels[1] != events.LabelStart {
		t.Errorf("unexpected labels: %v", labels)
	}
	if b.Delivered() != 5 || b.Emitted() != 5 {
		t.Errorf("expected emitted=delivered=5, got %d/%d", b.Emitted(), b.Delivered())
	}
}

// TestBus_LaneOrder emits from several goroutines, one per lane, through
// a ring much smaller than the event count. Nothing is dropped and each
// lane's events arrive in order.
func TestBus_LaneOrder(t *testing.T) {
	const lanes = 3
	const perLane = 5000

	b := newBus(t, 16, lanes)

	last := make([]int, lanes)
	counts := make([]int, lanes)
	var orderErr error
	b.OnEvent(func(ev events.Event) {
		// Dispatcher is a single goroutine; no locking needed here.
		lane := ev.Consumer
		if ev.Record.Seq != last[lane]+1 && orderErr == nil {
			orderErr = errors.New("lane order violated")
		}
		last[lane] = ev.Record.Seq
		counts[lane]++
	})
	b.Start()

	var wg sync.WaitGroup
	for lane := 0; lane < lanes; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			for seq := 1; seq <= perLane; seq++ {
				ev := events.Event{Kind: events.Consumed, Consumer: lane, Record: record.New(seq, 0)}
				if err := b.Emit(lane, ev); err != nil {
					t.Errorf("Emit() error: %v", err)
					return
				}
			}
		}(lane)
	}
	wg.Wait()
	b.Close()

	if orderErr != nil {
		t.Error(orderErr)
	}
	for lane, n := range counts {
		if n != perLane {
			t.Errorf("lane %d: expected %d events, got %d", lane, perLane, n)
		}
	}
}

func TestBus_CloseDrainsWithoutStart(t *testing.T) {
	b := newBus(t, 64, 1)

	var got int
	b.OnRecordProduced(func(record.Record) { got++ })

	for i := 1; i <= 10; i++ {
		mustEmit(t, b, 0, events.Event{Kind: events.Produced, Record: record.New(i, 0)})
	}

	// Close starts the dispatcher if needed and drains
	b.Close()

	if got != 10 {
		t.Errorf("expected 10 delivered events, got %d", got)
	}
}

func TestBus_EmitAfterClose(t *testing.T) {
	b := newBus(t, 8, 1)
	b.Start()
	b.Close()
	b.Close() // idempotent

	err := b.Emit(0, events.Event{Kind: events.Produced})
	if !errors.Is(err, events.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestBus_LaneOutOfRange(t *testing.T) {
	b := newBus(t, 8, 2)
	defer b.Close()

	if err := b.Emit(2, events.Event{Kind: events.Produced}); err == nil {
		t.Error("expected error for lane 2 on a 2-lane bus")
	}
	if err := b.Emit(-1, events.Event{Kind: events.Produced}); err == nil {
		t.Error("expected error for negative lane")
	}
}

func TestBus_HookPanicRecovered(t *testing.T) {
	b := newBus(t, 8, 1)

	var after int
	b.OnRecordProduced(func(r record.Record) {
		if r.Seq == 1 {
			panic("host failure")
		}
		after++
	})
	b.Start()

	mustEmit(t, b, 0, events.Event{Kind: events.Produced, Record: record.New(1, 0)})
	mustEmit(t, b, 0, events.Event{Kind: events.Produced, Record: record.New(2, 0)})
	b.Close()

	if after != 1 {
		t.Errorf("expected delivery to continue after a hook panic, got %d", after)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := events.New(8, 0, nil); err == nil {
		t.Error("expected error for zero lanes")
	}
	if _, err := events.New(0, 1, nil); err == nil {
		t.Error("expected error for zero capacity")
	}
}

func TestKind_String(t *testing.T) {
	testCases := []struct {
		k    events.Kind
		want string
	}{
		{events.Produced, "produced"},
		{events.Consumed, "consumed"},
		{events.PaneClear, "pane_clear"},
		{events.Label, "label"},
		{events.Kind(0), "kind(0)"},
	}
	for _, tc := range testCases {
		if got := tc.k.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func mustEmit(t *testing.T, b *events.Bus, lane int, ev events.Event) {
	t.Helper()
	if err := b.Emit(lane, ev); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
}
