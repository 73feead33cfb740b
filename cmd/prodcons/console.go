package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/randomizedcoder/prodcons/internal/events"
	"github.com/randomizedcoder/prodcons/internal/record"
)

// pane accumulates formatted records and prints each completed line.
type pane struct {
	name string
	line strings.Builder
}

// console renders the two panes and the start control to a writer.
// Hooks run on the event dispatcher goroutine; the mutex only guards
// against the final flush from main.
type console struct {
	mu       sync.Mutex
	out      io.Writer
	produced pane
	consumed pane
	runEnded chan struct{}
}

func newConsole(out io.Writer) *console {
	return &console{
		out:      out,
		produced: pane{name: "queue"},
		consumed: pane{name: "dequeue"},
		runEnded: make(chan struct{}, 1),
	}
}

func (c *console) recordProduced(r record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(&c.produced, r.Format())
}

func (c *console) recordConsumed(r record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(&c.consumed, r.Format())
}

func (c *console) paneClear(p events.Pane) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := &c.produced
	if p == events.PaneConsumed {
		target = &c.consumed
	}
	c.flush(target)
	fmt.Fprintf(c.out, "[%s] ---- cleared ----\n", target.name)
}

func (c *console) labelChange(label string) {
	c.mu.Lock()
	c.flush(&c.produced)
	if label == events.LabelRun {
		// Consumers may still be draining the previous run.
		c.flush(&c.consumed)
	}
	fmt.Fprintf(c.out, "[button] %s\n", label)
	c.mu.Unlock()

	if label == events.LabelStart {
		select {
		case c.runEnded <- struct{}{}:
		default:
		}
	}
}

// Flush prints any partial lines.
func (c *console) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flush(&c.produced)
	c.flush(&c.consumed)
}

func (c *console) write(p *pane, text string) {
	p.line.WriteString(text)
	if strings.HasSuffix(text, "\n") {
		fmt.Fprintf(c.out, "[%s] %s", p.name, p.line.String())
		p.line.Reset()
	}
}

func (c *console) flush(p *pane) {
	if p.line.Len() == 0 {
		return
	}
	fmt.Fprintf(c.out, "[%s] %s\n", p.name, strings.TrimRight(p.line.String(), " "))
	p.line.Reset()
}
