// Command prodcons runs the producer/consumer engine in a terminal.
//
// The two display panes are printed as prefixed lines: [queue] for
// produced records and [dequeue] for consumed ones. Without -interactive
// the command presses start once, waits for the run to finish and the
// queue to drain, then exits. With -interactive every line read from stdin
// is a press of the start control (start, or stop while running); "q"
// quits.
//
// Usage:
//
//	go run ./cmd/prodcons -consumers 2 -tick 10ms -duration 10s
//	go run ./cmd/prodcons -config prodcons.yaml -interactive
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/randomizedcoder/prodcons/internal/config"
	"github.com/randomizedcoder/prodcons/internal/engine"
	"github.com/randomizedcoder/prodcons/internal/lifecycle"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "prodcons:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	consumers := flag.Int("consumers", 0, "number of consumers (overrides config)")
	tickInterval := flag.Duration("tick", 0, "loop tick interval (overrides config)")
	duration := flag.Duration("duration", 0, "producer run duration (overrides config)")
	iterations := flag.Int("iterations", 0, "records per run, overrides duration")
	threshold := flag.Int("threshold", 0, "pane pagination threshold (overrides config)")
	wake := flag.Bool("wake", false, "wake consumers on enqueue")
	logLevel := flag.String("log-level", "", "debug, info, warn, error (overrides config)")
	interactive := flag.Bool("interactive", false, "read start presses from stdin")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "consumers":
			cfg.Consumers = *consumers
		case "tick":
			cfg.TickIntervalMS = int(tickInterval.Milliseconds())
		case "duration":
			cfg.RunDurationMS = int(duration.Milliseconds())
		case "iterations":
			cfg.Iterations = *iterations
		case "threshold":
			cfg.PageThreshold = *threshold
		case "wake":
			cfg.WakeOnEnqueue = *wake
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := config.Validate(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	e, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	con := newConsole(os.Stdout)
	e.OnRecordProduced(con.recordProduced)
	e.OnRecordConsumed(con.recordConsumed)
	e.OnPaneClearRequested(con.paneClear)
	e.OnButtonLabelChange(con.labelChange)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.Start(ctx); err != nil {
		return err
	}
	defer func() {
		e.Shutdown()
		con.Flush()
		s := e.Stats()
		slog.Info("exiting", "runs", s.Runs, "produced", s.Produced, "consumed", s.Consumed, "pending", s.Pending)
	}()

	if *interactive {
		return pressLoop(ctx, e)
	}

	e.RequestStart()
	select {
	case <-ctx.Done():
		return nil
	case <-con.runEnded:
	}
	return waitDrained(ctx, e, cfg.TickInterval())
}

// pressLoop treats each stdin line as a press of the start control.
func pressLoop(ctx context.Context, e *engine.Engine) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	fmt.Fprintln(os.Stderr, "press Enter to start or stop a run, q to quit")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "q" {
				return nil
			}
			state := e.RequestStart()
			slog.Debug("start pressed", "state", state)
		}
	}
}

// waitDrained waits until the producer is idle and the queue is empty.
func waitDrained(ctx context.Context, e *engine.Engine, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		s := e.Stats()
		if s.State == lifecycle.Idle && s.Pending == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
