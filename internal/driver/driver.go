package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = 50 * time.Millisecond
)

// Ticker is advanced once per driver tick, in registration order.
type Ticker interface {
	Tick(context.Context) error
}

// TickDriver is the single goroutine that owns the world: it ticks the
// simulation and then everything that observes it.
type TickDriver struct {
	tickLength time.Duration
	tickers    []Ticker
	ticks      uint64
}

func NewTickDriver(tickers []Ticker, opts ...TickDriverOpt) *TickDriver {
	d := &TickDriver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *TickDriver) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "tick driver started", "tick_length", d.tickLength, "tickers", len(d.tickers))

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "tick driver stopped", "ticks", d.ticks)
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs every ticker once and stops at the first error.
func (d *TickDriver) Tick(ctx context.Context) error {
	d.ticks++
	for i, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d, ticker %d: %w", d.ticks, i, err)
		}
	}
	return nil
}
