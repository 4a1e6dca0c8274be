package driver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type mockTicker struct {
	name  string
	err   error
	calls *[]string
}

func (m *mockTicker) Tick(context.Context) error {
	*m.calls = append(*m.calls, m.name)
	return m.err
}

func TestTickDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		errAt    int
		expCalls []string
		expErr   string
	}{
		"all tickers run in order": {
			errAt:    -1,
			expCalls: []string{"world", "rewind", "events"},
		},
		"stops at first error": {
			errAt:    1,
			expCalls: []string{"world", "rewind"},
			expErr:   "ticker 1: boom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls []string
			var tickers []Ticker
			for i, n := range []string{"world", "rewind", "events"} {
				m := &mockTicker{name: n, calls: &calls}
				if i == tt.errAt {
					m.err = fmt.Errorf("boom")
				}
				tickers = append(tickers, m)
			}

			err := NewTickDriver(tickers).Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "call count", len(calls), len(tt.expCalls))
			for i := range tt.expCalls {
				testutil.AssertEqual(t, "call", calls[i], tt.expCalls[i])
			}
		})
	}
}

func TestTickDriver_Start(t *testing.T) {
	var calls []string
	m := &mockTicker{name: "world", calls: &calls, err: fmt.Errorf("stop")}
	d := NewTickDriver([]Ticker{m}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "stop")
	testutil.AssertEqual(t, "calls", len(calls), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d = NewTickDriver(nil, WithTickLength(time.Hour))
	if err := d.Start(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
