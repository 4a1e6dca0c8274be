package rewind

import (
	"context"
	"fmt"
	"log/slog"
)

type RequestKind int

const (
	RequestList RequestKind = iota
	RequestTake
	RequestRestore
)

func (k RequestKind) String() string {
	switch k {
	case RequestList:
		return "list"
	case RequestTake:
		return "take"
	case RequestRestore:
		return "restore"
	default:
		return fmt.Sprintf("request(%d)", int(k))
	}
}

// Request asks the orchestrator to act on the next tick. Reply, when set,
// receives exactly one Response and should be buffered.
type Request struct {
	Kind       RequestKind
	SnapshotID uint64
	Reply      chan<- Response
}

type Response struct {
	Snapshots []Info
	Report    *Report
	Err       error
}

// Enqueue hands a request to the tick goroutine. It never blocks.
func (o *Orchestrator) Enqueue(req Request) error {
	select {
	case o.requests <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

func (o *Orchestrator) drainRequests(ctx context.Context) {
	for {
		select {
		case req := <-o.requests:
			o.handle(ctx, req)
		default:
			return
		}
	}
}

func (o *Orchestrator) handle(ctx context.Context, req Request) {
	var resp Response
	switch req.Kind {
	case RequestList:
		resp.Snapshots = o.Choices()
	case RequestTake:
		resp.Err = o.TakeSnapshot(ctx)
	case RequestRestore:
		report, err := o.Restore(ctx, req.SnapshotID)
		if err == nil {
			resp.Report = &report
		}
		resp.Err = err
	default:
		resp.Err = fmt.Errorf("unknown request %s", req.Kind)
	}

	if resp.Err != nil {
		slog.WarnContext(ctx, "rewind request failed", "request", req.Kind, "error", resp.Err)
	}
	if req.Reply != nil {
		select {
		case req.Reply <- resp:
		default:
			slog.WarnContext(ctx, "dropping rewind reply", "request", req.Kind)
		}
	}
}
