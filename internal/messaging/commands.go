package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
)

const (
	SubjectList    = "rewind.list"
	SubjectTake    = "rewind.take"
	SubjectRestore = "rewind.restore"

	DefaultReplyTimeout = 5 * time.Second
)

// Enqueuer accepts requests for the tick goroutine.
type Enqueuer interface {
	Enqueue(rewind.Request) error
}

// Handler is the part of NatsServer the command surface needs.
type Handler interface {
	WaitReady(context.Context) error
	Handle(subject string, handler func(data []byte) []byte) (func(), error)
}

// CommandRequest is the body of a rewind.restore request. Other subjects
// take an empty body.
type CommandRequest struct {
	ID uint64 `json:"id"`
}

type CommandReply struct {
	Snapshots []rewind.Info  `json:"snapshots,omitempty"`
	Report    *rewind.Report `json:"report,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// CommandServer exposes list, take and restore as request/reply subjects.
type CommandServer struct {
	bus     Handler
	queue   Enqueuer
	timeout time.Duration
}

type CommandServerOpt func(*CommandServer)

func WithReplyTimeout(d time.Duration) CommandServerOpt {
	return func(c *CommandServer) {
		c.timeout = d
	}
}

func NewCommandServer(bus Handler, queue Enqueuer, opts ...CommandServerOpt) *CommandServer {
	c := &CommandServer{
		bus:     bus,
		queue:   queue,
		timeout: DefaultReplyTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes once the bus is ready and serves until ctx is done.
func (c *CommandServer) Start(ctx context.Context) error {
	if err := c.bus.WaitReady(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("waiting for nats: %w", err)
	}

	subjects := map[string]rewind.RequestKind{
		SubjectList:    rewind.RequestList,
		SubjectTake:    rewind.RequestTake,
		SubjectRestore: rewind.RequestRestore,
	}
	for subject, kind := range subjects {
		unsub, err := c.bus.Handle(subject, func(data []byte) []byte {
			return c.Serve(ctx, kind, data)
		})
		if err != nil {
			return err
		}
		defer unsub()
	}

	slog.InfoContext(ctx, "rewind commands ready", "subjects", len(subjects))
	<-ctx.Done()
	return nil
}

// Serve runs one request through the queue and encodes the reply.
func (c *CommandServer) Serve(ctx context.Context, kind rewind.RequestKind, data []byte) []byte {
	reply := c.serve(ctx, kind, data)
	out, err := json.Marshal(reply)
	if err != nil {
		slog.ErrorContext(ctx, "marshalling rewind reply", "request", kind, "error", err)
		return []byte(`{"error":"internal error"}`)
	}
	return out
}

func (c *CommandServer) serve(ctx context.Context, kind rewind.RequestKind, data []byte) CommandReply {
	var req CommandRequest
	if kind == rewind.RequestRestore {
		if err := json.Unmarshal(data, &req); err != nil {
			return CommandReply{Error: fmt.Sprintf("decoding request: %v", err)}
		}
	}

	replies := make(chan rewind.Response, 1)
	err := c.queue.Enqueue(rewind.Request{Kind: kind, SnapshotID: req.ID, Reply: replies})
	if err != nil {
		return CommandReply{Error: err.Error()}
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case resp := <-replies:
		reply := CommandReply{Snapshots: resp.Snapshots, Report: resp.Report}
		if resp.Err != nil {
			reply.Error = resp.Err.Error()
		}
		return reply
	case <-timer.C:
		return CommandReply{Error: fmt.Sprintf("%s timed out", kind)}
	case <-ctx.Done():
		return CommandReply{Error: ctx.Err().Error()}
	}
}
