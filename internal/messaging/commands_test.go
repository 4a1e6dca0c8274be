package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-testutil"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
)

// fakeQueue answers every request at once with resp, or holds it when silent.
type fakeQueue struct {
	resp     rewind.Response
	err      error
	silent   bool
	received []rewind.Request
}

func (f *fakeQueue) Enqueue(req rewind.Request) error {
	if f.err != nil {
		return f.err
	}
	f.received = append(f.received, req)
	if !f.silent {
		req.Reply <- f.resp
	}
	return nil
}

func decodeReply(t *testing.T, data []byte) CommandReply {
	t.Helper()
	var reply CommandReply
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("decoding reply %s: %v", data, err)
	}
	return reply
}

func TestCommandServer_Serve(t *testing.T) {
	tests := map[string]struct {
		queue       *fakeQueue
		kind        rewind.RequestKind
		data        []byte
		expID       uint64
		expErr      string
		expSnaps    int
		expReported bool
	}{
		"list": {
			queue:    &fakeQueue{resp: rewind.Response{Snapshots: []rewind.Info{{ID: 1}, {ID: 2}}}},
			kind:     rewind.RequestList,
			expSnaps: 2,
		},
		"restore": {
			queue:       &fakeQueue{resp: rewind.Response{Report: &rewind.Report{SnapshotID: 7}}},
			kind:        rewind.RequestRestore,
			data:        []byte(`{"id":7}`),
			expID:       7,
			expReported: true,
		},
		"restore with bad body": {
			queue:  &fakeQueue{},
			kind:   rewind.RequestRestore,
			data:   []byte(`{"id":`),
			expErr: "decoding request",
		},
		"request failed": {
			queue:  &fakeQueue{resp: rewind.Response{Err: rewind.ErrInvalidOperation}},
			kind:   rewind.RequestRestore,
			data:   []byte(`{"id":3}`),
			expID:  3,
			expErr: "revert not possible",
		},
		"queue full": {
			queue:  &fakeQueue{err: rewind.ErrQueueFull},
			kind:   rewind.RequestTake,
			expErr: "request queue full",
		},
		"timeout": {
			queue:  &fakeQueue{silent: true},
			kind:   rewind.RequestTake,
			expErr: "take timed out",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewCommandServer(nil, tt.queue, WithReplyTimeout(20*time.Millisecond))

			reply := decodeReply(t, c.Serve(context.Background(), tt.kind, tt.data))

			testutil.AssertEqual(t, "error", reply.Error != "", tt.expErr != "")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, errors.New(reply.Error), tt.expErr)
			}
			testutil.AssertEqual(t, "snapshots", len(reply.Snapshots), tt.expSnaps)
			testutil.AssertEqual(t, "report", reply.Report != nil, tt.expReported)
			if len(tt.queue.received) > 0 {
				testutil.AssertEqual(t, "kind", tt.queue.received[0].Kind, tt.kind)
				testutil.AssertEqual(t, "id", tt.queue.received[0].SnapshotID, tt.expID)
			}
		})
	}
}

func TestCommandServer_ServeCancelled(t *testing.T) {
	c := NewCommandServer(nil, &fakeQueue{silent: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply := decodeReply(t, c.Serve(ctx, rewind.RequestList, nil))
	testutil.AssertEqual(t, "error", reply.Error, context.Canceled.Error())
}

func TestCommandServer_OverNats(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	serverDone := make(chan error, 1)
	go func() { serverDone <- srv.Start(ctx) }()
	if err := srv.WaitReady(ctx); err != nil {
		t.Fatalf("waiting for server: %v", err)
	}

	queue := &fakeQueue{resp: rewind.Response{Snapshots: []rewind.Info{{ID: 5, Label: "#5"}}}}
	commands := NewCommandServer(srv, queue)
	commandsDone := make(chan error, 1)
	go func() { commandsDone <- commands.Start(ctx) }()

	client, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connecting client: %v", err)
	}
	defer client.Close()

	// The command server subscribes asynchronously; retry until it answers.
	var msg *nats.Msg
	for range 50 {
		msg, err = client.Request(SubjectList, nil, 100*time.Millisecond)
		if err == nil {
			break
		}
	}
	if err != nil {
		t.Fatalf("requesting list: %v", err)
	}

	reply := decodeReply(t, msg.Data)
	testutil.AssertEqual(t, "snapshots", len(reply.Snapshots), 1)
	testutil.AssertEqual(t, "label", reply.Snapshots[0].Label, "#5")

	sub, err := client.SubscribeSync(SubjectRemap)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	if err := client.Flush(); err != nil {
		t.Fatalf("flushing: %v", err)
	}
	if err := NewRewindPublisher(srv).Remap(ctx, nil); err != nil {
		t.Fatalf("publishing remap: %v", err)
	}
	got, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("receiving remap: %v", err)
	}
	testutil.AssertEqual(t, "remap body", string(got.Data), "[]")

	cancel()
	if err := <-commandsDone; err != nil {
		t.Errorf("command server: %v", err)
	}
	if err := <-serverDone; err != nil {
		t.Errorf("nats server: %v", err)
	}
}
