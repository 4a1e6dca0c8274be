package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{subject: subject, data: data})
	return nil
}

func TestRewindPublisher_Publish(t *testing.T) {
	tests := map[string]struct {
		event      rewind.Event
		expSubject string
	}{
		"snapshot stored": {
			event: rewind.Event{
				Type:     rewind.EventSnapshotStored,
				Timeline: "t1",
				Snapshot: &rewind.Info{ID: 4, Entities: 12},
				Evicted:  []uint64{1},
			},
			expSubject: SubjectSnapshotEvents,
		},
		"restored": {
			event: rewind.Event{
				Type:     rewind.EventRestored,
				Timeline: "t2",
				Report:   &rewind.Report{SnapshotID: 4, Restored: 12},
			},
			expSubject: SubjectRestoreEvents,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pub := &fakePublisher{}
			p := NewRewindPublisher(pub)

			if err := p.Publish(context.Background(), tt.event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "sent", len(pub.sent), 1)
			testutil.AssertEqual(t, "subject", pub.sent[0].subject, tt.expSubject)

			var got rewind.Event
			if err := json.Unmarshal(pub.sent[0].data, &got); err != nil {
				t.Fatalf("decoding event: %v", err)
			}
			testutil.AssertEqual(t, "type", got.Type, tt.event.Type)
			testutil.AssertEqual(t, "timeline", got.Timeline, tt.event.Timeline)
		})
	}
}

func TestRewindPublisher_Remap(t *testing.T) {
	tests := map[string]struct {
		remap map[host.ID]host.ID
		exp   []RemapEntry
	}{
		"sorted by old id": {
			remap: map[host.ID]host.ID{9: 30, 2: 31, 5: 32},
			exp:   []RemapEntry{{Old: 2, New: 31}, {Old: 5, New: 32}, {Old: 9, New: 30}},
		},
		"empty": {
			remap: map[host.ID]host.ID{},
			exp:   []RemapEntry{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pub := &fakePublisher{}
			p := NewRewindPublisher(pub)

			if err := p.Remap(context.Background(), tt.remap); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "sent", len(pub.sent), 1)
			testutil.AssertEqual(t, "subject", pub.sent[0].subject, SubjectRemap)

			var got []RemapEntry
			if err := json.Unmarshal(pub.sent[0].data, &got); err != nil {
				t.Fatalf("decoding remap: %v", err)
			}
			testutil.AssertEqual(t, "entries", len(got), len(tt.exp))
			for i := range got {
				testutil.AssertEqual(t, "entry", got[i], tt.exp[i])
			}
		})
	}
}

func TestRewindPublisher_Error(t *testing.T) {
	p := NewRewindPublisher(&fakePublisher{err: errors.New("connection closed")})

	err := p.Remap(context.Background(), map[host.ID]host.ID{1: 2})
	testutil.AssertErrorContains(t, err, "publishing rewind.remap")
	testutil.AssertErrorContains(t, err, "connection closed")
}
