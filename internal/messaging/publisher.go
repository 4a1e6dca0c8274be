package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
)

const (
	SubjectSnapshotEvents = "rewind.events.snapshot"
	SubjectRestoreEvents  = "rewind.events.restore"
	SubjectRemap          = "rewind.remap"
)

// Publisher is the part of NatsServer the rewind publisher needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// RewindPublisher broadcasts rewind events and identity remaps on the bus.
type RewindPublisher struct {
	pub Publisher
}

func NewRewindPublisher(pub Publisher) *RewindPublisher {
	return &RewindPublisher{pub: pub}
}

// Publish sends ev on the subject matching its type.
func (p *RewindPublisher) Publish(_ context.Context, ev rewind.Event) error {
	subject := SubjectSnapshotEvents
	if ev.Type == rewind.EventRestored {
		subject = SubjectRestoreEvents
	}
	return p.send(subject, ev)
}

// RemapEntry is one identity change.
type RemapEntry struct {
	Old host.ID `json:"old"`
	New host.ID `json:"new"`
}

// Remap publishes the identity changes of a restore, sorted by old identity.
// An empty remap is still published so listeners can drop stale caches.
func (p *RewindPublisher) Remap(_ context.Context, remap map[host.ID]host.ID) error {
	entries := make([]RemapEntry, 0, len(remap))
	for _, old := range slices.Sorted(maps.Keys(remap)) {
		entries = append(entries, RemapEntry{Old: old, New: remap[old]})
	}
	return p.send(SubjectRemap, entries)
}

func (p *RewindPublisher) send(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", subject, err)
	}
	if err := p.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}
