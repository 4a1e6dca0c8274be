package rewind

import (
	"context"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
)

type EventType string

const (
	EventSnapshotStored EventType = "snapshot_stored"
	EventRestored       EventType = "restored"
)

// Info describes a retained snapshot.
type Info struct {
	ID         uint64        `json:"id"`
	Elapsed    time.Duration `json:"elapsed"`
	CapturedAt time.Time     `json:"captured_at"`
	Entities   int           `json:"entities"`
	Label      string        `json:"label,omitempty"`
}

// Report summarises one restore.
type Report struct {
	SnapshotID        uint64        `json:"snapshot_id"`
	Pruned            int           `json:"pruned"`
	ProjectilesPruned int           `json:"projectiles_pruned"`
	Restored          int           `json:"restored"`
	Dropped           int           `json:"dropped"`
	Failed            int           `json:"failed"`
	Remap             capture.Remap `json:"remap"`
}

type Event struct {
	Type     EventType `json:"type"`
	Timeline string    `json:"timeline"`
	Snapshot *Info     `json:"snapshot,omitempty"`
	Evicted  []uint64  `json:"evicted,omitempty"`
	Report   *Report   `json:"report,omitempty"`
}

// Events receives notifications from the orchestrator. Publish is called on
// the tick goroutine.
type Events interface {
	Publish(ctx context.Context, ev Event) error
}
