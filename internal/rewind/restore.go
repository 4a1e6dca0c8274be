package rewind

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/ephemeral"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/snapshot"
)

// Restore returns the world to snapshot id and starts a new timeline.
// Entities that fail to restore are logged, counted in the report and
// skipped.
func (o *Orchestrator) Restore(ctx context.Context, id uint64) (Report, error) {
	if !o.CanRevert() {
		return Report{}, ErrInvalidOperation
	}
	snap := o.find(id)
	if snap == nil {
		return Report{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	slog.InfoContext(ctx, "restoring snapshot", "snapshot", id, "timeline", o.timeline)

	report := Report{SnapshotID: id}
	report.Pruned = o.prune(snap)

	ephemeral.ResetFires(o.world, snap.Fires())
	report.ProjectilesPruned = ephemeral.PruneProjectiles(o.world, snap.Projectiles())

	rc := o.registry.RestoreContext(o.world)
	o.restoreEntities(ctx, rc, snap, &report)

	for _, p := range snap.Projectiles() {
		p.Restore(o.world)
	}

	report.Remap = maps.Clone(rc.Remap)
	o.propagate(ctx, report.Remap)

	o.restoreBlobs(ctx, snap)

	o.resetTimeline()

	slog.InfoContext(ctx, "snapshot restored", "snapshot", id, "restored", report.Restored,
		"dropped", report.Dropped, "failed", report.Failed, "remapped", len(report.Remap), "timeline", o.timeline)

	o.publish(ctx, Event{
		Type:     EventRestored,
		Timeline: o.timeline,
		Report:   &report,
	})
	return report, nil
}

// prune removes dynamic objects that did not exist when snap was taken.
func (o *Orchestrator) prune(snap *snapshot.Snapshot) int {
	n := 0
	for _, obj := range o.world.DynamicObjects() {
		if obj.IsRemoved() || snap.HasDynamic(obj.ID()) || o.tracker.Has(obj.ID()) {
			continue
		}
		if pl, ok := obj.(host.Player); ok && pl.IsPlaceholder() {
			continue
		}
		if c, ok := obj.(host.Crate); ok && c.IsSpecial() {
			c.MarkRemoved()
		}
		obj.Remove()
		n++
	}
	return n
}

func (o *Orchestrator) restoreEntities(ctx context.Context, rc *capture.Context, snap *snapshot.Snapshot, report *Report) {
	additional := snap.Additional()
	slices.SortStableFunc(additional, func(a, b capture.Entity) int {
		return a.Kind.RestoreRank() - b.Kind.RestoreRank()
	})
	ordered := slices.Concat(snap.Static(), snap.Dynamic(), additional)

	failedName := o.world.CreationFailedName()
	el := errors.NewErrorList()
	for _, e := range ordered {
		obj, err := restoreOne(rc, e)
		if obj != nil && failedName != "" && obj.Name() == failedName {
			obj.Remove()
			report.Dropped++
			slog.DebugContext(ctx, "host could not re-create entity", "id", e.OldID, "kind", e.Kind, "type", e.TypeName)
			continue
		}
		// A half-restored object still answers for its old identity.
		if obj != nil && rc.Remap.Record(e.OldID, obj.ID()) {
			slog.DebugContext(ctx, "entity re-created", "old", e.OldID, "new", obj.ID(), "kind", e.Kind)
		}
		if err != nil {
			report.Failed++
			el.Add(err)
			slog.WarnContext(ctx, "restoring entity", "id", e.OldID, "kind", e.Kind, "type", e.TypeName, "error", err)
			continue
		}
		if obj == nil {
			report.Dropped++
			slog.DebugContext(ctx, "entity not restored", "id", e.OldID, "kind", e.Kind, "type", e.TypeName)
			continue
		}

		report.Restored++
	}

	if err := el.Err(); err != nil {
		slog.WarnContext(ctx, "restore finished with failures", "snapshot", snap.ID(), "failed", report.Failed, "error", err)
	}
}

func restoreOne(rc *capture.Context, e capture.Entity) (obj host.Object, err error) {
	defer func() {
		if r := recover(); r != nil {
			obj = nil
			err = fmt.Errorf("restoring %s %s: panic: %v", e.Kind, e.OldID, r)
		}
	}()
	return e.Restore(rc)
}

func (o *Orchestrator) propagate(ctx context.Context, remap capture.Remap) {
	if o.identity == nil {
		return
	}
	if err := o.identity.Remap(ctx, remap); err != nil {
		slog.WarnContext(ctx, "propagating identity remap", "entries", len(remap), "error", err)
	}
}

func (o *Orchestrator) restoreBlobs(ctx context.Context, snap *snapshot.Snapshot) {
	if err := snapshot.LoadBlob(o.subsystems.Entities, snap.Entities()); err != nil {
		slog.WarnContext(ctx, "restoring sub-system state", "subsystem", "entities", "error", err)
	}
	if err := snapshot.LoadBlob(o.subsystems.SpawnChance, snap.SpawnChance()); err != nil {
		slog.WarnContext(ctx, "restoring sub-system state", "subsystem", "spawn_chance", "error", err)
	}

	magic := snap.Magic()
	o.after(o.tuning.MagicRestoreDelay, "magic", func(context.Context) error {
		return snapshot.LoadBlob(o.subsystems.Magic, magic)
	})
}
