package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/ephemeral"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

const (
	DefaultChunkSize = 10
	DefaultBudget    = 2 * time.Millisecond
)

// Phase is the builder's position in a capture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStatic
	PhaseAdditional
	PhaseDynamic
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStatic:
		return "static"
	case PhaseAdditional:
		return "additional"
	case PhaseDynamic:
		return "dynamic"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

var phasePopulation = map[Phase]capture.Population{
	PhaseStatic:     capture.PopulationStatic,
	PhaseAdditional: capture.PopulationAdditional,
	PhaseDynamic:    capture.PopulationDynamic,
}

// Builder captures the world across as many ticks as it takes, spending at
// most its budget (plus one chunk) per tick.
type Builder struct {
	world      host.World
	subsystems host.Subsystems
	registry   *capture.Registry
	tracker    *Tracker

	chunkSize int
	budget    time.Duration
	now       func() time.Time

	phase   Phase
	cursor  int
	work    map[Phase][]host.Object
	out     map[Phase][]capture.Entity
	pending *Snapshot
	onDone  func(*Snapshot)
}

type BuilderOpt func(*Builder)

func WithChunkSize(n int) BuilderOpt {
	return func(b *Builder) {
		if n > 0 {
			b.chunkSize = n
		}
	}
}

// WithBudget sets the wall-clock time a single Advance may spend.
func WithBudget(d time.Duration) BuilderOpt {
	return func(b *Builder) {
		b.budget = d
	}
}

// WithClock replaces the wall clock used for budget checks.
func WithClock(now func() time.Time) BuilderOpt {
	return func(b *Builder) {
		b.now = now
	}
}

func WithRegistry(r *capture.Registry) BuilderOpt {
	return func(b *Builder) {
		b.registry = r
	}
}

func NewBuilder(w host.World, subs host.Subsystems, tracker *Tracker, opts ...BuilderOpt) *Builder {
	b := &Builder{
		world:      w,
		subsystems: subs,
		tracker:    tracker,
		registry:   capture.NewRegistry(),
		chunkSize:  DefaultChunkSize,
		budget:     DefaultBudget,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Busy reports whether a capture is in flight.
func (b *Builder) Busy() bool {
	return b.phase != PhaseIdle
}

func (b *Builder) Phase() Phase {
	return b.phase
}

// Begin starts capturing snapshot id. Work lists are fixed now; fire,
// projectiles and sub-system state are read immediately. onDone runs from the
// Advance call that completes the capture.
func (b *Builder) Begin(ctx context.Context, id uint64, onDone func(*Snapshot)) error {
	if b.Busy() {
		return ErrBusy
	}

	snap := &Snapshot{
		id:          id,
		elapsed:     b.world.Elapsed(),
		capturedAt:  b.now(),
		fires:       ephemeral.CaptureFires(b.world),
		projectiles: ephemeral.CaptureProjectiles(b.world),
	}
	snap.magic = b.saveBlob(ctx, "magic", b.subsystems.Magic)
	snap.entities = b.saveBlob(ctx, "entities", b.subsystems.Entities)
	snap.spawnChance = b.saveBlob(ctx, "spawn_chance", b.subsystems.SpawnChance)

	var static, dynamic []host.Object
	for _, obj := range b.world.StaticObjects() {
		if !b.tracker.Has(obj.ID()) {
			static = append(static, obj)
		}
	}
	for _, obj := range b.world.DynamicObjects() {
		if pl, ok := obj.(host.Player); ok && pl.IsPlaceholder() {
			continue
		}
		if !b.tracker.Has(obj.ID()) {
			dynamic = append(dynamic, obj)
		}
	}

	b.work = map[Phase][]host.Object{
		PhaseStatic:     static,
		PhaseAdditional: b.tracker.Objects(),
		PhaseDynamic:    dynamic,
	}
	b.out = map[Phase][]capture.Entity{
		PhaseStatic:     make([]capture.Entity, 0, len(static)),
		PhaseAdditional: make([]capture.Entity, 0, len(b.work[PhaseAdditional])),
		PhaseDynamic:    make([]capture.Entity, 0, len(dynamic)),
	}
	b.pending = snap
	b.onDone = onDone
	b.cursor = 0
	b.phase = PhaseStatic

	slog.DebugContext(ctx, "capture started", "snapshot", id,
		"static", len(static), "additional", len(b.work[PhaseAdditional]), "dynamic", len(dynamic))
	return nil
}

func (b *Builder) saveBlob(ctx context.Context, name string, k host.StateKeeper) Blob {
	blob, err := SaveBlob(k)
	if err != nil {
		slog.WarnContext(ctx, "saving sub-system state", "subsystem", name, "error", err)
		return Blob{}
	}
	return blob
}

// Advance resumes the capture. It returns true on the call that completed
// the snapshot.
func (b *Builder) Advance(ctx context.Context) bool {
	if !b.Busy() {
		return false
	}

	start := b.now()
	for {
		if b.phase == PhaseDone {
			b.finish(ctx)
			return true
		}

		list := b.work[b.phase]
		if b.cursor >= len(list) {
			b.phase++
			b.cursor = 0
			continue
		}

		end := min(b.cursor+b.chunkSize, len(list))
		b.captureChunk(ctx, list[b.cursor:end])
		b.cursor = end

		if b.now().Sub(start) > b.budget {
			return false
		}
	}
}

func (b *Builder) captureChunk(ctx context.Context, objs []host.Object) {
	pop := phasePopulation[b.phase]
	elapsed := b.world.Elapsed()
	for _, obj := range objs {
		if obj.IsRemoved() {
			slog.DebugContext(ctx, "skipping object removed during capture", "id", obj.ID(), "type", obj.TypeName())
			continue
		}
		b.out[b.phase] = append(b.out[b.phase], b.registry.Capture(pop, obj, elapsed))
	}
}

func (b *Builder) finish(ctx context.Context) {
	snap := b.pending
	snap.static = b.out[PhaseStatic]
	snap.additional = b.out[PhaseAdditional]
	snap.dynamic = b.out[PhaseDynamic]
	snap.index()

	onDone := b.onDone
	b.phase = PhaseIdle
	b.cursor = 0
	b.work = nil
	b.out = nil
	b.pending = nil
	b.onDone = nil

	slog.DebugContext(ctx, "capture finished", "snapshot", snap.id, "entities", snap.EntityCount())
	if onDone != nil {
		onDone(snap)
	}
}
