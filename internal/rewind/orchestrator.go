package rewind

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/snapshot"
)

const requestQueueSize = 16

type deferred struct {
	due  time.Duration
	name string
	run  func(context.Context) error
}

// Orchestrator owns the snapshot history of one world. Every method except
// Enqueue must be called from the goroutine that ticks the world.
type Orchestrator struct {
	world      host.World
	subsystems host.Subsystems
	identity   host.IdentityTracker
	events     Events
	tuning     Tuning

	registry *capture.Registry
	tracker  *snapshot.Tracker
	builder  *snapshot.Builder
	labels   *template.Template

	builderOpts []snapshot.BuilderOpt

	history     []*snapshot.Snapshot
	nextID      uint64
	sinceLast   time.Duration
	lastElapsed time.Duration
	deferred    []deferred
	requests    chan Request
	timeline    string
	initialized bool
}

type OrchestratorOpt func(*Orchestrator)

func WithTuning(t Tuning) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.tuning = t
	}
}

// WithIdentityTracker sets the collaborator told about identity changes.
func WithIdentityTracker(it host.IdentityTracker) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.identity = it
	}
}

func WithEvents(e Events) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.events = e
	}
}

// WithBuilderOpts passes extra options to the snapshot builder, after the
// ones derived from the tuning.
func WithBuilderOpts(opts ...snapshot.BuilderOpt) OrchestratorOpt {
	return func(o *Orchestrator) {
		o.builderOpts = append(o.builderOpts, opts...)
	}
}

func NewOrchestrator(w host.World, subs host.Subsystems, opts ...OrchestratorOpt) (*Orchestrator, error) {
	o := &Orchestrator{
		world:      w,
		subsystems: subs,
		tuning:     DefaultTuning(),
		requests:   make(chan Request, requestQueueSize),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("validating tuning: %w", err)
	}

	tracker, err := snapshot.NewTracker(o.tuning.Allow, o.tuning.Deny)
	if err != nil {
		return nil, fmt.Errorf("creating tracker: %w", err)
	}
	labels, err := parseLabel(o.tuning.ChoiceLabel)
	if err != nil {
		return nil, fmt.Errorf("parsing choice label: %w", err)
	}

	o.tracker = tracker
	o.labels = labels
	o.registry = capture.NewRegistry(capture.WithExcludedEffects(o.tuning.ExcludedEffects))
	o.builder = snapshot.NewBuilder(w, subs, tracker, slices.Concat([]snapshot.BuilderOpt{
		snapshot.WithChunkSize(o.tuning.ChunkSize),
		snapshot.WithBudget(o.tuning.TickBudget),
		snapshot.WithRegistry(o.registry),
	}, o.builderOpts)...)

	return o, nil
}

// Initialize subscribes to the world's notifications and starts a fresh
// timeline.
func (o *Orchestrator) Initialize(ctx context.Context) {
	o.tracker.Attach(o.world)
	o.lastElapsed = o.world.Elapsed()
	o.resetTimeline()
	o.initialized = true
	slog.InfoContext(ctx, "rewind initialized", "timeline", o.timeline, "tracked", o.tracker.Len())
}

func (o *Orchestrator) Close() {
	o.tracker.Detach()
	o.initialized = false
}

// Timeline identifies the current run of snapshots. It changes whenever the
// history is reset.
func (o *Orchestrator) Timeline() string {
	return o.timeline
}

// CanRevert reports whether Restore may run now.
func (o *Orchestrator) CanRevert() bool {
	return len(o.history) > 0 && !o.builder.Busy() && !o.world.GameOver()
}

func (o *Orchestrator) SnapshotCount() int {
	return len(o.history)
}

// Snapshots returns the retained snapshots, oldest first.
func (o *Orchestrator) Snapshots() []*snapshot.Snapshot {
	return slices.Clone(o.history)
}

// Busy reports whether a capture is in flight.
func (o *Orchestrator) Busy() bool {
	return o.builder.Busy()
}

// TakeSnapshot starts a capture. It completes over the following ticks.
func (o *Orchestrator) TakeSnapshot(ctx context.Context) error {
	id := o.nextID + 1
	if err := o.builder.Begin(ctx, id, func(s *snapshot.Snapshot) { o.store(ctx, s) }); err != nil {
		return fmt.Errorf("starting snapshot %d: %w", id, err)
	}
	o.nextID = id
	return nil
}

func (o *Orchestrator) store(ctx context.Context, s *snapshot.Snapshot) {
	var evicted []uint64
	for len(o.history) >= o.tuning.Capacity {
		evicted = append(evicted, o.history[0].ID())
		o.history = slices.Delete(o.history, 0, 1)
	}
	o.history = append(o.history, s)

	slog.InfoContext(ctx, "snapshot stored", "snapshot", s.ID(), "entities", s.EntityCount(), "retained", len(o.history), "evicted", evicted)

	info := infoOf(s)
	o.publish(ctx, Event{
		Type:     EventSnapshotStored,
		Timeline: o.timeline,
		Snapshot: &info,
		Evicted:  evicted,
	})
}

func (o *Orchestrator) find(id uint64) *snapshot.Snapshot {
	for _, s := range o.history {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// Tick runs queued requests and due deferred actions, then either advances
// the capture in flight or starts a periodic one.
func (o *Orchestrator) Tick(ctx context.Context) error {
	if !o.initialized {
		return nil
	}

	o.drainRequests(ctx)
	o.runDeferred(ctx)

	now := o.world.Elapsed()
	delta := now - o.lastElapsed
	o.lastElapsed = now
	if delta > 0 && !o.world.GameOver() {
		o.sinceLast += delta
	}

	if o.builder.Busy() {
		o.builder.Advance(ctx)
		return nil
	}

	if o.sinceLast >= o.tuning.Period {
		o.sinceLast = 0
		if err := o.TakeSnapshot(ctx); err != nil {
			return fmt.Errorf("periodic snapshot: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) after(delay time.Duration, name string, run func(context.Context) error) {
	o.deferred = append(o.deferred, deferred{
		due:  o.world.Elapsed() + delay,
		name: name,
		run:  run,
	})
}

func (o *Orchestrator) runDeferred(ctx context.Context) {
	if len(o.deferred) == 0 {
		return
	}
	now := o.world.Elapsed()
	var due []deferred
	o.deferred = slices.DeleteFunc(o.deferred, func(d deferred) bool {
		if d.due <= now {
			due = append(due, d)
			return true
		}
		return false
	})
	for _, d := range due {
		if err := d.run(ctx); err != nil {
			slog.WarnContext(ctx, "deferred action failed", "action", d.name, "error", err)
		}
	}
}

func (o *Orchestrator) resetTimeline() {
	o.history = nil
	o.sinceLast = 0
	o.timeline = uuid.New().String()
}

func (o *Orchestrator) publish(ctx context.Context, ev Event) {
	if o.events == nil {
		return
	}
	if err := o.events.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "publishing rewind event", "type", ev.Type, "error", err)
	}
}

func infoOf(s *snapshot.Snapshot) Info {
	return Info{
		ID:         s.ID(),
		Elapsed:    s.Elapsed(),
		CapturedAt: s.CapturedAt(),
		Entities:   s.EntityCount(),
	}
}
