package capture

import (
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Population is the work list an object was taken from.
type Population int

const (
	PopulationStatic Population = iota
	PopulationAdditional
	PopulationDynamic
)

// DefaultExcludedEffects are effects never carried across a restore: the
// effect that lets a player trigger the rewind itself.
var DefaultExcludedEffects = []string{"time-revert"}

type probe struct {
	kind  Kind
	match func(host.Object) bool
}

func is[T any](obj host.Object) bool {
	_, ok := obj.(T)
	return ok
}

// Probes run in order; the first match wins, so more specific capabilities
// come first.
var probes = map[Population][]probe{
	PopulationDynamic: {
		{KindPlayer, is[host.Player]},
		{KindWeapon, is[host.WeaponItem]},
		{KindGrenade, is[host.Grenade]},
		{KindCrate, is[host.Crate]},
	},
	PopulationAdditional: {
		{KindTimerTrigger, is[host.TimerTrigger]},
		{KindDestroyTargetsTrigger, is[host.DestroyTargetsTrigger]},
		{KindOnDestroyedTrigger, is[host.OnDestroyedTrigger]},
		{KindChangeBodyTypeTrigger, is[host.ChangeBodyTypeTrigger]},
		{KindTrigger, is[host.Trigger]},
		{KindElevatorJoint, is[host.ElevatorAttachmentJoint]},
		{KindRailJoint, is[host.RailAttachmentJoint]},
		{KindDistanceJoint, is[host.DistanceJoint]},
		{KindTargetObjectJoint, is[host.TargetObjectJoint]},
		{KindWeldJoint, is[host.WeldJoint]},
	},
}

var fallback = map[Population]Kind{
	PopulationStatic:     KindStatic,
	PopulationAdditional: KindStatic,
	PopulationDynamic:    KindDynamic,
}

type factory func(r *Registry, obj host.Object, elapsed time.Duration) Payload

var factories = map[Kind]factory{
	KindPlayer:                capturePlayer,
	KindWeapon:                captureWeapon,
	KindGrenade:               captureGrenade,
	KindCrate:                 captureCrate,
	KindTrigger:               captureTrigger,
	KindTimerTrigger:          captureTrigger,
	KindDestroyTargetsTrigger: captureTrigger,
	KindOnDestroyedTrigger:    captureTrigger,
	KindChangeBodyTypeTrigger: captureTrigger,
	KindWeldJoint:             captureJoint,
	KindTargetObjectJoint:     captureJoint,
	KindDistanceJoint:         captureJoint,
	KindElevatorJoint:         captureJoint,
	KindRailJoint:             captureJoint,
}

// Registry selects and runs capture variants.
type Registry struct {
	excluded []string
}

type RegistryOpt func(*Registry)

// WithExcludedEffects replaces the effect names dropped from captured players.
func WithExcludedEffects(names []string) RegistryOpt {
	return func(r *Registry) {
		r.excluded = slices.Clone(names)
	}
}

func NewRegistry(opts ...RegistryOpt) *Registry {
	r := &Registry{excluded: slices.Clone(DefaultExcludedEffects)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify returns the capture variant for obj within the given population.
func (r *Registry) Classify(pop Population, obj host.Object) Kind {
	for _, p := range probes[pop] {
		if p.match(obj) {
			return p.kind
		}
	}
	return fallback[pop]
}

// Capture reads obj into an Entity. elapsed is the simulation clock of the
// capture.
func (r *Registry) Capture(pop Population, obj host.Object, elapsed time.Duration) Entity {
	kind := r.Classify(pop, obj)
	e := Entity{
		OldID:      obj.ID(),
		Name:       obj.Name(),
		TypeName:   obj.TypeName(),
		Kind:       kind,
		CapturedAt: elapsed,
		Common:     captureCommon(obj),
	}
	if f, ok := factories[kind]; ok {
		e.Payload = f(r, obj, elapsed)
	}
	return e
}

// RestoreContext starts a restore pass against w with an empty remap table.
func (r *Registry) RestoreContext(w host.World) *Context {
	return &Context{
		World:    w,
		Remap:    Remap{},
		Elapsed:  w.Elapsed(),
		excluded: r.excluded,
	}
}

func (r *Registry) isExcluded(e host.Effect) bool {
	return slices.Contains(r.excluded, e.Name())
}
