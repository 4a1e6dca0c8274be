package capture

import (
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

func captureTrigger(_ *Registry, obj host.Object, _ time.Duration) Payload {
	t := obj.(host.Trigger)
	p := &TriggerPayload{
		Enabled: t.Enabled(),
		Targets: slices.Clone(t.Targets()),
	}
	switch tt := obj.(type) {
	case host.TimerTrigger:
		p.Timer = &TimerParams{
			Interval: tt.Interval(),
			Repeat:   tt.Repeat(),
			Running:  tt.Running(),
		}
	case host.DestroyTargetsTrigger:
		p.Destroy = &DestroyParams{
			TriggerCount: tt.TriggerCount(),
			Delay:        tt.Delay(),
		}
	case host.OnDestroyedTrigger:
		p.OnDestroyed = &OnDestroyedParams{DestroyedCount: tt.DestroyedCount()}
	case host.ChangeBodyTypeTrigger:
		bt := tt.TargetBodyType()
		p.BodyType = &bt
	}
	return p
}

func restoreTrigger(c *Context, kind Kind, p *TriggerPayload, obj host.Object) error {
	t, ok := obj.(host.Trigger)
	if !ok {
		return ErrKindMismatch
	}
	patch(t.Enabled(), p.Enabled, t.SetEnabled)
	if want := c.Remap.ResolveAll(p.Targets); !host.EqualIDs(t.Targets(), want) {
		t.SetTargets(want)
	}

	switch kind {
	case KindTimerTrigger:
		tt, ok := obj.(host.TimerTrigger)
		if !ok || p.Timer == nil {
			return ErrKindMismatch
		}
		patch(tt.Interval(), p.Timer.Interval, tt.SetInterval)
		patch(tt.Repeat(), p.Timer.Repeat, tt.SetRepeat)
		patch(tt.Running(), p.Timer.Running, tt.SetRunning)
	case KindDestroyTargetsTrigger:
		dt, ok := obj.(host.DestroyTargetsTrigger)
		if !ok || p.Destroy == nil {
			return ErrKindMismatch
		}
		patch(dt.TriggerCount(), p.Destroy.TriggerCount, dt.SetTriggerCount)
		patch(dt.Delay(), p.Destroy.Delay, dt.SetDelay)
	case KindOnDestroyedTrigger:
		ot, ok := obj.(host.OnDestroyedTrigger)
		if !ok || p.OnDestroyed == nil {
			return ErrKindMismatch
		}
		patch(ot.DestroyedCount(), p.OnDestroyed.DestroyedCount, ot.SetDestroyedCount)
	case KindChangeBodyTypeTrigger:
		bt, ok := obj.(host.ChangeBodyTypeTrigger)
		if !ok || p.BodyType == nil {
			return ErrKindMismatch
		}
		patch(bt.TargetBodyType(), *p.BodyType, bt.SetTargetBodyType)
	}
	return nil
}

func captureJoint(_ *Registry, obj host.Object, elapsed time.Duration) Payload {
	p := &JointPayload{}
	switch j := obj.(type) {
	case host.ElevatorAttachmentJoint:
		p.TargetObject = j.TargetObject()
		p.PathJoint = j.PathJoint()
		p.Motor = j.Motor()
		p.ArrivalIn = j.ArrivalAt() - elapsed
	case host.RailAttachmentJoint:
		p.TargetObject = j.TargetObject()
		p.RailJoint = j.RailJoint()
		p.Motor = j.Motor()
	case host.DistanceJoint:
		p.TargetObject = j.TargetObject()
		p.TargetJoint = j.TargetJoint()
		p.Length = j.Length()
	case host.TargetObjectJoint:
		p.TargetObject = j.TargetObject()
		p.Motor = j.Motor()
	case host.WeldJoint:
		p.Welded = slices.Clone(j.Welded())
	}
	return p
}

func restoreJoint(c *Context, kind Kind, p *JointPayload, obj host.Object) error {
	rm := c.Remap
	switch kind {
	case KindWeldJoint:
		j, ok := obj.(host.WeldJoint)
		if !ok {
			return ErrKindMismatch
		}
		if want := rm.ResolveAll(p.Welded); !host.EqualIDs(j.Welded(), want) {
			j.SetWelded(want)
		}
	case KindTargetObjectJoint:
		j, ok := obj.(host.TargetObjectJoint)
		if !ok {
			return ErrKindMismatch
		}
		patch(j.TargetObject(), rm.Resolve(p.TargetObject), j.SetTargetObject)
		patch(j.Motor(), p.Motor, j.SetMotor)
	case KindDistanceJoint:
		j, ok := obj.(host.DistanceJoint)
		if !ok {
			return ErrKindMismatch
		}
		patch(j.TargetObject(), rm.Resolve(p.TargetObject), j.SetTargetObject)
		patch(j.TargetJoint(), rm.Resolve(p.TargetJoint), j.SetTargetJoint)
		patch(j.Length(), p.Length, j.SetLength)
	case KindElevatorJoint:
		j, ok := obj.(host.ElevatorAttachmentJoint)
		if !ok {
			return ErrKindMismatch
		}
		patch(j.TargetObject(), rm.Resolve(p.TargetObject), j.SetTargetObject)
		patch(j.PathJoint(), rm.Resolve(p.PathJoint), j.SetPathJoint)
		patch(j.Motor(), p.Motor, j.SetMotor)
		// Rebase the arrival on the current clock so an elevator in flight
		// keeps moving instead of jumping to where the old timestamp puts it.
		patch(j.ArrivalAt(), c.Elapsed+p.ArrivalIn, j.SetArrivalAt)
	case KindRailJoint:
		j, ok := obj.(host.RailAttachmentJoint)
		if !ok {
			return ErrKindMismatch
		}
		patch(j.TargetObject(), rm.Resolve(p.TargetObject), j.SetTargetObject)
		patch(j.RailJoint(), rm.Resolve(p.RailJoint), j.SetRailJoint)
		patch(j.Motor(), p.Motor, j.SetMotor)
	default:
		return ErrUnknownKind
	}
	return nil
}
