package capture

import (
	"fmt"
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Context carries the state shared by every entity restored in one pass.
type Context struct {
	World host.World
	// Remap accumulates identity changes. Entities restored later in the pass
	// resolve their references through it.
	Remap Remap
	// Elapsed is the simulation clock at the start of the pass.
	Elapsed time.Duration

	excluded []string
}

func (c *Context) isExcluded(e host.Effect) bool {
	return slices.Contains(c.excluded, e.Name())
}

// Restore brings the world's copy of e back to its captured state and returns
// the live object, or nil when the entity could not be brought back.
func (e Entity) Restore(c *Context) (host.Object, error) {
	obj := c.World.ObjectByID(e.OldID)
	if obj != nil && e.valid(obj) {
		e.patchPhysical(obj)
	} else {
		if obj != nil && !obj.IsRemoved() {
			obj.Remove()
		}
		created, err := e.recreate(c)
		if err != nil {
			return nil, err
		}
		if created == nil {
			return nil, nil
		}
		obj = created
		e.patchPhysical(obj)
	}

	e.patchCosmetic(obj)

	if err := e.restorePayload(c, obj); err != nil {
		return obj, fmt.Errorf("restoring %s %s: %w", e.Kind, e.OldID, err)
	}
	return obj, nil
}

func (e Entity) valid(obj host.Object) bool {
	if obj.IsRemoved() {
		return false
	}
	if p, ok := e.Payload.(*PlayerPayload); ok {
		pl, ok := obj.(host.Player)
		if !ok || pl.IsDead() != p.Dead {
			return false
		}
	}
	return true
}

func (e Entity) recreate(c *Context) (host.Object, error) {
	switch p := e.Payload.(type) {
	case *PlayerPayload:
		pl, ok := c.World.CreatePlayer(host.PlayerSpec{
			Name:      e.Name,
			OwnerID:   p.OwnerID,
			Team:      p.Team,
			Transform: e.Transform(),
		})
		if !ok {
			return nil, nil
		}
		return pl, nil
	case *WeaponPayload:
		w, ok := c.World.SpawnWeapon(p.WeaponKind, e.Transform())
		if !ok {
			return nil, nil
		}
		return w, nil
	default:
		obj := c.World.CreateObject(e.TypeName, e.Transform())
		if obj == nil {
			return nil, nil
		}
		return obj, nil
	}
}

func (e Entity) restorePayload(c *Context, obj host.Object) error {
	switch p := e.Payload.(type) {
	case nil:
		return nil
	case *PlayerPayload:
		pl, ok := obj.(host.Player)
		if !ok {
			return ErrKindMismatch
		}
		restorePlayer(c, p, pl)
	case *WeaponPayload:
		w, ok := obj.(host.WeaponItem)
		if !ok {
			return ErrKindMismatch
		}
		restoreWeapon(p, w)
	case *GrenadePayload:
		g, ok := obj.(host.Grenade)
		if !ok {
			return ErrKindMismatch
		}
		restoreGrenade(p, g)
	case *CratePayload:
		cr, ok := obj.(host.Crate)
		if !ok {
			return ErrKindMismatch
		}
		restoreCrate(p, cr)
	case *TriggerPayload:
		return restoreTrigger(c, e.Kind, p, obj)
	case *JointPayload:
		return restoreJoint(c, e.Kind, p, obj)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, p)
	}
	return nil
}
