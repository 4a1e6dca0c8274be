package capture

import (
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Common holds the physical and cosmetic fields shared by every kind.
type Common struct {
	Position        host.Vec2
	Direction       int
	Angle           float64
	LinearVelocity  host.Vec2
	AngularVelocity float64

	BodyType        host.BodyType
	CustomID        string
	Burning         bool
	Destructible    bool
	Health          float64
	MissileTracking bool
	Sticky          bool
}

// Entity is one captured object. It is a value: nothing in it refers to a
// live host object, only to identities resolved at restore time.
type Entity struct {
	OldID    host.ID
	Name     string
	TypeName string
	Kind     Kind
	// CapturedAt is the simulation clock when the entity was read.
	CapturedAt time.Duration

	Common  Common
	Payload Payload
}

// Transform returns the placement used when the entity has to be re-created.
func (e Entity) Transform() host.Transform {
	return host.Transform{
		Position:  e.Common.Position,
		Angle:     e.Common.Angle,
		Direction: e.Common.Direction,
	}
}

func captureCommon(obj host.Object) Common {
	return Common{
		Position:        obj.Position(),
		Direction:       obj.Direction(),
		Angle:           obj.Angle(),
		LinearVelocity:  obj.LinearVelocity(),
		AngularVelocity: obj.AngularVelocity(),
		BodyType:        obj.BodyType(),
		CustomID:        obj.CustomID(),
		Burning:         obj.IsBurning(),
		Destructible:    obj.Destructible(),
		Health:          obj.Health(),
		MissileTracking: obj.MissileTracking(),
		Sticky:          obj.Sticky(),
	}
}

// patch calls set only when want differs from cur.
func patch[T comparable](cur, want T, set func(T)) {
	if cur != want {
		set(want)
	}
}

func (e Entity) patchPhysical(obj host.Object) {
	c := e.Common
	patch(obj.Position(), c.Position, obj.SetPosition)
	patch(obj.Angle(), c.Angle, obj.SetAngle)
	patch(obj.Direction(), c.Direction, obj.SetDirection)
	patch(obj.LinearVelocity(), c.LinearVelocity, obj.SetLinearVelocity)
	patch(obj.AngularVelocity(), c.AngularVelocity, obj.SetAngularVelocity)
}

func (e Entity) patchCosmetic(obj host.Object) {
	c := e.Common
	patch(obj.CustomID(), c.CustomID, obj.SetCustomID)
	patch(obj.IsBurning(), c.Burning, obj.SetBurning)
	patch(obj.BodyType(), c.BodyType, obj.SetBodyType)
	if c.Destructible {
		patch(obj.Health(), c.Health, obj.SetHealth)
	}
	// Thrown grenades always track missiles regardless of what was read.
	patch(obj.MissileTracking(), c.MissileTracking || e.Kind == KindGrenade, obj.SetMissileTracking)
	patch(obj.Sticky(), c.Sticky, obj.SetSticky)
}
