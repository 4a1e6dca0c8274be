package host

import "time"

// Object is the read/write surface every live host object exposes.
// Setters are expected to notify the host of a change, so callers should
// only write values that actually differ.
type Object interface {
	ID() ID
	TypeName() string
	Name() string

	// IsRemoved reports whether the object was destroyed. A removed object
	// may still be reachable through stale references.
	IsRemoved() bool
	Remove()

	Position() Vec2
	SetPosition(Vec2)
	Angle() float64
	SetAngle(float64)
	Direction() int
	SetDirection(int)
	LinearVelocity() Vec2
	SetLinearVelocity(Vec2)
	AngularVelocity() float64
	SetAngularVelocity(float64)

	BodyType() BodyType
	SetBodyType(BodyType)
	CustomID() string
	SetCustomID(string)
	IsBurning() bool
	SetBurning(bool)
	Destructible() bool
	Health() float64
	SetHealth(float64)
	MissileTracking() bool
	SetMissileTracking(bool)
	Sticky() bool
	SetSticky(bool)
}

// Player is a fighter, human or bot.
type Player interface {
	Object

	IsDead() bool
	Kill()
	// IsPlaceholder reports a fake player the host uses internally; these are
	// never captured.
	IsPlaceholder() bool
	OwnerID() int
	Team() int

	Loadout() Loadout
	SetLoadout(Loadout)
	Effects() []Effect
	ApplyEffect(Effect)
	Boosts() Boosts
	SetBoosts(Boosts)
	CorpseHealth() float64
	SetCorpseHealth(float64)
}

// WeaponItem is a weapon lying in the world waiting to be picked up.
type WeaponItem interface {
	Object

	WeaponKind() string
	// Ammo is read-only: the host only changes it through an owning player.
	Ammo() int
	Durability() float64
	SetDurability(float64)
	DespawnTimer() time.Duration
	SetDespawnTimer(time.Duration)
	BreakOnDrop() bool
	SetBreakOnDrop(bool)
	IsMissile() bool
	SetMissile(bool)
	Powerups() []Powerup
	SetPowerups([]Powerup)
}

// Grenade is a thrown, live explosive.
type Grenade interface {
	Object

	DudChance() float64
	SetDudChance(float64)
	FuseRemaining() time.Duration
	SetFuseRemaining(time.Duration)
	Powerups() []Powerup
	SetPowerups([]Powerup)
}

// Crate is a supply crate holding weapons.
type Crate interface {
	Object

	Contents() []string
	SetContents([]string)
	Category() string
	SetCategory(string)
	// IsSpecial marks a one-of-a-kind reward crate.
	IsSpecial() bool
	// MarkRemoved tags the crate so its removal does not hand out the reward.
	MarkRemoved()
}

// Trigger is a scripted map trigger referencing other objects.
type Trigger interface {
	Object

	Enabled() bool
	SetEnabled(bool)
	Targets() []ID
	SetTargets([]ID)
}

// TimerTrigger fires its targets on an interval.
type TimerTrigger interface {
	Trigger

	Interval() time.Duration
	SetInterval(time.Duration)
	Repeat() int
	SetRepeat(int)
	Running() bool
	SetRunning(bool)
}

// DestroyTargetsTrigger destroys its targets when activated.
type DestroyTargetsTrigger interface {
	Trigger

	TriggerCount() int
	SetTriggerCount(int)
	Delay() time.Duration
	SetDelay(time.Duration)
}

// OnDestroyedTrigger fires when its targets are destroyed.
type OnDestroyedTrigger interface {
	Trigger

	DestroyedCount() int
	SetDestroyedCount(int)
}

// ChangeBodyTypeTrigger switches the body type of its targets.
type ChangeBodyTypeTrigger interface {
	Trigger

	TargetBodyType() BodyType
	SetTargetBodyType(BodyType)
}

// WeldJoint welds a set of objects together.
type WeldJoint interface {
	Object

	Welded() []ID
	SetWelded([]ID)
}

// TargetObjectJoint binds a single object to the joint.
type TargetObjectJoint interface {
	Object

	TargetObject() ID
	SetTargetObject(ID)
	Motor() Motor
	SetMotor(Motor)
}

// DistanceJoint keeps an object at a fixed length from another joint.
type DistanceJoint interface {
	Object

	TargetObject() ID
	SetTargetObject(ID)
	TargetJoint() ID
	SetTargetJoint(ID)
	Length() float64
	SetLength(float64)
}

// ElevatorAttachmentJoint carries an object along an elevator path.
type ElevatorAttachmentJoint interface {
	Object

	TargetObject() ID
	SetTargetObject(ID)
	PathJoint() ID
	SetPathJoint(ID)
	Motor() Motor
	SetMotor(Motor)
	// ArrivalAt is the elapsed simulation time at which the elevator reaches
	// its next path node.
	ArrivalAt() time.Duration
	SetArrivalAt(time.Duration)
}

// RailAttachmentJoint slides an object along a rail.
type RailAttachmentJoint interface {
	Object

	TargetObject() ID
	SetTargetObject(ID)
	RailJoint() ID
	SetRailJoint(ID)
	Motor() Motor
	SetMotor(Motor)
}

// Projectile is a short-lived bullet or missile.
type Projectile interface {
	ID() ID
	TypeName() string
	IsRemoved() bool
	Remove()

	Position() Vec2
	SetPosition(Vec2)
	Velocity() Vec2
	SetVelocity(Vec2)
	Direction() Vec2
	SetDirection(Vec2)
	BounceCount() int
	SetBounceCount(int)
	PowerupFlags() uint32
	SetPowerupFlags(uint32)
	DamageModifier() float64
	SetDamageModifier(float64)
	Powerups() []Powerup
	SetPowerups([]Powerup)
}

// FireNode is a burning patch. The host can only spawn fire or clear all of it.
type FireNode interface {
	ID() ID
	TypeName() string
	Position() Vec2
	Velocity() Vec2
}
