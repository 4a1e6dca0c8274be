package host

import (
	"context"
	"time"
)

// World is the host simulation as seen from the tick goroutine.
type World interface {
	// StaticObjects returns static scenery, triggers and joints included.
	StaticObjects() []Object
	// DynamicObjects returns every dynamic body, players included.
	DynamicObjects() []Object
	// AllObjects returns every live object, static and dynamic, in creation order.
	AllObjects() []Object
	ObjectByID(ID) Object

	Projectiles() []Projectile
	ProjectileByID(ID) Projectile
	FireNodes() []FireNode

	// OnCreated and OnDestroyed register notification callbacks. The returned
	// function removes the registration.
	OnCreated(func([]Object)) (unsubscribe func())
	OnDestroyed(func([]ID)) (unsubscribe func())

	// CreateObject creates an object of the given host type name. It returns
	// nil when the type cannot be created.
	CreateObject(typeName string, t Transform) Object
	// CreatePlayer returns false when the owner is no longer connected.
	CreatePlayer(PlayerSpec) (Player, bool)
	SpawnWeapon(kind string, t Transform) (WeaponItem, bool)
	SpawnProjectile(ProjectileSpec) Projectile
	SpawnFire(FireSpec) FireNode
	ClearFire()
	SetTimeScale(float64)

	// Elapsed is the simulation clock.
	Elapsed() time.Duration
	GameOver() bool
	// CreationFailedName is the name the host gives to a placeholder object
	// produced when creation of the requested type failed.
	CreationFailedName() string
}

// StateKeeper is a sibling subsystem whose state is captured as an opaque blob.
type StateKeeper interface {
	SaveState() ([]byte, error)
	LoadState([]byte) error
}

// Subsystems groups the opaque sub-system state owners.
type Subsystems struct {
	Magic       StateKeeper
	Entities    StateKeeper
	SpawnChance StateKeeper
}

// IdentityTracker is told about identities that changed during a restore.
type IdentityTracker interface {
	Remap(ctx context.Context, remap map[ID]ID) error
}
