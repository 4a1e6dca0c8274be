// Package sandbox is an in-memory host world. It backs the service binary's
// demo scenario and every test that needs a live world.
package sandbox

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

const (
	CreationFailedName = "CreationFailed"
	DefaultStep        = 50 * time.Millisecond
	DefaultWeaponAmmo  = 12
)

type kindDef struct {
	static bool
	make   func(o *object) node
}

func plain(o *object) node { return o }

var kinds = map[string]kindDef{
	"Wall":   {static: true, make: plain},
	"Floor":  {static: true, make: plain},
	"Box":    {make: plain},
	"Barrel": {make: func(o *object) node {
		o.destructible = true
		o.health = 100
		return o
	}},

	"Grenade": {make: func(o *object) node { return &grenade{object: o, fuse: 3 * time.Second} }},
	"Crate":   {make: func(o *object) node { return &crate{object: o} }},

	"Trigger":     {static: true, make: func(o *object) node { return &trigger{object: o, enabled: true} }},
	"AreaTrigger": {static: true, make: func(o *object) node { return &trigger{object: o, enabled: true} }},
	"TimerTrigger": {static: true, make: func(o *object) node {
		return &timerTrigger{trigger: &trigger{object: o, enabled: true}}
	}},
	"DestroyTargetsTrigger": {static: true, make: func(o *object) node {
		return &destroyTrigger{trigger: &trigger{object: o, enabled: true}}
	}},
	"OnDestroyedTrigger": {static: true, make: func(o *object) node {
		return &onDestroyedTrigger{trigger: &trigger{object: o, enabled: true}}
	}},
	"ChangeBodyTypeTrigger": {static: true, make: func(o *object) node {
		return &bodyTypeTrigger{trigger: &trigger{object: o, enabled: true}}
	}},

	"PathJoint":         {static: true, make: plain},
	"PullJoint":         {static: true, make: plain},
	"WeldJoint":         {static: true, make: func(o *object) node { return &weldJoint{object: o} }},
	"TargetObjectJoint": {static: true, make: func(o *object) node { return &targetJoint{object: o} }},
	"DistanceJoint":     {static: true, make: func(o *object) node { return &distanceJoint{object: o} }},
	"ElevatorAttachmentJoint": {static: true, make: func(o *object) node {
		return &elevatorJoint{targetJoint: &targetJoint{object: o}}
	}},
	"RailAttachmentJoint": {static: true, make: func(o *object) node {
		return &railJoint{targetJoint: &targetJoint{object: o}}
	}},
}

const (
	playerType = "Player"
	weaponType = "WeaponItem"
)

// World is a single-goroutine host world. It counts every setter call so
// callers can check that a second restore writes nothing.
type World struct {
	step        time.Duration
	elapsed     time.Duration
	timeScale   float64
	gameOver    bool
	writes      int
	nextID      host.ID
	uncreatable map[string]bool
	offline     map[int]bool

	order       []host.ID
	objects     map[host.ID]node
	projectiles []*projectile
	fires       []*fire

	nextSub     int
	onCreated   map[int]func([]host.Object)
	onDestroyed map[int]func([]host.ID)
}

type WorldOpt func(*World)

// WithStep sets how much simulation time one Tick advances.
func WithStep(d time.Duration) WorldOpt {
	return func(w *World) {
		w.step = d
	}
}

// WithUncreatable makes CreateObject return a creation-failure placeholder
// for the given type names.
func WithUncreatable(typeNames ...string) WorldOpt {
	return func(w *World) {
		for _, n := range typeNames {
			w.uncreatable[n] = true
		}
	}
}

func NewWorld(opts ...WorldOpt) *World {
	w := &World{
		step:        DefaultStep,
		timeScale:   1,
		uncreatable: map[string]bool{},
		offline:     map[int]bool{},
		objects:     map[host.ID]node{},
		onCreated:   map[int]func([]host.Object){},
		onDestroyed: map[int]func([]host.ID){},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Tick advances the simulation by one step.
func (w *World) Tick(context.Context) error {
	w.Advance(w.step)
	return nil
}

// Advance moves the clock by d scaled by the time scale and integrates the
// velocity of dynamic bodies and projectiles.
func (w *World) Advance(d time.Duration) {
	if w.gameOver {
		return
	}
	dt := time.Duration(float64(d) * w.timeScale)
	w.elapsed += dt
	secs := dt.Seconds()
	for _, id := range w.order {
		o := w.objects[id].base()
		if o.static || o.body != host.BodyDynamic {
			continue
		}
		o.pos.X += o.vel.X * secs
		o.pos.Y += o.vel.Y * secs
	}
	for _, p := range w.projectiles {
		p.pos.X += p.vel.X * secs
		p.pos.Y += p.vel.Y * secs
	}
}

func (w *World) StaticObjects() []host.Object {
	return w.filter(func(o *object) bool { return o.static })
}

func (w *World) DynamicObjects() []host.Object {
	return w.filter(func(o *object) bool { return !o.static })
}

func (w *World) AllObjects() []host.Object {
	return w.filter(func(*object) bool { return true })
}

func (w *World) filter(keep func(*object) bool) []host.Object {
	var out []host.Object
	for _, id := range w.order {
		n := w.objects[id]
		if keep(n.base()) {
			out = append(out, n)
		}
	}
	return out
}

func (w *World) ObjectByID(id host.ID) host.Object {
	n, ok := w.objects[id]
	if !ok {
		return nil
	}
	return n
}

func (w *World) Projectiles() []host.Projectile {
	w.projectiles = slices.DeleteFunc(w.projectiles, func(p *projectile) bool { return p.removed })
	out := make([]host.Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		out = append(out, p)
	}
	return out
}

func (w *World) ProjectileByID(id host.ID) host.Projectile {
	for _, p := range w.projectiles {
		if p.id == id && !p.removed {
			return p
		}
	}
	return nil
}

func (w *World) FireNodes() []host.FireNode {
	out := make([]host.FireNode, 0, len(w.fires))
	for _, f := range w.fires {
		out = append(out, f)
	}
	return out
}

func (w *World) OnCreated(fn func([]host.Object)) func() {
	id := w.nextSub
	w.nextSub++
	w.onCreated[id] = fn
	return func() { delete(w.onCreated, id) }
}

func (w *World) OnDestroyed(fn func([]host.ID)) func() {
	id := w.nextSub
	w.nextSub++
	w.onDestroyed[id] = fn
	return func() { delete(w.onDestroyed, id) }
}

// Subscribers is the number of live notification registrations.
func (w *World) Subscribers() int {
	return len(w.onCreated) + len(w.onDestroyed)
}

// SetUncreatable switches creation failure on for the given type names.
func (w *World) SetUncreatable(typeNames ...string) {
	for _, n := range typeNames {
		w.uncreatable[n] = true
	}
}

func (w *World) CreateObject(typeName string, t host.Transform) host.Object {
	if w.uncreatable[typeName] {
		o := w.newObject(typeName, t, false)
		o.name = CreationFailedName
		return w.add(o)
	}
	def, ok := kinds[typeName]
	if !ok {
		return nil
	}
	return w.add(def.make(w.newObject(typeName, t, def.static)))
}

func (w *World) CreatePlayer(spec host.PlayerSpec) (host.Player, bool) {
	if w.offline[spec.OwnerID] {
		return nil, false
	}
	o := w.newObject(playerType, spec.Transform, false)
	o.name = spec.Name
	o.body = host.BodyDynamic
	p := &player{object: o, owner: spec.OwnerID, team: spec.Team, corpse: 100}
	w.add(p)
	return p, true
}

// AddPlaceholder creates an internal placeholder player.
func (w *World) AddPlaceholder() host.Player {
	o := w.newObject(playerType, host.Transform{}, false)
	p := &player{object: o, placeholder: true}
	w.add(p)
	return p
}

func (w *World) SpawnWeapon(kind string, t host.Transform) (host.WeaponItem, bool) {
	if kind == "" {
		return nil, false
	}
	o := w.newObject(weaponType, t, false)
	o.name = kind
	o.body = host.BodyDynamic
	wp := &weapon{object: o, kind: kind, ammo: DefaultWeaponAmmo, durability: 1}
	w.add(wp)
	return wp, true
}

func (w *World) SpawnProjectile(spec host.ProjectileSpec) host.Projectile {
	p := &projectile{
		w:        w,
		id:       w.allocID(),
		typ:      spec.TypeName,
		pos:      spec.Position,
		vel:      spec.Velocity,
		dir:      spec.Direction,
		bounces:  spec.BounceCount,
		flags:    spec.PowerupFlags,
		damage:   spec.DamageModifier,
		powerups: host.ClonePowerups(spec.Powerups),
	}
	w.projectiles = append(w.projectiles, p)
	return p
}

func (w *World) SpawnFire(spec host.FireSpec) host.FireNode {
	f := &fire{id: w.allocID(), typ: spec.TypeName, pos: spec.Position, vel: spec.Velocity}
	w.fires = append(w.fires, f)
	return f
}

func (w *World) ClearFire() {
	w.fires = nil
}

func (w *World) SetTimeScale(s float64) {
	w.timeScale = s
}

func (w *World) TimeScale() float64 {
	return w.timeScale
}

func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

func (w *World) GameOver() bool {
	return w.gameOver
}

func (w *World) SetGameOver(over bool) {
	w.gameOver = over
}

func (w *World) CreationFailedName() string {
	return CreationFailedName
}

// Disconnect makes CreatePlayer fail for owner.
func (w *World) Disconnect(owner int) {
	w.offline[owner] = true
}

// SetAmmo changes a weapon's ammo as an owning player would.
func (w *World) SetAmmo(id host.ID, ammo int) bool {
	wp, ok := w.objects[id].(*weapon)
	if !ok {
		return false
	}
	wp.ammo = ammo
	return true
}

// Writes is the number of setter calls since the last ResetWrites.
func (w *World) Writes() int {
	return w.writes
}

func (w *World) ResetWrites() {
	w.writes = 0
}

func (w *World) newObject(typeName string, t host.Transform, static bool) *object {
	o := &object{
		w:        w,
		id:       w.allocID(),
		typeName: typeName,
		name:     typeName,
		static:   static,
		pos:      t.Position,
		angle:    t.Angle,
		dir:      t.Direction,
	}
	if static {
		o.body = host.BodyStatic
	} else {
		o.body = host.BodyDynamic
	}
	return o
}

func (w *World) allocID() host.ID {
	w.nextID++
	return w.nextID
}

func (w *World) add(n node) host.Object {
	id := n.ID()
	w.objects[id] = n
	w.order = append(w.order, id)
	objs := []host.Object{n}
	for _, k := range slices.Sorted(maps.Keys(w.onCreated)) {
		w.onCreated[k](objs)
	}
	return n
}

func (w *World) forget(id host.ID) {
	delete(w.objects, id)
	w.order = slices.DeleteFunc(w.order, func(o host.ID) bool { return o == id })
	ids := []host.ID{id}
	for _, k := range slices.Sorted(maps.Keys(w.onDestroyed)) {
		w.onDestroyed[k](ids)
	}
}
