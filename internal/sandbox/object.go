package sandbox

import (
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

type node interface {
	host.Object
	base() *object
}

// object is the state every sandbox object carries. Setters count a write
// on the owning world.
type object struct {
	w        *World
	id       host.ID
	typeName string
	name     string
	static   bool
	removed  bool

	pos    host.Vec2
	angle  float64
	dir    int
	vel    host.Vec2
	angVel float64

	body         host.BodyType
	customID     string
	burning      bool
	destructible bool
	health       float64
	missile      bool
	sticky       bool
}

func set[T any](w *World, field *T, v T) {
	*field = v
	w.writes++
}

func (o *object) base() *object { return o }

func (o *object) ID() host.ID      { return o.id }
func (o *object) TypeName() string { return o.typeName }
func (o *object) Name() string     { return o.name }
func (o *object) IsRemoved() bool  { return o.removed }

func (o *object) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	o.w.forget(o.id)
}

func (o *object) Position() host.Vec2           { return o.pos }
func (o *object) SetPosition(v host.Vec2)       { set(o.w, &o.pos, v) }
func (o *object) Angle() float64                { return o.angle }
func (o *object) SetAngle(v float64)            { set(o.w, &o.angle, v) }
func (o *object) Direction() int                { return o.dir }
func (o *object) SetDirection(v int)            { set(o.w, &o.dir, v) }
func (o *object) LinearVelocity() host.Vec2     { return o.vel }
func (o *object) SetLinearVelocity(v host.Vec2) { set(o.w, &o.vel, v) }
func (o *object) AngularVelocity() float64      { return o.angVel }
func (o *object) SetAngularVelocity(v float64)  { set(o.w, &o.angVel, v) }

func (o *object) BodyType() host.BodyType     { return o.body }
func (o *object) SetBodyType(v host.BodyType) { set(o.w, &o.body, v) }
func (o *object) CustomID() string            { return o.customID }
func (o *object) SetCustomID(v string)        { set(o.w, &o.customID, v) }
func (o *object) IsBurning() bool             { return o.burning }
func (o *object) SetBurning(v bool)           { set(o.w, &o.burning, v) }
func (o *object) Destructible() bool          { return o.destructible }
func (o *object) Health() float64             { return o.health }
func (o *object) SetHealth(v float64)         { set(o.w, &o.health, v) }
func (o *object) MissileTracking() bool       { return o.missile }
func (o *object) SetMissileTracking(v bool)   { set(o.w, &o.missile, v) }
func (o *object) Sticky() bool                { return o.sticky }
func (o *object) SetSticky(v bool)            { set(o.w, &o.sticky, v) }

type player struct {
	*object

	dead        bool
	placeholder bool
	owner       int
	team        int
	loadout     host.Loadout
	effects     []host.Effect
	boosts      host.Boosts
	corpse      float64
}

func (p *player) IsDead() bool { return p.dead }

func (p *player) Kill() {
	if p.dead {
		return
	}
	set(p.w, &p.dead, true)
}

func (p *player) IsPlaceholder() bool { return p.placeholder }
func (p *player) OwnerID() int        { return p.owner }
func (p *player) Team() int           { return p.team }

func (p *player) Loadout() host.Loadout     { return p.loadout }
func (p *player) SetLoadout(l host.Loadout) { set(p.w, &p.loadout, l) }

// Effects drops finished effects before returning the active ones.
func (p *player) Effects() []host.Effect {
	p.effects = slices.DeleteFunc(p.effects, func(e host.Effect) bool {
		f, ok := e.(interface{ Finished() bool })
		return ok && f.Finished()
	})
	return slices.Clone(p.effects)
}

func (p *player) ApplyEffect(e host.Effect) {
	p.effects = append(p.effects, e)
	p.w.writes++
}

func (p *player) Boosts() host.Boosts       { return p.boosts }
func (p *player) SetBoosts(b host.Boosts)   { set(p.w, &p.boosts, b) }
func (p *player) CorpseHealth() float64     { return p.corpse }
func (p *player) SetCorpseHealth(v float64) { set(p.w, &p.corpse, v) }

type weapon struct {
	*object

	kind        string
	ammo        int
	durability  float64
	despawn     time.Duration
	breakOnDrop bool
	isMissile   bool
	powerups    []host.Powerup
}

func (w *weapon) WeaponKind() string              { return w.kind }
func (w *weapon) Ammo() int                       { return w.ammo }
func (w *weapon) Durability() float64             { return w.durability }
func (w *weapon) SetDurability(v float64)         { set(w.w, &w.durability, v) }
func (w *weapon) DespawnTimer() time.Duration     { return w.despawn }
func (w *weapon) SetDespawnTimer(v time.Duration) { set(w.w, &w.despawn, v) }
func (w *weapon) BreakOnDrop() bool               { return w.breakOnDrop }
func (w *weapon) SetBreakOnDrop(v bool)           { set(w.w, &w.breakOnDrop, v) }
func (w *weapon) IsMissile() bool                 { return w.isMissile }
func (w *weapon) SetMissile(v bool)               { set(w.w, &w.isMissile, v) }
func (w *weapon) Powerups() []host.Powerup        { return slices.Clone(w.powerups) }
func (w *weapon) SetPowerups(v []host.Powerup)    { set(w.w, &w.powerups, slices.Clone(v)) }

type grenade struct {
	*object

	dud      float64
	fuse     time.Duration
	powerups []host.Powerup
}

func (g *grenade) DudChance() float64               { return g.dud }
func (g *grenade) SetDudChance(v float64)           { set(g.w, &g.dud, v) }
func (g *grenade) FuseRemaining() time.Duration     { return g.fuse }
func (g *grenade) SetFuseRemaining(v time.Duration) { set(g.w, &g.fuse, v) }
func (g *grenade) Powerups() []host.Powerup         { return slices.Clone(g.powerups) }
func (g *grenade) SetPowerups(v []host.Powerup)     { set(g.w, &g.powerups, slices.Clone(v)) }

type crate struct {
	*object

	contents      []string
	category      string
	special       bool
	markedRemoved bool
}

func (c *crate) Contents() []string     { return slices.Clone(c.contents) }
func (c *crate) SetContents(v []string) { set(c.w, &c.contents, slices.Clone(v)) }
func (c *crate) Category() string       { return c.category }
func (c *crate) SetCategory(v string)   { set(c.w, &c.category, v) }
func (c *crate) IsSpecial() bool        { return c.special }
func (c *crate) MarkRemoved()           { c.markedRemoved = true }

// MarkedRemoved reports whether MarkRemoved was called.
func (c *crate) MarkedRemoved() bool { return c.markedRemoved }

type trigger struct {
	*object

	enabled bool
	targets []host.ID
}

func (t *trigger) Enabled() bool          { return t.enabled }
func (t *trigger) SetEnabled(v bool)      { set(t.w, &t.enabled, v) }
func (t *trigger) Targets() []host.ID     { return slices.Clone(t.targets) }
func (t *trigger) SetTargets(v []host.ID) { set(t.w, &t.targets, slices.Clone(v)) }

type timerTrigger struct {
	*trigger

	interval time.Duration
	repeat   int
	running  bool
}

func (t *timerTrigger) Interval() time.Duration     { return t.interval }
func (t *timerTrigger) SetInterval(v time.Duration) { set(t.w, &t.interval, v) }
func (t *timerTrigger) Repeat() int                 { return t.repeat }
func (t *timerTrigger) SetRepeat(v int)             { set(t.w, &t.repeat, v) }
func (t *timerTrigger) Running() bool               { return t.running }
func (t *timerTrigger) SetRunning(v bool)           { set(t.w, &t.running, v) }

type destroyTrigger struct {
	*trigger

	count int
	delay time.Duration
}

func (t *destroyTrigger) TriggerCount() int        { return t.count }
func (t *destroyTrigger) SetTriggerCount(v int)    { set(t.w, &t.count, v) }
func (t *destroyTrigger) Delay() time.Duration     { return t.delay }
func (t *destroyTrigger) SetDelay(v time.Duration) { set(t.w, &t.delay, v) }

type onDestroyedTrigger struct {
	*trigger

	destroyed int
}

func (t *onDestroyedTrigger) DestroyedCount() int     { return t.destroyed }
func (t *onDestroyedTrigger) SetDestroyedCount(v int) { set(t.w, &t.destroyed, v) }

type bodyTypeTrigger struct {
	*trigger

	target host.BodyType
}

func (t *bodyTypeTrigger) TargetBodyType() host.BodyType     { return t.target }
func (t *bodyTypeTrigger) SetTargetBodyType(v host.BodyType) { set(t.w, &t.target, v) }

type weldJoint struct {
	*object

	welded []host.ID
}

func (j *weldJoint) Welded() []host.ID     { return slices.Clone(j.welded) }
func (j *weldJoint) SetWelded(v []host.ID) { set(j.w, &j.welded, slices.Clone(v)) }

type targetJoint struct {
	*object

	target host.ID
	motor  host.Motor
}

func (j *targetJoint) TargetObject() host.ID     { return j.target }
func (j *targetJoint) SetTargetObject(v host.ID) { set(j.w, &j.target, v) }
func (j *targetJoint) Motor() host.Motor         { return j.motor }
func (j *targetJoint) SetMotor(v host.Motor)     { set(j.w, &j.motor, v) }

type distanceJoint struct {
	*object

	target host.ID
	joint  host.ID
	length float64
}

func (j *distanceJoint) TargetObject() host.ID     { return j.target }
func (j *distanceJoint) SetTargetObject(v host.ID) { set(j.w, &j.target, v) }
func (j *distanceJoint) TargetJoint() host.ID      { return j.joint }
func (j *distanceJoint) SetTargetJoint(v host.ID)  { set(j.w, &j.joint, v) }
func (j *distanceJoint) Length() float64           { return j.length }
func (j *distanceJoint) SetLength(v float64)       { set(j.w, &j.length, v) }

type elevatorJoint struct {
	*targetJoint

	path    host.ID
	arrival time.Duration
}

func (j *elevatorJoint) PathJoint() host.ID           { return j.path }
func (j *elevatorJoint) SetPathJoint(v host.ID)       { set(j.w, &j.path, v) }
func (j *elevatorJoint) ArrivalAt() time.Duration     { return j.arrival }
func (j *elevatorJoint) SetArrivalAt(v time.Duration) { set(j.w, &j.arrival, v) }

type railJoint struct {
	*targetJoint

	rail host.ID
}

func (j *railJoint) RailJoint() host.ID     { return j.rail }
func (j *railJoint) SetRailJoint(v host.ID) { set(j.w, &j.rail, v) }

type projectile struct {
	w       *World
	id      host.ID
	typ     string
	removed bool

	pos      host.Vec2
	vel      host.Vec2
	dir      host.Vec2
	bounces  int
	flags    uint32
	damage   float64
	powerups []host.Powerup
}

func (p *projectile) ID() host.ID      { return p.id }
func (p *projectile) TypeName() string { return p.typ }
func (p *projectile) IsRemoved() bool  { return p.removed }
func (p *projectile) Remove()          { p.removed = true }

func (p *projectile) Position() host.Vec2          { return p.pos }
func (p *projectile) SetPosition(v host.Vec2)      { set(p.w, &p.pos, v) }
func (p *projectile) Velocity() host.Vec2          { return p.vel }
func (p *projectile) SetVelocity(v host.Vec2)      { set(p.w, &p.vel, v) }
func (p *projectile) Direction() host.Vec2         { return p.dir }
func (p *projectile) SetDirection(v host.Vec2)     { set(p.w, &p.dir, v) }
func (p *projectile) BounceCount() int             { return p.bounces }
func (p *projectile) SetBounceCount(v int)         { set(p.w, &p.bounces, v) }
func (p *projectile) PowerupFlags() uint32         { return p.flags }
func (p *projectile) SetPowerupFlags(v uint32)     { set(p.w, &p.flags, v) }
func (p *projectile) DamageModifier() float64      { return p.damage }
func (p *projectile) SetDamageModifier(v float64)  { set(p.w, &p.damage, v) }
func (p *projectile) Powerups() []host.Powerup     { return slices.Clone(p.powerups) }
func (p *projectile) SetPowerups(v []host.Powerup) { set(p.w, &p.powerups, slices.Clone(v)) }

type fire struct {
	id  host.ID
	typ string
	pos host.Vec2
	vel host.Vec2
}

func (f *fire) ID() host.ID         { return f.id }
func (f *fire) TypeName() string    { return f.typ }
func (f *fire) Position() host.Vec2 { return f.pos }
func (f *fire) Velocity() host.Vec2 { return f.vel }
