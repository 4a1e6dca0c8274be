package sandbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/storage"
)

func TestScenarioSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		spec   *ScenarioSpec
		expErr string
	}{
		"nil": {
			expErr: "scenario spec must be set",
		},
		"valid": {
			spec: &ScenarioSpec{
				Name: "ok",
				Objects: []ObjectSpec{
					{Ref: "box", Type: "Box"},
					{Type: "TimerTrigger", Targets: []string{"box"}},
					{Type: "WeaponItem", Weapon: "pistol"},
					{Type: "Player", Owner: 1},
				},
			},
		},
		"missing name": {
			spec:   &ScenarioSpec{},
			expErr: "name must be set",
		},
		"unknown type": {
			spec:   &ScenarioSpec{Name: "x", Objects: []ObjectSpec{{Type: "Spaceship"}}},
			expErr: `object 0: unknown type "Spaceship"`,
		},
		"weapon without kind": {
			spec:   &ScenarioSpec{Name: "x", Objects: []ObjectSpec{{Type: "WeaponItem"}}},
			expErr: "object 0: weapon must be set",
		},
		"duplicate ref": {
			spec: &ScenarioSpec{Name: "x", Objects: []ObjectSpec{
				{Ref: "a", Type: "Box"},
				{Ref: "a", Type: "Wall"},
			}},
			expErr: `object 1: duplicate ref "a"`,
		},
		"dangling ref": {
			spec: &ScenarioSpec{Name: "x", Objects: []ObjectSpec{
				{Type: "WeldJoint", Targets: []string{"ghost"}},
			}},
			expErr: `object 0: unknown ref "ghost"`,
		},
		"subsystem state": {
			spec: &ScenarioSpec{Name: "x", Subsystems: storage.StateSet{
				SubsystemMagic:       json.RawMessage(`{"casters":[]}`),
				SubsystemSpawnChance: json.RawMessage(`{"lucky_block":0.25}`),
			}},
		},
		"unknown subsystem": {
			spec:   &ScenarioSpec{Name: "x", Subsystems: storage.StateSet{"weather": json.RawMessage(`{}`)}},
			expErr: `unknown sub-system "weather"`,
		},
		"subsystem not an object": {
			spec:   &ScenarioSpec{Name: "x", Subsystems: storage.StateSet{SubsystemMagic: json.RawMessage(`[1,2]`)}},
			expErr: `unmarshal state "magic"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestWorld_Populate(t *testing.T) {
	w := NewWorld()
	spec := &ScenarioSpec{
		Name: "populate",
		Objects: []ObjectSpec{
			{Ref: "box", Type: "Box", Velocity: host.Vec2{X: 2}, CustomID: "lift"},
			{Ref: "path", Type: "PathJoint"},
			{Type: "Crate", Contents: []string{"pistol"}, Category: "supply", Special: true},
			{Type: "WeaponItem", Weapon: "magnum", Powerup: []*Powerup{{Kind: "bouncing", Level: 1}}},
			{Type: "Player", Name: "Alice", Owner: 1, Loadout: &Loadout{Weapons: []string{"pistol"}, Ammo: []int{12}}},
			{Type: "ElevatorAttachmentJoint", Target: "box", Joint: "path"},
			{Type: "DestroyTargetsTrigger", Targets: []string{"box"}},
		},
		Fires: []host.FireSpec{{TypeName: "Fire"}},
	}

	if err := w.Populate(spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "objects", len(w.AllObjects()), 7)
	testutil.AssertEqual(t, "static", len(w.StaticObjects()), 3)
	testutil.AssertEqual(t, "fires", len(w.FireNodes()), 1)
	testutil.AssertEqual(t, "writes reset", w.Writes(), 0)

	box := w.AllObjects()[0]
	testutil.AssertEqual(t, "custom id", box.CustomID(), "lift")

	for _, obj := range w.AllObjects() {
		switch v := obj.(type) {
		case host.ElevatorAttachmentJoint:
			testutil.AssertEqual(t, "elevator target", v.TargetObject(), box.ID())
		case host.Trigger:
			testutil.AssertEqual(t, "trigger targets", len(v.Targets()), 1)
		case host.Crate:
			testutil.AssertEqual(t, "special", v.IsSpecial(), true)
			testutil.AssertEqual(t, "category", v.Category(), "supply")
		case host.WeaponItem:
			testutil.AssertEqual(t, "ammo", v.Ammo(), DefaultWeaponAmmo)
			testutil.AssertEqual(t, "powerups", len(v.Powerups()), 1)
		case host.Player:
			testutil.AssertEqual(t, "loadout", v.Loadout() != nil, true)
		}
	}
}

func TestWorld_PopulateOfflineOwner(t *testing.T) {
	w := NewWorld()
	w.Disconnect(3)

	err := w.Populate(&ScenarioSpec{Name: "x", Objects: []ObjectSpec{{Type: "Player", Owner: 3}}})
	testutil.AssertErrorContains(t, err, "owner 3 offline")
}

func TestWorld_Advance(t *testing.T) {
	w := NewWorld(WithStep(100 * time.Millisecond))
	box := w.CreateObject("Box", host.Transform{})
	box.SetLinearVelocity(host.Vec2{X: 10})
	wall := w.CreateObject("Wall", host.Transform{})
	wall.SetLinearVelocity(host.Vec2{X: 10})

	if err := w.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "elapsed", w.Elapsed(), 100*time.Millisecond)
	testutil.AssertEqual(t, "box moved", box.Position().X, 1.0)
	testutil.AssertEqual(t, "wall still", wall.Position().X, 0.0)

	w.SetTimeScale(0.5)
	w.Advance(time.Second)
	testutil.AssertEqual(t, "scaled", w.Elapsed(), 600*time.Millisecond)

	w.SetGameOver(true)
	w.Advance(time.Second)
	testutil.AssertEqual(t, "frozen", w.Elapsed(), 600*time.Millisecond)
}

func TestWorld_Notifications(t *testing.T) {
	w := NewWorld()
	var created []host.ID
	var destroyed []host.ID
	unsubCreated := w.OnCreated(func(objs []host.Object) {
		for _, o := range objs {
			created = append(created, o.ID())
		}
	})
	unsubDestroyed := w.OnDestroyed(func(ids []host.ID) {
		destroyed = append(destroyed, ids...)
	})
	testutil.AssertEqual(t, "subscribers", w.Subscribers(), 2)

	box := w.CreateObject("Box", host.Transform{})
	box.Remove()
	testutil.AssertEqual(t, "created", len(created), 1)
	testutil.AssertEqual(t, "destroyed", len(destroyed), 1)
	testutil.AssertEqual(t, "gone", w.ObjectByID(box.ID()) == nil, true)

	unsubCreated()
	unsubDestroyed()
	w.CreateObject("Box", host.Transform{})
	testutil.AssertEqual(t, "after unsubscribe", len(created), 1)
	testutil.AssertEqual(t, "subscribers after", w.Subscribers(), 0)
}

func TestWorld_CreateObject(t *testing.T) {
	tests := map[string]struct {
		opts    []WorldOpt
		typ     string
		expNil  bool
		expName string
	}{
		"known type": {
			typ:     "Barrel",
			expName: "Barrel",
		},
		"unknown type": {
			typ:    "Spaceship",
			expNil: true,
		},
		"uncreatable": {
			opts:    []WorldOpt{WithUncreatable("Box")},
			typ:     "Box",
			expName: CreationFailedName,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorld(tt.opts...)
			obj := w.CreateObject(tt.typ, host.Transform{})
			testutil.AssertEqual(t, "nil", obj == nil, tt.expNil)
			if obj != nil {
				testutil.AssertEqual(t, "name", obj.Name(), tt.expName)
			}
		})
	}
}

func TestNewKeepers(t *testing.T) {
	states := storage.StateSet{
		SubsystemMagic: json.RawMessage(`{"casters":[1]}`),
	}

	k := NewKeepers(states)

	testutil.AssertEqual(t, "magic", string(k.Magic.State()), `{"casters":[1]}`)
	testutil.AssertEqual(t, "entities empty", len(k.Entities.State()), 0)
	subs := k.Subsystems()
	testutil.AssertEqual(t, "wired", subs.Magic == host.StateKeeper(k.Magic), true)
}

func TestPlayer_Effects(t *testing.T) {
	w := NewWorld()
	pl, ok := w.CreatePlayer(host.PlayerSpec{Name: "Alice", OwnerID: 1})
	if !ok {
		t.Fatal("creating player")
	}
	speed := &Effect{Kind: "speed", Remaining: time.Second}
	pl.ApplyEffect(speed)
	pl.ApplyEffect(&Effect{Kind: "shield"})

	speed.ForceFinish()

	effects := pl.Effects()
	testutil.AssertEqual(t, "active", len(effects), 1)
	testutil.AssertEqual(t, "remaining", effects[0].Name(), "shield")
}
