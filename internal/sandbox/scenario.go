package sandbox

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/storage"
)

// Sub-system names used as keys in a scenario's state set.
const (
	SubsystemMagic       = "magic"
	SubsystemEntities    = "entities"
	SubsystemSpawnChance = "spawn_chance"
)

var subsystemNames = []string{SubsystemMagic, SubsystemEntities, SubsystemSpawnChance}

// ScenarioSpec describes a world to populate a sandbox with.
type ScenarioSpec struct {
	Name       string           `json:"name"`
	Objects    []ObjectSpec     `json:"objects"`
	Fires      []host.FireSpec  `json:"fires"`
	Subsystems storage.StateSet `json:"subsystems"`
}

// ObjectSpec describes one object. Ref names the object inside the scenario
// so relational objects can point at it.
type ObjectSpec struct {
	Ref       string         `json:"ref"`
	Type      string         `json:"type"`
	Transform host.Transform `json:"transform"`
	Velocity  host.Vec2      `json:"velocity"`
	CustomID  string         `json:"custom_id"`

	Name    string     `json:"name"`
	Owner   int        `json:"owner"`
	Team    int        `json:"team"`
	Loadout *Loadout   `json:"loadout"`
	Effects []*Effect  `json:"effects"`
	Weapon  string     `json:"weapon"`
	Powerup []*Powerup `json:"powerups"`

	Contents []string `json:"contents"`
	Category string   `json:"category"`
	Special  bool     `json:"special"`

	Targets []string `json:"targets"`
	Target  string   `json:"target"`
	Joint   string   `json:"joint"`
}

func (s *ScenarioSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("scenario spec must be set")
	}

	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}

	refs := map[string]bool{}
	for i, o := range s.Objects {
		switch _, known := kinds[o.Type]; {
		case o.Type == playerType:
		case o.Type == weaponType:
			if o.Weapon == "" {
				el.Add(fmt.Errorf("object %d: weapon must be set", i))
			}
		case !known:
			el.Add(fmt.Errorf("object %d: unknown type %q", i, o.Type))
		}
		if o.Ref == "" {
			continue
		}
		if refs[o.Ref] {
			el.Add(fmt.Errorf("object %d: duplicate ref %q", i, o.Ref))
		}
		refs[o.Ref] = true
	}

	for i, o := range s.Objects {
		for _, r := range slices.Concat(o.Targets, []string{o.Target, o.Joint}) {
			if r != "" && !refs[r] {
				el.Add(fmt.Errorf("object %d: unknown ref %q", i, r))
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(s.Subsystems)) {
		if !slices.Contains(subsystemNames, name) {
			el.Add(fmt.Errorf("subsystems: unknown sub-system %q", name))
			continue
		}
		var state map[string]any
		if _, err := s.Subsystems.Decode(name, &state); err != nil {
			el.Add(fmt.Errorf("subsystems: %w", err))
		}
	}

	return el.Err()
}

// Populate creates every object of spec in w. Relational references are
// wired after all objects exist.
func (w *World) Populate(spec *ScenarioSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("validating scenario: %w", err)
	}

	ids := map[string]host.ID{}
	created := make([]host.Object, len(spec.Objects))
	for i, o := range spec.Objects {
		obj, err := w.create(o)
		if err != nil {
			return fmt.Errorf("creating object %d: %w", i, err)
		}
		created[i] = obj
		if o.Ref != "" {
			ids[o.Ref] = obj.ID()
		}
	}

	for i, o := range spec.Objects {
		link(created[i], o, ids)
	}

	for _, f := range spec.Fires {
		w.SpawnFire(f)
	}

	w.ResetWrites()
	return nil
}

func (w *World) create(o ObjectSpec) (host.Object, error) {
	var obj host.Object
	switch o.Type {
	case playerType:
		pl, ok := w.CreatePlayer(host.PlayerSpec{Name: o.Name, OwnerID: o.Owner, Team: o.Team, Transform: o.Transform})
		if !ok {
			return nil, fmt.Errorf("owner %d offline", o.Owner)
		}
		if o.Loadout != nil {
			pl.SetLoadout(o.Loadout.Clone())
		}
		for _, e := range o.Effects {
			pl.ApplyEffect(e.Clone())
		}
		obj = pl
	case weaponType:
		wp, ok := w.SpawnWeapon(o.Weapon, o.Transform)
		if !ok {
			return nil, fmt.Errorf("spawning weapon %q", o.Weapon)
		}
		obj = wp
	default:
		obj = w.CreateObject(o.Type, o.Transform)
		if obj == nil {
			return nil, fmt.Errorf("unknown type %q", o.Type)
		}
	}

	obj.SetLinearVelocity(o.Velocity)
	obj.SetCustomID(o.CustomID)

	var pp []host.Powerup
	for _, p := range o.Powerup {
		pp = append(pp, p.Clone())
	}
	switch v := obj.(type) {
	case host.WeaponItem:
		v.SetPowerups(pp)
	case host.Grenade:
		v.SetPowerups(pp)
	case host.Crate:
		v.SetContents(o.Contents)
		v.SetCategory(o.Category)
		if c, ok := v.(*crate); ok {
			c.special = o.Special
		}
	}
	return obj, nil
}

func link(obj host.Object, o ObjectSpec, ids map[string]host.ID) {
	resolve := func(ref string) host.ID {
		return ids[ref]
	}
	targets := make([]host.ID, 0, len(o.Targets))
	for _, r := range o.Targets {
		targets = append(targets, resolve(r))
	}

	switch v := obj.(type) {
	case host.Trigger:
		v.SetTargets(targets)
	case host.WeldJoint:
		v.SetWelded(targets)
	case host.ElevatorAttachmentJoint:
		v.SetTargetObject(resolve(o.Target))
		v.SetPathJoint(resolve(o.Joint))
	case host.RailAttachmentJoint:
		v.SetTargetObject(resolve(o.Target))
		v.SetRailJoint(resolve(o.Joint))
	case host.DistanceJoint:
		v.SetTargetObject(resolve(o.Target))
		v.SetTargetJoint(resolve(o.Joint))
	case host.TargetObjectJoint:
		v.SetTargetObject(resolve(o.Target))
	}
}

// Keepers holds the in-memory sub-system state owners of a sandbox.
type Keepers struct {
	Magic       *MemoryKeeper
	Entities    *MemoryKeeper
	SpawnChance *MemoryKeeper
}

// NewKeepers seeds keepers from a scenario's state set.
func NewKeepers(states storage.StateSet) *Keepers {
	seed := func(name string) *MemoryKeeper {
		raw, _ := states.Raw(name)
		return NewMemoryKeeper(raw)
	}
	return &Keepers{
		Magic:       seed(SubsystemMagic),
		Entities:    seed(SubsystemEntities),
		SpawnChance: seed(SubsystemSpawnChance),
	}
}

func (k *Keepers) Subsystems() host.Subsystems {
	return host.Subsystems{
		Magic:       k.Magic,
		Entities:    k.Entities,
		SpawnChance: k.SpawnChance,
	}
}
