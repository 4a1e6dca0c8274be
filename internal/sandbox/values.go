package sandbox

import (
	"bytes"
	"slices"
	"time"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

// Powerup is a named, levelled weapon modifier.
type Powerup struct {
	Kind  string `json:"kind"`
	Level int    `json:"level"`
}

func (p *Powerup) Name() string { return p.Kind }

func (p *Powerup) Clone() host.Powerup {
	c := *p
	return &c
}

func (p *Powerup) Equal(o host.Powerup) bool {
	other, ok := o.(*Powerup)
	return ok && *other == *p
}

// Effect is a timed status effect. A finished effect disappears from its
// player's effect list.
type Effect struct {
	Kind      string        `json:"kind"`
	Remaining time.Duration `json:"remaining"`

	finished bool
}

func (e *Effect) Name() string { return e.Kind }

func (e *Effect) Clone() host.Effect {
	return &Effect{Kind: e.Kind, Remaining: e.Remaining}
}

func (e *Effect) Equal(o host.Effect) bool {
	other, ok := o.(*Effect)
	return ok && other.Kind == e.Kind && other.Remaining == e.Remaining
}

func (e *Effect) ForceFinish() {
	e.finished = true
}

func (e *Effect) Finished() bool {
	return e.finished
}

// Loadout lists carried weapons and their ammo, slot by slot.
type Loadout struct {
	Weapons []string `json:"weapons"`
	Ammo    []int    `json:"ammo"`
}

func (l *Loadout) Clone() host.Loadout {
	return &Loadout{
		Weapons: slices.Clone(l.Weapons),
		Ammo:    slices.Clone(l.Ammo),
	}
}

func (l *Loadout) Equal(o host.Loadout) bool {
	other, ok := o.(*Loadout)
	return ok && slices.Equal(l.Weapons, other.Weapons) && slices.Equal(l.Ammo, other.Ammo)
}

// MemoryKeeper holds a sub-system's state in memory. SaveErr and LoadErr, when
// set, are returned instead of doing the work.
type MemoryKeeper struct {
	SaveErr error
	LoadErr error

	state []byte
	loads int
}

func NewMemoryKeeper(state []byte) *MemoryKeeper {
	return &MemoryKeeper{state: bytes.Clone(state)}
}

func (k *MemoryKeeper) SaveState() ([]byte, error) {
	if k.SaveErr != nil {
		return nil, k.SaveErr
	}
	return bytes.Clone(k.state), nil
}

func (k *MemoryKeeper) LoadState(b []byte) error {
	if k.LoadErr != nil {
		return k.LoadErr
	}
	k.state = bytes.Clone(b)
	k.loads++
	return nil
}

// SetState replaces the state without counting as a load.
func (k *MemoryKeeper) SetState(b []byte) {
	k.state = bytes.Clone(b)
}

func (k *MemoryKeeper) State() []byte {
	return bytes.Clone(k.state)
}

// Loads is the number of successful LoadState calls.
func (k *MemoryKeeper) Loads() int {
	return k.loads
}
