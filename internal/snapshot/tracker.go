package snapshot

import (
	"fmt"
	"path"
	"slices"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

var (
	// DefaultAllow selects the relational kinds worth tracking.
	DefaultAllow = []string{"*Trigger", "*Joint"}
	// DefaultDeny drops relational kinds that are numerous and carry nothing
	// a restore needs.
	DefaultDeny = []string{"AreaTrigger", "PathJoint", "PullJoint"}
)

// Tracker keeps the additional (joint and trigger) population up to date
// from the host's creation and destruction notifications, so a capture does
// not need to rescan the whole world for them.
type Tracker struct {
	allow []string
	deny  []string

	order   []host.ID
	objects map[host.ID]host.Object
	unsub   []func()
}

// NewTracker validates the glob patterns and returns an empty tracker.
func NewTracker(allow, deny []string) (*Tracker, error) {
	for _, p := range slices.Concat(allow, deny) {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrBadPattern, p, err)
		}
	}
	return &Tracker{
		allow:   slices.Clone(allow),
		deny:    slices.Clone(deny),
		objects: make(map[host.ID]host.Object),
	}, nil
}

// Matches reports whether objects of the host type typeName are tracked.
func (t *Tracker) Matches(typeName string) bool {
	return matchAny(t.allow, typeName) && !matchAny(t.deny, typeName)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Attach seeds the tracker from w and subscribes to its notifications.
func (t *Tracker) Attach(w host.World) {
	t.Detach()
	t.order = t.order[:0]
	clear(t.objects)

	t.add(w.AllObjects())
	t.unsub = append(t.unsub,
		w.OnCreated(t.add),
		w.OnDestroyed(t.remove),
	)
}

// Detach drops the notification subscriptions.
func (t *Tracker) Detach() {
	for _, u := range t.unsub {
		u()
	}
	t.unsub = nil
}

// Has reports whether id is tracked.
func (t *Tracker) Has(id host.ID) bool {
	if t == nil {
		return false
	}
	_, ok := t.objects[id]
	return ok
}

// Len is the number of tracked objects.
func (t *Tracker) Len() int {
	if t == nil {
		return 0
	}
	return len(t.objects)
}

// Objects returns the tracked objects that are still alive, in the order
// they were first seen.
func (t *Tracker) Objects() []host.Object {
	if t == nil {
		return nil
	}
	out := make([]host.Object, 0, len(t.objects))
	for _, id := range t.order {
		if obj, ok := t.objects[id]; ok && !obj.IsRemoved() {
			out = append(out, obj)
		}
	}
	return out
}

func (t *Tracker) add(objs []host.Object) {
	for _, obj := range objs {
		if !t.Matches(obj.TypeName()) {
			continue
		}
		if _, ok := t.objects[obj.ID()]; ok {
			continue
		}
		t.objects[obj.ID()] = obj
		t.order = append(t.order, obj.ID())
	}
}

func (t *Tracker) remove(ids []host.ID) {
	removed := false
	for _, id := range ids {
		if _, ok := t.objects[id]; ok {
			delete(t.objects, id)
			removed = true
		}
	}
	if removed {
		t.order = slices.DeleteFunc(t.order, func(id host.ID) bool {
			_, ok := t.objects[id]
			return !ok
		})
	}
}
