package capture

import "github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"

// Remap maps identities at capture time to identities after a restore.
// Only re-created objects have entries.
type Remap map[host.ID]host.ID

// Record adds old→cur when they differ and reports whether it did.
func (r Remap) Record(old, cur host.ID) bool {
	if old == cur {
		return false
	}
	r[old] = cur
	return true
}

// Resolve returns the current identity for id.
func (r Remap) Resolve(id host.ID) host.ID {
	if cur, ok := r[id]; ok {
		return cur
	}
	return id
}

// ResolveAll resolves every identity in ids into a new slice.
func (r Remap) ResolveAll(ids []host.ID) []host.ID {
	if ids == nil {
		return nil
	}
	out := make([]host.ID, len(ids))
	for i, id := range ids {
		out[i] = r.Resolve(id)
	}
	return out
}
