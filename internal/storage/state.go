package storage

import (
	"encoding/json"
	"fmt"
)

// StateSet holds named opaque state values as raw JSON.
type StateSet map[string]json.RawMessage

// Raw returns the encoded value stored under key.
func (s StateSet) Raw(key string) ([]byte, bool) {
	raw, ok := s[key]
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return []byte(raw), true
}

// Decode unmarshals the value at key into out.
// Returns (found=false, nil) if not present.
func (s StateSet) Decode(key string, out any) (bool, error) {
	raw, ok := s.Raw(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal state %q: %w", key, err)
	}
	return true, nil
}
