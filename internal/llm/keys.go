package llm

import "sync/atomic"

// KeyRing rotates across a fixed set of provider API keys. State is owned by
// the instance, so independent rings (tests, multiple servers in one process)
// never interfere with each other.
type KeyRing struct {
	keys    []string
	counter atomic.Uint64
}

// NewKeyRing creates a ring over the given keys. Empty entries are dropped.
func NewKeyRing(keys []string) *KeyRing {
	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			filtered = append(filtered, k)
		}
	}
	return &KeyRing{keys: filtered}
}

// Next returns the next key in round-robin order, or "" when the ring is empty.
func (r *KeyRing) Next() string {
	if len(r.keys) == 0 {
		return ""
	}
	n := r.counter.Add(1) - 1
	return r.keys[n%uint64(len(r.keys))]
}

// Len returns the number of usable keys in the ring.
func (r *KeyRing) Len() int {
	return len(r.keys)
}
