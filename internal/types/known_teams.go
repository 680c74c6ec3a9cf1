package types

import "sync"

// KnownTeams is an append-only set of canonical senior national-team titles.
// It is filled from tournament pages and read by player extraction; titles are never removed.
type KnownTeams struct {
	mu     sync.RWMutex
	titles map[string]struct{}
}

// NewKnownTeams creates a registry seeded with the given titles
func NewKnownTeams(titles ...string) *KnownTeams {
	k := &KnownTeams{titles: make(map[string]struct{}, len(titles))}
	for _, t := range titles {
		k.Add(t)
	}
	return k
}

// Add inserts a title; empty titles are ignored. It reports whether the title was new.
func (k *KnownTeams) Add(title string) bool {
	if title == "" {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.titles[title]; ok {
		return false
	}
	k.titles[title] = struct{}{}
	return true
}

// Contains reports whether a title was registered
func (k *KnownTeams) Contains(title string) bool {
	if k == nil {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.titles[title]
	return ok
}

// Len returns the number of registered titles
func (k *KnownTeams) Len() int {
	if k == nil {
		return 0
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.titles)
}
