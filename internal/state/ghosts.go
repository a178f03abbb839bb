package state

import "time"

// GhostStore holds the afterimages of terminated contacts until they age
// past the expiry window.
type GhostStore struct {
	expiry time.Duration
	ghosts []Ghost
}

// NewGhostStore creates an empty store with the given lifetime.
func NewGhostStore(expiry time.Duration) *GhostStore {
	return &GhostStore{expiry: expiry}
}

// Add appends g. Callers prune with PruneTo first.
func (gs *GhostStore) Add(g Ghost) {
	gs.ghosts = append(gs.ghosts, g)
}

// PruneTo drops every ghost older than the expiry window at now and returns
// how many were removed.
func (gs *GhostStore) PruneTo(now time.Duration) int {
	before := len(gs.ghosts)
	gs.ghosts = PruneInPlace(now, gs.expiry, gs.ghosts)
	return before - len(gs.ghosts)
}

// Snapshot returns a copy of the stored ghosts, oldest first.
func (gs *GhostStore) Snapshot() []Ghost {
	out := make([]Ghost, len(gs.ghosts))
	copy(out, gs.ghosts)
	return out
}

// Len returns the number of stored ghosts.
func (gs *GhostStore) Len() int { return len(gs.ghosts) }

// Expiry returns the ghost lifetime.
func (gs *GhostStore) Expiry() time.Duration { return gs.expiry }

// SetExpiry changes the ghost lifetime. The next PruneTo applies it.
func (gs *GhostStore) SetExpiry(expiry time.Duration) { gs.expiry = expiry }
