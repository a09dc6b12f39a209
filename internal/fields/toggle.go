package fields

import "sync"

// ToggleGuard coalesces rapid visibility toggles: while a toggle for an id
// is in flight, further requests for that id are refused.
type ToggleGuard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewToggleGuard() *ToggleGuard {
	return &ToggleGuard{inFlight: make(map[string]bool)}
}

// Begin claims id. It returns false when a toggle for id is pending.
func (g *ToggleGuard) Begin(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[id] {
		return false
	}
	g.inFlight[id] = true
	return true
}

// End releases id.
func (g *ToggleGuard) End(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, id)
}

// Pending reports whether a toggle for id is in flight.
func (g *ToggleGuard) Pending(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[id]
}
