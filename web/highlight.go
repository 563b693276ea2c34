package web

import (
	"sort"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
)

// HighlightTracker keeps the set of players whose score cells are currently
// highlighted. A cell is marked when a points change comes in and reverts on
// its own after the configured duration. A second change inside the window
// resets the timer, so the cell stays lit for a full duration after the
// latest change.
type HighlightTracker struct {
	clock    clock.Clock
	duration time.Duration

	mu      sync.Mutex
	timers  map[string]*clock.Timer
	stopped bool
}

func NewHighlightTracker(clk clock.Clock, duration time.Duration) *HighlightTracker {
	return &HighlightTracker{
		clock:    clk,
		duration: duration,
		timers:   make(map[string]*clock.Timer),
	}
}

// Mark highlights a player's cell and schedules the reversion.
func (h *HighlightTracker) Mark(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}

	if t, ok := h.timers[playerID]; ok {
		t.Stop()
	}
	h.timers[playerID] = h.clock.AfterFunc(h.duration, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.timers, playerID)
	})
}

func (h *HighlightTracker) IsHighlighted(playerID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.timers[playerID]
	return ok
}

// Active returns the highlighted player IDs in a stable order.
func (h *HighlightTracker) Active() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.timers))
	for id := range h.timers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stop cancels every pending reversion timer. Nothing scheduled before or
// after Stop will fire, so shutting the app down cannot leave a timer
// referencing torn-down state.
func (h *HighlightTracker) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	for id, t := range h.timers {
		t.Stop()
		delete(h.timers, id)
	}
}
