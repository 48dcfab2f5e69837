package vstmap

import (
	"sync"

	"github.com/agentstation/vstmap/pkg/reconciler"
	"github.com/agentstation/vstmap/pkg/report"
)

// Hook function types for combine events
type (
	// SourceSkippedHook is called when an additional source could not be used
	SourceSkippedHook func(warning reconciler.Warning)

	// MismatchHook is called for every report row whose verdict is not Yes
	MismatchHook func(row report.Row)
)

// hooks manages event callbacks
type hooks struct {
	mu              sync.RWMutex
	onSourceSkipped []SourceSkippedHook
	onMismatch      []MismatchHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSourceSkipped registers a callback for skipped sources
func (h *hooks) OnSourceSkipped(fn SourceSkippedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSourceSkipped = append(h.onSourceSkipped, fn)
}

// OnMismatch registers a callback for rows that need attention
func (h *hooks) OnMismatch(fn MismatchHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMismatch = append(h.onMismatch, fn)
}

func (h *hooks) sourceSkipped(w reconciler.Warning) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onSourceSkipped {
		hook(w)
	}
}

func (h *hooks) mismatch(row report.Row) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onMismatch {
		hook(row)
	}
}
