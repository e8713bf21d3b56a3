// Package registry maps widget ids to built-in widget constructors.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// Factory constructs a fresh widget instance. Each pipeline run gets its own
// instance so collected state never leaks between runs.
type Factory func() widget.Widget

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a built-in widget factory under id.
func Register(id string, f Factory) error {
	if f == nil {
		return pkerrors.NewWidgetError(id, "register", fmt.Errorf("factory is nil"))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[id]; exists {
		return pkerrors.NewWidgetError(id, "register", fmt.Errorf("widget already registered"))
	}

	registry[id] = f
	return nil
}

// Lookup retrieves a factory by widget id.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[id]
	return f, ok
}

// IDs returns the registered widget ids in sorted order.
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset clears all registrations (for tests).
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Factory)
}
