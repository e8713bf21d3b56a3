package widget

import (
	"fmt"
)

// SourceKind identifies where a widget implementation comes from.
type SourceKind string

const (
	// SourceBuiltin widgets are compiled in and resolved via the registry.
	SourceBuiltin SourceKind = "builtin"
	// SourceScript widgets are executables resolved by naming convention.
	SourceScript SourceKind = "script"
	// SourceExternal widgets are inline literal specs from the widget list.
	SourceExternal SourceKind = "external"
)

// LifecycleState tracks a widget through the pipeline. Transitions are
// monotonic within one run and reset only at the next full run.
type LifecycleState string

const (
	StateDiscovered    LifecycleState = "discovered"
	StateValidated     LifecycleState = "validated"
	StateInvalid       LifecycleState = "invalid"
	StateInitialized   LifecycleState = "initialized"
	StateInitFailed    LifecycleState = "init_failed"
	StateCollectFailed LifecycleState = "collect_failed"
	StateResolved      LifecycleState = "resolved"
)

// lifecycleRank orders states along the pipeline. A widget can only move
// forward; failure states admit no further transitions except that a
// collect_failed widget still reaches resolved (it renders with error
// coloring).
var lifecycleRank = map[LifecycleState]int{
	StateDiscovered:    0,
	StateValidated:     1,
	StateInvalid:       1,
	StateInitialized:   2,
	StateInitFailed:    2,
	StateCollectFailed: 3,
	StateResolved:      4,
}

// terminalFailures are states a widget never leaves within one run.
var terminalFailures = map[LifecycleState]bool{
	StateInvalid:    true,
	StateInitFailed: true,
}

// Descriptor is the pipeline's per-widget bookkeeping entry.
type Descriptor struct {
	ID       string
	Source   SourceKind
	Path     string        // script path for SourceScript
	External *ExternalSpec // parsed spec for SourceExternal

	State LifecycleState
	Err   error // last recorded stage failure, if any
}

// NewDescriptor returns a freshly discovered descriptor.
func NewDescriptor(id string, source SourceKind) *Descriptor {
	return &Descriptor{ID: id, Source: source, State: StateDiscovered}
}

// Transition advances the descriptor to next, enforcing monotonicity. A
// widget never regresses from a failure or later state to an earlier one.
func (d *Descriptor) Transition(next LifecycleState) error {
	nextRank, ok := lifecycleRank[next]
	if !ok {
		return fmt.Errorf("unknown lifecycle state %q", next)
	}
	if terminalFailures[d.State] {
		return fmt.Errorf("widget %s is %s, cannot transition to %s", d.ID, d.State, next)
	}
	if nextRank <= lifecycleRank[d.State] {
		return fmt.Errorf("widget %s cannot regress from %s to %s", d.ID, d.State, next)
	}
	d.State = next
	return nil
}

// Fail records err and moves to the failure state for the current stage.
func (d *Descriptor) Fail(state LifecycleState, err error) {
	if transitionErr := d.Transition(state); transitionErr != nil {
		// Already terminal; keep the original failure.
		return
	}
	d.Err = err
}
