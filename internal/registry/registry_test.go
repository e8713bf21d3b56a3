package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type stubWidget struct {
	widget.Base
}

func (stubWidget) ID() string                       { return "stub" }
func (stubWidget) Collect(*widget.RunContext) error { return nil }
func (stubWidget) ContentType() widget.ContentType  { return widget.ContentStatic }
func (stubWidget) Presence() widget.Presence        { return widget.PresenceAlways }
func (stubWidget) State() widget.State              { return widget.StateActive }
func (stubWidget) Render() string                   { return "stub" }

func TestRegisterAndLookup(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	require.NoError(t, Register("stub", func() widget.Widget { return stubWidget{} }))

	f, ok := Lookup("stub")
	require.True(t, ok)
	assert.Equal(t, "stub", f().ID())
}

func TestRegisterDuplicate(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	require.NoError(t, Register("stub", func() widget.Widget { return stubWidget{} }))
	assert.Error(t, Register("stub", func() widget.Widget { return stubWidget{} }))
}

func TestRegisterNilFactory(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	assert.Error(t, Register("stub", nil))
}

func TestLookupMissing(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	_, ok := Lookup("absent")
	assert.False(t, ok)
}

func TestIDsSorted(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	require.NoError(t, Register("zebra", func() widget.Widget { return stubWidget{} }))
	require.NoError(t, Register("alpha", func() widget.Widget { return stubWidget{} }))

	assert.Equal(t, []string{"alpha", "zebra"}, IDs())
}
