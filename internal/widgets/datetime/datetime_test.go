package datetimewidget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

func TestCollectUsesDeclaredDefault(t *testing.T) {
	w := New()
	opts := widget.NewOptions(nil)
	if declarer, ok := w.(widget.OptionDeclarer); ok {
		declarer.DeclareOptions(opts)
	}

	require.NoError(t, w.Collect(&widget.RunContext{Options: opts}))

	assert.Equal(t, "%H:%M", w.Render())
	assert.Equal(t, widget.ContentDynamic, w.ContentType())
	assert.True(t, widget.Visibility(w.Presence(), w.State()))
}

func TestCollectHonorsConfiguredFormat(t *testing.T) {
	w := New()
	opts := widget.NewOptions(map[string]string{"format": "%a %d %H:%M"})

	require.NoError(t, w.Collect(&widget.RunContext{Options: opts}))

	assert.Equal(t, "%a %d %H:%M", w.Render())
}
