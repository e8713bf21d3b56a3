package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
)

func newTestDatastore(t *testing.T) *Datastore {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error"})
	require.NoError(t, err)
	return New(log)
}

func TestScopeSetGetHas(t *testing.T) {
	ds := newTestDatastore(t)
	s := ds.Scope("battery")

	assert.False(t, s.Has("pct"))
	s.Set("pct", "82")
	assert.True(t, s.Has("pct"))
	assert.Equal(t, "82", s.Get("pct"))
}

func TestScopesAreIsolated(t *testing.T) {
	ds := newTestDatastore(t)
	a := ds.Scope("battery")
	b := ds.Scope("wifi")

	a.Set("value", "from-a")
	b.Set("value", "from-b")

	assert.Equal(t, "from-a", a.Get("value"))
	assert.Equal(t, "from-b", b.Get("value"))
}

func TestClearAllOnlyClearsOwner(t *testing.T) {
	ds := newTestDatastore(t)
	a := ds.Scope("battery")
	b := ds.Scope("wifi")

	a.Set("pct", "82")
	b.Set("ssid", "lab")

	a.ClearAll()

	assert.False(t, a.Has("pct"))
	assert.True(t, b.Has("ssid"))
}

func TestNilScopeIsNonFatal(t *testing.T) {
	ds := newTestDatastore(t)
	s := ds.Scope("")

	require.Nil(t, s)
	s.Set("key", "value") // must not panic
	assert.Equal(t, "", s.Get("key"))
	assert.False(t, s.Has("key"))
	s.ClearAll()
}

func TestRootReadsAcrossOwners(t *testing.T) {
	ds := newTestDatastore(t)
	ds.Scope("battery").Set("pct", "82")
	ds.Scope("wifi").Set("ssid", "lab")

	root := ds.Root()
	assert.Equal(t, "82", root.Get("battery", "pct"))
	assert.Equal(t, "lab", root.Get("wifi", "ssid"))
	assert.ElementsMatch(t, []string{"battery", "wifi"}, root.Owners())
}
