package gitwidget

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/store"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type fakeCache struct {
	entries map[string]string
}

func (c *fakeCache) Get(key string, ttl time.Duration) (string, bool) {
	v, ok := c.entries[key]
	return v, ok && ttl > 0
}

func (c *fakeCache) Set(key, value string) error {
	c.entries[key] = value
	return nil
}

func newRunContext(t *testing.T, path string) *widget.RunContext {
	t.Helper()
	opts := widget.NewOptions(map[string]string{"path": path})
	New().(widget.OptionDeclarer).DeclareOptions(opts)
	return &widget.RunContext{
		Store:   store.New(nil).Scope("git"),
		Cache:   &fakeCache{entries: map[string]string{}},
		Options: opts,
	}
}

func initRepo(t *testing.T) (string, *gogit.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi\n"), 0o644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README")
	require.NoError(t, err)
	_, err = worktree.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, worktree
}

func TestCollectOutsideRepositoryIsInvisible(t *testing.T) {
	w := New().(*Widget)

	require.NoError(t, w.Collect(newRunContext(t, t.TempDir())))

	assert.Equal(t, widget.StateInactive, w.State())
	assert.False(t, widget.Visibility(w.Presence(), w.State()))
}

func TestCollectCleanRepository(t *testing.T) {
	dir, _ := initRepo(t)
	w := New().(*Widget)

	rc := newRunContext(t, dir)
	require.NoError(t, w.Collect(rc))

	assert.Equal(t, widget.StateActive, w.State())
	assert.Equal(t, widget.HealthOK, w.Health())
	assert.Equal(t, "master", w.Render())
	assert.Equal(t, "master", rc.Store.Get("branch"))
}

func TestCollectDirtyRepository(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("changed\n"), 0o644))

	w := New().(*Widget)
	require.NoError(t, w.Collect(newRunContext(t, dir)))

	assert.Equal(t, widget.StateDegraded, w.State())
	assert.Equal(t, widget.HealthWarning, w.Health())
	assert.Equal(t, "master ±1", w.Render())
}

func TestDirtyCountUsesCache(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra"), []byte("x\n"), 0o644))

	rc := newRunContext(t, dir)
	w := New().(*Widget)
	require.NoError(t, w.Collect(rc))
	require.Equal(t, 1, w.dirty)

	// A second collection within the status TTL reuses the cached count even
	// though the worktree gained another change.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra2"), []byte("y\n"), 0o644))
	w2 := New().(*Widget)
	require.NoError(t, w2.Collect(rc))
	assert.Equal(t, 1, w2.dirty)
}
