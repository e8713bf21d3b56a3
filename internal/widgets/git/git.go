// Package gitwidget shows the repository state of the working directory:
// branch (or short hash when detached) plus a dirty marker.
package gitwidget

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type Widget struct {
	widget.Base

	inRepo  bool
	branch  string
	dirty   int
	content string
}

func New() widget.Widget { return &Widget{} }

func (w *Widget) ID() string { return "git" }

func (w *Widget) DeclareOptions(opts *widget.Options) {
	// path is the directory to inspect; empty means the working directory.
	opts.Declare("path", "")
	// status_ttl bounds how often the worktree is re-scanned. Scanning a
	// large worktree dwarfs everything else this widget does.
	opts.Declare("status_ttl", "30")
}

func (w *Widget) Collect(rc *widget.RunContext) error {
	path := rc.Options.Get("path")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = wd
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		w.inRepo = false
		return nil
	}
	if err != nil {
		return err
	}
	w.inRepo = true

	head, err := repo.Head()
	if err != nil {
		// Freshly initialized repo with no commits yet.
		w.branch = "(no commits)"
		w.content = w.branch
		return nil
	}
	if head.Name() == plumbing.HEAD {
		w.branch = head.Hash().String()[:7]
	} else {
		w.branch = head.Name().Short()
	}

	w.dirty = w.dirtyCount(rc, repo, head.Hash().String())

	w.content = w.branch
	if w.dirty > 0 {
		w.content = fmt.Sprintf("%s ±%d", w.branch, w.dirty)
	}

	rc.Store.Set("branch", w.branch)
	rc.Store.Set("dirty", strconv.Itoa(w.dirty))
	return nil
}

// dirtyCount returns the number of changed worktree entries, re-scanning at
// most once per status_ttl.
func (w *Widget) dirtyCount(rc *widget.RunContext, repo *gogit.Repository, headHash string) int {
	ttl := rc.Options.Duration("status_ttl", 0)
	cacheKey := "dirty." + headHash

	if cached, ok := rc.Cache.Get(cacheKey, ttl); ok {
		if n, err := strconv.Atoi(cached); err == nil {
			return n
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return 0
	}
	status, err := worktree.Status()
	if err != nil {
		return 0
	}

	n := 0
	for _, fileStatus := range status {
		if fileStatus.Worktree != gogit.Unmodified || fileStatus.Staging != gogit.Unmodified {
			n++
		}
	}
	if err := rc.Cache.Set(cacheKey, strconv.Itoa(n)); err != nil {
		rc.Log.Error(err, "caching git status failed")
	}
	return n
}

func (w *Widget) ContentType() widget.ContentType { return widget.ContentStatic }

// Presence is conditional: outside a repository the widget disappears.
func (w *Widget) Presence() widget.Presence { return widget.PresenceConditional }

func (w *Widget) State() widget.State {
	switch {
	case !w.inRepo:
		return widget.StateInactive
	case w.dirty > 0:
		return widget.StateDegraded
	default:
		return widget.StateActive
	}
}

func (w *Widget) Health() widget.Health {
	if w.dirty > 0 {
		return widget.HealthWarning
	}
	return widget.HealthOK
}

func (w *Widget) Context() string { return w.branch }
func (w *Widget) Icon() string    { return "" }
func (w *Widget) Render() string  { return w.content }
