// Package configstate holds the daemon's resident configuration snapshot.
package configstate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber/buildd/src/buildd/entity"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Change describes a replacement of a project's resident snapshot.
type Change struct {
	// Previous is the snapshot the project had before, nil on its first load.
	Previous *entity.ConfigSnapshot
	// Changed is false when the new snapshot has the resident digest.
	Changed bool
	// Diff is a line diff from the previous snapshot, "" when there was none.
	Diff string
}

// Repository stores one resident snapshot per project root. Snapshots are immutable; replacing
// one never affects an invocation still holding the old one, nor any other project's.
type Repository interface {
	// Current returns the resident snapshot of the innermost project containing workingDir,
	// nil when no such project was loaded, and whether its source file changed on disk since.
	Current(workingDir string) (snap *entity.ConfigSnapshot, stale bool)
	// Replace makes snap resident for its project root and starts watching its source file.
	Replace(snap *entity.ConfigSnapshot) Change
	// AnyStale reports whether any resident snapshot's source changed since it was loaded.
	AnyStale() bool
}

// Params define values to be used by the repository.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

type resident struct {
	snap  *entity.ConfigSnapshot
	stale atomic.Bool
}

// residents maps a project root to its snapshot. A published map is never modified.
type residents map[string]*resident

type repository struct {
	current atomic.Pointer[residents]

	// mu serializes replacements and guards watchedDirs.
	mu          sync.Mutex
	watchedDirs map[string]int
	watcher     *fsnotify.Watcher
	watchCloser chan bool
	watchDone   chan struct{}
	logger      *zap.SugaredLogger
}

// New creates the repository. Without a file watcher it still works, but never reports staleness.
func New(p Params) Repository {
	r := &repository{
		logger:      p.Logger,
		watchedDirs: make(map[string]int),
		watchCloser: make(chan bool, 1),
		watchDone:   make(chan struct{}),
	}
	r.current.Store(&residents{})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger.Warnw("config file watcher unavailable", "error", err)
	} else {
		r.watcher = watcher
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go r.handleChanges()
			return nil
		},
		OnStop: func(context.Context) error {
			r.watchCloser <- true
			<-r.watchDone
			return nil
		},
	})
	return r
}

func (r *repository) Current(workingDir string) (*entity.ConfigSnapshot, bool) {
	var (
		found *resident
		depth = -1
	)
	for root, res := range *r.current.Load() {
		if !contains(root, workingDir) {
			continue
		}
		if d := len(root); d > depth {
			found, depth = res, d
		}
	}
	if found == nil {
		return nil, false
	}
	return found.snap, found.stale.Load()
}

func (r *repository) AnyStale() bool {
	for _, res := range *r.current.Load() {
		if res.stale.Load() {
			return true
		}
	}
	return false
}

func (r *repository) Replace(snap *entity.ConfigSnapshot) Change {
	r.mu.Lock()
	defer r.mu.Unlock()

	root := filepath.Clean(snap.ProjectRoot)
	old := *r.current.Load()
	next := make(residents, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[root] = &resident{snap: snap}
	r.current.Store(&next)

	var prev *entity.ConfigSnapshot
	if res, ok := old[root]; ok {
		prev = res.snap
		r.unwatch(prev.SourcePath)
	}
	r.watch(snap.SourcePath)

	change := Change{Previous: prev, Changed: prev == nil || prev.Digest != snap.Digest}
	if prev != nil && change.Changed {
		change.Diff = LineDiff(prev.Text(), snap.Text())
	}
	return change
}

// contains reports whether dir is root or lies beneath it.
func contains(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// watch adds a watch on the directory of path; editors commonly replace files by rename,
// which a watch on the file itself would miss. Directories are reference counted.
func (r *repository) watch(path string) {
	if r.watcher == nil || path == "" {
		return
	}
	dir := filepath.Dir(path)
	r.watchedDirs[dir]++
	if r.watchedDirs[dir] > 1 {
		return
	}
	if err := r.watcher.Add(dir); err != nil {
		r.logger.Warnw("watching config file", "path", path, "error", err)
	}
}

func (r *repository) unwatch(path string) {
	if r.watcher == nil || path == "" {
		return
	}
	dir := filepath.Dir(path)
	r.watchedDirs[dir]--
	if r.watchedDirs[dir] > 0 {
		return
	}
	delete(r.watchedDirs, dir)
	if err := r.watcher.Remove(dir); err != nil {
		r.logger.Debugw("removing config watch", "path", path, "error", err)
	}
}

func (r *repository) handleChanges() {
	defer close(r.watchDone)
	if r.watcher == nil {
		<-r.watchCloser
		return
	}

	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			name := filepath.Clean(event.Name)
			for root, res := range *r.current.Load() {
				if res.snap.SourcePath != "" && filepath.Clean(res.snap.SourcePath) == name {
					res.stale.Store(true)
					r.logger.Infow("resident config changed on disk", "projectRoot", root, "path", name, "op", event.Op.String())
				}
			}
		case err, ok := <-r.watcher.Errors:
			if ok {
				r.logger.Warnf("Failure in config change watcher: %v", err)
			}
		case <-r.watchCloser:
			if err := r.watcher.Close(); err != nil {
				r.logger.Warnf("Failed to close config change watcher: %v", err)
			}
			return
		}
	}
}

// LineDiff renders the line-level differences between two texts. Removed lines start with
// "-", added lines with "+".
func LineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&out, "%s%s", prefix, line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String()
}
