// Package watch re-runs the pipeline when files under the step targets
// change. Events arriving while a run is in progress coalesce into a single
// trailing re-run, so runs never overlap.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/systemstart/checkrun/pkg/runner"
)

// DefaultDebounce absorbs rapid editor save bursts.
const DefaultDebounce = 500 * time.Millisecond

// Watch blocks until ctx is done, invoking run after each debounced batch of
// filesystem events under dirs. fsnotify does not recurse, so every
// directory in dirs is registered individually (see CollectDirs).
func Watch(ctx context.Context, dirs []string, debounce time.Duration, run func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		slog.Debug("watching directory", "dir", dir)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-timer.C:
			run()
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	// Editor swap files and hidden state churn constantly.
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".")
}

// CollectDirs returns the set of directories to register for the given
// steps: the working directory plus, for each target path, the literal
// directory prefix before any glob metacharacter, expanded recursively.
func CollectDirs(workDir string, steps []runner.Step) []string {
	seen := map[string]bool{workDir: true}
	dirs := []string{workDir}

	add := func(dir string) {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if name := d.Name(); strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			slog.Warn("failed to walk watch directory", "dir", dir, "error", err)
		}
	}

	for _, step := range steps {
		for _, pattern := range step.Paths {
			base := globBase(pattern)
			add(filepath.Join(workDir, base))
		}
	}

	return dirs
}

// globBase returns the directory portion of pattern up to the first glob
// metacharacter.
func globBase(pattern string) string {
	parts := strings.Split(filepath.ToSlash(pattern), "/")
	var literal []string
	for _, part := range parts {
		if strings.ContainsAny(part, "*?[{") {
			break
		}
		literal = append(literal, part)
	}
	if len(literal) == len(parts) && len(parts) > 0 {
		// Fully literal pattern: it may name a file, watch its directory.
		literal = literal[:len(literal)-1]
	}
	return filepath.Join(literal...)
}
