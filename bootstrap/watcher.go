package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/artpar/pubforge/core/schema"
)

// Watcher reloads publication types and the index when the workspace
// changes on disk. Schema edits, document edits, and tag vocabulary edits
// all funnel into one debounced reload.
type Watcher struct {
	app      *App
	watcher  *fsnotify.Watcher
	debounce time.Duration
	stopCh   chan struct{}
}

// NewWatcher creates a watcher over the content directory and the tags
// file. Type subdirectories present at start are watched as well; new ones
// are picked up on the next reload.
func NewWatcher(a *App) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		app:      a,
		watcher:  fw,
		debounce: a.Config.Watch.Debounce,
		stopCh:   make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = 500 * time.Millisecond
	}

	if err := w.addWorkspacePaths(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
	w.app.Logger.Info().
		Str("content_dir", w.app.Config.Workspace.ContentDir).
		Str("tags_file", w.app.Config.Workspace.TagsFile).
		Msg("workspace watcher started")
}

// Stop stops watching.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) addWorkspacePaths() error {
	contentDir := w.app.Config.Workspace.ContentDir
	if err := w.watcher.Add(contentDir); err != nil {
		return err
	}
	for _, dir := range w.app.Registry.Directories() {
		// Best effort: a missing subdirectory only means the type has
		// no documents yet.
		_ = w.watcher.Add(filepath.Join(contentDir, dir))
	}
	if tagsDir := filepath.Dir(w.app.Config.Workspace.TagsFile); tagsDir != contentDir {
		_ = w.watcher.Add(tagsDir)
	}
	return nil
}

func (w *Watcher) loop() {
	var (
		timer  *time.Timer
		source string
	)
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s, relevant := w.classify(event.Name)
			if !relevant {
				continue
			}
			switch {
			case source == "":
				source = s
			case source != s:
				// Mixed-source bursts reload everything.
				source = "workspace"
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			w.reload(source)
			source = ""
			timer = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.app.Logger.Warn().Err(err).Msg("workspace watcher error")

		case <-w.stopCh:
			return
		}
	}
}

// classify maps a changed path to a reload source.
func (w *Watcher) classify(path string) (string, bool) {
	if path == w.app.Config.Workspace.TagsFile {
		return "tags", true
	}
	base := filepath.Base(path)
	if base == schema.SchemaFileName {
		return "schemas", true
	}
	if strings.HasSuffix(base, ".md") {
		return "documents", true
	}
	return "", false
}

func (w *Watcher) reload(source string) {
	log := w.app.Logger.With().Str("source", source).Logger()

	if source == "schemas" || source == "workspace" {
		if err := w.app.LoadTypes(); err != nil {
			log.Error().Err(err).Msg("reload failed, keeping previous types")
			w.recordError(source)
			return
		}
		// New type directories need watching too.
		_ = w.addWorkspacePaths()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := w.app.Reindex(ctx); err != nil {
		log.Error().Err(err).Msg("reindex failed")
		w.recordError(source)
		return
	}

	if w.app.Metrics != nil {
		w.app.Metrics.Reloads.WithLabelValues(source).Inc()
		w.app.Metrics.LastReload.WithLabelValues(source).SetToCurrentTime()
	}
	log.Info().Msg("workspace reloaded")
}

func (w *Watcher) recordError(source string) {
	if w.app.Metrics != nil {
		w.app.Metrics.ReloadErrors.WithLabelValues(source).Inc()
	}
}
