package dialect

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Registry holds the capability set of every configured database. Sets are
// immutable; a reload builds fresh ones and swaps the map entries, so
// translators holding a previous set keep a consistent view.
type Registry struct {
	mu       sync.RWMutex
	sets     map[string]*Set
	versions map[string]Version

	overridePath string
	log          *slog.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithOverrideFile sets the YAML capability override file laid over the
// shipped defaults for every configured dialect.
func WithOverrideFile(path string) RegistryOption {
	return func(r *Registry) { r.overridePath = path }
}

// WithLogger sets the logger used for reload events.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sets:     make(map[string]*Set),
		versions: make(map[string]Version),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configure builds and stores the capability set for a dialect at a server
// version, applying the override file if one was given. It returns the
// stored set.
func (r *Registry) Configure(name string, version Version) (*Set, error) {
	s, err := r.build(name, version)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sets[name] = s
	r.versions[name] = version
	r.mu.Unlock()
	return s, nil
}

// Lookup returns the configured set for a dialect name.
func (r *Registry) Lookup(name string) (*Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sets[name]
	return s, ok
}

func (r *Registry) build(name string, version Version) (*Set, error) {
	table, ok := DefaultTable(name)
	if !ok {
		return nil, fmt.Errorf("dialect: no default capability table for %q", name)
	}
	if r.overridePath != "" {
		cfg, err := LoadConfigFile(r.overridePath)
		if err != nil {
			return nil, err
		}
		overlay, err := cfg.Table(name)
		if err != nil {
			return nil, err
		}
		table = table.merge(overlay)
	}
	return NewSet(name, version, table)
}

// Watch starts watching the override file and rebuilds every configured
// set when the file is rewritten. It is a no-op without an override file.
func (r *Registry) Watch() error {
	if r.overridePath == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dialect: starting capability watcher: %w", err)
	}
	// Watch the directory: editors typically replace the file, which drops
	// a watch registered on the file itself.
	if err := w.Add(filepath.Dir(r.overridePath)); err != nil {
		w.Close()
		return fmt.Errorf("dialect: watching %s: %w", r.overridePath, err)
	}
	r.watcher = w
	r.done = make(chan struct{})
	go r.watchLoop()
	return nil
}

func (r *Registry) watchLoop() {
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != r.overridePath {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if err := r.reload(); err != nil {
				r.log.Error("capability reload failed", "path", r.overridePath, "error", err)
				continue
			}
			r.log.Info("capability tables reloaded", "path", r.overridePath)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Error("capability watcher error", "error", err)
		case <-r.done:
			return
		}
	}
}

// reload rebuilds every configured set from defaults plus the current
// override file contents.
func (r *Registry) reload() error {
	r.mu.RLock()
	versions := make(map[string]Version, len(r.versions))
	for name, v := range r.versions {
		versions[name] = v
	}
	r.mu.RUnlock()

	rebuilt := make(map[string]*Set, len(versions))
	for name, v := range versions {
		s, err := r.build(name, v)
		if err != nil {
			return err
		}
		rebuilt[name] = s
	}
	r.mu.Lock()
	for name, s := range rebuilt {
		r.sets[name] = s
	}
	r.mu.Unlock()
	return nil
}

// Close stops the watcher if one was started.
func (r *Registry) Close() error {
	if r.watcher == nil {
		return nil
	}
	close(r.done)
	return r.watcher.Close()
}
