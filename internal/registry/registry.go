// Package registry owns every live instance, keyed by prefix, and keeps the
// cache directory in step with them.
//
// Records are written on add, color change and shutdown. Deleting an
// instance, explicitly or by closing its last tab, removes its record
// immediately. Detached windows are tracked here but never persisted.
package registry

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/instab/internal/colortag"
	"github.com/raphi011/instab/internal/event"
	"github.com/raphi011/instab/internal/instance"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/prefix"
	"github.com/raphi011/instab/internal/store"
	"github.com/raphi011/instab/internal/tab"
	"github.com/raphi011/instab/internal/view"
)

// ErrNotFound is returned when no instance has the requested prefix.
var ErrNotFound = errors.New("instance not found")

// Persister is the cache the registry reads on Load and writes afterwards.
// *store.Store implements it.
type Persister interface {
	LoadAll() (*store.Loaded, error)
	SaveAll(records map[string]store.Record) error
	Delete(prefix string) error
}

// Options configures a Registry.
type Options struct {
	Domain       string
	DefaultColor string
	NewView      view.Factory // view.NewHistoryFactory() if nil
	Bus          *event.Bus   // a private bus if nil
	Log          *log.Logger  // discarded if nil
}

// Window is a detached browser opened by a page's new-window request.
type Window struct {
	ID     string
	Prefix string // instance the request came from
	Tab    *tab.Tab
}

// Registry holds all instances in display order.
type Registry struct {
	store     Persister
	opts      Options
	instances []*instance.Instance
	active    string
	windows   []*Window

	// set by onEmpty, returned by the CloseTab call that triggered it
	deleteErr error
}

// New creates an empty registry backed by p. Call Load to read the cache.
func New(p Persister, opts Options) *Registry {
	if opts.NewView == nil {
		opts.NewView = view.NewHistoryFactory()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Log == nil {
		opts.Log = log.New(io.Discard, false, true)
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = colortag.Default
	}
	return &Registry{store: p, opts: opts}
}

// Bus returns the bus all instances publish on.
func (r *Registry) Bus() *event.Bus { return r.opts.Bus }

// Load rebuilds one instance per cache record, in prefix order.
// Unreadable records and invalid stored colors are reported as warnings and
// loading continues. An error is returned only if the cache directory
// itself could not be read.
func (r *Registry) Load() error {
	done := r.opts.Log.Op("load", "")
	start := time.Now()
	loaded, err := r.store.LoadAll()
	done(time.Since(start))
	if err != nil {
		r.degraded(err)
		return err
	}

	for _, skipped := range loaded.Skipped {
		r.degraded(skipped)
	}

	for _, p := range loaded.Prefixes() {
		if r.index(p) >= 0 {
			continue
		}
		rec := loaded.Records[p]
		inst, err := instance.FromRecord(p, rec, r.instanceOptions())
		if errors.Is(err, colortag.ErrInvalidColor) {
			r.opts.Log.Warnf("%s: %v, using %s", p, err, r.opts.DefaultColor)
			rec.Color = ""
			inst, err = instance.FromRecord(p, rec, r.instanceOptions())
		}
		if err != nil {
			r.opts.Log.Warnf("%s: %v", p, err)
			continue
		}
		r.instances = append(r.instances, inst)
		r.opts.Log.Debug("loaded", "prefix", p, "tabs", inst.Len())
	}
	return nil
}

func (r *Registry) instanceOptions() instance.Options {
	return instance.Options{
		Domain:       r.opts.Domain,
		DefaultColor: r.opts.DefaultColor,
		NewView:      r.opts.NewView,
		Bus:          r.opts.Bus,
		OnEmpty:      r.onEmpty,
		OnWindow:     r.openWindow,
		OnInvalidURL: func(err *instance.InvalidURLError) { r.degraded(err) },
	}
}

// OpenOrFocus focuses the instance for p, creating and persisting it if it
// does not exist yet. color only applies on creation; empty means the
// default color. created reports whether a new instance was made.
//
// A persistence failure is returned together with the new instance, which
// stays registered.
func (r *Registry) OpenOrFocus(p, color string) (inst *instance.Instance, created bool, err error) {
	p, err = prefix.Validate(p)
	if err != nil {
		return nil, false, err
	}

	if inst, err := r.Find(p); err == nil {
		r.focus(inst)
		return inst, false, nil
	}

	inst, err = instance.New(p, color, r.instanceOptions())
	if err != nil {
		return nil, false, err
	}
	r.instances = append(r.instances, inst)
	r.opts.Bus.Publish(event.InstanceOpened(p, inst.Color()))
	r.focus(inst)

	return inst, true, r.Save()
}

// Focus makes the instance for p active.
func (r *Registry) Focus(p string) (*instance.Instance, error) {
	inst, err := r.Find(p)
	if err != nil {
		return nil, err
	}
	r.focus(inst)
	return inst, nil
}

func (r *Registry) focus(inst *instance.Instance) {
	r.active = inst.Prefix()
	r.opts.Bus.Publish(event.InstanceFocused(inst.Prefix()))
}

// Delete removes the instance for p and its cache record. Remaining
// instances are not re-saved.
func (r *Registry) Delete(p string) error {
	inst, err := r.Find(p)
	if err != nil {
		return err
	}
	inst.Destroy()
	r.remove(inst)
	return r.deleteRecord(inst.Prefix())
}

// Configure changes the color of the instance for p and saves the registry.
func (r *Registry) Configure(p, color string) error {
	inst, err := r.Find(p)
	if err != nil {
		return err
	}
	old := inst.Color()
	if err := inst.SetColor(color); err != nil {
		return err
	}
	if inst.Color() == old {
		return nil
	}
	return r.Save()
}

// AddTab opens a tab in the instance for p. An empty rawURL opens the home URL.
func (r *Registry) AddTab(p, rawURL string) (*tab.Tab, error) {
	inst, err := r.Find(p)
	if err != nil {
		return nil, err
	}
	return inst.AddTab(rawURL)
}

// CloseTab closes a tab of the instance for p. Closing its last tab deletes
// the instance and its cache record.
func (r *Registry) CloseTab(p string, index int) error {
	inst, err := r.Find(p)
	if err != nil {
		return err
	}
	r.deleteErr = nil
	if err := inst.CloseTab(index); err != nil {
		return err
	}
	err, r.deleteErr = r.deleteErr, nil
	return err
}

// Navigate loads rawURL in tab index of the instance for p.
func (r *Registry) Navigate(p string, index int, rawURL string) error {
	t, err := r.Tab(p, index)
	if err != nil {
		return err
	}
	return t.Navigate(rawURL)
}

// Tab returns tab index of the instance for p.
func (r *Registry) Tab(p string, index int) (*tab.Tab, error) {
	inst, err := r.Find(p)
	if err != nil {
		return nil, err
	}
	return inst.Tab(index)
}

// onEmpty runs after an instance lost its last tab.
func (r *Registry) onEmpty(inst *instance.Instance) {
	r.remove(inst)
	r.deleteErr = r.deleteRecord(inst.Prefix())
}

func (r *Registry) remove(inst *instance.Instance) {
	i := slices.Index(r.instances, inst)
	if i < 0 {
		return
	}
	r.instances = slices.Delete(r.instances, i, i+1)
	if r.active == inst.Prefix() {
		r.active = ""
	}
	r.opts.Bus.Publish(event.InstanceClosed(inst.Prefix()))
}

func (r *Registry) deleteRecord(p string) error {
	if err := r.store.Delete(p); err != nil {
		r.degraded(err)
		return err
	}
	r.opts.Log.Debug("deleted record", "prefix", p)
	return nil
}

// Find returns the instance for p. The error wraps ErrNotFound and names
// close matches when there are any.
func (r *Registry) Find(p string) (*instance.Instance, error) {
	key := strings.TrimSpace(p)
	if i := r.index(key); i >= 0 {
		return r.instances[i], nil
	}
	if suggestions := r.Suggest(key); len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrNotFound, key, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (r *Registry) index(p string) int {
	return slices.IndexFunc(r.instances, func(inst *instance.Instance) bool {
		return inst.Prefix() == p
	})
}

// Suggest returns up to three registered prefixes that fuzzy-match p, best first.
func (r *Registry) Suggest(p string) []string {
	if p == "" {
		return nil
	}
	matches := fuzzy.Find(p, r.Prefixes())
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Instances returns the live instances in display order.
func (r *Registry) Instances() []*instance.Instance {
	return slices.Clone(r.instances)
}

// Prefixes returns the prefixes of the live instances in display order.
func (r *Registry) Prefixes() []string {
	prefixes := make([]string, len(r.instances))
	for i, inst := range r.instances {
		prefixes[i] = inst.Prefix()
	}
	return prefixes
}

// Len returns the number of live instances.
func (r *Registry) Len() int { return len(r.instances) }

// Active returns the focused instance, or nil.
func (r *Registry) Active() *instance.Instance {
	if i := r.index(r.active); i >= 0 {
		return r.instances[i]
	}
	return nil
}

// Snapshot returns the cache record of every live instance.
func (r *Registry) Snapshot() map[string]store.Record {
	records := make(map[string]store.Record, len(r.instances))
	for _, inst := range r.instances {
		records[inst.Prefix()] = inst.Snapshot()
	}
	return records
}

// Save writes the record of every live instance. In-memory state is kept
// when writing fails.
func (r *Registry) Save() error {
	done := r.opts.Log.Op("save", fmt.Sprintf("%d records", len(r.instances)))
	start := time.Now()
	err := r.store.SaveAll(r.Snapshot())
	done(time.Since(start))
	if err != nil {
		r.degraded(err)
	}
	return err
}

// Shutdown saves every live instance and closes all detached windows.
func (r *Registry) Shutdown() error {
	err := r.Save()
	for _, w := range slices.Clone(r.windows) {
		_ = r.CloseWindow(w.ID)
	}
	return err
}

func (r *Registry) degraded(err error) {
	r.opts.Log.Warnf("%v", err)
	r.opts.Bus.Publish(event.PersistenceDegraded(err))
}
