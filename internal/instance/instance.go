// Package instance implements a named workspace bound to a URL prefix that
// owns an ordered, never-empty list of tabs.
package instance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/raphi011/instab/internal/colortag"
	"github.com/raphi011/instab/internal/event"
	"github.com/raphi011/instab/internal/prefix"
	"github.com/raphi011/instab/internal/store"
	"github.com/raphi011/instab/internal/tab"
	"github.com/raphi011/instab/internal/view"
)

var (
	// ErrInvalidPrefix is returned when creating an instance with an empty or unsafe prefix.
	ErrInvalidPrefix = prefix.ErrInvalid
	// ErrTabIndex is returned for a tab index outside the tab list.
	ErrTabIndex = errors.New("tab index out of range")
	// ErrDestroyed is returned when operating on an instance whose last tab was closed.
	ErrDestroyed = errors.New("instance destroyed")
)

// Options wires an instance to its collaborators.
type Options struct {
	Domain       string       // home URL domain, prefix.DefaultDomain if empty
	DefaultColor string       // used when no color is given, colortag.Default if empty
	NewView      view.Factory // required
	Bus          *event.Bus

	// OnEmpty is called after the last tab was closed and the instance
	// destroyed. The owner removes the instance and its cache record.
	OnEmpty func(*Instance)

	// OnWindow handles new-window requests coming from a tab's page.
	// Nil refuses them.
	OnWindow func(from *Instance) view.View

	// OnInvalidURL is told about every stored URL FromRecord replaced with
	// the home URL.
	OnInvalidURL func(*InvalidURLError)
}

// InvalidURLError describes a stored URL that could not be restored.
type InvalidURLError struct {
	Prefix string
	URL    string
	Err    error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("%s: stored url %q replaced with home: %v", e.Prefix, e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// Instance owns the tabs of one prefix.
type Instance struct {
	prefix    string
	color     string
	homeURL   string
	tabs      []*tab.Tab
	current   int
	destroyed bool
	opts      Options
}

// New creates an instance with a single tab navigated to the home URL.
// An empty color means the default color.
func New(p, color string, opts Options) (*Instance, error) {
	return FromRecord(p, store.Record{Color: color}, opts)
}

// FromRecord rebuilds an instance from a cache record: one tab per URL in
// stored order, or a single home tab if the record has none.
func FromRecord(p string, rec store.Record, opts Options) (*Instance, error) {
	p, err := prefix.Validate(p)
	if err != nil {
		return nil, err
	}
	if opts.NewView == nil {
		return nil, fmt.Errorf("instance %s: no view factory", p)
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = colortag.Default
	}
	color, err := colortag.OrDefault(rec.Color, opts.DefaultColor)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		prefix:  p,
		color:   color,
		homeURL: prefix.HomeURL(p, opts.Domain),
		opts:    opts,
	}

	urls := rec.URLs
	if len(urls) == 0 {
		urls = []string{inst.homeURL}
	}
	for _, u := range urls {
		// A stored URL that no longer parses falls back to home so the tab count is kept
		if _, err := tab.NormalizeURL(u); err != nil {
			if opts.OnInvalidURL != nil {
				opts.OnInvalidURL(&InvalidURLError{Prefix: p, URL: u, Err: err})
			}
			u = inst.homeURL
		}
		if _, err := inst.AddTab(u); err != nil {
			return nil, err
		}
	}
	inst.current = 0

	return inst, nil
}

// Prefix returns the instance key.
func (i *Instance) Prefix() string { return i.prefix }

// Color returns the display color in "#rrggbb" form.
func (i *Instance) Color() string { return i.color }

// HomeURL returns https://{prefix}.{domain}.
func (i *Instance) HomeURL() string { return i.homeURL }

// Destroyed reports whether the instance lost its last tab or was deleted.
func (i *Instance) Destroyed() bool { return i.destroyed }

// Len returns the number of tabs.
func (i *Instance) Len() int { return len(i.tabs) }

// Tabs returns the tabs in display order.
func (i *Instance) Tabs() []*tab.Tab {
	return slices.Clone(i.tabs)
}

// Tab returns the tab at index.
func (i *Instance) Tab(index int) (*tab.Tab, error) {
	if i.destroyed {
		return nil, ErrDestroyed
	}
	if index < 0 || index >= len(i.tabs) {
		return nil, fmt.Errorf("%w: %d (instance %s has %d tabs)", ErrTabIndex, index, i.prefix, len(i.tabs))
	}
	return i.tabs[index], nil
}

// CurrentIndex returns the index of the focused tab.
func (i *Instance) CurrentIndex() int { return i.current }

// Current returns the focused tab, or nil for a destroyed instance.
func (i *Instance) Current() *tab.Tab {
	if i.destroyed || len(i.tabs) == 0 {
		return nil
	}
	return i.tabs[i.current]
}

// Focus makes the tab at index current.
func (i *Instance) Focus(index int) error {
	if _, err := i.Tab(index); err != nil {
		return err
	}
	i.current = index
	return nil
}

// IndexOf returns the position of the tab with the given ID, or -1.
func (i *Instance) IndexOf(id string) int {
	return slices.IndexFunc(i.tabs, func(t *tab.Tab) bool { return t.ID() == id })
}

// AddTab appends a tab navigated to rawURL, or to the home URL when rawURL
// is empty, and makes it current.
func (i *Instance) AddTab(rawURL string) (*tab.Tab, error) {
	if i.destroyed {
		return nil, ErrDestroyed
	}
	if rawURL == "" {
		rawURL = i.homeURL
	}
	u, err := tab.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	t := i.attach(i.opts.NewView(), true)
	if err := t.Navigate(u); err != nil {
		return nil, err
	}
	return t, nil
}

// attach wraps v in a tab appended to the list.
func (i *Instance) attach(v view.View, focus bool) *tab.Tab {
	t := tab.New(v, tab.Options{
		Prefix:  i.prefix,
		HomeURL: i.homeURL,
		Bus:     i.opts.Bus,
		Spawn:   i.spawn,
	})
	i.tabs = append(i.tabs, t)
	if focus {
		i.current = len(i.tabs) - 1
	}
	i.opts.Bus.Publish(event.TabOpened(i.prefix, t.ID(), t.URL()))
	return t
}

// spawn routes a page's request for a new view. Tab kinds open in this
// instance; window requests go to the owner.
func (i *Instance) spawn(kind view.Kind) view.View {
	if i.destroyed {
		return nil
	}
	switch kind {
	case view.SameTab, view.BackgroundTab:
		v := i.opts.NewView()
		i.attach(v, kind == view.SameTab)
		return v
	case view.NewWindow:
		if i.opts.OnWindow == nil {
			return nil
		}
		return i.opts.OnWindow(i)
	default:
		return nil
	}
}

// CloseTab removes the tab at index. Closing the last tab destroys the
// instance and calls OnEmpty.
func (i *Instance) CloseTab(index int) error {
	t, err := i.Tab(index)
	if err != nil {
		return err
	}

	if len(i.tabs) == 1 {
		i.Destroy()
		if i.opts.OnEmpty != nil {
			i.opts.OnEmpty(i)
		}
		return nil
	}

	t.Close()
	i.tabs = slices.Delete(i.tabs, index, index+1)
	if i.current > index || i.current >= len(i.tabs) {
		i.current--
	}
	i.opts.Bus.Publish(event.TabClosed(i.prefix, t.ID(), t.URL()))
	return nil
}

// SetColor updates the display color.
func (i *Instance) SetColor(color string) error {
	if i.destroyed {
		return ErrDestroyed
	}
	c, err := colortag.Normalize(color)
	if err != nil {
		return err
	}
	if c == i.color {
		return nil
	}
	i.color = c
	i.opts.Bus.Publish(event.InstanceColorChanged(i.prefix, c))
	return nil
}

// Snapshot returns the color and the URL of every tab, in tab order.
func (i *Instance) Snapshot() store.Record {
	urls := make([]string, len(i.tabs))
	for n, t := range i.tabs {
		urls[n] = t.PersistURL()
	}
	return store.Record{Color: i.color, URLs: urls}
}

// Destroy closes every tab. The instance is unusable afterwards.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	for _, t := range i.tabs {
		t.Close()
	}
	i.tabs = nil
	i.current = 0
	i.destroyed = true
}

// String returns the prefix.
func (i *Instance) String() string {
	return i.prefix
}
