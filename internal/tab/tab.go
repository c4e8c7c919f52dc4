// Package tab implements a single navigable browsing session.
package tab

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/raphi011/instab/internal/event"
	"github.com/raphi011/instab/internal/view"
)

var (
	// ErrInvalidURL is returned by Navigate for values that have no host.
	ErrInvalidURL = errors.New("invalid url")
	// ErrClosed is returned when operating on a closed tab.
	ErrClosed = errors.New("tab is closed")
)

// Options configures a new Tab.
type Options struct {
	Prefix  string // owning instance, used to label events
	HomeURL string
	Bus     *event.Bus

	// Spawn is asked for a view when the page requests a new tab or window.
	// Nil refuses all such requests.
	Spawn func(kind view.Kind) view.View
}

// Tab wraps one View and remembers the last URL and title it reported.
type Tab struct {
	id      string
	prefix  string
	homeURL string
	view    view.View
	bus     *event.Bus
	spawn   func(kind view.Kind) view.View

	url    string
	title  string
	closed bool
}

// New binds v to a new tab. The view is not navigated.
func New(v view.View, opts Options) *Tab {
	t := &Tab{
		id:      uuid.NewString(),
		prefix:  opts.Prefix,
		homeURL: opts.HomeURL,
		view:    v,
		bus:     opts.Bus,
		spawn:   opts.Spawn,
		url:     v.CurrentURL(),
	}
	v.Bind(view.Handlers{
		URLChanged:       t.onURLChanged,
		TitleChanged:     t.onTitleChanged,
		NewViewRequested: t.onNewViewRequested,
	})
	return t
}

// ID returns the tab's unique identifier.
func (t *Tab) ID() string { return t.id }

// Prefix returns the prefix of the owning instance.
func (t *Tab) Prefix() string { return t.prefix }

// HomeURL returns the URL Home navigates to.
func (t *Tab) HomeURL() string { return t.homeURL }

// View returns the underlying view.
func (t *Tab) View() view.View { return t.view }

// URL returns the last URL reported by the view, or "" before the first navigation.
func (t *Tab) URL() string { return t.url }

// Title returns the last reported page title.
func (t *Tab) Title() string { return t.title }

// Closed reports whether Close was called.
func (t *Tab) Closed() bool { return t.closed }

// PersistURL returns the URL to store for this tab: the current URL, or
// the home URL if the tab never navigated.
func (t *Tab) PersistURL() string {
	if t.url == "" {
		return t.homeURL
	}
	return t.url
}

// Navigate loads raw. A missing scheme defaults to https.
func (t *Tab) Navigate(raw string) error {
	if t.closed {
		return ErrClosed
	}
	u, err := NormalizeURL(raw)
	if err != nil {
		return err
	}
	t.view.Navigate(u)
	return nil
}

// Home navigates to the instance home URL.
func (t *Tab) Home() error {
	return t.Navigate(t.homeURL)
}

// Reload reloads the current page.
func (t *Tab) Reload() error {
	if t.closed {
		return ErrClosed
	}
	t.view.Reload()
	return nil
}

// Back goes one step back in the view's history.
func (t *Tab) Back() error {
	if t.closed {
		return ErrClosed
	}
	t.view.Back()
	return nil
}

// Forward goes one step forward in the view's history.
func (t *Tab) Forward() error {
	if t.closed {
		return ErrClosed
	}
	t.view.Forward()
	return nil
}

// Close detaches the tab from its view. Notifications the view emits
// afterwards are dropped.
func (t *Tab) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.view.Bind(view.Handlers{})
}

func (t *Tab) onURLChanged(u string) {
	if t.closed {
		return
	}
	t.url = u
	t.bus.Publish(event.TabURLChanged(t.prefix, t.id, u))
}

func (t *Tab) onTitleChanged(title string) {
	if t.closed {
		return
	}
	t.title = title
	t.bus.Publish(event.TabTitleChanged(t.prefix, t.id, title))
}

func (t *Tab) onNewViewRequested(kind view.Kind) view.View {
	if t.closed || t.spawn == nil {
		return nil
	}
	return t.spawn(kind)
}

// NormalizeURL checks that raw is a usable http(s) URL, prepending
// https:// when no scheme is given.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q (scheme must be http or https)", ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q (missing host)", ErrInvalidURL, raw)
	}
	return u.String(), nil
}
