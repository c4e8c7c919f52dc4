package view

import (
	"net/url"
	"strings"
)

// History is an in-memory View. Navigation is applied immediately and
// notifications fire synchronously, in the order URL then title.
type History struct {
	entries  []string
	pos      int
	reloads  int
	handlers Handlers
}

// NewHistory returns an empty History view.
func NewHistory() *History {
	return &History{pos: -1}
}

// NewHistoryFactory returns a Factory producing History views.
func NewHistoryFactory() Factory {
	return func() View { return NewHistory() }
}

// Bind implements View.
func (h *History) Bind(handlers Handlers) {
	h.handlers = handlers
}

// Navigate loads u, discarding any forward entries.
func (h *History) Navigate(u string) {
	h.entries = append(h.entries[:h.pos+1], u)
	h.pos = len(h.entries) - 1
	h.emit()
}

// Reload re-requests the current entry. The URL does not change.
func (h *History) Reload() {
	if h.pos < 0 {
		return
	}
	h.reloads++
	if h.handlers.TitleChanged != nil {
		h.handlers.TitleChanged(TitleFor(h.entries[h.pos]))
	}
}

// Back moves one entry back, if possible.
func (h *History) Back() {
	if !h.CanGoBack() {
		return
	}
	h.pos--
	h.emit()
}

// Forward moves one entry forward, if possible.
func (h *History) Forward() {
	if !h.CanGoForward() {
		return
	}
	h.pos++
	h.emit()
}

// CurrentURL returns the current entry, or "" before the first navigation.
func (h *History) CurrentURL() string {
	if h.pos < 0 {
		return ""
	}
	return h.entries[h.pos]
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool { return h.pos > 0 }

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool { return h.pos >= 0 && h.pos < len(h.entries)-1 }

// Reloads returns how many times Reload was applied.
func (h *History) Reloads() int { return h.reloads }

// RequestNewView simulates a page asking for a new view of the given kind
// and loading u into it. Returns the view that received the page, or nil if
// the request was refused.
func (h *History) RequestNewView(kind Kind, u string) View {
	if h.handlers.NewViewRequested == nil {
		return nil
	}
	target := h.handlers.NewViewRequested(kind)
	if target == nil {
		return nil
	}
	target.Navigate(u)
	return target
}

func (h *History) emit() {
	current := h.entries[h.pos]
	if h.handlers.URLChanged != nil {
		h.handlers.URLChanged(current)
	}
	if h.handlers.TitleChanged != nil {
		h.handlers.TitleChanged(TitleFor(current))
	}
}

// TitleFor derives a display title from a URL: host plus path, without
// scheme or trailing slash. Used where no page title is available.
func TitleFor(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimSuffix(u.Host+u.Path, "/")
}
