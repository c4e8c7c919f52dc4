// Package event carries upward notifications from tabs and instances to
// whoever owns them, so a Tab never needs a reference to its Instance or to
// the registry.
package event

import (
	"fmt"
	"time"
)

// Event type identifiers, "category.action".
const (
	TypeTabOpened           = "tab.opened"
	TypeTabClosed           = "tab.closed"
	TypeTabURLChanged       = "tab.url_changed"
	TypeTabTitleChanged     = "tab.title_changed"
	TypeInstanceOpened      = "instance.opened"
	TypeInstanceFocused     = "instance.focused"
	TypeInstanceClosed      = "instance.closed"
	TypeInstanceColor       = "instance.color_changed"
	TypeWindowOpened        = "window.opened"
	TypeWindowClosed        = "window.closed"
	TypePersistenceDegraded = "persistence.degraded"
)

// Event is implemented by everything published on a Bus.
type Event interface {
	EventType() string
	Timestamp() time.Time
	String() string
}

type base struct {
	eventType string
	at        time.Time
}

func (b base) EventType() string    { return b.eventType }
func (b base) Timestamp() time.Time { return b.at }

func newBase(eventType string) base {
	return base{eventType: eventType, at: time.Now()}
}

// TabEvent reports a change on one tab. URL and Title are set depending on the type.
type TabEvent struct {
	base
	Prefix string
	TabID  string
	URL    string
	Title  string
}

func (e TabEvent) String() string {
	switch e.eventType {
	case TypeTabTitleChanged:
		return fmt.Sprintf("%s %s/%s %q", e.eventType, e.Prefix, shortID(e.TabID), e.Title)
	default:
		return fmt.Sprintf("%s %s/%s %s", e.eventType, e.Prefix, shortID(e.TabID), e.URL)
	}
}

// TabOpened creates a tab.opened event.
func TabOpened(prefix, tabID, url string) TabEvent {
	return TabEvent{base: newBase(TypeTabOpened), Prefix: prefix, TabID: tabID, URL: url}
}

// TabClosed creates a tab.closed event.
func TabClosed(prefix, tabID, url string) TabEvent {
	return TabEvent{base: newBase(TypeTabClosed), Prefix: prefix, TabID: tabID, URL: url}
}

// TabURLChanged creates a tab.url_changed event.
func TabURLChanged(prefix, tabID, url string) TabEvent {
	return TabEvent{base: newBase(TypeTabURLChanged), Prefix: prefix, TabID: tabID, URL: url}
}

// TabTitleChanged creates a tab.title_changed event.
func TabTitleChanged(prefix, tabID, title string) TabEvent {
	return TabEvent{base: newBase(TypeTabTitleChanged), Prefix: prefix, TabID: tabID, Title: title}
}

// InstanceEvent reports a lifecycle change of an instance.
type InstanceEvent struct {
	base
	Prefix string
	Color  string
}

func (e InstanceEvent) String() string {
	if e.Color != "" {
		return fmt.Sprintf("%s %s %s", e.eventType, e.Prefix, e.Color)
	}
	return fmt.Sprintf("%s %s", e.eventType, e.Prefix)
}

// InstanceOpened creates an instance.opened event.
func InstanceOpened(prefix, color string) InstanceEvent {
	return InstanceEvent{base: newBase(TypeInstanceOpened), Prefix: prefix, Color: color}
}

// InstanceFocused creates an instance.focused event.
func InstanceFocused(prefix string) InstanceEvent {
	return InstanceEvent{base: newBase(TypeInstanceFocused), Prefix: prefix}
}

// InstanceClosed creates an instance.closed event.
func InstanceClosed(prefix string) InstanceEvent {
	return InstanceEvent{base: newBase(TypeInstanceClosed), Prefix: prefix}
}

// InstanceColorChanged creates an instance.color_changed event.
func InstanceColorChanged(prefix, color string) InstanceEvent {
	return InstanceEvent{base: newBase(TypeInstanceColor), Prefix: prefix, Color: color}
}

// WindowEvent reports a detached window opening or closing.
type WindowEvent struct {
	base
	WindowID string
	Prefix   string // instance the request came from
}

func (e WindowEvent) String() string {
	return fmt.Sprintf("%s %s (from %s)", e.eventType, shortID(e.WindowID), e.Prefix)
}

// WindowOpened creates a window.opened event.
func WindowOpened(windowID, prefix string) WindowEvent {
	return WindowEvent{base: newBase(TypeWindowOpened), WindowID: windowID, Prefix: prefix}
}

// WindowClosed creates a window.closed event.
func WindowClosed(windowID, prefix string) WindowEvent {
	return WindowEvent{base: newBase(TypeWindowClosed), WindowID: windowID, Prefix: prefix}
}

// PersistenceEvent reports a cache record that was skipped or failed to write.
type PersistenceEvent struct {
	base
	Err error
}

func (e PersistenceEvent) String() string {
	return fmt.Sprintf("%s %v", e.eventType, e.Err)
}

// PersistenceDegraded creates a persistence.degraded event.
func PersistenceDegraded(err error) PersistenceEvent {
	return PersistenceEvent{base: newBase(TypePersistenceDegraded), Err: err}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
