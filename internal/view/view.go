// Package view defines the contract of the embedded rendering collaborator.
//
// The real widget (web engine, network stack, JavaScript) lives outside this
// module. The core only navigates a View and listens to the notifications it
// emits through Handlers. [History] is an in-memory View used by the CLI and
// tests: it keeps a back/forward stack and reports changes synchronously.
package view

// Kind is the hint a page gives when it asks for a new view (window.open,
// target=_blank, middle click).
type Kind int

const (
	// SameTab asks for a new foreground tab in the same instance.
	SameTab Kind = iota
	// BackgroundTab asks for a new tab without switching to it.
	BackgroundTab
	// NewWindow asks for a separate floating window.
	NewWindow
)

func (k Kind) String() string {
	switch k {
	case SameTab:
		return "tab"
	case BackgroundTab:
		return "background-tab"
	case NewWindow:
		return "window"
	default:
		return "unknown"
	}
}

// Handlers receive notifications from a View.
// Nil fields are ignored.
type Handlers struct {
	URLChanged   func(url string)
	TitleChanged func(title string)

	// NewViewRequested returns the view the new page should load into,
	// or nil to refuse the request.
	NewViewRequested func(kind Kind) View
}

// View is a single navigable browsing surface.
type View interface {
	Navigate(url string)
	Reload()
	Back()
	Forward()
	CurrentURL() string

	// Bind replaces the handlers that receive this view's notifications.
	Bind(h Handlers)
}

// Factory creates a fresh, unnavigated view.
type Factory func() View
