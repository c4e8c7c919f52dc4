package registry

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/raphi011/instab/internal/event"
	"github.com/raphi011/instab/internal/instance"
	"github.com/raphi011/instab/internal/tab"
	"github.com/raphi011/instab/internal/view"
)

// openWindow answers a new-window request from a tab of from.
func (r *Registry) openWindow(from *instance.Instance) view.View {
	return r.newWindow(from.Prefix(), from.HomeURL())
}

func (r *Registry) newWindow(p, homeURL string) view.View {
	v := r.opts.NewView()
	w := &Window{ID: uuid.NewString(), Prefix: p}
	w.Tab = tab.New(v, tab.Options{
		Prefix:  p,
		HomeURL: homeURL,
		Bus:     r.opts.Bus,
		// Any pop-up from a detached window opens another detached window
		Spawn: func(view.Kind) view.View { return r.newWindow(p, homeURL) },
	})
	r.windows = append(r.windows, w)
	r.opts.Bus.Publish(event.WindowOpened(w.ID, p))
	return v
}

// Windows returns the open detached windows, oldest first.
func (r *Registry) Windows() []*Window {
	return slices.Clone(r.windows)
}

// CloseWindow closes the detached window with the given ID.
func (r *Registry) CloseWindow(id string) error {
	i := slices.IndexFunc(r.windows, func(w *Window) bool { return w.ID == id })
	if i < 0 {
		return fmt.Errorf("window not found: %s", id)
	}
	w := r.windows[i]
	w.Tab.Close()
	r.windows = slices.Delete(r.windows, i, i+1)
	r.opts.Bus.Publish(event.WindowClosed(w.ID, w.Prefix))
	return nil
}
