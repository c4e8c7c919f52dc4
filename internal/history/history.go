// Package history tracks recently focused instances.
// This enables `instab open` with no arguments to reopen the last one.
package history

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/instab/internal/storage"
)

// maxEntries caps the file; the least recently focused entries are dropped.
const maxEntries = 50

// Entry records focus of one instance.
type Entry struct {
	Prefix     string    `json:"prefix"`
	LastFocus  time.Time `json:"last_focus"`
	FocusCount int       `json:"focus_count"`
}

// History holds entries, most recently focused first.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns ~/.instab/history.json.
func DefaultPath() string {
	dir, err := storage.HomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history.json")
}

// Load reads the history file. A missing or corrupted file yields an empty history.
func Load(file string) (*History, error) {
	var h History
	if err := storage.LoadJSON(file, &h); err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		if _, statErr := os.Stat(file); statErr == nil {
			// Corrupted - start fresh
			return &History{}, nil
		}
		return nil, err
	}
	h.sort()
	return &h, nil
}

// Save writes the history file atomically.
func (h *History) Save(file string) error {
	return storage.SaveJSON(file, h, "  ")
}

func (h *History) sort() {
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return b.LastFocus.Compare(a.LastFocus)
	})
}

// Focus moves prefix to the front, incrementing its focus count.
func (h *History) Focus(prefix string, at time.Time) {
	count := 0
	if i := h.index(prefix); i >= 0 {
		count = h.Entries[i].FocusCount
		h.Entries = slices.Delete(h.Entries, i, i+1)
	}
	h.Entries = slices.Insert(h.Entries, 0, Entry{Prefix: prefix, LastFocus: at, FocusCount: count + 1})
	if len(h.Entries) > maxEntries {
		h.Entries = h.Entries[:maxEntries]
	}
}

// Remove drops prefix. Returns whether it was present.
func (h *History) Remove(prefix string) bool {
	i := h.index(prefix)
	if i < 0 {
		return false
	}
	h.Entries = slices.Delete(h.Entries, i, i+1)
	return true
}

// RemoveStale drops every entry whose prefix is not in live.
// Returns the number removed.
func (h *History) RemoveStale(live []string) int {
	before := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		return !slices.Contains(live, e.Prefix)
	})
	return before - len(h.Entries)
}

// MostRecent returns the most recently focused prefix, or "".
func (h *History) MostRecent() string {
	if len(h.Entries) == 0 {
		return ""
	}
	return h.Entries[0].Prefix
}

// Prefixes returns the prefixes, most recently focused first.
func (h *History) Prefixes() []string {
	out := make([]string, len(h.Entries))
	for i, e := range h.Entries {
		out[i] = e.Prefix
	}
	return out
}

func (h *History) index(prefix string) int {
	return slices.IndexFunc(h.Entries, func(e Entry) bool { return e.Prefix == prefix })
}

// RecordFocus loads file, records focus of prefix and saves it.
func RecordFocus(prefix, file string) error {
	h, err := Load(file)
	if err != nil {
		return err
	}
	h.Focus(prefix, time.Now())
	return h.Save(file)
}

// Forget loads file, removes prefix and saves it if anything changed.
func Forget(prefix, file string) error {
	h, err := Load(file)
	if err != nil {
		return err
	}
	if !h.Remove(prefix) {
		return nil
	}
	return h.Save(file)
}
