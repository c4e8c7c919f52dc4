package history

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRecordFocus(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	if err := RecordFocus("acme", historyFile); err != nil {
		t.Fatalf("RecordFocus failed: %v", err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	e := h.Entries[0]
	if e.Prefix != "acme" {
		t.Errorf("Prefix = %q, want %q", e.Prefix, "acme")
	}
	if e.FocusCount != 1 {
		t.Errorf("FocusCount = %d, want 1", e.FocusCount)
	}
	if e.LastFocus.IsZero() {
		t.Error("LastFocus should not be zero")
	}
}

func TestFocus_MovesToFront(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := &History{}
	h.Focus("acme", base)
	h.Focus("beta", base.Add(time.Minute))
	h.Focus("acme", base.Add(2*time.Minute))

	if got, want := h.Prefixes(), []string{"acme", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
	if h.Entries[0].FocusCount != 2 {
		t.Errorf("FocusCount = %d, want 2", h.Entries[0].FocusCount)
	}
	if h.MostRecent() != "acme" {
		t.Errorf("MostRecent() = %q, want %q", h.MostRecent(), "acme")
	}
}

func TestFocus_Cap(t *testing.T) {
	t.Parallel()

	h := &History{}
	start := time.Now()
	for i := range maxEntries + 5 {
		h.Focus(strings.Repeat("x", i+1), start.Add(time.Duration(i)*time.Second))
	}
	if len(h.Entries) != maxEntries {
		t.Errorf("len(Entries) = %d, want %d", len(h.Entries), maxEntries)
	}
	if h.MostRecent() != strings.Repeat("x", maxEntries+5) {
		t.Error("newest entry should be kept")
	}
}

func TestLoad_SortsByRecency(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	content := `{"entries": [
		{"prefix": "old", "last_focus": "2026-01-01T00:00:00Z", "focus_count": 3},
		{"prefix": "new", "last_focus": "2026-02-01T00:00:00Z", "focus_count": 1}
	]}`
	if err := os.WriteFile(historyFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, want := h.Prefixes(), []string{"new", "old"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}

func TestLoad_MissingAndCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	h, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if h.MostRecent() != "" {
		t.Errorf("MostRecent() = %q, want empty", h.MostRecent())
	}

	corrupted := filepath.Join(dir, "corrupted.json")
	if err := os.WriteFile(corrupted, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err = Load(corrupted)
	if err != nil {
		t.Fatalf("Load(corrupted) error = %v", err)
	}
	if len(h.Entries) != 0 {
		t.Errorf("corrupted history should be empty, got %d entries", len(h.Entries))
	}
}

func TestRemoveAndForget(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	for _, p := range []string{"acme", "beta"} {
		if err := RecordFocus(p, historyFile); err != nil {
			t.Fatal(err)
		}
	}

	if err := Forget("acme", historyFile); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if err := Forget("never-seen", historyFile); err != nil {
		t.Fatalf("Forget(unknown) failed: %v", err)
	}

	h, _ := Load(historyFile)
	if got := h.Prefixes(); !reflect.DeepEqual(got, []string{"beta"}) {
		t.Errorf("Prefixes() = %v, want [beta]", got)
	}
	if h.Remove("acme") {
		t.Error("Remove() of absent prefix should report false")
	}
}

func TestRemoveStale(t *testing.T) {
	t.Parallel()

	now := time.Now()
	h := &History{}
	h.Focus("acme", now)
	h.Focus("gone", now.Add(time.Second))
	h.Focus("beta", now.Add(2*time.Second))

	if n := h.RemoveStale([]string{"acme", "beta"}); n != 1 {
		t.Errorf("RemoveStale() = %d, want 1", n)
	}
	if got, want := h.Prefixes(), []string{"beta", "acme"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}
