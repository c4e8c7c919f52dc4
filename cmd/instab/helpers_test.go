package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/config"
	"github.com/raphi011/instab/internal/history"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/registry"
)

func TestParseIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{" 3 ", 3, false},
		{"-1", 0, true},
		{"one", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOptionalIndex(t *testing.T) {
	t.Parallel()

	if got, err := optionalIndex([]string{"acme"}, 1); err != nil || got != -1 {
		t.Errorf("optionalIndex(absent) = %d, %v, want -1, nil", got, err)
	}
	if got, err := optionalIndex([]string{"acme", "2"}, 1); err != nil || got != 2 {
		t.Errorf("optionalIndex(2) = %d, %v, want 2, nil", got, err)
	}
	if _, err := optionalIndex([]string{"acme", "x"}, 1); err == nil {
		t.Error("optionalIndex(x) should fail")
	}
}

func TestReadURLs(t *testing.T) {
	t.Parallel()

	in := "https://a.example.com\n\n  # comment\n  b.example.com/x  \n"
	got, err := readURLs(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readURLs error = %v", err)
	}
	want := []string{"https://a.example.com", "b.example.com/x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("readURLs() = %v, want %v", got, want)
	}
}

func testContext(t *testing.T) (context.Context, *config.Config, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.HistoryFile = filepath.Join(dir, "history.json")

	var stderr bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&stderr, false, false))
	ctx = config.WithConfig(ctx, &cfg)
	return ctx, &cfg, &stderr
}

func TestStdinURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stdin   string
		want    []string
		wantErr bool
	}{
		{name: "urls", stdin: "a.com\nb.com\n", want: []string{"a.com", "b.com"}},
		{name: "empty", stdin: "", wantErr: true},
		{name: "only comments", stdin: "# nothing\n\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.stdin))
			got, err := stdinURLs(cmd)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "no URLs") {
					t.Errorf("stdinURLs() error = %v, want no URLs", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("stdinURLs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("stdinURLs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRegistry_SavesAndTracksHistory(t *testing.T) {
	t.Parallel()

	ctx, cfg, _ := testContext(t)

	err := withRegistry(ctx, func(reg *registry.Registry) error {
		if _, _, err := reg.OpenOrFocus("acme", "#ff0000"); err != nil {
			return err
		}
		_, err := reg.AddTab("acme", "example.com/x")
		return err
	})
	if err != nil {
		t.Fatalf("withRegistry error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.CacheDir, "acme.json"))
	if err != nil {
		t.Fatalf("record not written: %v", err)
	}
	if !strings.Contains(string(data), "https://example.com/x") {
		t.Errorf("record = %s, want the added tab saved on shutdown", data)
	}

	h, _ := history.Load(cfg.HistoryFile)
	if h.MostRecent() != "acme" {
		t.Errorf("history MostRecent() = %q, want acme", h.MostRecent())
	}

	// deleting forgets the prefix
	err = withRegistry(ctx, func(reg *registry.Registry) error {
		return reg.Delete("acme")
	})
	if err != nil {
		t.Fatalf("withRegistry(delete) error = %v", err)
	}
	h, _ = history.Load(cfg.HistoryFile)
	if len(h.Entries) != 0 {
		t.Errorf("history = %v, want empty after delete", h.Prefixes())
	}
}

func TestWithRegistry_SavesWhenActionFails(t *testing.T) {
	t.Parallel()

	ctx, cfg, _ := testContext(t)
	errAction := errors.New("boom")

	err := withRegistry(ctx, func(reg *registry.Registry) error {
		if _, _, err := reg.OpenOrFocus("acme", ""); err != nil {
			return err
		}
		if _, err := reg.AddTab("acme", "late.example.com"); err != nil {
			return err
		}
		return errAction
	})
	if !errors.Is(err, errAction) {
		t.Fatalf("withRegistry error = %v, want %v", err, errAction)
	}

	data, err := os.ReadFile(filepath.Join(cfg.CacheDir, "acme.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "late.example.com") {
		t.Errorf("record = %s, want state saved despite the error", data)
	}
}

func TestPickerOptions(t *testing.T) {
	t.Parallel()

	ctx, _, _ := testContext(t)

	err := withRegistry(ctx, func(reg *registry.Registry) error {
		for _, p := range []string{"alpha", "beta", "gamma"} {
			if _, _, err := reg.OpenOrFocus(p, ""); err != nil {
				return err
			}
		}

		opts := pickerOptions(reg, []string{"gamma", "gone", "alpha"})
		var labels []string
		for _, o := range opts {
			labels = append(labels, o.Label)
		}
		if want := []string{"gamma", "alpha", "beta"}; !reflect.DeepEqual(labels, want) {
			t.Errorf("pickerOptions() labels = %v, want %v", labels, want)
		}
		if !strings.Contains(opts[0].Description, "https://gamma.service-now.com") {
			t.Errorf("Description = %q, want home URL", opts[0].Description)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
