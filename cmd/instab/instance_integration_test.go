//go:build integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/raphi011/instab/internal/history"
)

func TestAdd_CreatesRecord(t *testing.T) {
	cacheDir := setupHome(t)

	_, stderr, err := runInstab(t, "", "add", "acme", "-c", "#F00")
	if err != nil {
		t.Fatalf("instab add failed: %v", err)
	}
	if !strings.Contains(stderr, "Added") {
		t.Errorf("stderr = %q, want confirmation", stderr)
	}

	rec := readRecord(t, cacheDir, "acme")
	if rec.Color != "#ff0000" {
		t.Errorf("Color = %q, want %q", rec.Color, "#ff0000")
	}
	if want := []string{"https://acme.service-now.com"}; !reflect.DeepEqual(rec.URLs, want) {
		t.Errorf("URLs = %v, want %v", rec.URLs, want)
	}
}

func TestAdd_Existing(t *testing.T) {
	cacheDir := setupHome(t)

	mustRun(t, "add", "acme", "-c", "#ff0000")
	_, stderr, err := runInstab(t, "", "add", "acme", "-c", "#00ff00")
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !strings.Contains(stderr, "already exists") {
		t.Errorf("stderr = %q, want 'already exists'", stderr)
	}
	if rec := readRecord(t, cacheDir, "acme"); rec.Color != "#ff0000" {
		t.Errorf("Color = %q, existing instance should keep its color", rec.Color)
	}
}

func TestAdd_InvalidPrefix(t *testing.T) {
	cacheDir := setupHome(t)

	for _, p := range []string{"   ", "a/b", "../x"} {
		if _, _, err := runInstab(t, "", "add", p); err == nil {
			t.Errorf("add %q should fail", p)
		}
	}

	entries, _ := os.ReadDir(cacheDir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			t.Errorf("unexpected record %s", e.Name())
		}
	}
}

func TestAdd_NoPrefixWithoutTerminal(t *testing.T) {
	setupHome(t)

	if _, _, err := runInstab(t, "", "add"); err == nil || !strings.Contains(err.Error(), "prefix required") {
		t.Errorf("add without prefix error = %v, want prefix required", err)
	}
}

func TestOpen_PrintsCurrentURL(t *testing.T) {
	cacheDir := setupHome(t)

	out := mustRun(t, "open", "acme")
	if strings.TrimSpace(out) != "https://acme.service-now.com" {
		t.Errorf("open output = %q, want home URL", out)
	}
	if !recordExists(t, cacheDir, "acme") {
		t.Error("open should create the instance")
	}

	// focus is recorded for 'open' without arguments
	mustRun(t, "add", "beta")
	mustRun(t, "open", "acme")
	out = mustRun(t, "open")
	if strings.TrimSpace(out) != "https://acme.service-now.com" {
		t.Errorf("open without prefix = %q, want most recent instance", out)
	}
}

func TestOpen_NoInstances(t *testing.T) {
	setupHome(t)

	if _, _, err := runInstab(t, "", "open"); err == nil || !strings.Contains(err.Error(), "no instances") {
		t.Errorf("open error = %v, want no instances", err)
	}
}

func TestDelete(t *testing.T) {
	cacheDir := setupHome(t)

	mustRun(t, "add", "acme")
	mustRun(t, "add", "beta")

	// no terminal to confirm on
	if _, _, err := runInstab(t, "", "delete", "acme"); err == nil || !strings.Contains(err.Error(), "-f") {
		t.Errorf("delete without -f error = %v, want hint", err)
	}
	if !recordExists(t, cacheDir, "acme") {
		t.Fatal("unconfirmed delete removed the record")
	}

	mustRun(t, "clear-cache", "-f", "acme")
	if recordExists(t, cacheDir, "acme") {
		t.Error("record still exists after delete")
	}
	if !recordExists(t, cacheDir, "beta") {
		t.Error("other records must survive")
	}

	h, _ := history.Load(filepath.Join(filepath.Dir(cacheDir), "history.json"))
	for _, p := range h.Prefixes() {
		if p == "acme" {
			t.Error("deleted prefix still in history")
		}
	}
}

func TestDelete_ConfirmDisabled(t *testing.T) {
	cacheDir := setupHome(t)

	home := os.Getenv("HOME")
	cfgPath := filepath.Join(home, ".config", "instab", "config.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("confirm_delete = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "add", "acme")
	mustRun(t, "rm", "acme")
	if recordExists(t, cacheDir, "acme") {
		t.Error("record still exists after delete")
	}
}

func TestDelete_UnknownSuggests(t *testing.T) {
	setupHome(t)

	mustRun(t, "add", "acme-dev")
	_, _, err := runInstab(t, "", "delete", "-f", "acmedev")
	if err == nil || !strings.Contains(err.Error(), "did you mean acme-dev") {
		t.Errorf("delete error = %v, want suggestion", err)
	}
}

func TestConfigure(t *testing.T) {
	cacheDir := setupHome(t)

	mustRun(t, "add", "acme")
	mustRun(t, "configure", "acme", "#00FF00")
	if rec := readRecord(t, cacheDir, "acme"); rec.Color != "#00ff00" {
		t.Errorf("Color = %q, want %q", rec.Color, "#00ff00")
	}

	if _, _, err := runInstab(t, "", "configure", "acme", "green-ish"); err == nil {
		t.Error("configure with an invalid color should fail")
	}
	if rec := readRecord(t, cacheDir, "acme"); rec.Color != "#00ff00" {
		t.Errorf("Color = %q after invalid configure, want unchanged", rec.Color)
	}
}

func TestList(t *testing.T) {
	setupHome(t)

	_, stderr, err := runInstab(t, "", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stderr, "No instances") {
		t.Errorf("stderr = %q, want empty hint", stderr)
	}

	mustRun(t, "add", "beta", "-c", "#0000ff")
	mustRun(t, "add", "acme", "-c", "#ff0000")

	out := mustRun(t, "list")
	for _, want := range []string{"PREFIX", "acme", "beta", "#ff0000", "https://beta.service-now.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "acme") > strings.Index(out, "beta") {
		t.Errorf("instances should be listed in prefix order:\n%s", out)
	}
}

func TestList_JSON(t *testing.T) {
	setupHome(t)

	mustRun(t, "add", "acme", "-c", "#ff0000")
	mustRun(t, "tab", "add", "acme", "b.com")

	var got []instanceJSON
	if err := json.Unmarshal([]byte(mustRun(t, "list", "--json")), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(got))
	}
	want := instanceJSON{
		Prefix:  "acme",
		Color:   "#ff0000",
		HomeURL: "https://acme.service-now.com",
		URLs:    []string{"https://acme.service-now.com", "https://b.com"},
		Recent:  true,
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Errorf("list --json = %+v, want %+v", got[0], want)
	}
}

func TestLoad_SkipsBrokenRecord(t *testing.T) {
	cacheDir := setupHome(t)

	mustRun(t, "add", "acme")
	if err := os.WriteFile(filepath.Join(cacheDir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runInstab(t, "", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "acme") {
		t.Errorf("good record should still load:\n%s", stdout)
	}
	if !strings.Contains(stderr, "warning:") || !strings.Contains(stderr, "broken") {
		t.Errorf("stderr = %q, want a warning naming the broken record", stderr)
	}
}

func TestCustomDomain(t *testing.T) {
	setupHome(t)
	t.Setenv("INSTAB_DOMAIN", "example.org")

	out := mustRun(t, "open", "acme")
	if strings.TrimSpace(out) != "https://acme.example.org" {
		t.Errorf("open output = %q, want custom domain", out)
	}
}
