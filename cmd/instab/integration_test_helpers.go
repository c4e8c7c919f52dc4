//go:build integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/instab/internal/config"
	"github.com/raphi011/instab/internal/store"
)

// setupHome points HOME at a fresh temp directory and clears the INSTAB_*
// overrides. Returns the cache directory instab will use.
// Tests using it cannot run in parallel: t.Setenv mutates process env.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv(config.EnvCacheDir, "")
	t.Setenv(config.EnvDomain, "")
	return filepath.Join(home, ".instab", "cache")
}

// runInstab runs the command tree with args and returns stdout and stderr.
func runInstab(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun runs instab and fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := runInstab(t, "", args...)
	if err != nil {
		t.Fatalf("instab %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout
}

// readRecord loads the cache record of p.
func readRecord(t *testing.T, cacheDir, p string) store.Record {
	t.Helper()
	rec, err := store.New(cacheDir).Load(p)
	if err != nil {
		t.Fatalf("failed to load record %s: %v", p, err)
	}
	return rec
}

// recordExists reports whether the cache file of p exists.
func recordExists(t *testing.T, cacheDir, p string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(cacheDir, p+store.Ext))
	return err == nil
}
