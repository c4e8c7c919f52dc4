package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("writes formatted output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Printf("opened %s with %d tabs", "acme", 2)
		if got := buf.String(); got != "opened acme with 2 tabs" {
			t.Errorf("Printf output = %q, want %q", got, "opened acme with 2 tabs")
		}
	})

	t.Run("suppressed when quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, true)
		l.Printf("should not appear")
		l.Println("should not appear")
		if buf.Len() != 0 {
			t.Errorf("wrote %q when quiet", buf.String())
		}
	})
}

func TestWarnf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		quiet bool
		msg   string
		want  string
	}{
		{"adds prefix and newline", false, "skipping %s", "warning: skipping acme.json\n"},
		{"keeps single newline", false, "skipping %s\n", "warning: skipping acme.json\n"},
		{"quiet", true, "skipping %s", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			New(&buf, false, tt.quiet).Warnf(tt.msg, "acme.json")
			if got := buf.String(); got != tt.want {
				t.Errorf("Warnf output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	t.Run("verbose key-val format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("event", "type", "tab.opened", "prefix", "acme")
		if got := buf.String(); got != "event type=tab.opened prefix=acme\n" {
			t.Errorf("Debug output = %q", got)
		}
	})

	t.Run("odd keyvals drops last", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("msg", "key1", "val1", "orphan")
		got := buf.String()
		if !strings.Contains(got, "key1=val1") {
			t.Errorf("Debug output = %q, want to contain key1=val1", got)
		}
		if strings.Contains(got, "orphan") {
			t.Errorf("Debug output = %q, should not contain orphan key", got)
		}
	})

	t.Run("not verbose is silent", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, false, false).Debug("should not appear", "key", "val")
		if buf.Len() != 0 {
			t.Errorf("Debug wrote %q when not verbose", buf.String())
		}
	})

	t.Run("quiet overrides verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf, true, true).Debug("should not appear")
		if buf.Len() != 0 {
			t.Errorf("Debug wrote %q when quiet", buf.String())
		}
	})
}

func TestOp(t *testing.T) {
	t.Parallel()

	t.Run("verbose with target", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		done := New(&buf, true, false).Op("save", "/tmp/cache")
		done(100 * time.Millisecond)
		if got := buf.String(); got != "> save /tmp/cache (100ms)\n" {
			t.Errorf("Op output = %q", got)
		}
	})

	t.Run("verbose without target", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		done := New(&buf, true, false).Op("load", "")
		done(50 * time.Millisecond)
		if !strings.HasPrefix(buf.String(), "> load (") {
			t.Errorf("Op output = %q, want prefix %q", buf.String(), "> load (")
		}
	})

	t.Run("not verbose is no-op", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		done := New(&buf, false, false).Op("save", "/tmp")
		done(time.Second)
		if buf.Len() != 0 {
			t.Errorf("Op wrote %q when not verbose", buf.String())
		}
	})
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    bool
	}{
		{"verbose only", true, false, true},
		{"quiet only", false, true, false},
		{"both", true, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(io.Discard, tt.verbose, tt.quiet)
			if got := l.IsVerbose(); got != tt.want {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		l := New(io.Discard, true, false)
		if got := FromContext(WithLogger(context.Background(), l)); got != l {
			t.Error("FromContext did not return the stored logger")
		}
	})

	t.Run("fallback discard logger", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		if l == nil {
			t.Fatal("FromContext returned nil for empty context")
		}
		l.Warnf("should not appear anywhere")
		if l.Writer() != io.Discard {
			t.Error("fallback logger should write to io.Discard")
		}
	})
}
