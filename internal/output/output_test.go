package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FromContext(WithPrinter(context.Background(), &buf)).Line("https://a.com")
	if got := buf.String(); got != "https://a.com\n" {
		t.Errorf("attached printer wrote %q, want %q", got, "https://a.com\n")
	}

	if FromContext(context.Background()) == nil {
		t.Error("FromContext on empty context should fall back to stdout")
	}
}

func TestPrinter_Line(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Line("https://a.com")
	p.Line("https://b.com\n")
	want := "https://a.com\nhttps://b.com\n"
	if got := buf.String(); got != want {
		t.Errorf("Line() wrote %q, want %q", got, want)
	}
}

func TestPrinter_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf).Text("domain = \"x\"\n")
	if got := buf.String(); got != "domain = \"x\"\n" {
		t.Errorf("Text() wrote %q", got)
	}
}

func TestPrinter_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Fields(0, "https://a.com")
	p.Fields(12, "https://b.com")
	want := "0\thttps://a.com\n12\thttps://b.com\n"
	if got := buf.String(); got != want {
		t.Errorf("Fields() wrote %q, want %q", got, want)
	}
}

func TestPrinter_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Table([]string{"#", "URL"}, nil)
	if buf.Len() != 0 {
		t.Errorf("Table() with no rows wrote %q", buf.String())
	}

	p.Table([]string{"#", "URL"}, [][]string{{"0", "https://a.com"}})
	out := buf.String()
	if !strings.Contains(out, "URL") || !strings.Contains(out, "https://a.com") {
		t.Errorf("Table() wrote %q", out)
	}
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	v := struct {
		Prefix string   `json:"prefix"`
		URLs   []string `json:"urls"`
	}{"acme", []string{"https://acme.service-now.com"}}

	if err := p.JSON(v); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := "{\n  \"prefix\": \"acme\",\n  \"urls\": [\n    \"https://acme.service-now.com\"\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("JSON() wrote %q, want %q", got, want)
	}
}
