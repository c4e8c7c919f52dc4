// Package output writes command results to stdout: URLs, tab lines, tables
// and JSON. Diagnostics go through the log package to stderr, so stdout can
// be piped into other tools.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphi011/instab/internal/ui/static"
)

type ctxKey struct{}

// Printer writes command results.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext returns the Printer attached to ctx, or one writing to
// os.Stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Line writes s on a line of its own. A trailing newline in s is not doubled.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.w, strings.TrimSuffix(s, "\n"))
}

// Text writes s unchanged.
func (p *Printer) Text(s string) {
	io.WriteString(p.w, s)
}

// Fields writes values on one tab-separated line, for use with cut or awk.
func (p *Printer) Fields(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(p.w, strings.Join(parts, "\t"))
}

// Table renders rows under headers. Nothing is written for zero rows.
func (p *Printer) Table(headers []string, rows [][]string) {
	io.WriteString(p.w, static.RenderTable(headers, rows))
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
