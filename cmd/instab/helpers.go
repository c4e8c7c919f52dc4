package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/config"
	"github.com/raphi011/instab/internal/event"
	"github.com/raphi011/instab/internal/history"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/store"
	"github.com/raphi011/instab/internal/view"
)

// withRegistry loads every instance from the cache directory, runs fn and
// re-saves the full state afterwards, even when fn failed.
func withRegistry(ctx context.Context, fn func(*registry.Registry) error) error {
	cfg := configFrom(ctx)
	l := log.FromContext(ctx)

	bus := newBus(l, cfg.HistoryFile)
	reg := registry.New(store.New(cfg.CacheDir), registry.Options{
		Domain:       cfg.Domain,
		DefaultColor: cfg.DefaultColor,
		NewView:      view.NewHistoryFactory(),
		Bus:          bus,
		Log:          l,
	})

	if err := reg.Load(); err != nil {
		return fmt.Errorf("load instances: %w", err)
	}

	fnErr := fn(reg)
	if err := reg.Shutdown(); err != nil {
		return errors.Join(fnErr, fmt.Errorf("save instances: %w", err))
	}
	return fnErr
}

// newBus wires the diagnostics and focus history subscribers.
func newBus(l *log.Logger, historyFile string) *event.Bus {
	bus := event.NewBus()
	bus.OnPanic = func(e event.Event, recovered any, _ []byte) {
		l.Warnf("%s handler panicked: %v", e.EventType(), recovered)
	}

	if l.IsVerbose() {
		bus.SubscribeAll(func(e event.Event) {
			l.Debug("event", "type", e.EventType(), "detail", e.String())
		})
	}

	if historyFile == "" {
		return bus
	}
	bus.Subscribe(event.TypeInstanceFocused, func(e event.Event) {
		if ie, ok := e.(event.InstanceEvent); ok {
			if err := history.RecordFocus(ie.Prefix, historyFile); err != nil {
				l.Warnf("record focus of %s: %v", ie.Prefix, err)
			}
		}
	})
	bus.Subscribe(event.TypeInstanceClosed, func(e event.Event) {
		if ie, ok := e.(event.InstanceEvent); ok {
			if err := history.Forget(ie.Prefix, historyFile); err != nil {
				l.Warnf("forget %s: %v", ie.Prefix, err)
			}
		}
	})
	return bus
}

// configFrom returns the context config, or defaults when none is attached.
func configFrom(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

// parseIndex parses a zero-based tab index argument.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid tab index %q: must be a number >= 0", s)
	}
	return n, nil
}

// optionalIndex returns the tab index at args[pos], or -1 when absent.
func optionalIndex(args []string, pos int) (int, error) {
	if len(args) <= pos {
		return -1, nil
	}
	return parseIndex(args[pos])
}

// readURLs reads one URL per line. Blank lines and lines starting with # are skipped.
func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return urls, nil
}

// stdinURLs reads URLs piped into the command.
func stdinURLs(cmd *cobra.Command) ([]string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return nil, errors.New("'-' reads URLs from stdin, but stdin is a terminal")
	}
	urls, err := readURLs(in)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, errors.New("no URLs on stdin")
	}
	return urls, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// interactive reports whether prompts can be shown: the command reads from
// a terminal and stderr, where prompts render, is one too.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && isTerminal(f) && isTerminal(os.Stderr)
}
