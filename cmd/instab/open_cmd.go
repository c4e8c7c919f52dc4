package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/history"
	"github.com/raphi011/instab/internal/instance"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/output"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/ui/prompt"
	"github.com/raphi011/instab/internal/ui/styles"
)

func newOpenCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:               "open [prefix]",
		Short:             "Open or focus an instance",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePrefixes,
		Long: `Focus an instance, creating it first if it does not exist yet.

Prints the URL of the instance's current tab, so the result can be handed
to a browser. Without a prefix, shows a picker when running in a terminal,
or reopens the most recently focused instance otherwise.`,
		Example: `  instab open acme-dev                # Focus (or create) acme-dev
  instab open acme-dev -c '#00ff00'   # Color used only when creating
  xdg-open "$(instab open)"           # Reopen the last instance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			return withRegistry(ctx, func(reg *registry.Registry) error {
				var p string
				if len(args) == 1 {
					p = args[0]
				} else {
					picked, err := pickInstance(ctx, reg, interactive(cmd))
					if err != nil || picked == "" {
						return err
					}
					p = picked
				}

				inst, created, err := reg.OpenOrFocus(p, color)
				if inst == nil {
					return err
				}
				if created {
					l.Printf("Added %s\n", styles.Tag(inst.Prefix(), inst.Color()))
				}
				out.Line(inst.Current().PersistURL())
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Color tag when the instance is created")
	cmd.RegisterFlagCompletionFunc("color", cobra.NoFileCompletions)

	return cmd
}

// pickInstance chooses an instance when no prefix was given: a picker in a
// terminal, the most recently focused live instance otherwise. Returns ""
// when the picker was cancelled.
func pickInstance(ctx context.Context, reg *registry.Registry, canPrompt bool) (string, error) {
	if reg.Len() == 0 {
		return "", errors.New("no instances yet (add one with 'instab add <prefix>')")
	}

	h, err := history.Load(configFrom(ctx).HistoryFile)
	if err != nil {
		return "", err
	}
	h.RemoveStale(reg.Prefixes())

	if !canPrompt {
		if p := h.MostRecent(); p != "" {
			return p, nil
		}
		return "", errors.New("prefix required (no recently opened instance)")
	}

	res, err := prompt.Select("Open instance", pickerOptions(reg, h.Prefixes()))
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", nil
	}
	return res.Value, nil
}

// pickerOptions lists recently focused instances first, then the rest in
// prefix order.
func pickerOptions(reg *registry.Registry, recent []string) []prompt.Option {
	seen := make(map[string]bool, reg.Len())
	var opts []prompt.Option
	add := func(inst *instance.Instance) {
		if seen[inst.Prefix()] {
			return
		}
		seen[inst.Prefix()] = true
		opts = append(opts, prompt.Option{
			Label:       inst.Prefix(),
			Description: fmt.Sprintf("%s · %d tabs", inst.HomeURL(), inst.Len()),
		})
	}

	for _, p := range recent {
		if inst, err := reg.Find(p); err == nil {
			add(inst)
		}
	}
	for _, inst := range reg.Instances() {
		add(inst)
	}
	return opts
}
