package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/prefix"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/ui/prompt"
	"github.com/raphi011/instab/internal/ui/styles"
)

func newAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:     "add [prefix]",
		Short:   "Add an instance",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Add an instance with a single tab on its home page.

Without a prefix, asks for one (when running in a terminal).
Adding a prefix that already exists focuses it instead.`,
		Example: `  instab add acme-dev                 # https://acme-dev.service-now.com
  instab add acme-prod -c '#ff0000'   # Red color tag
  instab add                          # Prompt for the prefix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			var p string
			if len(args) == 1 {
				p = args[0]
			} else {
				if !interactive(cmd) {
					return errors.New("prefix required (not running in a terminal)")
				}
				res, err := prompt.TextInput("Instance prefix:", "acme-dev", func(s string) error {
					_, err := prefix.Validate(s)
					return err
				})
				if err != nil {
					return err
				}
				if res.Cancelled {
					return nil
				}
				p = res.Value
			}

			return withRegistry(ctx, func(reg *registry.Registry) error {
				inst, created, err := reg.OpenOrFocus(p, color)
				if inst == nil {
					return err
				}
				if !created {
					l.Printf("%s already exists\n", styles.Tag(inst.Prefix(), inst.Color()))
					return nil
				}
				l.Printf("Added %s %s\n", styles.Tag(inst.Prefix(), inst.Color()), styles.MutedStyle.Render(inst.HomeURL()))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Color tag (#rrggbb or #rgb), default_color if empty")
	cmd.RegisterFlagCompletionFunc("color", cobra.NoFileCompletions)

	return cmd
}
