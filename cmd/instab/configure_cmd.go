package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/ui/styles"
)

func newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "configure <prefix> <color>",
		Short:   "Change the color tag of an instance",
		Aliases: []string{"color"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completePrefixes(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		Example: `  instab configure acme-dev '#ff8800'
  instab color acme-prod '#f00'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			return withRegistry(ctx, func(reg *registry.Registry) error {
				if err := reg.Configure(args[0], args[1]); err != nil {
					return err
				}
				inst, err := reg.Find(args[0])
				if err != nil {
					return err
				}
				l.Printf("%s is now %s\n", styles.Tag(inst.Prefix(), inst.Color()), styles.Swatch(inst.Color()))
				return nil
			})
		},
	}

	return cmd
}
