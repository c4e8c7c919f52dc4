package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/ui/prompt"
	"github.com/raphi011/instab/internal/ui/styles"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete <prefix>",
		Short:             "Delete an instance and its cache record",
		Aliases:           []string{"rm", "clear-cache"},
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePrefixes,
		Long: `Delete an instance, all of its tabs and its cache record.

Asks for confirmation unless -f is given or confirm_delete is false.
Without a terminal to ask on, -f is required.`,
		Example: `  instab delete acme-dev        # Ask, then delete
  instab rm -f acme-dev         # Delete without asking
  instab clear-cache acme-dev   # Same as delete`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := configFrom(ctx)

			return withRegistry(ctx, func(reg *registry.Registry) error {
				inst, err := reg.Find(args[0])
				if err != nil {
					return err
				}

				if !force && cfg.ShouldConfirmDelete() {
					if !interactive(cmd) {
						return errors.New("refusing to delete without confirmation (use -f)")
					}
					res, err := prompt.Confirm(fmt.Sprintf("Delete %s and its %d tab(s)?", inst.Prefix(), inst.Len()))
					if err != nil {
						return err
					}
					if !res.Confirmed {
						l.Printf("Aborted\n")
						return nil
					}
				}

				if err := reg.Delete(inst.Prefix()); err != nil {
					return err
				}
				l.Printf("Deleted %s\n", styles.Tag(inst.Prefix(), inst.Color()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking")

	return cmd
}
