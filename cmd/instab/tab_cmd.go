package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/output"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/tab"
	"github.com/raphi011/instab/internal/ui/static"
	"github.com/raphi011/instab/internal/ui/styles"
)

func newTabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tab",
		Short:   "Manage the tabs of an instance",
		Aliases: []string{"t"},
		GroupID: GroupTabs,
		Long: `Manage the tabs of an instance.

Tabs are addressed by their zero-based index as shown by 'instab tab list'.
Where the index is optional it defaults to the instance's current tab.`,
		Example: `  instab tab add acme-dev                      # New tab on the home page
  instab tab add acme-dev incident.do          # https:// is added
  cat urls.txt | instab tab add acme-dev -     # One tab per line
  instab tab nav acme-dev 1 acme-dev.service-now.com/sys_user.do
  instab tab close acme-dev 1
  instab tab url acme-dev 0 --copy`,
	}

	cmd.AddCommand(newTabAddCmd())
	cmd.AddCommand(newTabCloseCmd())
	cmd.AddCommand(newTabNavCmd())
	cmd.AddCommand(newTabHomeCmd())
	cmd.AddCommand(newTabReloadCmd())
	cmd.AddCommand(newTabListCmd())
	cmd.AddCommand(newTabURLCmd())

	return cmd
}

func newTabAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "add <prefix> [url|-]",
		Short:             "Open a new tab",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			urls := []string{""}
			if len(args) == 2 {
				urls = []string{args[1]}
			}
			if len(args) == 2 && args[1] == "-" {
				var err error
				if urls, err = stdinURLs(cmd); err != nil {
					return err
				}
			}

			return withRegistry(ctx, func(reg *registry.Registry) error {
				inst, err := reg.Find(args[0])
				if err != nil {
					return err
				}
				for _, u := range urls {
					t, err := reg.AddTab(inst.Prefix(), u)
					if err != nil {
						return err
					}
					out.Fields(inst.IndexOf(t.ID()), t.PersistURL())
				}
				return nil
			})
		},
	}

	return cmd
}

func newTabCloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "close <prefix> <index>",
		Short:             "Close a tab",
		Long:              "Close a tab. Closing the last tab deletes the instance.",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			return withRegistry(ctx, func(reg *registry.Registry) error {
				inst, err := reg.Find(args[0])
				if err != nil {
					return err
				}
				last := inst.Len() == 1
				if err := reg.CloseTab(inst.Prefix(), index); err != nil {
					return err
				}
				if last {
					l.Printf("Closed the last tab, deleted %s\n", styles.Tag(inst.Prefix(), inst.Color()))
					return nil
				}
				l.Printf("Closed tab %d of %s (%d left)\n", index, inst.Prefix(), inst.Len())
				return nil
			})
		},
	}

	return cmd
}

func newTabNavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "nav <prefix> <index> <url>",
		Short:             "Navigate a tab to a URL",
		Aliases:           []string{"navigate", "go"},
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return withTab(cmd, args[0], index, func(t *tab.Tab) error {
				return t.Navigate(args[2])
			})
		},
	}

	return cmd
}

func newTabHomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "home <prefix> [index]",
		Short:             "Navigate a tab to the instance home page",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := optionalIndex(args, 1)
			if err != nil {
				return err
			}
			return withTab(cmd, args[0], index, (*tab.Tab).Home)
		},
	}

	return cmd
}

func newTabReloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "reload <prefix> [index]",
		Short:             "Reload a tab",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := optionalIndex(args, 1)
			if err != nil {
				return err
			}
			return withTab(cmd, args[0], index, (*tab.Tab).Reload)
		},
	}

	return cmd
}

func newTabListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list <prefix>",
		Short:             "List the tabs of an instance",
		Aliases:           []string{"ls"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			return withRegistry(ctx, func(reg *registry.Registry) error {
				inst, err := reg.Find(args[0])
				if err != nil {
					return err
				}
				rows := make([][]string, 0, inst.Len())
				for i, t := range inst.Tabs() {
					rows = append(rows, static.TabTableRow(i, t, i == inst.CurrentIndex()))
				}
				out.Table(static.TabHeaders, rows)
				return nil
			})
		},
	}

	return cmd
}

func newTabURLCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:               "url <prefix> [index]",
		Short:             "Print the URL of a tab",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePrefixes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			index, err := optionalIndex(args, 1)
			if err != nil {
				return err
			}

			return withTab(cmd, args[0], index, func(t *tab.Tab) error {
				u := t.PersistURL()
				out.Line(u)

				// Copy to clipboard if requested
				if copyToClipboard {
					if err := clipboard.WriteAll(u); err != nil {
						l.Warnf("failed to copy to clipboard: %v", err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy URL to clipboard")

	return cmd
}

// withTab runs fn on tab index of the instance for p; -1 selects the
// current tab.
func withTab(cmd *cobra.Command, p string, index int, fn func(*tab.Tab) error) error {
	return withRegistry(cmd.Context(), func(reg *registry.Registry) error {
		inst, err := reg.Find(p)
		if err != nil {
			return err
		}
		if index < 0 {
			index = inst.CurrentIndex()
		}
		t, err := inst.Tab(index)
		if err != nil {
			return fmt.Errorf("%s: %w", inst.Prefix(), err)
		}
		return fn(t)
	})
}
