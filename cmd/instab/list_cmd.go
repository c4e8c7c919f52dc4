package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/history"
	"github.com/raphi011/instab/internal/instance"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/output"
	"github.com/raphi011/instab/internal/registry"
	"github.com/raphi011/instab/internal/ui/static"
)

// instanceJSON is the --json shape of one instance.
type instanceJSON struct {
	Prefix  string   `json:"prefix"`
	Color   string   `json:"color"`
	HomeURL string   `json:"home_url"`
	URLs    []string `json:"urls"`
	Recent  bool     `json:"recent"`
}

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List instances",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List all instances with their color, tab count and home URL.

The most recently focused instance is marked with ●.`,
		Example: `  instab list          # Table
  instab list --json   # Machine readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			h, err := history.Load(configFrom(ctx).HistoryFile)
			if err != nil {
				l.Warnf("load history: %v", err)
				h = &history.History{}
			}

			return withRegistry(ctx, func(reg *registry.Registry) error {
				h.RemoveStale(reg.Prefixes())
				recent := h.MostRecent()

				if jsonOutput {
					items := make([]instanceJSON, 0, reg.Len())
					for _, inst := range reg.Instances() {
						items = append(items, toInstanceJSON(inst, inst.Prefix() == recent))
					}
					return out.JSON(items)
				}

				if reg.Len() == 0 {
					l.Printf("No instances (add one with 'instab add <prefix>')\n")
					return nil
				}

				rows := make([][]string, 0, reg.Len())
				for _, inst := range reg.Instances() {
					rows = append(rows, static.InstanceTableRow(inst, inst.Prefix() == recent))
				}
				out.Table(static.InstanceHeaders, rows)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func toInstanceJSON(inst *instance.Instance, recent bool) instanceJSON {
	return instanceJSON{
		Prefix:  inst.Prefix(),
		Color:   inst.Color(),
		HomeURL: inst.HomeURL(),
		URLs:    inst.Snapshot().URLs,
		Recent:  recent,
	}
}
