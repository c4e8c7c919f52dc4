package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/config"
	"github.com/raphi011/instab/internal/log"
	"github.com/raphi011/instab/internal/output"
	"github.com/raphi011/instab/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupTabs    = "tabs"
	GroupConfig  = "config"
	GroupUtility = "utility"
)

// newRootCmd builds the full command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "instab",
		Short: "Color-tagged ServiceNow instances with persistent tabs",
		Long: `instab keeps a set of named instances, each bound to a prefix whose home
page is https://{prefix}.service-now.com, with a color tag and an ordered
list of open tabs.

Every instance is stored as <prefix>.json in the cache directory and is
re-saved after each command.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			setup(cmd)
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show events and persistence timings")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Instance Commands:"},
		&cobra.Group{ID: GroupTabs, Title: "Tab Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Instance commands
	root.AddCommand(newAddCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newConfigureCmd())
	root.AddCommand(newListCmd())

	// Tab commands
	root.AddCommand(newTabCmd())

	// Config commands
	root.AddCommand(newConfigCmd())
	root.AddCommand(newCompletionCmd())

	// Utility commands
	root.AddCommand(newVersionCmd())

	return root
}

// setup loads the config and attaches logger, printer and config to the
// command's context. Output streams are downsampled to what the terminal
// (or pipe) supports.
func setup(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stderr := colorprofile.NewWriter(cmd.ErrOrStderr(), os.Environ())
	stdout := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())

	// Create logger (stderr for diagnostics)
	logger := log.New(stderr, verbose, quiet)

	cfg, err := config.Load()
	if err != nil {
		logger.Warnf("%v (using defaults)", err)
	}
	styles.Init(cfg.Theme)

	ctx = log.WithLogger(ctx, logger)
	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)
	ctx = config.WithConfig(ctx, &cfg)
	cmd.SetContext(ctx)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'instab -h' for help")
		os.Exit(1)
	}
}
