package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/instab/internal/config"
	"github.com/raphi011/instab/internal/store"
)

// completePrefixes completes the prefixes of stored instances.
// Reads the cache directly; completion must not re-save anything.
func completePrefixes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, _ := config.Load()
	loaded, err := store.New(cfg.CacheDir).LoadAll()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Filter by prefix
	var matches []string
	for _, p := range loaded.Prefixes() {
		if strings.HasPrefix(p, toComplete) {
			matches = append(matches, p)
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp
}

