package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ats-checker/internal/keywords"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List the built-in industry profiles",
	Args:  cobra.NoArgs,
	RunE:  runIndustries,
}

var industriesVerbose bool

func init() {
	industriesCmd.Flags().BoolVarP(&industriesVerbose, "verbose", "v", false, "Also print each profile's keywords and weights")
	rootCmd.AddCommand(industriesCmd)
}

func runIndustries(cmd *cobra.Command, _ []string) error {
	catalog, err := keywords.EmbeddedCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "catalog %s (default %s)\n", catalog.Version, catalog.Default)
	for _, p := range catalog.Profiles {
		fmt.Fprintf(w, "%s\t%d keywords\trequires %s\n", p.Name, len(p.Keywords), strings.Join(p.RequiredSections, ", "))
		if !industriesVerbose {
			continue
		}
		for _, k := range p.Keywords {
			fmt.Fprintf(w, "  %-24s %4.1f  %s\n", k.Term, k.Weight, k.Category)
		}
	}
	return nil
}
