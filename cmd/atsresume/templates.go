package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/observability"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the registered templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	infos := rendering.DefaultRegistry().List()

	if templatesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(infos)
		return nil
	}
	for _, info := range infos {
		suffix := ""
		if info.Default {
			suffix = " (default)"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s%s\n", info.ID, info.Name, suffix)
	}
	return nil
}
