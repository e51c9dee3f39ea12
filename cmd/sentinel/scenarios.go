package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/spf13/cobra"
)

// snippetWidth is the maximum length of a scenario text in the listing.
const snippetWidth = 48

// NewScenariosCmd creates the scenarios command.
func NewScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios available to scan",
		Long: `Scenarios lists the built-in scenarios and those added by the
configuration file. Scan one with 'sentinel scan --scenario <name>'.

A scenario marked "recorded" has a verdict the offline classifier replays.`,
		Args: cobra.NoArgs,
		RunE: runScenariosCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the catalogue as JSON")

	return cmd
}

// runScenariosCmd executes the scenarios command.
func runScenariosCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.All())
	}

	writeScenarios(cmd.OutOrStdout(), catalog, cfg.Verbose)
	return nil
}

// writeScenarios prints one line per scenario. With full set, the whole
// text follows each line.
func writeScenarios(w io.Writer, catalog *scenario.Catalog, full bool) {
	fmt.Fprintf(w, "%-10s %-10s %-20s %-9s %s\n", "NAME", "CONTEXT", "SOURCE", "VERDICT", "TEXT")
	for _, s := range catalog.All() {
		verdict := "-"
		if s.HasRecording() {
			verdict = fmt.Sprintf("%d/100", s.Recorded.RiskScore)
		}
		fmt.Fprintf(w, "%-10s %-10s %-20s %-9s %s\n",
			s.Name, s.Context, s.Source, verdict, model.Snippet(strings.Join(strings.Fields(s.Text), " "), snippetWidth))
		if full {
			fmt.Fprintf(w, "           %s\n\n", s.Text)
		}
	}
	fmt.Fprintf(w, "\n%d scenarios\n", catalog.Len())
}
