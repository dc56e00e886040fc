// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/Mg2n/AFI-Extractor/internal/runner"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <document>...",
	Short: "Parse documents and print their findings without persisting",
	Long: `Parse runs the extraction pipeline on the given documents and prints
the findings as YAML (or JSON with --json). Nothing is written to the
workbook or the store; use it to inspect what a document yields.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	var all []types.Finding
	for _, path := range args {
		findings, err := runner.Extract(path)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all = append(all, findings...)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}

func init() {
	parseCmd.Flags().Bool("json", false, "print findings as JSON instead of YAML")

	rootCmd.AddCommand(parseCmd)
}
