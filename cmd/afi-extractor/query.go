// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mg2n/AFI-Extractor/internal/store"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search the findings store with full-text search and filters",
	Long: `Query searches the SQLite findings store using FTS5 full-text search
over AFI and recommendation text, structured filters, or both.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	st, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --classification, --entity, --process, or --document")
	}

	results, err := st.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printFindings(results, jsonOutput)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	classification, _ := cmd.Flags().GetString("classification")
	entity, _ := cmd.Flags().GetString("entity")
	process, _ := cmd.Flags().GetString("process")
	document, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:          strings.Join(args, " "),
		Classification: classification,
		Entity:         entity,
		Process:        process,
		Document:       document,
		MaxResults:     limit,
	}
}

func printFindings(results []types.Finding, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No findings matched.")
		return nil
	}
	for i, f := range results {
		fmt.Printf("%d. %s\n", i+1, f.AFI)
		if f.Classification != "" || f.Entity != "" {
			fmt.Printf("   [%s – %s]\n", f.Classification, f.Entity)
		}
		if f.Recommendation != "" {
			fmt.Printf("   recommendation: %s\n", f.Recommendation)
		}
		fmt.Printf("   %s · %s\n", f.ProcessLabel, f.Document)
	}
	return nil
}

func init() {
	queryCmd.Flags().String("classification", "", "filter by classification (e.g. Major)")
	queryCmd.Flags().String("entity", "", "filter by entity")
	queryCmd.Flags().String("process", "", "filter by process label substring")
	queryCmd.Flags().String("document", "", "filter by source file name")
	queryCmd.Flags().Int("limit", 0, "maximum number of results (default from config)")
	queryCmd.Flags().Bool("json", false, "print results as JSON")
	queryCmd.Flags().String("store-dir", "", "directory holding the findings database (default from config)")

	rootCmd.AddCommand(queryCmd)
}
