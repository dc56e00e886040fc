// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mg2n/AFI-Extractor/internal/sink"
	"github.com/Mg2n/AFI-Extractor/internal/store"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest the workbook into the SQLite findings store",
	Long: `Index reads every row of the workbook and ingests it into the SQLite
store with FTS5 indexing, grouped by source document. Re-indexing a
document replaces its previous rows.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	sheet, err := sink.Open(cfg.Workbook.Path)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	byDocument := map[string][]types.Finding{}
	var order []string
	for _, f := range sheet.Findings() {
		if _, seen := byDocument[f.Document]; !seen {
			order = append(order, f.Document)
		}
		byDocument[f.Document] = append(byDocument[f.Document], f)
	}

	ctx := context.Background()
	rows := 0
	for _, document := range order {
		findings := byDocument[document]
		if err := st.Ingest(ctx, document, findings); err != nil {
			return err
		}
		rows += len(findings)
	}

	fmt.Printf("Indexed %d rows from %d document(s).\n", rows, len(order))
	return nil
}

func init() {
	indexCmd.Flags().String("workbook", "", "workbook file to read (default from config)")
	indexCmd.Flags().String("store-dir", "", "directory holding the findings database (default from config)")

	rootCmd.AddCommand(indexCmd)
}
