// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mg2n/AFI-Extractor/internal/runner"
	"github.com/Mg2n/AFI-Extractor/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every document in the input directory into the workbook",
	Long: `Run discovers all .docx and .pdf documents in the input directory
(editor lock files excluded), parses each into findings, and appends one
row per finding to the workbook. Documents are processed in
case-insensitive name order; a document that fails to parse is reported
and skipped.

With --store the findings are also ingested into the SQLite store for
later querying.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	var st *store.Store
	if useStore, _ := cmd.Flags().GetBool("store"); useStore {
		var err error
		st, err = store.New(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	summary, err := runner.Run(context.Background(), cfg, st, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

func init() {
	runCmd.Flags().String("input-dir", "", "directory scanned for documents (default from config)")
	runCmd.Flags().String("workbook", "", "workbook file to append to (default from config)")
	runCmd.Flags().Bool("store", false, "also ingest findings into the SQLite store")
	runCmd.Flags().String("store-dir", "", "directory holding the findings database (default from config)")

	rootCmd.AddCommand(runCmd)
}
