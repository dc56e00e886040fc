// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mg2n/AFI-Extractor/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the findings store to YAML or JSON",
	Long: `Export writes the stored findings to export.yaml or export.json in the
store directory. The same filters as query apply.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	st, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd, args)
	format, _ := cmd.Flags().GetString("format")
	ctx := context.Background()

	switch format {
	case "yaml":
		path := filepath.Join(cfg.Store.Dir, "export.yaml")
		if err := st.ExportYAML(ctx, opts, path); err != nil {
			return err
		}
		fmt.Println("Exported →", path)
	case "json":
		path := filepath.Join(cfg.Store.Dir, "export.json")
		if err := st.ExportJSON(ctx, opts, path); err != nil {
			return err
		}
		fmt.Println("Exported →", path)
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("classification", "", "filter by classification")
	exportCmd.Flags().String("entity", "", "filter by entity")
	exportCmd.Flags().String("process", "", "filter by process label substring")
	exportCmd.Flags().String("document", "", "filter by source file name")
	exportCmd.Flags().String("store-dir", "", "directory holding the findings database (default from config)")

	rootCmd.AddCommand(exportCmd)
}
