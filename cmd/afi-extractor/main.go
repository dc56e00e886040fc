// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the afi-extractor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the afi-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "afi-extractor",
	Short: "Extract Areas for Improvement from audit reports into a workbook",
	Long: `afi-extractor reads narrative audit reports (.docx, .pdf) and emits one
tabular row per Area for Improvement: the finding text, its
classification/entity annotation, the recommendation matched by item
number, the process block it belongs to, and the source file.

The run command processes a whole directory into the workbook; parse,
index, query, and export work with individual documents and the SQLite
findings store.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./afi-extractor.yaml or ~/.config/afi-extractor/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("afi-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "afi-extractor"))
		}
	}

	viper.SetDefault("input_dir", ".")
	viper.SetDefault("workbook.path", "All_AFIs.csv")
	viper.SetDefault("store.dir", "index")
	viper.SetDefault("store.max_results", 50)

	viper.SetEnvPrefix("AFI_EXTRACTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves settings from viper and per-command flag overrides.
func loadConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		InputDir: viper.GetString("input_dir"),
		Workbook: types.WorkbookConfig{Path: viper.GetString("workbook.path")},
		Store: types.StoreConfig{
			Dir:        viper.GetString("store.dir"),
			MaxResults: viper.GetInt("store.max_results"),
		},
	}

	if cmd.Flags().Changed("input-dir") {
		cfg.InputDir, _ = cmd.Flags().GetString("input-dir")
	}
	if cmd.Flags().Changed("workbook") {
		cfg.Workbook.Path, _ = cmd.Flags().GetString("workbook")
	}
	if cmd.Flags().Changed("store-dir") {
		cfg.Store.Dir, _ = cmd.Flags().GetString("store-dir")
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
