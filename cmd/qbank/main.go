// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the qbank CLI.
//
// qbank maintains a personal revision corpus: a hierarchical knowledge
// point taxonomy and a question bank whose entries reference taxonomy
// nodes. Each operation is a subcommand: outline, import-kps, import,
// find, show, stats, export, and migrate.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging; bound to --verbose.
var verbose bool

// logger is the process-wide structured logger, built in PersistentPreRunE
// and handed to every store constructor.
var logger *zap.Logger

// rootCmd is the base command for the qbank CLI.
var rootCmd = &cobra.Command{
	Use:   "qbank",
	Short: "Personal knowledge taxonomy and question bank",
	Long: `qbank maintains a local revision corpus in plain data files: a
hierarchical knowledge point taxonomy and a question bank whose entries
reference taxonomy nodes.

Knowledge points carry stable human-assigned identifiers (kpids) and form
a tree through parent references. Questions receive generated identifiers
at import and are never edited afterwards; a mistake is fixed by importing
a corrected copy. Use outline to inspect the taxonomy, import-kps and
import to grow the corpus, and find, show, stats, and export to query it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./qbank.yaml or ~/.config/qbank/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the data files (default: data)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: file or sqlite (default: file)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("qbank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "qbank"))
		}
	}

	viper.SetEnvPrefix("QBANK")
	viper.AutomaticEnv()
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("backend", "file")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
