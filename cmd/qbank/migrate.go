package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jwen/qbank/internal/questionbank"
	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Upgrade a question file from before parent/child structure",
	Long: `Migrate adds structureType and parentId defaults to question records
written before the composite structure existed. The file is backed up
next to itself first, already-upgraded records are left alone, and fields
the current schema does not know survive untouched. Without an argument
it migrates the configured questions file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg := storeConfig()
		if cfg.Backend != types.BackendFile && cfg.Backend != "" {
			return fmt.Errorf("migrate operates on JSON question files; the configured backend is %q", cfg.Backend)
		}
		path = filepath.Join(cfg.DataDir, recordstore.CollectionQuestions+".json")
	}

	_, err := questionbank.Migrate(context.Background(), path, os.Stdout)
	return err
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
