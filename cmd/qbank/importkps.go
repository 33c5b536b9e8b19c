// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwen/qbank/internal/kpindex"
)

var importKPsCmd = &cobra.Command{
	Use:   "import-kps [file]",
	Short: "Import knowledge points from a JSON file",
	Long: `Import-kps reads a JSON array of knowledge points and reconciles it
with the taxonomy under the chosen mode:

  replace  discard the existing taxonomy, keep only the payload
  append   add new kpids, leave existing records untouched
  merge    add new kpids and overwrite existing ones (default)

Records without a kpid and records that would close a parent cycle are
skipped and reported; the rest of the payload still imports. Replace mode
asks for confirmation first unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportKPs,
}

func runImportKPs(cmd *cobra.Command, args []string) error {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := kpindex.ParseMode(modeStr)
	if err != nil {
		return err
	}

	if mode == kpindex.ModeReplace {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd, "replace discards every existing knowledge point; continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ix, err := openIndex(context.Background())
	if err != nil {
		return err
	}
	defer ix.Close()

	report, err := ix.ImportFile(context.Background(), args[0], mode)
	if err != nil {
		return err
	}

	for _, item := range report.Items {
		if item.Action != kpindex.ActionSkipped {
			continue
		}
		kpid := item.KPID
		if kpid == "" {
			kpid = "(no kpid)"
		}
		fmt.Println(warnStyle.Render(fmt.Sprintf("skipped %s: %s", kpid, item.Reason)))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf(
		"added %d, updated %d, skipped %d (%d knowledge points total)",
		report.Added, report.Updated, report.Skipped, report.Total)))
	return nil
}

// confirm prompts on stdout and reads a yes/no answer from the command's
// input stream.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func init() {
	importKPsCmd.Flags().String("mode", "merge", "import mode: replace, append, or merge")
	importKPsCmd.Flags().Bool("yes", false, "skip the confirmation prompt for replace mode")
	rootCmd.AddCommand(importKPsCmd)
}
