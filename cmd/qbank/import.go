package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import questions from a JSON file",
	Long: `Import reads a JSON payload of questions and adds them to the bank.
The payload is either a single question object or an array of them; both
forms behave identically. Every accepted question receives a generated
questionId and an import timestamp; caller-supplied values for either are
discarded.

Items that are not valid question records are rejected individually and
reported with their position in the payload; the rest still imports.
Nothing is written unless at least one item is accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	bank, err := openBank(context.Background())
	if err != nil {
		return err
	}
	defer bank.Close()

	report, err := bank.ImportFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	for _, rej := range report.Rejected {
		fmt.Println(warnStyle.Render(fmt.Sprintf("rejected item %d: %s", rej.Index, rej.Reason)))
	}
	if len(report.Accepted) == 0 {
		fmt.Println(warnStyle.Render("nothing imported"))
		return nil
	}

	for _, q := range report.Accepted {
		fmt.Printf("%s  %s\n", q.QuestionID, truncate(q.Stem, 60))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf(
		"imported %d question(s), %d in the bank", len(report.Accepted), bank.Total())))
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
