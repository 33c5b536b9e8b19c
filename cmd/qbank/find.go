// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwen/qbank/internal/questionbank"
	"github.com/jwen/qbank/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the question bank with filters",
	Long: `Find lists the questions matching every supplied filter. At least one
filter is required; an unfiltered listing is what export is for.

Filtering by a kpid that is missing from the taxonomy still searches the
bank (questions may reference points imported later), but prints a
warning first.`,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	f := filterFromFlags(cmd)
	if f.IsEmpty() {
		return fmt.Errorf("at least one filter required: --text, --kpid, --source, --qtype, or --wrong")
	}

	if f.KPID != "" {
		ix, err := openIndex(context.Background())
		if err != nil {
			return err
		}
		if _, ok := ix.Get(f.KPID); !ok {
			fmt.Println(warnStyle.Render(fmt.Sprintf("warning: kpid %q is not in the taxonomy", f.KPID)))
		}
		ix.Close()
	}

	bank, err := openBank(context.Background())
	if err != nil {
		return err
	}
	defer bank.Close()

	// A bare --kpid is the common lookup and has a dedicated path.
	var results []types.Question
	if f == (questionbank.Filter{KPID: f.KPID}) {
		results = bank.FindByKnowledgePoint(f.KPID)
	} else {
		results = bank.Find(f)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No questions found.")
		return nil
	}
	printQuestionTable(results)
	return nil
}

func filterFromFlags(cmd *cobra.Command) questionbank.Filter {
	text, _ := cmd.Flags().GetString("text")
	kpid, _ := cmd.Flags().GetString("kpid")
	source, _ := cmd.Flags().GetString("source")
	qtype, _ := cmd.Flags().GetString("qtype")
	wrong, _ := cmd.Flags().GetBool("wrong")

	return questionbank.Filter{
		Text:         text,
		KPID:         kpid,
		Source:       source,
		QuestionType: qtype,
		WrongOnly:    wrong,
	}
}

func printQuestionTable(questions []types.Question) {
	fmt.Fprintf(os.Stdout, "%-36s  %-10s  %-44s  %-16s  %s\n",
		"ID", "Type", "Stem", "Source", "KPs")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, q := range questions {
		line := fmt.Sprintf("%-36s  %-10s  %-44s  %-16s  %s",
			q.QuestionID,
			truncate(q.EffectiveType(), 10),
			truncate(q.Stem, 44),
			truncate(q.Metadata.Source, 16),
			truncate(strings.Join(q.Metadata.KnowledgePointIDs, ","), 24))
		if q.Metadata.MarkedWrong {
			line = warnStyle.Render(line)
		}
		fmt.Fprintln(os.Stdout, line)
	}

	fmt.Fprintf(os.Stdout, "\n%d questions\n", len(questions))
}

func init() {
	findCmd.Flags().String("text", "", "substring match against the stem")
	findCmd.Flags().String("kpid", "", "filter by referenced knowledge point")
	findCmd.Flags().String("source", "", "filter by exact metadata source")
	findCmd.Flags().String("qtype", "", "filter by question type")
	findCmd.Flags().Bool("wrong", false, "only questions marked wrong")
	findCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(findCmd)
}
