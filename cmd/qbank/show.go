package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [questionId]",
	Short: "Show a question with its parent and children",
	Long: `Show prints the full record for one question, then its parent (when
the question belongs to a composite group) and its children (when it is
the composite parent itself).`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	bank, err := openBank(context.Background())
	if err != nil {
		return err
	}
	defer bank.Close()

	qctx := bank.GetContext(args[0])
	if qctx.Target == nil {
		return fmt.Errorf("question %q not found", args[0])
	}

	fmt.Println(headingStyle.Render("Question " + qctx.Target.QuestionID))
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qctx.Target); err != nil {
		return err
	}

	if qctx.Parent != nil {
		fmt.Println(headingStyle.Render("Parent"))
		fmt.Printf("%s  %s\n", qctx.Parent.QuestionID, truncate(qctx.Parent.Stem, 70))
	}
	if len(qctx.Children) > 0 {
		fmt.Println(headingStyle.Render(fmt.Sprintf("Children (%d)", len(qctx.Children))))
		for _, c := range qctx.Children {
			fmt.Printf("%s  %s\n", c.QuestionID, truncate(c.Stem, 70))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
