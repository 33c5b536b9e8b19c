package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus counts",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ix, err := openIndex(ctx)
	if err != nil {
		return err
	}
	defer ix.Close()

	bank, err := openBank(ctx)
	if err != nil {
		return err
	}
	defer bank.Close()

	s := bank.Stats()
	fmt.Println(headingStyle.Render("Corpus"))
	fmt.Printf("%-16s %d\n", "knowledge points", ix.Total())
	fmt.Printf("%-16s %d\n", "questions", s.Total)
	fmt.Printf("%-16s %d\n", "  atomic", s.Atomic)
	fmt.Printf("%-16s %d\n", "  composite", s.Composite)
	fmt.Printf("%-16s %d\n", "  marked wrong", s.MarkedWrong)
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
