package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the knowledge point taxonomy as an indented tree",
	Long: `Outline walks the knowledge point tree depth-first and prints one line
per node, indented by depth. Roots and the children of each node are
ordered by kpid, so the output is stable across runs.`,
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	ix, err := openIndex(context.Background())
	if err != nil {
		return err
	}
	defer ix.Close()

	entries := ix.Outline()
	if len(entries) == 0 {
		fmt.Println("No knowledge points found.")
		return nil
	}

	maxTitle, _ := cmd.Flags().GetInt("max-title")
	for _, e := range entries {
		line := fmt.Sprintf("%s%s  %s", strings.Repeat("  ", e.Depth), e.KP.KPID, truncate(e.KP.Title, maxTitle))
		if e.Depth == 0 {
			line = headingStyle.Render(line)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d knowledge points\n", ix.Total())
	return nil
}

func init() {
	outlineCmd.Flags().Int("max-title", 30, "truncate titles longer than this many characters")
	rootCmd.AddCommand(outlineCmd)
}
