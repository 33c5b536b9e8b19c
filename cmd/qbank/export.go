package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export knowledge points or questions to YAML or JSON",
	Long: `Export writes a collection to a file. --what selects the collection
(kps or questions); questions support the same filter flags as find for
partial exports. A JSON export is a valid payload for the matching import
command.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	what, _ := cmd.Flags().GetString("what")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	switch format {
	case "yaml", "json":
	case "":
		format = "yaml"
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if out == "" {
		out = "export." + format
	}

	ctx := context.Background()
	switch what {
	case "kps":
		ix, err := openIndex(ctx)
		if err != nil {
			return err
		}
		defer ix.Close()

		if format == "yaml" {
			err = ix.ExportYAML(out)
		} else {
			err = ix.ExportJSON(out)
		}
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Exported %d knowledge points to %s", ix.Total(), out)))
	case "questions", "":
		bank, err := openBank(ctx)
		if err != nil {
			return err
		}
		defer bank.Close()

		f := filterFromFlags(cmd)
		n := len(bank.Find(f))
		if format == "yaml" {
			err = bank.ExportYAML(out, f)
		} else {
			err = bank.ExportJSON(out, f)
		}
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Exported %d questions to %s", n, out)))
	default:
		return fmt.Errorf("unknown collection %q: use kps or questions", what)
	}

	return nil
}

func init() {
	exportCmd.Flags().String("what", "questions", "collection to export: kps or questions")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output path (default: export.<format>)")
	exportCmd.Flags().String("text", "", "filter questions by stem substring")
	exportCmd.Flags().String("kpid", "", "filter questions by referenced knowledge point")
	exportCmd.Flags().String("source", "", "filter questions by exact source")
	exportCmd.Flags().String("qtype", "", "filter questions by question type")
	exportCmd.Flags().Bool("wrong", false, "export only questions marked wrong")
	rootCmd.AddCommand(exportCmd)
}
