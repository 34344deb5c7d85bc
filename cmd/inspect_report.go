package cmd

import (
	"fmt"
	"sort"

	"garim-lab/internal/report"
	"garim-lab/internal/ui"

	"github.com/spf13/cobra"
)

var inspectReportCmd = &cobra.Command{
	Use:   "inspect-report <markdown_path>",
	Short: "Print the front matter of an exported report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := report.ParseFile(args[0])
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(doc.Frontmatter))
		for k := range doc.Frontmatter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w := cmd.OutOrStdout()
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %v\n", k, doc.Frontmatter[k])
		}
		fmt.Fprintf(w, "body bytes: %d\n", len(doc.Body))

		if render, _ := cmd.Flags().GetBool("render"); render {
			out, err := ui.Markdown(doc.Body, "", 0)
			if err != nil {
				return err
			}
			fmt.Fprint(w, out)
		}
		return nil
	},
}

func init() {
	inspectReportCmd.Flags().Bool("render", false, "also render the report body for the terminal")
	rootCmd.AddCommand(inspectReportCmd)
}
