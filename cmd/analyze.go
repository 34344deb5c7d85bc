package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"garim-lab/internal/dashboard"
	"garim-lab/internal/report"
	"garim-lab/internal/ui"

	"github.com/spf13/cobra"
)

// keyFromFlags returns --key or the GARIM_AI_API_KEY environment variable.
func keyFromFlags(cmd *cobra.Command) (string, error) {
	key, _ := cmd.Flags().GetString("key")
	if strings.TrimSpace(key) == "" {
		key = os.Getenv("GARIM_AI_API_KEY")
	}
	if strings.TrimSpace(key) == "" {
		return "", errors.New("missing API key: pass --key or set GARIM_AI_API_KEY")
	}
	return key, nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse one headline for bias and fact checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		source, _ := cmd.Flags().GetString("source")
		out, _ := cmd.Flags().GetString("out")
		if strings.TrimSpace(title) == "" {
			return errors.New("--title is required")
		}
		key, err := keyFromFlags(cmd)
		if err != nil {
			return err
		}

		res, err := newAnalyzer(GetConfig()).Analyze(cmd.Context(), title, source, key)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Analysis(dashboard.NewAnalysisView(title, res)))

		if out == "" {
			return nil
		}
		md, err := report.Render(report.Data{Title: title, Source: source, AnalysedAt: time.Now(), Analysis: res})
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("title", "", "headline to analyse")
	analyzeCmd.Flags().String("source", "", "publishing outlet")
	analyzeCmd.Flags().String("key", "", "API key (default: $GARIM_AI_API_KEY)")
	analyzeCmd.Flags().String("out", "", "write a Markdown report to this path")
	rootCmd.AddCommand(analyzeCmd)
}
