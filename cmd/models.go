package cmd

import (
	"fmt"
	"strings"

	"garim-lab/internal/ai"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models visible to an API key and show which one would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		key, err := keyFromFlags(cmd)
		if err != nil {
			return err
		}
		dial := ai.GeminiDialer(nil)
		if strings.EqualFold(cfg.AI.Provider, "openai") {
			dial = ai.OpenAIDialer(cfg.AI.BaseURL)
		}
		p, err := dial(cmd.Context(), key)
		if err != nil {
			return err
		}
		models, err := p.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, m := range models {
			mark := " "
			if m.CanGenerate {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %s\n", mark, m.Name)
		}
		chosen, ok := ai.ChooseModel(models, cfg.AI.Prefer)
		if !ok {
			return &ai.Error{Kind: ai.KindNoModelAvailable}
		}
		fmt.Fprintf(w, "selected: %s\n", chosen)
		return nil
	},
}

func init() {
	modelsCmd.Flags().String("key", "", "API key (default: $GARIM_AI_API_KEY)")
	rootCmd.AddCommand(modelsCmd)
}
