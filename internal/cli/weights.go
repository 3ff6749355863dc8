package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/pipeline"
	"github.com/ppiankov/bacitit/internal/recipe"
)

// weightsCmd represents the weights command
var weightsCmd = &cobra.Command{
	Use:   "weights <recipe>",
	Short: "Show the per-digit consonant weights of a recipe",
	Long: `Weights prepares a recipe without searching and prints, for every digit,
its vowel, its candidate consonants in search order and their weights.

Use it to spot digits with too few candidates before a long search.

Example:
  bacitit weights recipe.json
  bacitit weights recipe.yaml --candidates all --order weight`,
	Args: cobra.ExactArgs(1),
	RunE: runWeights,
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().StringVar(&candidates, "candidates", model.CandidatesWeighted, "candidate consonants per digit (weighted, all)")
	weightsCmd.Flags().StringVar(&order, "order", model.OrderPhoneme, "candidate order (phoneme, weight)")
}

func runWeights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("candidates") {
		cfg.Search.Candidates = candidates
	}
	if cmd.Flags().Changed("order") {
		cfg.Search.Order = order
	}

	g, err := pipeline.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}

	loaded, err := recipe.Load(args[0])
	if err != nil {
		return err
	}

	report, err := g.Describe(loaded)
	if err != nil {
		return err
	}

	if err := g.Renderer().RenderWeights(os.Stdout, report); err != nil {
		return err
	}
	for _, s := range report.Signals {
		fmt.Fprintf(os.Stderr, "⚠ %s: %s\n", s.Type, s.Description)
	}
	return nil
}
