package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bacitit/internal/pipeline"
	"github.com/ppiankov/bacitit/internal/recipe"
)

var (
	outJSON    string
	outMD      string
	outHTML    string
	outMetrics string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <recipe>",
	Short: "Search the numeral words of one recipe",
	Long: `Generate loads a recipe (JSON or YAML), weighs every consonant of every
digit by the populations whose loanword contains it, and enumerates all
assignments in which no consonant starts two digits or ends two digits.

Every assignment that scores at least as well as all earlier ones is
logged as it is found and kept in the report; the last one is the best.

Example:
  bacitit generate recipe.json
  bacitit generate recipe.yaml --md numerals.md --html numerals.html
  bacitit generate recipe.json --timeout 10m --order weight`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default from config: numerals.json)")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path (optional)")
	generateCmd.Flags().StringVar(&outMetrics, "metrics", "", "write search counters in Prometheus text format (optional)")

	addSearchFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySearchFlags(cmd, cfg)
	if outJSON != "" {
		cfg.Output.JSON = outJSON
	}
	if outMD != "" {
		cfg.Output.Markdown = outMD
	}
	if outHTML != "" {
		cfg.Output.HTML = outHTML
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Recipe: %s\n", path)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", cfg.Search.Timeout)
		fmt.Fprintf(os.Stderr, "Candidates: %s (%s order)\n", cfg.Search.Candidates, cfg.Search.Order)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	g, err := pipeline.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}

	loaded, err := recipe.Load(path)
	if err != nil {
		return err
	}

	result, err := g.Run(cmd.Context(), loaded)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if err := g.Renderer().RenderReport(result.Report, cfg.Output); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outMetrics != "" {
		if err := writeMetrics(result, outMetrics); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func writeMetrics(result *pipeline.Result, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return result.Metrics.WriteText(f)
}
