package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/pipeline"
	"github.com/ppiankov/bacitit/internal/recipe"
)

var (
	outputDir string
	batchMD   bool
	batchHTML bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <pattern>",
	Short: "Generate numerals for every recipe matching a glob",
	Long: `Batch runs generate for each recipe matched by a glob pattern
(doublestar syntax, so ** crosses directories), one after another:
- Each recipe gets its own timeout and state budget
- Reports are named after the recipe file
- A failing recipe is reported and the batch continues

Example:
  bacitit batch 'recipes/*.json'
  bacitit batch 'recipes/**/*.{json,yaml}' --output-dir ./reports --md
  bacitit batch 'recipes/*.yaml' --timeout 5m --max-states 100000000`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./bacitit-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&batchMD, "md", false, "also write a Markdown report per recipe")
	batchCmd.Flags().BoolVar(&batchHTML, "html", false, "also write an HTML report per recipe")

	addSearchFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySearchFlags(cmd, cfg)

	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no recipes match %q", pattern)
	}
	sort.Strings(files)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Bacitit Batch Generation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Pattern:      %s\n", pattern)
	fmt.Fprintf(os.Stderr, "  Recipes:      %d\n", len(files))
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v per recipe\n", cfg.Search.Timeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, err := pipeline.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}

	successCount := 0
	failureCount := 0

	for _, file := range files {
		out := batchOutput(cfg.Output, file)

		loaded, err := recipe.Load(file)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
			continue
		}

		result, err := g.Run(cmd.Context(), loaded)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
			continue
		}

		if err := g.Renderer().RenderReport(result.Report, out); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
			continue
		}

		successCount++
		if best := result.Report.Best; best != nil {
			fmt.Fprintf(os.Stderr, "✓ %s (%s, best %.6f)\n", file, result.Report.Stop, best.Score)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s (%s, no solution)\n", file, result.Report.Stop)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d recipes\n", len(files))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d recipes failed", failureCount, len(files))
	}
	return nil
}

// batchOutput names the reports of one recipe after its file
func batchOutput(base model.OutputConfig, file string) model.OutputConfig {
	out := base
	stem := reportStem(file)
	out.JSON = filepath.Join(outputDir, stem+".json")
	out.Markdown = ""
	out.HTML = ""
	if batchMD {
		out.Markdown = filepath.Join(outputDir, stem+".md")
	}
	if batchHTML {
		out.HTML = filepath.Join(outputDir, stem+".html")
	}
	return out
}

// reportStem turns a recipe path into a file name stem
func reportStem(path string) string {
	s := filepath.Base(path)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	replacer := strings.NewReplacer(
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "recipe"
	}
	return s
}
