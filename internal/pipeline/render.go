package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ppiankov/bacitit/internal/model"
)

// summaryRecords is how many trailing records the terminal summary lists
const summaryRecords = 5

// Renderer writes reports as JSON, Markdown, HTML and terminal text
type Renderer struct {
	includeFooter bool
	markdown      goldmark.Markdown
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// RenderReport writes every requested output, then the summary to stderr
func (r *Renderer) RenderReport(report *model.Report, out model.OutputConfig) error {
	if out.JSON != "" {
		if err := r.RenderJSON(report, out.JSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if out.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", out.JSON)
		}
	}

	if out.Markdown != "" {
		if err := r.RenderMarkdown(report, out.Markdown); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if out.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", out.Markdown)
		}
	}

	if out.HTML != "" {
		if err := r.RenderHTML(report, out.HTML); err != nil {
			return fmt.Errorf("render HTML: %w", err)
		}
		if out.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote HTML: %s\n", out.HTML)
		}
	}

	r.RenderSummary(os.Stderr, report)
	return nil
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// RenderHTML converts the Markdown report to a standalone HTML page
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(r.Markdown(report)), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Bacitit numerals: %s</title>\n", html.EscapeString(report.Recipe))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return os.WriteFile(path, page.Bytes(), 0644)
}

// Markdown renders the report body
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Bacitit numerals\n\n")
	fmt.Fprintf(&b, "- **Recipe:** `%s`\n", report.Recipe)
	fmt.Fprintf(&b, "- **Run:** `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Elapsed:** %s\n", report.Elapsed)
	fmt.Fprintf(&b, "- **Stop:** %s\n", report.Stop)
	fmt.Fprintf(&b, "- **Search space:** %s\n", report.Space)
	fmt.Fprintf(&b, "- **States examined:** %d (valid %d, first conflicts %d, second conflicts %d)\n\n",
		report.Stats.States, report.Stats.Valid, report.Stats.FirstConflicts, report.Stats.SecondConflicts)

	b.WriteString("## Best numerals\n\n")
	if report.Best == nil {
		b.WriteString("_No conflict-free assignment was found._\n\n")
	} else {
		fmt.Fprintf(&b, "Total score: **%.6f**\n\n", report.Best.Score)
		b.WriteString("| Digit | Number | Score |\n|---|---|---|\n")
		for i, n := range report.Best.Numbers {
			fmt.Fprintf(&b, "| %d | %s | %.6f |\n", i, n.Number, n.Score)
		}
		b.WriteString("\n")
	}

	if len(report.Records) > 0 {
		b.WriteString("## Records\n\n")
		b.WriteString("Each row scored at least as well as every row before it.\n\n")
		b.WriteString("| # | Numbers | Score |\n|---|---|---|\n")
		for i, c := range report.Records {
			fmt.Fprintf(&b, "| %d | %s | %.6f |\n", i+1, c.Assignment(), c.Score)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Weights\n\n")
	fmt.Fprintf(&b, "Weight sum: %g\n\n", report.WeightSum)
	b.WriteString("| Digit | Vowel | Candidates | Weights |\n|---|---|---|---|\n")
	for _, s := range report.Slots {
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", s.Digit, s.Vowel, len(s.Candidates), slotWeights(s))
	}
	b.WriteString("\n")

	if len(report.Origins) > 0 {
		b.WriteString("## Origins\n\n")
		b.WriteString("| Digit | Language | Population | Regular weight | Word | IPA | Loan |\n|---|---|---|---|---|---|---|\n")
		for _, o := range report.Origins {
			fmt.Fprintf(&b, "| %d | %s | %g | %.6f | %s | %s | %s |\n",
				o.Digit, o.Language, o.Population, o.RegularWeight, cell(o.Word), cell(o.IPA), o.Loan)
		}
		b.WriteString("\n")
	}

	if len(report.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range report.Signals {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", s.Type, s.Severity, s.Description)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Scores sum the population share of every language whose loanword for a digit contains the chosen consonants. ")
		b.WriteString("They rank candidates; they say nothing about how easy a word is to learn._\n")
	}
	return b.String()
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Bacitit Numerals\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Recipe:   %s\n", report.Recipe)
	fmt.Fprintf(w, "  Stop:     %s after %s\n", report.Stop, report.Elapsed)
	fmt.Fprintf(w, "  States:   %d examined, %d valid\n", report.Stats.States, report.Stats.Valid)
	fmt.Fprintf(w, "  Records:  %d\n", len(report.Records))
	fmt.Fprintf(w, "\n")

	if report.Best == nil {
		fmt.Fprintf(w, "  No conflict-free assignment found.\n")
	} else {
		start := len(report.Records) - summaryRecords
		if start < 0 {
			start = 0
		}
		for _, c := range report.Records[start:] {
			fmt.Fprintf(w, "  %s | %.6f\n", c.Assignment(), c.Score)
		}
	}

	for _, s := range report.Signals {
		if s.Severity == model.SeverityInfo {
			continue
		}
		fmt.Fprintf(w, "  ⚠ %s: %s\n", s.Type, s.Description)
	}
	fmt.Fprintf(w, "\n")
}

// RenderWeights prints the per-digit weight table
func (r *Renderer) RenderWeights(w io.Writer, report *model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIGIT\tVOWEL\tCANDIDATES\tWEIGHTS")
	for _, s := range report.Slots {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.Digit, s.Vowel, len(s.Candidates), slotWeights(s))
	}
	fmt.Fprintf(tw, "\nweight sum\t%g\n", report.WeightSum)
	fmt.Fprintf(tw, "search space\t%s\n", report.Space)
	return tw.Flush()
}

// slotWeights lists a slot's candidates in search order with their weights
func slotWeights(s model.SlotInfo) string {
	if len(s.Candidates) == 0 {
		return "-"
	}
	parts := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		parts[i] = fmt.Sprintf("%s %.4f", c, s.Weights[c])
	}
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}
