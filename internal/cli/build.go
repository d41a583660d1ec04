package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lexaindex/lexbuild/internal/model"
	"github.com/lexaindex/lexbuild/internal/pipeline"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	inputRoot   string
	outputDir   string
	minAICount  int
	ratioSmooth float64
	mode        string
	distinct    bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build dashboard JSON datasets from experiment CSV outputs",
	Long: `Build scans the input root for experiment results and converts each
las_word_<lang>.csv / summary_<lang>.json pair into one dashboard
dataset:
- Derive (register, model) from the directory layout
- Normalize raw counts into occurrences per million
- Compute smoothed ratio, impact (LPR) and optional distinctiveness
- Rank rows by LAS volume and by impact
- Write compact JSON plus a global index.json inventory

Example:
  lexbuild build
  lexbuild build --input-root ./csv_files --output-dir ./data
  lexbuild build --mode compact --min-ai-count-for-impact 10`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	defaults := model.DefaultConfig()
	buildCmd.Flags().StringVar(&inputRoot, "input-root", defaults.InputRoot, "root directory containing experiment outputs")
	buildCmd.Flags().StringVar(&outputDir, "output-dir", defaults.OutputDir, "output directory for dashboard JSON files")
	buildCmd.Flags().IntVar(&minAICount, "min-ai-count-for-impact", defaults.MinAICountForImpact, "minimum AI count (c_M) for a word to get a non-zero impact")
	buildCmd.Flags().Float64Var(&ratioSmooth, "ratio-smooth", defaults.RatioSmooth, "additive smoothing constant for ratio=(c_M+s)/(c_H+s)")
	buildCmd.Flags().StringVar(&mode, "mode", defaults.Mode, "full = write all rows; compact = drop rows with c_M == 0")
	buildCmd.Flags().BoolVar(&distinct, "distinct", defaults.Distinct, "compute KL distinctiveness when prevalence columns exist")
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.InputRoot = inputRoot
	cfg.OutputDir = outputDir
	cfg.MinAICountForImpact = minAICount
	cfg.RatioSmooth = ratioSmooth
	cfg.Mode = mode
	cfg.Distinct = distinct
	cfg.Output.Verbose = verbose

	if !cfg.Valid() {
		return fmt.Errorf("invalid mode %q (expected %q or %q)", cfg.Mode, model.ModeFull, model.ModeCompact)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Lexbuild Dataset Build\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input root:   %s\n", cfg.InputRoot)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "  Mode:         %s (min_ai_count_for_impact=%d, ratio_smooth=%g)\n",
		cfg.Mode, cfg.MinAICountForImpact, cfg.RatioSmooth)
	fmt.Fprintf(os.Stderr, "\n")

	result, err := pipeline.New(cfg).Run()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	if len(result.Datasets) > 0 {
		fmt.Fprintln(os.Stderr, datasetTable(result.Datasets))
		fmt.Fprintf(os.Stderr, "\n")
	}

	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Build Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Datasets:  %d\n", len(result.Datasets))
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", result.Failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// datasetTable renders the per-dataset run summary.
func datasetTable(datasets []pipeline.DatasetInfo) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Lang", "Language", "Register", "Model", "Pairs", "Rows", "Dropped"})
	for _, d := range datasets {
		tw.AppendRow(table.Row{
			d.Entry.Lang,
			languageName(d.Entry.Lang),
			d.Entry.Register,
			d.Entry.Model,
			d.NPairs,
			d.RowsWritten,
			d.RowsDropped,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	return tw.Render()
}

// languageName resolves a language token like "en" to a display name,
// falling back to the raw token for anything BCP 47 cannot place.
func languageName(lang string) string {
	tag := language.Make(lang)
	if tag == language.Und {
		return lang
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return lang
}
