package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dxcoder/internal/exitcode"
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/pipeline"
)

var (
	outJSON   string
	outMD     string
	outFormat string
	caseID    string
	source    string
	strict    bool
)

// codeCmd represents the code command
var codeCmd = &cobra.Command{
	Use:   "code [file|-]",
	Short: "Code a single clinical document",
	Long: `Code reads one clinical document and assigns diagnosis codes:
- Extract the clinical context (conditions, stages, organisms, negations)
- Run the domain rule modules in dependency order
- Validate and correct the code set (exclusions, companions, specificity)
- Sequence the principal diagnosis from the reason for encounter
- Score how well the documentation supports the result

The document is read from a file, or from standard input when the path is
"-" or omitted.

Example:
  dxcoder code note.txt
  dxcoder code note.html --format markdown
  dxcoder code note.txt --json result.json --md result.md
  echo "Hypertension: Yes" | dxcoder code`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCode,
}

func init() {
	rootCmd.AddCommand(codeCmd)

	// Output flags
	codeCmd.Flags().StringVar(&outFormat, "format", "summary", "stdout format: summary, json, markdown")
	codeCmd.Flags().StringVar(&outJSON, "json", "", "write the JSON result to this path")
	codeCmd.Flags().StringVar(&outMD, "md", "", "write the Markdown report to this path")

	// Case flags
	codeCmd.Flags().StringVar(&caseID, "id", "", "case identifier (default: derived from the file name or text)")
	codeCmd.Flags().StringVar(&source, "source", "", "originating system recorded with the case")
	codeCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the documentation is insufficient to code")
}

func runCode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	if !cmd.Flags().Changed("format") && cfg.Output.Markdown {
		outFormat = "markdown"
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	loader := pipeline.NewLoader(cmd.InOrStdin(), int64(cfg.Coding.MaxInputBytes))
	cs, err := loader.Load(path)
	if err != nil {
		return exitErr(exitcode.InputError, "load document: %w", err)
	}
	if caseID != "" {
		cs.ID = caseID
	}
	if source != "" {
		cs.Source = source
	}

	log.Debug().Str("path", path).Str("name", cs.Name).Int("bytes", len(cs.Text)).Msg("coding document")

	coder := pipeline.NewCoder(cfg, log)
	result, err := coder.ProcessCase(context.Background(), cs)
	if err != nil {
		return exitErr(exitcode.InputError, "code failed: %w", err)
	}

	if err := render(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if strict && result.Status == model.StatusInsufficientDocumentation {
		return exitErr(exitcode.InsufficientDocumentation, "insufficient documentation to code %s", result.CaseID)
	}
	return nil
}

func render(out io.Writer, result model.Result) error {
	renderer := pipeline.NewRenderer()

	switch outFormat {
	case "summary":
		renderer.Summary(out, result)
	case "json":
		if err := renderer.JSON(out, result); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	case "markdown", "md":
		if err := renderer.Markdown(out, result); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	default:
		return exitErr(exitcode.UsageError, "unknown format %q (want summary, json or markdown)", outFormat)
	}

	if outJSON != "" {
		if err := renderer.WriteFile(outJSON, result, renderer.JSON); err != nil {
			return exitErr(exitcode.ExportError, "write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ JSON result: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.WriteFile(outMD, result, renderer.Markdown); err != nil {
			return exitErr(exitcode.ExportError, "write Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)
		}
	}
	return nil
}
