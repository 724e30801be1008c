package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/dxcoder/internal/exitcode"
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/pipeline"
	"github.com/ppiankov/dxcoder/internal/worker"
)

var (
	outputDir    string
	parquetPath  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|cases.jsonl|list.txt>",
	Short: "Code many clinical documents in parallel",
	Long: `Batch codes many documents concurrently:
- Read every file in a directory, a JSON Lines file of cases
  ({"id", "source", "text"} per line), or a list of document paths
- Code cases in parallel with a configurable worker count
- Throttle per source when a rate is configured
- Write per-case reports and an optional Parquet export of all codes

Example:
  dxcoder batch ./notes
  dxcoder batch cases.jsonl --workers 8 --output-dir ./coded
  dxcoder batch notes.txt --parquet codes.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().Int("workers", 4, "number of concurrent workers")
	batchCmd.Flags().Float64("rate", 0, "cases per second per source (0 disables throttling)")
	batchCmd.Flags().Int("burst", 5, "rate limiter burst size")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Output flags
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write a JSON and Markdown report per case to this directory")
	batchCmd.Flags().StringVar(&parquetPath, "parquet", "", "export all codes to this Parquet file")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("rate_limiting.requests_per_second", batchCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("rate_limiting.burst_size", batchCmd.Flags().Lookup("burst"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  dxcoder Batch Coding\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	if cfg.RateLimiting.RequestsPerSecond > 0 {
		fmt.Fprintf(os.Stderr, "  Rate:         %.2f cases/s per source\n", cfg.RateLimiting.RequestsPerSecond)
	}
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	}
	if parquetPath != "" {
		fmt.Fprintf(os.Stderr, "  Parquet:      %s\n", parquetPath)
	}
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return exitErr(exitcode.ExportError, "create output directory: %w", err)
		}
	}

	coder := pipeline.NewCoder(cfg, log)
	loader := pipeline.NewLoader(cmd.InOrStdin(), int64(cfg.Coding.MaxInputBytes))
	processor := worker.NewBatchProcessor(coder, cfg.Concurrency.Workers,
		cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize, loader, log)

	start := time.Now()
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return &ExitError{Code: exitcode.InputError, Err: fmt.Errorf("process file: %w", err)}
	}

	summary := writeReports(results)

	if parquetPath != "" {
		if err := worker.ExportParquet(parquetPath, results); err != nil {
			return &ExitError{Code: exitcode.ExportError, Err: err}
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d cases\n", len(results))
	fmt.Fprintf(os.Stderr, "  Coded:         %d\n", summary.coded)
	fmt.Fprintf(os.Stderr, "  Insufficient:  %d\n", summary.insufficient)
	fmt.Fprintf(os.Stderr, "  Failures:      %d\n", summary.failed)
	fmt.Fprintf(os.Stderr, "  Duration:      %.1fs\n", time.Since(start).Seconds())
	if hits, misses, ok := coder.CacheStats(); ok && verbose {
		fmt.Fprintf(os.Stderr, "  Cache:         %d hits, %d misses\n", hits, misses)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if summary.failed > 0 {
		return exitErr(exitcode.PartialSuccess, "%d of %d cases failed", summary.failed, len(results))
	}
	return nil
}

type batchSummary struct {
	coded        int
	insufficient int
	failed       int
}

func writeReports(results []*worker.CaseResult) batchSummary {
	var s batchSummary
	renderer := pipeline.NewRenderer()

	for _, r := range results {
		if r.Error != nil {
			s.failed++
			var pe *worker.PhaseError
			if errors.As(r.Error, &pe) {
				fmt.Fprintf(os.Stderr, "✗ %s [%s]: %v\n", r.Case.ID, pe.Phase, pe.Err)
			} else {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Case.ID, r.Error)
			}
			continue
		}

		if r.Result.Status == model.StatusInsufficientDocumentation {
			s.insufficient++
		} else {
			s.coded++
		}
		renderer.Summary(os.Stderr, r.Result)

		if outputDir == "" {
			continue
		}
		slug := sanitizeFilename(r.Result.CaseID)
		if err := renderer.WriteFile(filepath.Join(outputDir, slug+".json"), r.Result, renderer.JSON); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", r.Result.CaseID, err)
		}
		if err := renderer.WriteFile(filepath.Join(outputDir, slug+".md"), r.Result, renderer.Markdown); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", r.Result.CaseID, err)
		}
	}
	return s
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a case id for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, ".")
	if s == "" {
		s = "case"
	}

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
