package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/pipeline"
)

// Coder codes one case
type Coder interface {
	ProcessCase(ctx context.Context, cs pipeline.Case) (model.Result, error)
}

// CodeJob codes one case of a batch
type CodeJob struct {
	Index   int
	Case    pipeline.Case
	Coder   Coder
	Limiter *Limiter
}

// Execute waits for the case's source rate limit, then codes it
func (j *CodeJob) Execute(ctx context.Context) Result {
	out := &CaseResult{Index: j.Index, Case: j.Case}

	if err := j.Limiter.Wait(ctx, j.Case.Source); err != nil {
		out.Error = &PhaseError{Phase: PhaseRateLimit, CaseID: j.Case.ID, Err: err}
		return out
	}

	result, err := j.Coder.ProcessCase(ctx, j.Case)
	if err != nil {
		out.Error = &PhaseError{Phase: PhaseCode, CaseID: j.Case.ID, Err: err}
		return out
	}
	out.Result = result
	return out
}

// CaseResult is the outcome of one batch case
type CaseResult struct {
	Index  int
	Case   pipeline.Case
	Result model.Result
	Error  error
}

// GetError returns the error from the case result
func (r *CaseResult) GetError() error {
	return r.Error
}

// BatchProcessor codes many cases concurrently
type BatchProcessor struct {
	coder       Coder
	concurrency int
	limiter     *Limiter
	loader      *pipeline.Loader
	logger      zerolog.Logger
}

// NewBatchProcessor creates a new batch processor. A zero rate disables
// per-source throttling.
func NewBatchProcessor(coder Coder, concurrency int, casesPerSecond float64, burst int, loader *pipeline.Loader, logger zerolog.Logger) *BatchProcessor {
	return &BatchProcessor{
		coder:       coder,
		concurrency: concurrency,
		limiter:     NewLimiter(casesPerSecond, burst),
		loader:      loader,
		logger:      logger,
	}
}

// ProcessCases codes the cases concurrently and returns results in input
// order. Cases left unprocessed by cancellation are reported as errors.
func (b *BatchProcessor) ProcessCases(ctx context.Context, cases []pipeline.Case) []*CaseResult {
	if len(cases) == 0 {
		return []*CaseResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	out := make([]*CaseResult, len(cases))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range pool.Results() {
			cr := r.(*CaseResult)
			out[cr.Index] = cr
		}
	}()

	for i, cs := range cases {
		if !pool.Submit(&CodeJob{Index: i, Case: cs, Coder: b.coder, Limiter: b.limiter}) {
			break
		}
	}
	pool.Close()
	<-done

	for i, cr := range out {
		if cr == nil {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			out[i] = &CaseResult{Index: i, Case: cases[i], Error: &PhaseError{Phase: PhaseCode, CaseID: cases[i].ID, Err: err}}
		}
	}

	failed := 0
	for _, cr := range out {
		if cr.Error != nil {
			failed++
		}
	}
	b.logger.Debug().Int("cases", len(cases)).Int("failed", failed).Msg("batch coded")

	return out
}

// ProcessFile reads cases from a path and codes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*CaseResult, error) {
	cases, err := ReadCases(path, b.loader)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseLoad, Err: err}
	}

	return b.ProcessCases(ctx, cases), nil
}

// ReadCases reads a batch from a path: a directory of documents, a JSON
// Lines file of cases, or a list of document paths (one per line, relative
// to the list).
func ReadCases(path string, loader *pipeline.Loader) ([]pipeline.Case, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return readDir(path, loader)
	case strings.EqualFold(filepath.Ext(path), ".jsonl"):
		return readJSONL(path)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		return nil, err
	}
	var cases []pipeline.Case
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		cs, err := loader.Load(p)
		if err != nil {
			return nil, err
		}
		cases = append(cases, cs)
	}
	return cases, nil
}

func readDir(dir string, loader *pipeline.Loader) ([]pipeline.Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cases := make([]pipeline.Case, 0, len(names))
	for _, name := range names {
		cs, err := loader.Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		cases = append(cases, cs)
	}
	return cases, nil
}

func readJSONL(path string) ([]pipeline.Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var cases []pipeline.Case
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var cs pipeline.Case
		if err := json.Unmarshal([]byte(raw), &cs); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if cs.ID == "" {
			cs.ID = fmt.Sprintf("%s-%d", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), line)
		}
		cases = append(cases, cs)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return cases, nil
}

// ReadPathsFromFile reads document paths from a file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
