package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/cache"
	"github.com/ppiankov/dxcoder/internal/extract"
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/rules"
	"github.com/ppiankov/dxcoder/internal/score"
	"github.com/ppiankov/dxcoder/internal/validate"
)

// caseNamespace scopes derived case ids.
var caseNamespace = uuid.MustParse("9b3c6f0e-5d2a-4c1e-8f47-2a6d1e0b7c53")

// Coder runs extraction, the rule engine, validation, and scoring for one
// document at a time. It holds no per-case state and is safe for concurrent
// use.
type Coder struct {
	extractor *extract.Extractor
	engine    *rules.Engine
	validator *validate.Validator
	scorer    *score.Scorer
	cache     cache.Cache // nil disables memoization
	cfg       *model.Config
	logger    zerolog.Logger
}

// NewCoder creates a coder with the given configuration
func NewCoder(cfg *model.Config, logger zerolog.Logger) *Coder {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.New(cfg.Cache.TTL, cfg.Cache.Dir)
	}

	return &Coder{
		extractor: extract.NewExtractor(cfg.Coding, logger),
		engine:    rules.NewDefaultEngine(logger),
		validator: validate.NewValidator(logger, passes(cfg.Coding)...),
		scorer:    score.NewScorer(),
		cache:     c,
		cfg:       cfg,
		logger:    logger,
	}
}

func passes(cfg model.CodingConfig) []validate.Pass {
	list := []validate.Pass{validate.Structural{}, validate.Exclusion{}, validate.Companion{}}
	if cfg.Specificity {
		list = append(list, validate.Specificity{})
	}
	return append(list, validate.Fallback{Disabled: !cfg.Fallback}, validate.Sequence{})
}

var (
	defaultCoder     *Coder
	defaultCoderOnce sync.Once
)

// ProcessCase codes one document with the default configuration.
func ProcessCase(raw string) model.Result {
	defaultCoderOnce.Do(func() {
		defaultCoder = NewCoder(model.DefaultConfig(), zerolog.Nop())
	})
	return defaultCoder.Process(raw)
}

// Process codes one document. It never fails: unusable input yields an
// insufficient documentation result with warnings.
func (c *Coder) Process(raw string) model.Result {
	return c.code(Case{Text: raw})
}

// ProcessCase codes one case, honoring cancellation before work starts.
func (c *Coder) ProcessCase(ctx context.Context, cs Case) (model.Result, error) {
	if err := ctx.Err(); err != nil {
		return model.Result{}, fmt.Errorf("case %s: %w", cs.ID, err)
	}
	return c.code(cs), nil
}

func (c *Coder) code(cs Case) model.Result {
	id := cs.ID
	if id == "" {
		id = CaseID(cs.Text)
	}

	key := c.cacheKey(cs)
	if result, ok := c.cached(key); ok {
		result.CaseID = id
		c.logger.Debug().Str("case", id).Msg("cache hit")
		return result
	}

	// 1. Extract the clinical context
	analysis := c.extractor.Analyze(cs.Name, cs.Text)

	// 2. Derive candidate codes
	candidates := c.engine.Run(analysis.Context)

	// 3. Validate and correct
	final, audit := c.validator.Validate(candidates, validate.Input{
		Context:   analysis.Context,
		Text:      analysis.Text,
		Narrative: analysis.Narrative,
		Match:     extract.NegationMatcher(),
	})

	// 4. Assemble and score
	warnings := append(append([]model.Warning{}, analysis.Warnings...), audit.Warnings...)
	result := model.NewResult(id, final, warnings, audit)
	result.Score = c.scorer.Calculate(final, warnings, audit)
	if c.cfg.Coding.IncludeContext {
		ctx := analysis.Context
		result.Context = &ctx
	}

	c.logger.Debug().
		Str("case", id).
		Strs("candidates", model.IDs(candidates)).
		Strs("codes", model.IDs(final)).
		Int("warnings", len(warnings)).
		Msg("case coded")

	c.store(key, result)
	return result
}

// CacheStats reports cache hits and misses, or false when caching is off.
func (c *Coder) CacheStats() (hits, misses int64, ok bool) {
	s, ok := c.cache.(interface{ Stats() (int64, int64) })
	if !ok {
		return 0, 0, false
	}
	hits, misses = s.Stats()
	return hits, misses, true
}

// CaseID derives a stable case id from the document text.
func CaseID(text string) string {
	return uuid.NewSHA1(caseNamespace, []byte(text)).String()
}

func (c *Coder) cacheKey(cs Case) string {
	if c.cache == nil {
		return ""
	}
	coding := c.cfg.Coding
	return cache.Key(cs.Text,
		"name="+cs.Name,
		"fallback="+strconv.FormatBool(coding.Fallback),
		"specificity="+strconv.FormatBool(coding.Specificity),
		"context="+strconv.FormatBool(coding.IncludeContext),
	)
}

func (c *Coder) cached(key string) (model.Result, bool) {
	if key == "" {
		return model.Result{}, false
	}
	data, ok := c.cache.Get(key)
	if !ok {
		return model.Result{}, false
	}
	var result model.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn().Err(err).Msg("dropping unreadable cache entry")
		_ = c.cache.Delete(key)
		return model.Result{}, false
	}
	return result, true
}

func (c *Coder) store(key string, result model.Result) {
	if key == "" {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn().Err(err).Msg("result not cached")
		return
	}
	if err := c.cache.Set(key, data, c.cfg.Cache.TTL); err != nil {
		c.logger.Warn().Err(err).Msg("result not cached")
	}
}
