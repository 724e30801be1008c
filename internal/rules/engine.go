package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Module derives candidate codes for one body system. Derive must be pure:
// it reads the context and the codes of the modules that already ran, and
// returns its own candidates in the order they should be listed.
type Module struct {
	Name   string
	Rank   int      // sequencing rank of the module's output, lower first
	After  []string // modules whose output Derive reads from prior
	Derive func(ctx model.Context, prior []model.Code) []model.Code
}

// Engine runs the domain modules in dependency order and assembles the raw
// candidate list. It holds no per-case state and is safe for concurrent use.
type Engine struct {
	order  []Module // execution order
	logger zerolog.Logger
}

// NewEngine validates the module graph. A duplicate name, an unknown
// dependency or a cycle is a construction error.
func NewEngine(modules []Module, logger zerolog.Logger) (*Engine, error) {
	byName := make(map[string]Module, len(modules))
	for _, m := range modules {
		if m.Name == "" || m.Derive == nil {
			return nil, fmt.Errorf("module %q: name and derive function are required", m.Name)
		}
		if _, dup := byName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate module %q", m.Name)
		}
		byName[m.Name] = m
	}

	pending := make(map[string]int, len(modules))
	dependents := make(map[string][]string)
	for _, m := range modules {
		for _, dep := range m.After {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("module %q depends on unknown module %q", m.Name, dep)
			}
			dependents[dep] = append(dependents[dep], m.Name)
		}
		pending[m.Name] = len(m.After)
	}

	// Kahn's algorithm; among ready modules the lower rank runs first
	var ready []Module
	for _, m := range modules {
		if pending[m.Name] == 0 {
			ready = append(ready, m)
		}
	}

	order := make([]Module, 0, len(modules))
	for len(ready) > 0 {
		sortByRank(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, name := range dependents[next.Name] {
			pending[name]--
			if pending[name] == 0 {
				ready = append(ready, byName[name])
			}
		}
	}

	if len(order) != len(modules) {
		var stuck []string
		for name, n := range pending {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("module dependency cycle among: %s", strings.Join(stuck, ", "))
	}

	return &Engine{order: order, logger: logger}, nil
}

// NewDefaultEngine builds the engine over the built-in domain modules.
func NewDefaultEngine(logger zerolog.Logger) *Engine {
	e, err := NewEngine(DefaultModules(), logger)
	if err != nil {
		// the built-in graph is fixed; failing here is a programming error
		panic(err)
	}
	return e
}

// Order returns the module names in execution order.
func (e *Engine) Order() []string {
	names := make([]string, len(e.order))
	for i, m := range e.order {
		names[i] = m.Name
	}
	return names
}

// Run derives the candidate list for a context: modules execute in
// dependency order, their output is concatenated by rank and deduplicated by
// code identifier.
func (e *Engine) Run(ctx model.Context) []model.Code {
	type output struct {
		module Module
		codes  []model.Code
	}

	var prior []model.Code
	outputs := make([]output, 0, len(e.order))

	for _, m := range e.order {
		// each module sees its own copy of the prior candidates
		codes := m.Derive(ctx, append([]model.Code(nil), prior...))
		for i := range codes {
			if codes[i].Rule == "" {
				codes[i].Rule = m.Name
			}
		}
		prior = append(prior, codes...)
		outputs = append(outputs, output{module: m, codes: codes})

		if len(codes) > 0 {
			e.logger.Debug().
				Str("module", m.Name).
				Strs("codes", model.IDs(codes)).
				Msg("module derived")
		}
	}

	sort.SliceStable(outputs, func(i, j int) bool {
		return less(outputs[i].module, outputs[j].module)
	})

	var all []model.Code
	for _, o := range outputs {
		all = append(all, o.codes...)
	}
	return model.Dedupe(all)
}

func sortByRank(modules []Module) {
	sort.SliceStable(modules, func(i, j int) bool { return less(modules[i], modules[j]) })
}

func less(a, b Module) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Name < b.Name
}
