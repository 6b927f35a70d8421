package risorhost

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/compiler"
	"github.com/risor-io/risor/modules/all"
	"github.com/risor-io/risor/object"
	"github.com/risor-io/risor/parser"
)

// Engine compiles Risor source with a fixed set of global names.
type Engine struct {
	globals map[string]any
}

// NewEngine returns an Engine whose scripts see the given globals.
func NewEngine(globals map[string]any) *Engine {
	return &Engine{globals: globals}
}

// DefaultGlobals returns the Risor builtins.
func DefaultGlobals() map[string]any {
	globals := map[string]any{}
	for name, value := range all.Builtins() {
		globals[name] = value
	}
	return globals
}

// Script is compiled Risor code bound to its Engine.
type Script struct {
	engine *Engine
	code   *compiler.Code
}

// Compile parses and compiles code. Globals passed later to Evaluate must
// have been declared to the engine.
func (e *Engine) Compile(ctx context.Context, code string) (*Script, error) {
	ast, err := parser.Parse(ctx, code)
	if err != nil {
		return nil, err
	}
	globalNames := slices.Sorted(maps.Keys(e.globals))
	compiledCode, err := compiler.Compile(ast, compiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, err
	}
	return &Script{engine: e, code: compiledCode}, nil
}

// Evaluate runs the script and returns its result object.
func (s *Script) Evaluate(ctx context.Context, globals map[string]any) (object.Object, error) {
	combined := maps.Clone(s.engine.globals)
	if combined == nil {
		combined = map[string]any{}
	}
	maps.Copy(combined, globals)
	value, err := risor.EvalCode(ctx, s.code, risor.WithGlobals(combined))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate risor script: %w", err)
	}
	return value, nil
}

// Eval compiles and evaluates code in one step.
func (e *Engine) Eval(ctx context.Context, code string) (object.Object, error) {
	script, err := e.Compile(ctx, code)
	if err != nil {
		return nil, err
	}
	return script.Evaluate(ctx, nil)
}
