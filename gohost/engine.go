package gohost

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine evaluates expr-lang expressions against a fixed environment shape.
type Engine struct {
	env map[string]any
}

// NewEngine returns an Engine. env declares the variables expressions may
// use; it may be nil.
func NewEngine(env map[string]any) *Engine {
	return &Engine{env: env}
}

// Program is a compiled expression.
type Program struct {
	program *vm.Program
}

// Compile compiles code.
func (e *Engine) Compile(code string) (*Program, error) {
	opts := []expr.Option{}
	if e.env != nil {
		opts = append(opts, expr.Env(e.env))
	}
	program, err := expr.Compile(code, opts...)
	if err != nil {
		return nil, err
	}
	return &Program{program: program}, nil
}

// Run evaluates the program. The result is a plain Go value.
func (p *Program) Run(env map[string]any) (any, error) {
	result, err := expr.Run(p.program, env)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression: %w", err)
	}
	return result, nil
}

// Eval compiles and runs code against the engine's environment.
func (e *Engine) Eval(code string) (any, error) {
	program, err := e.Compile(code)
	if err != nil {
		return nil, err
	}
	return program.Run(e.env)
}
