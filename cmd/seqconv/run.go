package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/deepnoodle-ai/seqconv/gohost"
	"github.com/deepnoodle-ai/seqconv/risorhost"
	"github.com/deepnoodle-ai/seqconv/smallvec"
	"github.com/risor-io/risor/object"
	"go.jetify.com/typeid"
)

// Result describes one conversion run.
type Result struct {
	ID        string `json:"id"`
	Engine    string `json:"engine"`
	Type      string `json:"type"`
	Inline    int    `json:"inline"`
	Len       int    `json:"len"`
	Cap       int    `json:"cap"`
	Spilled   bool   `json:"spilled"`
	Items     []any  `json:"items"`
	Roundtrip string `json:"roundtrip,omitempty"`
}

// NewRunID returns a new ID for a conversion run.
func NewRunID() string {
	id, err := typeid.WithPrefix("conv")
	if err != nil {
		panic(err)
	}
	return id.String()
}

type element[T any] struct {
	extract seqconv.Extractor[T]
	convert seqconv.Converter[T]
}

// runtimeKit bundles what the CLI needs from one scripting runtime.
type runtimeKit struct {
	newHost  func(ctx context.Context) seqconv.Host
	evaluate func(ctx context.Context, code string, env map[string]any) (seqconv.Value, error)
	inspect  func(v seqconv.Value) string
	ints     element[int]
	floats   element[float64]
	strings  element[string]
	bools    element[bool]
	anys     element[any]
}

var risorKit = runtimeKit{
	newHost: func(ctx context.Context) seqconv.Host { return risorhost.New(ctx) },
	evaluate: func(ctx context.Context, code string, env map[string]any) (seqconv.Value, error) {
		globals := risorhost.DefaultGlobals()
		maps.Copy(globals, env)
		obj, err := risorhost.NewEngine(globals).Eval(ctx, code)
		if err != nil {
			return nil, err
		}
		return obj, nil
	},
	inspect: func(v seqconv.Value) string {
		if obj, ok := v.(object.Object); ok {
			return obj.Inspect()
		}
		return fmt.Sprint(v)
	},
	ints:    element[int]{risorhost.Int, risorhost.IntConverter},
	floats:  element[float64]{risorhost.Float64, risorhost.Float64Converter},
	strings: element[string]{risorhost.String, risorhost.StringConverter},
	bools:   element[bool]{risorhost.Bool, risorhost.BoolConverter},
	anys:    element[any]{risorhost.Any, risorhost.AnyConverter},
}

var exprKit = runtimeKit{
	newHost: func(context.Context) seqconv.Host { return gohost.New() },
	evaluate: func(_ context.Context, code string, env map[string]any) (seqconv.Value, error) {
		return gohost.NewEngine(env).Eval(code)
	},
	inspect: func(v seqconv.Value) string { return fmt.Sprint(v) },
	ints:    element[int]{gohost.Int, gohost.IntConverter},
	floats:  element[float64]{gohost.Float64, gohost.Float64Converter},
	strings: element[string]{gohost.String, gohost.StringConverter},
	bools:   element[bool]{gohost.Bool, gohost.BoolConverter},
	anys:    element[any]{gohost.Any, gohost.AnyConverter},
}

// Run evaluates the configured expression and extracts it into a small
// vector of the configured element type and inline capacity.
func Run(ctx context.Context, config *Config, logger *slog.Logger) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	kit := risorKit
	if config.Engine == "expr" {
		kit = exprKit
	}

	bridge, err := seqconv.NewBridge(seqconv.Options{
		Host:       kit.newHost(ctx),
		Logger:     logger,
		MaxReserve: config.MaxReserve,
	})
	if err != nil {
		return nil, err
	}

	value, err := kit.evaluate(ctx, config.Expression, config.Env)
	if err != nil {
		return nil, err
	}
	logger.Debug("expression evaluated",
		slog.String("engine", config.Engine),
		slog.String("type", bridge.Host().TypeName(value)))

	result := &Result{
		ID:     NewRunID(),
		Engine: config.Engine,
		Type:   config.Type,
		Inline: config.Inline,
	}
	switch config.Type {
	case "int":
		err = convertInline(bridge, kit, value, config, result, kit.ints)
	case "float":
		err = convertInline(bridge, kit, value, config, result, kit.floats)
	case "string":
		err = convertInline(bridge, kit, value, config, result, kit.strings)
	case "bool":
		err = convertInline(bridge, kit, value, config, result, kit.bools)
	default:
		err = convertInline(bridge, kit, value, config, result, kit.anys)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func convertInline[T any](b *seqconv.Bridge, kit runtimeKit, value seqconv.Value, config *Config, result *Result, elem element[T]) error {
	switch config.Inline {
	case 1:
		return convert[T, [1]T](b, kit, value, config, result, elem)
	case 2:
		return convert[T, [2]T](b, kit, value, config, result, elem)
	case 4:
		return convert[T, [4]T](b, kit, value, config, result, elem)
	case 8:
		return convert[T, [8]T](b, kit, value, config, result, elem)
	case 16:
		return convert[T, [16]T](b, kit, value, config, result, elem)
	case 32:
		return convert[T, [32]T](b, kit, value, config, result, elem)
	case 64:
		return convert[T, [64]T](b, kit, value, config, result, elem)
	}
	return fmt.Errorf("unsupported inline capacity %d", config.Inline)
}

func convert[T any, A smallvec.Array[T]](b *seqconv.Bridge, kit runtimeKit, value seqconv.Value, config *Config, result *Result, elem element[T]) error {
	vec, err := seqconv.Extract[T, A](b, value, elem.extract)
	if err != nil {
		return err
	}
	result.Len = vec.Len()
	result.Cap = vec.Cap()
	result.Spilled = vec.Spilled()
	result.Items = make([]any, 0, vec.Len())
	for x := range vec.Values() {
		result.Items = append(result.Items, x)
	}
	if config.Roundtrip {
		back, err := seqconv.ToValue(b, &vec, elem.convert)
		if err != nil {
			return err
		}
		result.Roundtrip = kit.inspect(back)
	}
	return nil
}
