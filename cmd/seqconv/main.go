package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/fatih/color"
)

func main() {
	config, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	level := slog.LevelError
	if config.Verbose {
		level = slog.LevelDebug
	}
	logger := seqconv.NewLogger(os.Stderr, level)

	result, err := Run(context.Background(), config, logger)
	if err != nil {
		showError(err)
		os.Exit(1)
	}
	showResult(result, config)
}

func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("seqconv", flag.ContinueOnError)

	var configFile string
	fs.StringVar(&configFile, "config", "", "Path to a YAML config file (optional)")
	fs.StringVar(&configFile, "c", "", "Path to a YAML config file (shorthand)")

	flags := DefaultConfig()
	fs.StringVar(&flags.Engine, "engine", flags.Engine, "Scripting runtime: risor or expr")
	fs.StringVar(&flags.Expression, "e", "", "Expression to evaluate")
	fs.StringVar(&flags.Type, "type", flags.Type, "Element type: int, float, string, bool or any")
	fs.StringVar(&flags.Type, "t", flags.Type, "Element type (shorthand)")
	fs.IntVar(&flags.Inline, "inline", flags.Inline, "Inline capacity: 1, 2, 4, 8, 16, 32 or 64")
	fs.IntVar(&flags.MaxReserve, "max-reserve", 0, "Upper bound on capacity reserved from the length hint")
	fs.BoolVar(&flags.Roundtrip, "roundtrip", false, "Convert the vector back to a runtime value and print it")
	fs.BoolVar(&flags.JSON, "json", false, "Output results in JSON format")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&flags.Verbose, "v", false, "Enable debug logging (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `seqconv - Convert script values into typed small vectors

Usage: %s [options] -e <expression>

Examples:
  # Extract a Risor list of ints into a vector with 4 inline slots
  %s -e '[1, 2, 3]' -type int -inline 4

  # Evaluate with expr and convert back
  %s -engine expr -e 'map(1..5, # * 2)' -type int -roundtrip

Options:
`, os.Args[0], os.Args[0], os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if configFile != "" {
		loaded, err := LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engine":
			config.Engine = flags.Engine
		case "e":
			config.Expression = flags.Expression
		case "type", "t":
			config.Type = flags.Type
		case "inline":
			config.Inline = flags.Inline
		case "max-reserve":
			config.MaxReserve = flags.MaxReserve
		case "roundtrip":
			config.Roundtrip = flags.Roundtrip
		case "json":
			config.JSON = flags.JSON
		case "verbose", "v":
			config.Verbose = flags.Verbose
		}
	})
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func showError(err error) {
	if convErr := seqconv.ClassifyError(err); convErr != nil {
		color.Red("Conversion failed (%s)", convErr.Type)
		if seqconv.IsShapeError(err) {
			color.Yellow("The value does not have the shape of a sequence")
		}
	}
	color.Red("Error: %v", err)
}

func showResult(result *Result, config *Config) {
	if config.JSON {
		resultBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Printf("Error formatting result: %v\n", err)
			return
		}
		fmt.Println(string(resultBytes))
		return
	}

	color.Cyan("Run: %s", result.ID)
	color.White("Engine: %s, element type: %s", result.Engine, result.Type)
	storage := "inline"
	if result.Spilled {
		storage = "heap"
	}
	color.White("Length: %d, capacity: %d (%s, %d inline)", result.Len, result.Cap, storage, result.Inline)

	color.Magenta("Items:")
	for i, item := range result.Items {
		if itemBytes, err := json.Marshal(item); err == nil {
			fmt.Printf("  %d: %s\n", i, string(itemBytes))
		} else {
			fmt.Printf("  %d: %v\n", i, item)
		}
	}
	if config.Roundtrip {
		color.Green("Roundtrip: %s", result.Roundtrip)
	}
}
