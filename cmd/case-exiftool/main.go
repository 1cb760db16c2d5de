// Package main provides the case-exiftool binary entry point.
// It maps the RDF/XML output of ExifTool into UCO properties and
// relationships-of-assumption; an analyst should later annotate the output
// with their beliefs on its verity.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/casework/case-exiftool/config"
	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/identifier"
	"github.com/casework/case-exiftool/loader"
	"github.com/casework/case-exiftool/mapper"
)

const (
	Version = "0.1.0"
	appName = "case-exiftool"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath   string
		rawXML       string
		printConvXML string
		flags        config.Config
	)

	cmd := &cobra.Command{
		Use:   appName + " [flags] OUT_GRAPH",
		Short: "Map ExifTool RDF output into a UCO graph",
		Long: `case-exiftool parses the RDF/XML output of ExifTool and maps it into
UCO properties and relationships-of-assumption.

--raw-xml expects ExifTool run with -binary, -duplicates, and -xmlFormat.
--print-conv-xml expects the same invocation plus --printConv.

The output format is guessed from the OUT_GRAPH extension and defaults
to Turtle.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(configPath, &flags)
			if err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			if rawXML == "" && printConvXML == "" {
				return fmt.Errorf("at least one of --raw-xml and --print-conv-xml is required")
			}
			return convert(cfg, rawXML, printConvXML, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&rawXML, "raw-xml", "", "ExifTool RDF/XML dump with raw values")
	cmd.Flags().StringVar(&printConvXML, "print-conv-xml", "", "ExifTool RDF/XML dump with print-converted values")
	cmd.Flags().StringVar(&flags.BasePrefix, "base-prefix", "", "Namespace prefix for generated identifiers")
	cmd.Flags().BoolVar(&flags.DeterministicIDs, "deterministic-ids", false, "Derive node identifiers from stable inputs")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&flags.OutputFormat, "output-format", "", "Output syntax (turtle, ntriples, json-ld); guessed from extension when unset")

	cmd.AddCommand(batchCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// buildConfig layers defaults, an optional config file, and flag overrides.
func buildConfig(configPath string, flags *config.Config) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.Merge(fileCfg)
	}
	cfg.Merge(flags)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// convert runs one full conversion: load the dump pair, map it, and
// serialize the resulting graph.
func convert(cfg *config.Config, rawPath, printConvPath, outPath string) error {
	dumps, err := loader.Load(rawPath, printConvPath)
	if err != nil {
		return err
	}
	slog.Debug("loaded property dumps",
		"raw", rawPath,
		"print_conv", printConvPath,
		"identifiers", dumps.Len())

	gen := identifier.NewRandom()
	if cfg.DeterministicIDs {
		gen = identifier.NewDeterministic(cfg.BasePrefix, dumps.Source())
	}

	g := graph.New()
	m := mapper.New(g, dumps,
		mapper.WithBasePrefix(cfg.BasePrefix),
		mapper.WithGenerator(gen),
		mapper.WithLogger(slog.Default()),
	)
	if err := m.Run(); err != nil {
		return err
	}

	format := graph.GuessFormat(outPath)
	if cfg.OutputFormat != "" {
		format, err = graph.ParseFormat(cfg.OutputFormat)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := g.Serialize(f, format); err != nil {
		f.Close()
		return fmt.Errorf("serialize graph: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("graph written", "path", outPath, "format", string(format), "triples", g.Len())
	return nil
}
