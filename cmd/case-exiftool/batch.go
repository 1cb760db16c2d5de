package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/casework/case-exiftool/config"
)

const (
	rawSuffix       = ".raw.xml"
	printConvSuffix = ".printconv.xml"
)

// batchCmd converts every raw dump under a directory, pairing each with its
// print-converted sibling when one exists.
func batchCmd() *cobra.Command {
	var (
		configPath string
		pattern    string
		flags      config.Config
	)

	cmd := &cobra.Command{
		Use:   "batch [flags] DIR",
		Short: "Convert every ExifTool dump pair under a directory",
		Long: `batch walks DIR for raw dumps matching the glob pattern, pairs each
with a print-converted sibling (same name with ` + printConvSuffix + `), and
writes one output graph per pair next to the raw dump.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(configPath, &flags)
			if err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			return runBatch(cfg, args[0], pattern)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&pattern, "pattern", "**/*"+rawSuffix, "Glob pattern for raw dumps, relative to DIR")
	cmd.Flags().StringVar(&flags.BasePrefix, "base-prefix", "", "Namespace prefix for generated identifiers")
	cmd.Flags().BoolVar(&flags.DeterministicIDs, "deterministic-ids", false, "Derive node identifiers from stable inputs")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&flags.OutputFormat, "output-format", "", "Output syntax (turtle, ntriples, json-ld)")

	return cmd
}

func runBatch(cfg *config.Config, dir, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no dumps matching %s under %s", pattern, dir)
	}

	for _, rel := range matches {
		rawPath := filepath.Join(dir, rel)
		printConvPath := strings.TrimSuffix(rawPath, rawSuffix) + printConvSuffix
		if _, err := os.Stat(printConvPath); err != nil {
			printConvPath = ""
		}
		outPath := strings.TrimSuffix(rawPath, rawSuffix) + outputExtension(cfg.OutputFormat)

		slog.Info("converting dump pair",
			"raw", rawPath,
			"print_conv", printConvPath,
			"out", outPath)
		if err := convert(cfg, rawPath, printConvPath, outPath); err != nil {
			return fmt.Errorf("convert %s: %w", rawPath, err)
		}
	}
	return nil
}

func outputExtension(format string) string {
	switch format {
	case "ntriples", "nt", "n-triples":
		return ".nt"
	case "json-ld", "jsonld", "json":
		return ".jsonld"
	}
	return ".ttl"
}
