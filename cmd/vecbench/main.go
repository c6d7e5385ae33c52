package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/acquire-project/vecwrite/bench"
)

func main() {
	cfg := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "vecbench",
		Short: "Compare consolidated and vectored positional file writes",
		Long: "vecbench writes an increasing number of fixed-size chunks to disk twice per\n" +
			"iteration: once consolidated into a single buffer and written with one\n" +
			"positional write, and once handed directly to a scatter-gather write. It\n" +
			"emits one CSV row per iteration with the time each strategy took.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.ChunkBytes, "chunk-bytes", cfg.ChunkBytes, "Size of each chunk in bytes")
	cmd.Flags().IntVar(&cfg.StartChunks, "start-chunks", cfg.StartChunks, "Chunk count of the first iteration")
	cmd.Flags().IntVar(&cfg.MaxChunks, "max-chunks", cfg.MaxChunks, "Exclusive upper bound on the chunk count")
	cmd.Flags().IntVar(&cfg.Step, "step", cfg.Step, "Chunk-count increment between iterations")
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for the scratch output files")
	cmd.Flags().StringVar(&cfg.ResultsPath, "results", cfg.ResultsPath, "Path of the CSV results file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg bench.Config) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	f, err := os.Create(cfg.ResultsPath)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	results, err := bench.NewResultsWriter(os.Stdout, f)
	if err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}

	return bench.NewRunner(cfg, logger).Run(results)
}
