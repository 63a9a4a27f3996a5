package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/InnoShay/HireSight-sub000/internal/annotate"
	"github.com/InnoShay/HireSight-sub000/internal/config"
	"github.com/InnoShay/HireSight-sub000/internal/llm"
	"github.com/InnoShay/HireSight-sub000/internal/logger"
	"github.com/InnoShay/HireSight-sub000/internal/pipeline"
	"github.com/InnoShay/HireSight-sub000/internal/store"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

var (
	rankJobFile    string
	rankConfigPath string
	rankQuickOnly  bool
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume text files...]",
	Short: "Rank resume text files against a job description",
	Long: `Run a one-shot ranking over local resume text files without a database.
Each file is one candidate; the job description is read from --job.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankJobFile, "job", "", "Path to the job description text file (required)")
	rankCmd.Flags().StringVar(&rankConfigPath, "config", "", "Path to JSON config file")
	rankCmd.Flags().BoolVar(&rankQuickOnly, "quick", false, "Print the semantic-only quick ranking as it becomes available")
	rankCmd.MarkFlagRequired("job") //nolint:errcheck
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rankConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyEnvOverrides(cfg)
	if len(cfg.GeminiAPIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEYS environment variable is required")
	}

	jobText, err := os.ReadFile(rankJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	mem := store.NewMemory()
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read resume %s: %w", path, err)
		}
		mem.Add(filepath.Base(path), string(raw))
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	keys := llm.NewKeyRing(cfg.GeminiAPIKeys)
	llmCfg := &llm.Config{AnnotateModel: cfg.AnnotateModel, EmbedModel: cfg.EmbedModel}

	embedder, err := llm.NewGeminiEmbedder(ctx, llmCfg, keys)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer embedder.Close() //nolint:errcheck

	client, err := llm.NewGeminiClient(ctx, llmCfg, keys)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	annotator := annotate.New(client, log).WithCaps(cfg.MaxJobChars, cfg.MaxResumeChars)
	runner := pipeline.NewRunner(mem, embedder, annotator, log,
		cfg.EmbedConcurrency, cfg.AnnotateTimeoutDuration())

	opts := pipeline.Options{JobDescription: string(jobText)}
	if rankQuickOnly {
		opts.OnQuick = func(ranked []types.Candidate) {
			fmt.Fprintln(os.Stderr, "--- quick ranking (semantic only) ---")
			printRanked(os.Stderr, ranked)
		}
	}

	result, err := runner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(types.RankResponse{Ranked: result.Ranked, JDAnalysis: result.JobAnalysis})
}

func printRanked(w *os.File, ranked []types.Candidate) {
	for i, c := range ranked {
		dup := ""
		if c.IsDuplicate {
			dup = " (duplicate)"
		}
		fmt.Fprintf(w, "%2d. %-30s final=%.2f semantic=%.4f%s\n",
			i+1, c.Filename, c.FinalScore, c.SemanticScore, dup)
	}
}
