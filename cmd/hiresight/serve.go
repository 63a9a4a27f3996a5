package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/InnoShay/HireSight-sub000/internal/config"
	"github.com/InnoShay/HireSight-sub000/internal/logger"
	"github.com/InnoShay/HireSight-sub000/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for storing resumes and running ranking requests.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyEnvOverrides(cfg)
	if servePort > 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEYS environment variable is required")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// applyEnvOverrides lets the environment win over the config file. Keys are
// comma separated; blanks are dropped by the key ring downstream.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		cfg.GeminiAPIKeys = strings.Split(v, ",")
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && len(cfg.GeminiAPIKeys) == 0 {
		cfg.GeminiAPIKeys = []string{v}
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
}
