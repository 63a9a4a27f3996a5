// Package main provides the entry point for the HireSight candidate ranking engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiresight",
	Short: "HireSight candidate ranking engine",
	Long:  "HireSight ranks extracted resume texts against a job description using semantic similarity plus AI-derived qualitative annotations, via REST API or one-shot CLI runs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
