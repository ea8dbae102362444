// Package main provides the entry point for the SuperhireX API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "superhirex",
	Short: "SuperhireX job matching API server",
	Long:  "SuperhireX is a mutual-interest job matching backend: seekers upload resumes that are parsed by AI into swipeable profiles, and reciprocal right swipes between seekers and recruiters become matches.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
