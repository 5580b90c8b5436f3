package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/natya/internal/score"
	"github.com/ayusman/natya/internal/server"
	"github.com/ayusman/natya/internal/store"
	"github.com/ayusman/natya/internal/temporal"
)

func main() {
	fmt.Println("Natya - Pose Performance Scoring")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".natya")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "natya.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Locate the temporal analyzer executable
	analyzerPath := findAnalyzer()
	if analyzerPath == "" {
		log.Fatal("Temporal analyzer not found; set NATYA_ANALYZER or install the motion analyzer")
	}
	fmt.Printf("Using temporal analyzer: %s\n", analyzerPath)

	analyzer := temporal.NewExecutor(temporal.Config{
		Path:          analyzerPath,
		Timeout:       30 * time.Second,
		MaxConcurrent: 1,
	})

	// Configure and start server
	cfg := server.Config{
		Store:  st,
		Scorer: score.NewScorer(analyzer),
	}

	srv := server.New(cfg)

	addr := ":8080"
	fmt.Printf("Starting server on %s\n", addr)
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findAnalyzer searches for the motion analyzer executable.
// It checks the NATYA_ANALYZER environment variable, then common relative
// build locations, then ~/.natya/analyzers/motion.
// Returns the first existing executable or empty string if none found.
func findAnalyzer() string {
	if path := os.Getenv("NATYA_ANALYZER"); path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		return ""
	}

	relativePaths := []string{
		"analyzers/motion/motion",
		"../analyzers/motion/motion",
		"bin/motion",
	}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homePath := filepath.Join(homeDir, ".natya", "analyzers", "motion")
	if info, err := os.Stat(homePath); err == nil && !info.IsDir() {
		return homePath
	}

	return ""
}
