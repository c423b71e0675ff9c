package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
