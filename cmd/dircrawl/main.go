package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Store credentials typically live in a local .env during development;
	// a missing file is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
