package main

import (
	"os"

	"github.com/joho/godotenv"

	"folio/cmd/folio/cmd"
)

func main() {
	// Quote feed credentials may live in a local .env; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
