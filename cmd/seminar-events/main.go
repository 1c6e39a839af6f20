package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/seminar-events/internal/cli"
)

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cli.Execute()
}
