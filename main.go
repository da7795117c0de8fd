package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/recruit-dashboard/cmd"
)

func main() {
	// A missing .env is fine; RECRUIT_API_URL may come from the environment.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
