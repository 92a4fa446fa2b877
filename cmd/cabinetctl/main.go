package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sjperalta/cabinet-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
