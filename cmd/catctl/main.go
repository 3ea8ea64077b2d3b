package main

import (
	"context"
	"os"

	"github.com/medisite/cms/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
