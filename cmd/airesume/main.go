package main

import (
	"context"
	"fmt"
	"os"

	app "github.com/one-front/airesume/internal"
	"github.com/one-front/airesume/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(context.Background(), basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing airesume: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
