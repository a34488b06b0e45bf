// Command pdfshelf browses, opens, shares and manages PDF documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(func(configPath string) (*cli.Services, func(), error) {
		return bootstrap(ctx, configPath)
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
