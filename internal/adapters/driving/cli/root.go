// Package cli provides the cobra command tree for pdfshelf.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfshelf/internal/config"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// PathQueue receives the path chosen for the next document pick.
type PathQueue interface {
	Push(path string)
}

// Services holds everything the commands need.
type Services struct {
	Config    config.Config
	Library   driving.LibraryService
	Folder    driving.FolderService
	Presenter driving.Presenter
	Picks     PathQueue
	Platform  driven.Platform
	Watcher   driven.Watcher
}

// Bootstrap builds the services from the config file at path.
// The returned cleanup is called after the command finishes.
type Bootstrap func(configPath string) (*Services, func(), error)

var (
	services  *Services
	bootstrap Bootstrap
	cleanup   func()

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfshelf",
	Short: "Browse, open, share and manage your PDF documents",
	Long: `pdfshelf finds every PDF under a chosen folder (or its own document
area in sandbox mode), lists them with search and sorting, and hands them to
your PDF viewer.

Run "pdfshelf tui" for the interactive library.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.pdfshelf/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects ready-made services, bypassing Bootstrap.
func SetServices(s *Services) {
	services = s
}

// SetBootstrap sets the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ExecuteContext runs the root command with ctx as every command's context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if services != nil || bootstrap == nil || !needsServices(cmd) {
		return nil
	}

	s, done, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	services = s
	cleanup = done
	return nil
}

// needsServices reports whether cmd touches the library.
func needsServices(cmd *cobra.Command) bool {
	return cmd.Annotations["services"] != "none"
}

// noServices marks commands that run without bootstrapping.
var noServices = map[string]string{"services": "none"}

func requireServices() (*Services, error) {
	if services == nil || services.Library == nil || services.Presenter == nil {
		return nil, errors.New("library service not configured")
	}
	return services, nil
}
