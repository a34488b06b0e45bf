package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive PDF library",
	Long: `Launch the interactive terminal library.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open in the default viewer
  /        - Search
  s        - Sort
  x        - Share
  d, y     - Delete (confirm with y)
  r        - Rescan
  f        - Choose folder (directory mode)
  a        - Add a PDF (sandbox mode)
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var tuiWatch bool

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "rescan when files change (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panicked: %v", r)
		}
	}()

	s, err := requireServices()
	if err != nil {
		return err
	}

	// Logs would corrupt the alternate screen.
	restore := redirectLogs()
	defer restore()

	ports := &tui.Ports{
		Library:     s.Library,
		Folder:      s.Folder,
		Presenter:   s.Presenter,
		Picks:       s.Picks,
		DefaultSort: s.Config.SortSpec(),
	}
	if tuiWatch || s.Config.Watch.Enabled {
		if s.Watcher != nil && s.Platform != nil {
			ports.Watcher = s.Watcher
			ports.Roots = s.Platform
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// redirectLogs keeps the terminal clear while the TUI runs. Logs already
// sent to a log file stay there; stderr output is dropped until restore.
func redirectLogs() func() {
	previous := logger.Output()
	if previous != io.Writer(os.Stderr) {
		return func() {}
	}
	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(previous) }
}
