package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfshelf/internal/format"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Add a PDF to the library",
	Long: `Pick a PDF by path. In sandbox mode the file is copied into the
document area; in directory mode it is staged so it can be opened.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Picks == nil {
		return errors.New("document picker not configured")
	}

	s.Picks.Push(args[0])
	record, err := s.Library.Import(cmd.Context())
	if err != nil {
		return err
	}
	if record == nil {
		cmd.Println("No file chosen")
		return nil
	}

	cmd.Printf("Imported %s (%s)\n", record.Name, format.FileSize(record.Size))
	cmd.Printf("  %s\n", record.Locator)
	return nil
}
