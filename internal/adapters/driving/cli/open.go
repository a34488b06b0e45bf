package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	coreservices "github.com/custodia-labs/pdfshelf/internal/core/services"
)

var openCmd = &cobra.Command{
	Use:   "open [name|locator]",
	Short: "Open a PDF in the default viewer",
	Long: `Prepare a PDF for viewing (copying remote or transient files into the
cache) and hand it to the system viewer or the configured share command.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var shareCmd = &cobra.Command{
	Use:   "share [name|locator]",
	Short: "Share a PDF with the configured share command",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(shareCmd)
}

// findRecord resolves a command argument against a fresh scan.
func findRecord(cmd *cobra.Command, s *Services, ref string) (domain.FileRecord, error) {
	return coreservices.FindRecord(s.Library.Discover(cmd.Context()), ref)
}

func runOpen(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	record, err := findRecord(cmd, s, args[0])
	if err != nil {
		return err
	}

	loc, err := s.Library.Open(cmd.Context(), record)
	switch {
	case errors.Is(err, domain.ErrShareUnavailable):
		cmd.Println("Sharing is not available on this device")
		if path := loc.Path(); path != "" {
			cmd.Printf("Prepared copy: %s\n", path)
		}
		return nil
	case errors.Is(err, domain.ErrPreparationFailed):
		return fmt.Errorf("could not prepare %s: %w", record.Name, err)
	case err != nil:
		return err
	}

	cmd.Printf("Opened %s\n", record.Name)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	record, err := findRecord(cmd, s, args[0])
	if err != nil {
		return err
	}

	if !s.Library.ShareAvailable(cmd.Context()) {
		cmd.Println("Sharing is not available on this device")
		return nil
	}
	if err := s.Library.Share(cmd.Context(), record); err != nil {
		return fmt.Errorf("failed to share %s: %w", record.Name, err)
	}
	cmd.Printf("Shared %s\n", record.Name)
	return nil
}
