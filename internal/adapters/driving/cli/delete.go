package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [name|locator]",
	Short: "Delete a PDF",
	Long: `Delete a PDF from disk (or from the object store for s3:// documents).
Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	record, err := findRecord(cmd, s, args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete without --yes when not running interactively")
		}
		cmd.Printf("Delete %s? This action cannot be undone. [y/N] ", record.Name)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			cmd.Println("Cancelled")
			return nil
		}
	}

	if !s.Library.Delete(cmd.Context(), record) {
		cmd.PrintErrln("Failed to delete PDF")
		return fmt.Errorf("deleting %s: %w", record.Name, domain.ErrDeleteFailed)
	}
	cmd.Printf("Deleted %s\n", record.Name)
	return nil
}
