package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfshelf/internal/config"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage the folder scanned for PDFs",
	Long:  `Set, show or clear the folder scanned in directory mode. s3://bucket/prefix folders are supported when [remote] is configured.`,
}

var folderSetCmd = &cobra.Command{
	Use:   "set [dir]",
	Short: "Choose the folder to scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderSet,
}

var folderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the folder being scanned",
	Args:  cobra.NoArgs,
	RunE:  runFolderShow,
}

var folderClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the chosen folder",
	Args:  cobra.NoArgs,
	RunE:  runFolderClear,
}

func init() {
	folderCmd.AddCommand(folderSetCmd)
	folderCmd.AddCommand(folderShowCmd)
	folderCmd.AddCommand(folderClearCmd)
	rootCmd.AddCommand(folderCmd)
}

func requireFolder() (*Services, error) {
	if services == nil || services.Folder == nil {
		return nil, errors.New("folder service not configured")
	}
	if !services.Folder.SupportsDirectoryChoice() {
		return nil, domain.ErrDirectoryChoiceUnsupported
	}
	return services, nil
}

func runFolderSet(cmd *cobra.Command, args []string) error {
	s, err := requireFolder()
	if err != nil {
		return err
	}

	dir, err := config.ExpandHome(args[0])
	if err != nil {
		return err
	}
	loc, err := domain.ParseLocator(dir)
	if err != nil {
		return err
	}

	if err := s.Folder.ChooseDirectory(cmd.Context(), loc); err != nil {
		return err
	}
	cmd.Printf("Scanning %s\n", loc)
	return nil
}

func runFolderShow(cmd *cobra.Command, _ []string) error {
	s, err := requireFolder()
	if err != nil {
		return err
	}

	loc, ok, err := s.Folder.CurrentDirectory(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("No folder selected")
		return nil
	}
	cmd.Println(loc.String())
	return nil
}

func runFolderClear(cmd *cobra.Command, _ []string) error {
	s, err := requireFolder()
	if err != nil {
		return err
	}
	if err := s.Folder.ClearDirectory(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Folder cleared")
	return nil
}
