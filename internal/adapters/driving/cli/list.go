package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// Output formats for list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List PDF documents",
	Long: `Scan the library and print every PDF found.

Sort orders: name-asc, name-desc, date-desc, date-asc, size-desc, size-asc.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listQuery  string
	listSort   string
	listFormat string
)

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only list names containing this text")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "sort order (default from config)")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	spec := s.Config.SortSpec()
	if listSort != "" {
		if spec, err = domain.ParseSortSpec(listSort); err != nil {
			return err
		}
	}

	records := s.Presenter.Present(s.Library.Discover(cmd.Context()), listQuery, spec)

	switch listFormat {
	case formatJSON:
		data, err := json.MarshalIndent(format.Rows(records), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		cmd.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(format.Rows(records))
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		cmd.Print(string(data))
	case formatTable:
		printTable(cmd, records)
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, listFormat)
	}
	return nil
}

func printTable(cmd *cobra.Command, records []domain.FileRecord) {
	if len(records) == 0 {
		if q := strings.TrimSpace(listQuery); q != "" {
			cmd.Printf("No results found\nNo PDFs match %q\n", q)
		} else {
			cmd.Println("No PDFs found")
			cmd.Println(emptyHint())
		}
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "SIZE", "MODIFIED", "LOCATION")
	for _, r := range records {
		t.Row(r.Name, format.FileSize(r.Size), format.Date(r.ModifiedAt), r.Locator.String())
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		t.Width(width)
	}

	cmd.Println(t.String())
	cmd.Println(format.Count(len(records), "document"))
}

// emptyHint tells the user where PDFs are looked for.
func emptyHint() string {
	if services != nil && services.Folder != nil && services.Folder.SupportsDirectoryChoice() {
		return `Choose a folder with "pdfshelf folder set <dir>".`
	}
	return `Add PDFs with "pdfshelf import <path>".`
}
