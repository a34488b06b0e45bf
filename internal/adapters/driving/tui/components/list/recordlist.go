// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// RecordList displays file records in a navigable, scrolling list.
type RecordList struct {
	records  []domain.FileRecord
	selected int
	offset   int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.SetSelected(0)
		case "end", "G":
			r.SetSelected(len(r.records) - 1)
		}
	}
	return r, nil
}

// View renders the visible window of the list.
func (r *RecordList) View() string {
	if len(r.records) == 0 {
		return ""
	}

	visible := r.visibleCount()
	end := min(r.offset+visible, len(r.records))

	lines := make([]string, 0, end-r.offset+1)
	for i := r.offset; i < end; i++ {
		lines = append(lines, r.renderRecord(i, &r.records[i]))
	}
	if len(r.records) > visible {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", r.offset+1, end, len(r.records))))
	}
	return strings.Join(lines, "\n")
}

// renderRecord formats one record as a name column and a metadata column.
func (r *RecordList) renderRecord(index int, rec *domain.FileRecord) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	meta := fmt.Sprintf("%9s  %s", format.FileSize(rec.Size), format.Date(rec.ModifiedAt))
	nameWidth := r.width - len(indicator) - len(meta) - 2
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := truncate(rec.Name, nameWidth)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, nameWidth, name, meta))
	}
	return r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, nameWidth, name)) +
		r.styles.Muted.Render(meta)
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func (r *RecordList) visibleCount() int {
	if r.height < 2 {
		return 1
	}
	return r.height - 1
}

func (r *RecordList) scrollToSelected() {
	visible := r.visibleCount()
	if r.selected < r.offset {
		r.offset = r.selected
	} else if r.selected >= r.offset+visible {
		r.offset = r.selected - visible + 1
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

// SetRecords replaces the list, keeping the selection in range.
func (r *RecordList) SetRecords(records []domain.FileRecord) {
	r.records = records
	if r.selected >= len(records) {
		r.selected = max(len(records)-1, 0)
	}
	r.scrollToSelected()
}

// Records returns the current records.
func (r *RecordList) Records() []domain.FileRecord {
	return r.records
}

// Selected returns the index of the selected record.
func (r *RecordList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RecordList) SetSelected(index int) {
	if index >= 0 && index < len(r.records) {
		r.selected = index
		r.scrollToSelected()
	}
}

// SelectedRecord returns the currently selected record, or nil if none.
func (r *RecordList) SelectedRecord() *domain.FileRecord {
	if r.selected < 0 || r.selected >= len(r.records) {
		return nil
	}
	return &r.records[r.selected]
}

// MoveUp moves selection up.
func (r *RecordList) MoveUp() {
	r.SetSelected(r.selected - 1)
}

// MoveDown moves selection down.
func (r *RecordList) MoveDown() {
	r.SetSelected(r.selected + 1)
}

// SetDimensions sets the component dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.scrollToSelected()
}

// Count returns the number of records.
func (r *RecordList) Count() int {
	return len(r.records)
}

// IsEmpty returns whether the list is empty.
func (r *RecordList) IsEmpty() bool {
	return len(r.records) == 0
}
