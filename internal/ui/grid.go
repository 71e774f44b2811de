package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/model"
)

// Grid renders the roster as a table: one row per roster slot, one
// column per item. Completed columns carry the done symbol.
func Grid(s *checklist.Session) string {
	t := Current()
	items := s.Items()

	headers := make([]string, 0, len(items)+1)
	headers = append(headers, "#")
	for _, it := range items {
		h := it.Label
		if s.Complete(it.Key) {
			h += " " + t.SymDone
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, model.NumRows)
	for r := 1; r <= model.NumRows; r++ {
		row := make([]string, 0, len(items)+1)
		row = append(row, strconv.Itoa(r))
		for _, it := range items {
			box := t.BoxUnchecked
			if s.Value(it.Key, r) {
				box = t.BoxChecked
			}
			row = append(row, box)
		}
		rows = append(rows, row)
	}

	color := colorOn()
	base := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := base
			if col > 0 {
				st = st.Align(lipgloss.Center)
			}
			if !color || col == 0 {
				return st
			}
			key := items[col-1].Key
			switch {
			case row == table.HeaderRow && s.Complete(key):
				return st.Bold(true).Foreground(lipgloss.Color(t.CompleteColor))
			case row == table.HeaderRow:
				return st.Bold(true)
			case s.Value(key, row+1):
				return st.Foreground(lipgloss.Color(t.CheckedColor))
			}
			return st
		})
	if color && t.BorderColor != "" {
		tbl = tbl.BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderColor)))
	}
	return tbl.Render()
}

// SummaryLine is the distinguished column's count with a progress bar.
func SummaryLine(s *checklist.Session) string {
	sum := s.Summary()
	label := s.Distinguished().Label
	return fmt.Sprintf("%s  %s  %s",
		C(Current().Title, label),
		C(Current().Accent, sum.String()),
		C(Current().Muted, ProgressBar(sum.Count, sum.Total, 20)),
	)
}

// ItemLines lists the schema with completion state.
func ItemLines(s *checklist.Session) []string {
	t := Current()
	var out []string
	for i, it := range s.Items() {
		mark, color := t.SymUnchecked, t.Pending
		if s.Complete(it.Key) {
			mark, color = t.SymDone, t.Success
		}
		lock := ""
		if !it.Removable {
			lock = C(t.Muted, " (fixed)")
		}
		out = append(out, fmt.Sprintf("%s %s %-14s %s%s",
			C(dim, fmt.Sprintf("%2d.", i+1)),
			C(color, mark),
			it.Key,
			it.Label,
			lock,
		))
	}
	return out
}
