// Package tui is the interactive roster editor. It renders straight from
// the session and listens to its notifications for status messages.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/model"
)

// statusView turns session notifications into a one-line status.
type statusView struct {
	checklist.NopView
	msg string
}

func (v *statusView) CompletionChanged(key string, complete bool) {
	if complete {
		v.msg = key + " complete"
	}
}

func (v *statusView) AppendCell(row int, key string) {
	if row == model.NumRows {
		v.msg = "added " + key
	}
}

func (v *statusView) RemoveCell(row int, key string) {
	if row == model.NumRows {
		v.msg = "removed " + key
	}
}

type modelTUI struct {
	s      *checklist.Session
	status *statusView

	row, col int // row is 1-based, col indexes s.Items()
	offset   int // first visible row - 1

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	keys keyMap
	help help.Model

	width, height int
}

func newModel(s *checklist.Session) modelTUI {
	st := &statusView{}
	s.Attach(st)
	st.msg = ""

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item label..."
	ti.CharLimit = 60

	return modelTUI{
		s:      s,
		status: st,
		row:    1,
		ti:     ti,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Run starts the editor. Every change is persisted by the session as it
// happens, so quitting needs no final save.
func Run(s *checklist.Session) error {
	_, err := tea.NewProgram(newModel(s), tea.WithAltScreen()).Run()
	return err
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
		m.scroll()
		return m, nil
	}

	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				label := strings.TrimSpace(m.ti.Value())
				if label == "" {
					m.addErr = "Label cannot be empty"
					return m, nil
				}
				it, err := m.s.AddItem(label)
				if err != nil {
					m.addErr = rejectReason(err)
					return m, nil
				}
				m.col = len(m.s.Items()) - 1
				m.stopAdding()
				m.status.msg = "added " + it.Label
				return m, nil
			case "esc":
				m.stopAdding()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.s.Items()
	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.row > 1 {
			m.row--
		}
	case key.Matches(km, m.keys.Down):
		if m.row < model.NumRows {
			m.row++
		}
	case key.Matches(km, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(km, m.keys.Right):
		if m.col < len(items)-1 {
			m.col++
		}
	case key.Matches(km, m.keys.Toggle):
		m.status.msg = ""
		m.s.Toggle(items[m.col].Key, m.row)
	case key.Matches(km, m.keys.Complete):
		m.status.msg = ""
		it := items[m.col]
		if n := len(m.s.BulkSet(it.Key, true)); n > 0 && m.status.msg == "" {
			m.status.msg = fmt.Sprintf("checked %d in %s", n, it.Label)
		}
	case key.Matches(km, m.keys.Uncomplete):
		it := items[m.col]
		n := len(m.s.BulkSet(it.Key, false))
		m.status.msg = fmt.Sprintf("cleared %d in %s", n, it.Label)
	case key.Matches(km, m.keys.Remove):
		it := items[m.col]
		if err := m.s.RemoveItem(it.Key); err != nil {
			m.status.msg = rejectReason(err)
			break
		}
		if m.col >= len(m.s.Items()) {
			m.col = len(m.s.Items()) - 1
		}
	case key.Matches(km, m.keys.Add):
		m.adding = true
		m.addErr = ""
		m.ti.SetValue("")
		return m, m.ti.Focus()
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.scroll()
	return m, nil
}

func (m *modelTUI) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func rejectReason(err error) string {
	if errors.Is(err, checklist.ErrRejected) {
		return strings.TrimPrefix(err.Error(), checklist.ErrRejected.Error()+": ")
	}
	return err.Error()
}

// visibleRows is how many roster rows fit between the chrome.
func (m modelTUI) visibleRows() int {
	chrome := 7 // border, header, rule, summary, status, help
	if m.adding {
		chrome += 4
	}
	if m.help.ShowAll {
		chrome += 3
	}
	n := m.height - chrome
	if n < 3 {
		n = 3
	}
	if n > model.NumRows {
		n = model.NumRows
	}
	return n
}

func (m *modelTUI) scroll() {
	vis := m.visibleRows()
	if m.row-1 < m.offset {
		m.offset = m.row - 1
	}
	if m.row > m.offset+vis {
		m.offset = m.row - vis
	}
	if m.offset > model.NumRows-vis {
		m.offset = model.NumRows - vis
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func colWidth(it model.Item) int {
	w := runewidth.StringWidth(it.Label) + 2
	if w < 5 {
		w = 5
	}
	return w
}

func (m modelTUI) View() string {
	items := m.s.Items()
	var b strings.Builder

	// header
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%3s ", "#")))
	for i, it := range items {
		label := it.Label
		st := titleStyle
		if m.s.Complete(it.Key) {
			label += " ✔"
			st = completeStyle
		}
		if i == m.col {
			st = st.Underline(true)
		}
		b.WriteString(st.Width(colWidth(it)).Align(lipgloss.Center).Render(label))
	}
	b.WriteString("\n")

	// rows
	last := m.offset + m.visibleRows()
	for r := m.offset + 1; r <= last; r++ {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%3s ", strconv.Itoa(r))))
		for i, it := range items {
			box, st := boxUnchecked, mutedStyle
			if m.s.Value(it.Key, r) {
				box, st = boxChecked, successStyle
			}
			if r == m.row && i == m.col {
				st = selectedStyle
			}
			b.WriteString(lipgloss.NewStyle().Width(colWidth(it)).Align(lipgloss.Center).Render(st.Render(box)))
		}
		b.WriteString("\n")
	}

	// footer
	sum := m.s.Summary()
	b.WriteString(fmt.Sprintf("%s %s   %s",
		titleStyle.Render(m.s.Distinguished().Label),
		accentStyle.Render(sum.String()),
		mutedStyle.Render(fmt.Sprintf("rows %d-%d of %d", m.offset+1, last, model.NumRows)),
	))
	if m.status.msg != "" {
		b.WriteString("  " + pendingStyle.Render(m.status.msg))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	content := b.String()
	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += " - " + errorStyle.Render(m.addErr)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return panelString(content)
}
