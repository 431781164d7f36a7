package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type gridModel struct {
	store *state.HistoryStore
	cat   rules.Catalog
	saver *state.Saver
	now   func() time.Time

	weekOffset int
	row        int
	col        int

	report  progress.Report
	warning bool
	lastLog string

	width  int
	height int
}

// warningClearMsg turns the reactor back to cyan after a fine flash.
type warningClearMsg struct{}

func newGridModel(store *state.HistoryStore, cat rules.Catalog, saver *state.Saver, now func() time.Time) gridModel {
	return gridModel{
		store:   store,
		cat:     cat,
		saver:   saver,
		now:     now,
		report:  progress.Compute(store, cat, now()),
		lastLog: "Loaded.",
	}
}

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) rowCount() int {
	return len(m.cat.Tasks) + len(m.cat.Fines)
}

// weekStart returns the Monday of the currently displayed week.
func (m gridModel) weekStart() time.Time {
	return calendar.AddDays(calendar.WeekStart(m.now()), m.weekOffset*7)
}

func (m gridModel) cellDate() time.Time {
	return calendar.AddDays(m.weekStart(), m.col)
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case warningClearMsg:
		m.warning = false
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
			return m, nil
		case "down", "j":
			if m.row < m.rowCount()-1 {
				m.row++
			}
			return m, nil
		case "left", "h":
			if m.col > 0 {
				m.col--
			}
			return m, nil
		case "right", "l":
			if m.col < 6 {
				m.col++
			}
			return m, nil
		case "[":
			m.weekOffset--
			return m, nil
		case "]":
			m.weekOffset++
			return m, nil
		case "t":
			m.weekOffset = 0
			return m, nil
		case " ", "enter":
			return m.toggleSelected()
		}
	}
	return m, nil
}

func (m gridModel) toggleSelected() (tea.Model, tea.Cmd) {
	date := m.cellDate()
	now := m.now()

	var cmd tea.Cmd
	if m.row < len(m.cat.Tasks) {
		task := m.cat.Tasks[m.row]
		if !task.Available(m.col, date, now) {
			m.lastLog = fmt.Sprintf("%s is not available on %s.", task.Title, calendar.DateKey(date))
			return m, nil
		}
		checked := m.store.Toggle(date, task.ID)
		if checked {
			m.lastLog = fmt.Sprintf("%s done on %s.", task.Title, calendar.DateKey(date))
		} else {
			m.lastLog = fmt.Sprintf("%s cleared on %s.", task.Title, calendar.DateKey(date))
		}
	} else {
		fine := m.cat.Fines[m.row-len(m.cat.Tasks)]
		marked := m.store.Toggle(date, fine.ID)
		if marked {
			m.warning = true
			m.lastLog = fmt.Sprintf("%s logged on %s (-%d).", fine.Title, calendar.DateKey(date), fine.Pricing.AmountFor(0))
			cmd = tea.Tick(900*time.Millisecond, func(time.Time) tea.Msg { return warningClearMsg{} })
		} else {
			m.lastLog = fmt.Sprintf("%s cleared on %s.", fine.Title, calendar.DateKey(date))
		}
	}

	m.report = progress.Compute(m.store, m.cat, now)
	m.saver.Queue(m.store)
	return m, cmd
}

func (m gridModel) View() string {
	var b strings.Builder

	percent := float64(m.report.Balance) / float64(rules.Goal) * 100
	header := fmt.Sprintf("%s  %s  %s",
		ui.Heading(ui.IconReactor, "Stark Discipline Hub"),
		ui.LabelValue("Balance", ui.Rub(m.report.Balance)),
		ui.Reactor(percent, 20, m.warning),
	)
	b.WriteString(header + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Week of %s  (offset %+d)", calendar.DateKey(m.weekStart()), m.weekOffset)) + "\n\n")

	b.WriteString(m.renderGrid() + "\n")

	if streaks := m.renderStreaks(); streaks != "" {
		b.WriteString(streaks + "\n")
	}

	b.WriteString(ui.Muted.Render("↑↓←→ move · space toggle · [ ] week · t today · q quit") + "\n")
	b.WriteString(m.lastLog + "\n")
	return b.String()
}

func (m gridModel) renderGrid() string {
	now := m.now()
	week := m.weekStart()

	titleWidth := 0
	for _, t := range m.cat.Tasks {
		if len(t.Title) > titleWidth {
			titleWidth = len(t.Title)
		}
	}
	for _, f := range m.cat.Fines {
		if len(f.Title) > titleWidth {
			titleWidth = len(f.Title)
		}
	}

	var rows []string
	head := fmt.Sprintf("%-*s", titleWidth+8, "")
	for _, d := range dayNames {
		head += fmt.Sprintf(" %3s", d)
	}
	rows = append(rows, ui.H2.Render(head))

	for i, task := range m.cat.Tasks {
		label := fmt.Sprintf("%-*s %s", titleWidth, task.Title, ui.Muted.Render(fmt.Sprintf("+%4d", task.Reward)))
		rows = append(rows, m.renderRow(i, label, task.ID, func(col int, date time.Time) bool {
			return task.Available(col, date, now)
		}, week))
	}
	for i, fine := range m.cat.Fines {
		label := fmt.Sprintf("%-*s %s", titleWidth, fine.Title, ui.Bad.Render(fmt.Sprintf("-%4d", fine.Pricing.AmountFor(0))))
		rows = append(rows, m.renderRow(len(m.cat.Tasks)+i, label, fine.ID, func(int, time.Time) bool { return true }, week))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m gridModel) renderRow(row int, label, ruleID string, available func(col int, date time.Time) bool, week time.Time) string {
	line := label
	for col := 0; col < 7; col++ {
		date := calendar.AddDays(week, col)
		rec := m.store.Record(calendar.DateKey(date))
		cell := ui.Mark(rec != nil && rec[ruleID], available(col, date))
		if row == m.row && col == m.col {
			cell = ui.SelectedCell.Render(cell)
		}
		line += fmt.Sprintf(" [%s]", cell)
	}
	return line
}

func (m gridModel) renderStreaks() string {
	var parts []string
	for _, task := range m.cat.Tasks {
		st := m.report.Streaks[task.ID]
		if st.Count == 0 {
			continue
		}
		s := fmt.Sprintf("%s %s %d", ui.IconStreak, task.Title, st.Count)
		if st.NearBonus {
			s += " " + ui.Gold.Render("2x soon")
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ui.Muted.Render("  ·  "))
}
