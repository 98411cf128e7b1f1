package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pizza-time/internal/storage"
)

const maxRuns = 100 // Max runs to load

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab", "b"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Scoreboard lists the runs of this process, best first.
// It is a sub-model of the game screen, not a program of its own.
type Scoreboard struct {
	store  *storage.Store
	runs   []storage.Run
	stats  storage.Stats
	lastID string
	last   *storage.Run // nil when lastID is empty or unknown
	err    error
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	closed   bool
	quitting bool
}

// NewScoreboard creates a scoreboard and loads the run log.
// lastRunID, if set, names the run to report under the summary.
func NewScoreboard(store *storage.Store, lastRunID string, width, height int) Scoreboard {
	m := Scoreboard{
		store:  store,
		lastID: lastRunID,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}
	if extra := m.width - 4 - 56; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Reload reads the run log again.
func (m *Scoreboard) Reload() {
	m.runs, m.stats, m.last, m.err = nil, storage.Stats{}, nil, nil
	if m.store != nil {
		m.runs, m.err = m.store.TopRuns(maxRuns)
		if m.err == nil {
			m.stats, m.err = m.store.Stats()
		}
		if m.err == nil && m.lastID != "" {
			m.last, m.err = m.store.RunByID(m.lastID)
		}
	}
	m.updateTableRows()
}

// lastRank returns the 1-based table position of the latest run, or 0
// when it fell outside the loaded runs.
func (m Scoreboard) lastRank() int {
	if m.last == nil {
		return 0
	}
	for i, r := range m.runs {
		if r.RunID == m.last.RunID {
			return i + 1
		}
	}
	return 0
}

func (m *Scoreboard) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			formatDuration(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration prints a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Update handles a message and returns the updated scoreboard.
func (m Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m Scoreboard) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summary := "no runs this session"
	if m.stats.Runs > 0 {
		summary = fmt.Sprintf("%d runs   best %d   avg %.0f   played %s",
			m.stats.Runs, m.stats.HighScore, m.stats.AvgScore, formatDuration(m.stats.TotalTime))
	}
	b.WriteString(centerText(dim.Render(summary), m.width))
	b.WriteString("\n")
	if m.last != nil {
		line := fmt.Sprintf("last run %d in %s", m.last.Score, formatDuration(m.last.Duration))
		if rank := m.lastRank(); rank > 0 {
			line += fmt.Sprintf("   rank #%d", rank)
		}
		b.WriteString(centerText(dim.Render(line), m.width))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Scoreboard) renderTableContent() string {
	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Padding(1, 2).
			Render("Run log unavailable: " + m.err.Error())
	}
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// Closed reports whether the user left the scoreboard.
func (m Scoreboard) Closed() bool {
	return m.closed
}

// IsQuitting reports whether the user quit from the scoreboard.
func (m Scoreboard) IsQuitting() bool {
	return m.quitting
}

// centerText pads every line of text so the block sits in the middle of width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	blockW := 0
	for _, l := range lines {
		blockW = max(blockW, lipgloss.Width(l))
	}
	pad := (width - blockW) / 2
	if pad <= 0 {
		return text
	}
	prefix := strings.Repeat(" ", pad)
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
