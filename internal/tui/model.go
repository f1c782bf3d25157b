// Package tui provides the Bubble Tea brute-force scan interface.
package tui

import (
	"fmt"
	"iter"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kasiski/internal/model"
)

const scanBatchSize = 256

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C89A3A")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#4A4A4A"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type batchMsg struct {
	candidates []model.Candidate
	done       bool
	err        error
}

// Model implements the Bubble Tea scan browser. It pulls candidates from a
// lazy scan in batches, keeping only the best `top` in memory.
type Model struct {
	next func() (model.Candidate, error, bool)
	stop func()

	top     int
	best    []model.Candidate
	scanned int
	done    bool
	paused  bool
	errMsg  string

	width  int
	height int
	table  table.Model
}

// NewModel constructs a scan browser over a lazy candidate sequence.
func NewModel(scan iter.Seq2[model.Candidate, error], top int) *Model {
	next, stop := iter.Pull2(scan)
	if top <= 0 {
		top = 20
	}
	m := &Model{
		next: next,
		stop: stop,
		top:  top,
	}
	m.table = table.New(
		table.WithColumns(m.columns(80)),
		table.WithFocused(true),
		table.WithHeight(top),
	)
	styles := table.DefaultStyles()
	styles.Header = headerStyle
	styles.Selected = selectedStyle
	m.table.SetStyles(styles)
	return m
}

func (m *Model) columns(totalWidth int) []table.Column {
	keyWidth := 12
	scoreWidth := 10
	plainWidth := totalWidth - keyWidth - scoreWidth - 6
	if plainWidth < 16 {
		plainWidth = 16
	}
	return []table.Column{
		{Title: "Key", Width: keyWidth},
		{Title: "Fitness", Width: scoreWidth},
		{Title: "Plaintext", Width: plainWidth},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.pullBatch
}

func (m *Model) pullBatch() tea.Msg {
	batch := make([]model.Candidate, 0, scanBatchSize)
	for len(batch) < scanBatchSize {
		cand, err, ok := m.next()
		if !ok {
			return batchMsg{candidates: batch, done: true}
		}
		if err != nil {
			return batchMsg{candidates: batch, err: err}
		}
		batch = append(batch, cand)
	}
	return batchMsg{candidates: batch}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(m.columns(m.width))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop()
			return m, tea.Quit
		case " ":
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m, m.pullBatch
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case batchMsg:
		m.merge(msg.candidates)
		m.scanned += len(msg.candidates)
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.done = true
			m.stop()
			return m, nil
		}
		if msg.done {
			m.done = true
			m.stop()
			return m, nil
		}
		if m.paused {
			return m, nil
		}
		return m, m.pullBatch
	default:
		return m, nil
	}
}

func (m *Model) merge(candidates []model.Candidate) {
	if len(candidates) == 0 {
		return
	}
	m.best = append(m.best, candidates...)
	sort.SliceStable(m.best, func(i, j int) bool {
		return m.best[i].Score < m.best[j].Score
	})
	if len(m.best) > m.top {
		m.best = m.best[:m.top]
	}
	rows := make([]table.Row, 0, len(m.best))
	plainWidth := m.columns(m.widthOr(80))[2].Width
	for _, c := range m.best {
		rows = append(rows, table.Row{
			c.Key,
			fmt.Sprintf("%.2f", c.Score),
			runewidth.Truncate(c.Plaintext, plainWidth, "…"),
		})
	}
	m.table.SetRows(rows)
}

func (m *Model) widthOr(backup int) int {
	if m.width > 0 {
		return m.width
	}
	return backup
}

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("Brute-force scan — %d keys tried", m.scanned))
	status := "scanning… space pauses, q quits"
	switch {
	case m.errMsg != "":
		status = errorStyle.Render("error: " + m.errMsg)
	case m.done:
		status = "scan finished, q quits"
	case m.paused:
		status = "paused, space resumes, q quits"
	}
	return title + "\n" + m.table.View() + "\n" + footerStyle.Render(status) + "\n"
}

// Best returns the lowest-score candidates collected so far, best first.
func (m *Model) Best() []model.Candidate {
	out := make([]model.Candidate, len(m.best))
	copy(out, m.best)
	return out
}
