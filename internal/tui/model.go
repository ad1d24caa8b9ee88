package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/domain"
)

// Backend is the TUI-facing subset of the API client.
type Backend interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	Ask(ctx context.Context, question string) (domain.Answer, error)
}

type mode int

const (
	modeSearch mode = iota
	modeAsk
)

// Model is the Bubble Tea model for the terminal client.
type Model struct {
	backend  Backend
	input    textinput.Model
	viewport viewport.Model
	mode     mode
	results  []domain.SearchResult
	answer   string
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(backend Backend) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a search and press Enter (Tab switches mode)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{backend: backend, input: ti, viewport: vp, status: "Connected. Type to search."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, query frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			if m.mode == modeSearch {
				m.mode = modeAsk
				m.input.Placeholder = "Type a question and press Enter (Tab switches mode)"
				m.status = "Ask mode."
			} else {
				m.mode = modeSearch
				m.input.Placeholder = "Type a search and press Enter (Tab switches mode)"
				m.status = "Search mode."
			}
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				if m.mode == modeSearch {
					m.submitSearch(q)
				} else {
					m.submitQuestion(q)
				}
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "down":
			if m.mode == modeSearch && len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "up":
			if m.mode == modeSearch && len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitSearch(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := m.backend.Search(ctx, query, 10)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return
	}
	m.status = fmt.Sprintf("Results for %q", query)
	m.results = res
	m.cursor = 0
}

func (m *Model) submitQuestion(question string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	m.answer = ""
	ans, err := m.backend.Ask(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrNoRelevantContent) {
			m.status = "No relevant documents."
		} else {
			m.status = "Error: " + err.Error()
		}
		return
	}
	m.status = fmt.Sprintf("Answer for %q", question)
	m.answer = ans.Answer
}

// View renders the TUI layout and current content.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Document Q&A — search"
	if m.mode == modeAsk {
		title = "Document Q&A — ask"
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if m.mode == modeAsk {
		if m.answer == "" {
			return "No answer yet."
		}
		return m.answer
	}
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  score=%.3f", m.cursor+1, len(m.results), r.Score)
	return title + "\n\n" + r.Content
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
