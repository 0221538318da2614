// Package tui hosts the interactive terminal interfaces. The review model
// lets an operator accept or reject discovered patterns before anything is
// promoted into the rule catalog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/billflow/billflow/internal/model"
)

// ReviewMode represents the current mode.
type ReviewMode int

const (
	ModeSelecting ReviewMode = iota
	ModeNaming
)

// Promotion is one discovered pattern the reviewer accepted, with the rule
// name it should be saved under.
type Promotion struct {
	Name    string
	Pattern model.DiscoveredPattern
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ReviewModel manages the pattern review interface.
type ReviewModel struct {
	selected  map[int]bool
	taken     map[string]bool
	nameErr   string
	nameInput textinput.Model
	patterns  []model.DiscoveredPattern
	pending   []int
	promoted  []Promotion
	mode      ReviewMode
	cursor    int
	aborted   bool
	done      bool
}

// NewReviewModel creates a review session over the discovered patterns.
// takenNames are rule names already in use; suggested names avoid them.
func NewReviewModel(patterns []model.DiscoveredPattern, takenNames []string) ReviewModel {
	input := textinput.New()
	input.Placeholder = "rule name"
	input.CharLimit = 50

	taken := make(map[string]bool, len(takenNames))
	for _, name := range takenNames {
		taken[strings.ToLower(name)] = true
	}

	return ReviewModel{
		patterns:  patterns,
		selected:  make(map[int]bool),
		taken:     taken,
		nameInput: input,
		mode:      ModeSelecting,
	}
}

// Init returns initial commands.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case ModeSelecting:
		return m.handleSelecting(keyMsg)
	case ModeNaming:
		return m.handleNaming(keyMsg)
	}
	return m, nil
}

// handleSelecting handles key presses while choosing which patterns to keep.
func (m ReviewModel) handleSelecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(m.patterns)-1)

	case "k", "up":
		m.cursor = max(m.cursor-1, 0)

	case " ", "space":
		m.selected[m.cursor] = !m.selected[m.cursor]

	case "a":
		for i := range m.patterns {
			m.selected[i] = true
		}

	case "enter":
		for i := range m.patterns {
			if m.selected[i] {
				m.pending = append(m.pending, i)
			}
		}
		if len(m.pending) == 0 {
			m.done = true
			return m, tea.Quit
		}
		m.mode = ModeNaming
		m.startNaming()
		return m, textinput.Blink

	case "q", "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	}

	return m, nil
}

// handleNaming handles key presses while naming the accepted patterns.
func (m ReviewModel) handleNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.nameErr = "name cannot be empty"
			return m, nil
		}
		if m.taken[strings.ToLower(name)] {
			m.nameErr = fmt.Sprintf("rule %q already exists", name)
			return m, nil
		}

		idx := m.pending[len(m.promoted)]
		m.promoted = append(m.promoted, Promotion{Name: name, Pattern: m.patterns[idx]})
		m.taken[strings.ToLower(name)] = true
		m.nameErr = ""

		if len(m.promoted) == len(m.pending) {
			m.done = true
			return m, tea.Quit
		}
		m.startNaming()
		return m, nil

	case "esc":
		m.mode = ModeSelecting
		m.pending = nil
		m.promoted = nil
		m.nameErr = ""
		m.nameInput.Blur()
		return m, nil

	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
}

// startNaming prepares the input for the next accepted pattern.
func (m *ReviewModel) startNaming() {
	idx := m.pending[len(m.promoted)]
	m.nameInput.SetValue(m.suggestName(m.patterns[idx].ValueType))
	m.nameInput.CursorEnd()
	m.nameInput.Focus()
}

// suggestName proposes an unused rule name for a value type.
func (m ReviewModel) suggestName(vt model.ValueType) string {
	base := "discovered-" + string(vt)
	if !m.taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !m.taken[candidate] {
			return candidate
		}
	}
}

// View renders the review interface.
func (m ReviewModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	switch m.mode {
	case ModeNaming:
		return m.renderNaming()
	default:
		return m.renderSelecting()
	}
}

// renderSelecting renders the pattern list with selection markers.
func (m ReviewModel) renderSelecting() string {
	sections := []string{
		titleStyle.Render("Discovered patterns"),
		"",
	}

	for i, p := range m.patterns {
		marker := "[ ]"
		if m.selected[i] {
			marker = selectedStyle.Render("[x]")
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%s%s %s  (conf %.2f, %d occurrence(s))",
			prefix, marker, p.ValueType, p.Confidence, p.Frequency)
		detail := mutedStyle.Render(fmt.Sprintf("      %s\n      examples: %s",
			p.Pattern, strings.Join(p.Examples, ", ")))
		sections = append(sections, line, detail)
	}

	sections = append(sections, "",
		mutedStyle.Render("j/k move   space select   a select all   enter promote   q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNaming renders the naming step for the current accepted pattern.
func (m ReviewModel) renderNaming() string {
	idx := m.pending[len(m.promoted)]
	p := m.patterns[idx]

	sections := []string{
		titleStyle.Render(fmt.Sprintf("Name rule %d of %d", len(m.promoted)+1, len(m.pending))),
		"",
		fmt.Sprintf("%s  %s", p.ValueType, p.Pattern),
		"",
		m.nameInput.View(),
	}

	if m.nameErr != "" {
		sections = append(sections, errorStyle.Render(m.nameErr))
	}
	sections = append(sections, "",
		mutedStyle.Render("enter accept   esc back to selection"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Promotions returns the accepted patterns with their chosen names, or nil
// when the session was aborted.
func (m ReviewModel) Promotions() []Promotion {
	if m.aborted {
		return nil
	}
	return m.promoted
}

// Aborted reports whether the reviewer quit without promoting anything.
func (m ReviewModel) Aborted() bool {
	return m.aborted
}

// RunReview runs the interactive review session and returns the promotions
// the reviewer accepted. An aborted session promotes nothing.
func RunReview(ctx context.Context, patterns []model.DiscoveredPattern, takenNames []string) ([]Promotion, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	program := tea.NewProgram(NewReviewModel(patterns, takenNames), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review session failed: %w", err)
	}

	m, ok := final.(ReviewModel)
	if !ok {
		return nil, nil
	}
	return m.Promotions(), nil
}
