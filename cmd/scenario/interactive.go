package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dharitri/dharitri-wasm-go/mock"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSteps modelState = iota
	stateInspect
)

type stepResult struct {
	err  error
	done bool
}

type interactiveModel struct {
	err       error
	scenario  *mock.Scenario
	newWorld  func() *mock.World
	world     *mock.World
	path      string
	inspected string
	results   []stepResult
	input     textinput.Model
	next      int
	selected  int
	state     modelState
}

func newInteractiveModel(path string, s *mock.Scenario, newWorld func() *mock.World) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "address:owner"
	ti.Prompt = "account: "
	ti.Width = 48

	m := &interactiveModel{
		scenario: s,
		newWorld: newWorld,
		path:     path,
		input:    ti,
	}
	m.reset()
	return m
}

func (m *interactiveModel) reset() {
	m.world = m.newWorld()
	m.err = m.scenario.Setup(m.world)
	m.results = make([]stepResult, len(m.scenario.Steps))
	m.next = 0
	m.inspected = ""
}

func (m *interactiveModel) runNext() {
	if m.next >= len(m.scenario.Steps) {
		return
	}
	m.results[m.next] = stepResult{done: true, err: m.scenario.RunStep(m.world, m.next)}
	m.selected = m.next
	m.next++
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateInspect {
		switch key.String() {
		case "esc":
			m.state = stateSteps
			m.input.Blur()
			return m, nil
		case "enter":
			m.inspected = m.describeAccount(m.input.Value())
			m.state = stateSteps
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.scenario.Steps)-1 {
			m.selected++
		}
	case "enter", "n":
		m.runNext()
	case "a":
		for m.next < len(m.scenario.Steps) {
			m.runNext()
		}
	case "r":
		m.reset()
	case "/":
		m.state = stateInspect
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *interactiveModel) describeAccount(notation string) string {
	addr, err := mock.ScenarioAddress(strings.TrimSpace(notation))
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	acc, ok := m.world.Account(addr)
	if !ok {
		return errorStyle.Render("no account " + notation)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n  nonce    %d\n  balance  %s\n", notation, acc.Nonce, acc.Balance)
	if acc.IsContract() {
		fmt.Fprintf(&b, "  code     %q (%s)\n", acc.Code, acc.CodeMetadata)
	}
	keys := make([]string, 0, len(acc.Storage))
	for k := range acc.Storage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  storage  %q = 0x%s\n", k, hex.EncodeToString(acc.Storage[k]))
	}
	return resultStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	title := m.scenario.Name
	if title == "" {
		title = "Scenario"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" ")
	b.WriteString(m.path)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("setup: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i := range m.scenario.Steps {
		line := fmt.Sprintf("%s %s", m.marker(i), m.scenario.StepID(i))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.selected < len(m.results) {
		if r := m.results[m.selected]; r.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(r.err.Error()))
			b.WriteString("\n")
		}
	}

	if m.inspected != "" {
		b.WriteString("\n")
		b.WriteString(m.inspected)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateInspect {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter show • esc back"))
		return b.String()
	}
	b.WriteString(helpStyle.Render("enter run next • a run all • r reset • / inspect account • q quit"))
	return b.String()
}

func (m *interactiveModel) marker(i int) string {
	r := m.results[i]
	switch {
	case !r.done:
		return pendingStyle.Render("·")
	case r.err != nil:
		return errorStyle.Render("✗")
	default:
		return resultStyle.Render("✓")
	}
}

func runInteractive(path string, newWorld func() *mock.World) error {
	s, err := mock.LoadScenario(path)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(path, s, newWorld), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
