package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Terminal prompts on a terminal using one bubbletea program per question.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a Terminal reading keys from in and drawing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	cursor := 1
	if def {
		cursor = 0
	}
	i, err := t.Select(question, []string{YesLabel, NoLabel}, cursor)
	if err != nil {
		return false, err
	}
	return i == 0, nil
}

// Select implements Prompter.
func (t *Terminal) Select(question string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: no options for %q", types.ErrInvalidSelection, question)
	}
	final, err := t.run(newSelectModel(question, options, def))
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	if m.aborted {
		return 0, types.ErrAborted
	}
	return m.cursor, nil
}

// Input implements Prompter.
func (t *Terminal) Input(question, def string) (string, error) {
	final, err := t.run(newInputModel(question, def))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", types.ErrAborted
	}
	return m.input.Value(), nil
}

// Edit implements Prompter.
func (t *Terminal) Edit(question, def string) (string, error) {
	final, err := t.run(newEditModel(question, def))
	if err != nil {
		return "", err
	}
	m := final.(editModel)
	if m.aborted {
		return "", types.ErrAborted
	}
	return m.result(), nil
}

// selectModel is a single-choice list.
type selectModel struct {
	question string
	options  []string
	cursor   int
	chosen   bool
	aborted  bool
}

func newSelectModel(question string, options []string, def int) selectModel {
	if def < 0 || def >= len(options) {
		def = 0
	}
	return selectModel{question: question, options: options, cursor: def}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.chosen {
		return questionStyle.Render(m.question) + " " + answerStyle.Render(m.options[m.cursor]) + "\n"
	}
	if m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+opt) + "\n")
		} else {
			b.WriteString("  " + opt + "\n")
		}
	}
	b.WriteString(hintStyle.Render("↑/↓ to move, enter to select, esc to cancel") + "\n")
	return b.String()
}

// inputModel is a single-line text field.
type inputModel struct {
	question string
	input    textinput.Model
	done     bool
	aborted  bool
}

func newInputModel(question, def string) inputModel {
	ti := textinput.New()
	ti.SetValue(def)
	ti.CursorEnd()
	ti.Focus()
	ti.Width = 72
	return inputModel{question: question, input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return questionStyle.Render(m.question) + " " + answerStyle.Render(m.input.Value()) + "\n"
	}
	if m.aborted {
		return ""
	}
	return questionStyle.Render(m.question) + "\n" + m.input.View() + "\n"
}

// editModel is a multi-line text area submitted with ctrl+d.
type editModel struct {
	question string
	area     textarea.Model
	def      string
	loaded   string // def as the textarea holds it; tabs and CRLF are rewritten on load.
	done     bool
	aborted  bool
}

func newEditModel(question, def string) editModel {
	ta := textarea.New()
	ta.SetWidth(80)
	ta.SetHeight(min(strings.Count(def, "\n")+2, 20))
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(def)
	ta.Focus()
	return editModel{question: question, area: ta, def: def, loaded: ta.Value()}
}

// result returns the edited text, or def unchanged when nothing was edited.
func (m editModel) result() string {
	if v := m.area.Value(); v != m.loaded {
		return v
	}
	return m.def
}

func (m editModel) Init() tea.Cmd { return textarea.Blink }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "ctrl+d":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return questionStyle.Render(m.question) + "\n" +
		m.area.View() + "\n" +
		hintStyle.Render("ctrl+d to save, esc to cancel") + "\n"
}
