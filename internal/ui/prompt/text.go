package prompt

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/instab/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if m.err = m.validate(m.value()); m.err != nil {
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.err = nil
	return m, cmd
}

func (m textInputModel) value() string {
	return strings.TrimSpace(m.textInput.Value())
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	var sb strings.Builder
	sb.WriteString(styles.PrimaryStyle.Render(m.prompt))
	sb.WriteString("\n")
	sb.WriteString(m.textInput.View())
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorStyle.Render(m.err.Error()))
	}
	return tea.NewView(sb.String())
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 63
	ti.SetWidth(40)
	return ti
}

// TextInput shows a single-line prompt on stderr. validate, if set, runs on
// enter; an error is shown under the input and the prompt stays open.
// The returned value is trimmed.
func TextInput(prompt, placeholder string, validate func(string) error) (TextInputResult, error) {
	model := textInputModel{
		textInput: newTextInput(placeholder),
		prompt:    prompt,
		validate:  validate,
	}
	finalModel, err := run(model)
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     m.value(),
		Cancelled: m.cancelled,
	}, nil
}
