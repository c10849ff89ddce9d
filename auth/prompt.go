package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptAuthCode asks the user to paste the authorization code shown at
// the end of the browser consent flow.
func PromptAuthCode() (string, error) {
	p := tea.NewProgram(newPromptModel())
	m, err := p.StartReturningModel()
	if err != nil {
		return "", err
	}

	final, ok := m.(promptModel)
	if !ok || final.quitting {
		return "", errors.New("authorization prompt aborted")
	}

	code := strings.TrimSpace(final.textInput.Value())
	if code == "" {
		return "", errors.New("no authorization code entered")
	}

	return code, nil
}

type promptModel struct {
	textInput textinput.Model
	submitted bool
	quitting  bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Placeholder = "Authorization code"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 64

	return promptModel{textInput: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.quitting || m.submitted {
		return ""
	}
	return fmt.Sprintf(
		"Paste the authorization code:\n\n%s\n\n%s",
		m.textInput.View(),
		"(enter to submit, esc to cancel)",
	) + "\n"
}
