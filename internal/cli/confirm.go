package cli

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/autogen/pkg/errors"
)

var (
	confirmActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorCyan).Padding(0, 1)
	confirmInactiveStyle = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	confirmHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConfirmModel - yes/no prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question.
type ConfirmModel struct {
	Title     string
	Selection bool // true while "Yes" is highlighted
	Confirmed bool
	Cancelled bool
	done      bool
}

// NewConfirmModel creates a prompt with "No" preselected.
func NewConfirmModel(title string) ConfirmModel {
	return ConfirmModel{Title: title}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.Cancelled = true
		m.done = true
		return m, tea.Quit
	case "y", "Y":
		m.Confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.Confirmed = false
		m.done = true
		return m, tea.Quit
	case "left", "h", "right", "l", "tab", "shift+tab":
		m.Selection = !m.Selection
	case "enter", " ":
		m.Confirmed = m.Selection
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	yes := confirmInactiveStyle.Render("Yes")
	no := confirmInactiveStyle.Render("No")
	if m.Selection {
		yes = confirmActiveStyle.Render("Yes")
	} else {
		no = confirmActiveStyle.Render("No")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(yes + "  " + no)
	b.WriteString("\n")
	b.WriteString(confirmHelpStyle.Render("enter submit • y yes • n no • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// confirm asks title on the terminal. Cancelling is an ABORTED error.
func confirm(in io.Reader, out io.Writer, title string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(title), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m := final.(ConfirmModel)
	if m.Cancelled {
		return false, errors.New(errors.ErrCodeAborted, "cancelled")
	}
	return m.Confirmed, nil
}
