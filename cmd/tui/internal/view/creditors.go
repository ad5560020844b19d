package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/importer"
	"github.com/MrJamesThe3rd/khusela/internal/intake"
)

func (m IntakeModel) updateCreditors(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Creditors)-1 {
			m.cursor++
		}
	case "a":
		m.state = intake.Reduce(m.state, intake.AddCreditor{})
		m.cursor = len(m.state.Creditors) - 1
	case "d", "x":
		m.state = intake.Reduce(m.state, intake.RemoveCreditor{Index: m.cursor})
		m.cursor = min(m.cursor, len(m.state.Creditors)-1)
	case "e", "enter":
		return m.editCreditor()
	case "i":
		m.mode = intakeModeCreditorImport
		m.notice = ""

		if wd, err := os.Getwd(); err == nil {
			m.filePicker.CurrentDirectory = wd
		}

		return m, m.filePicker.Init()
	case "n", "tab":
		m.notice = ""
		m.state = intake.Reduce(m.state, intake.Next{})

		return m, m.enterStep()
	case "p", "shift+tab", "esc":
		m.notice = ""
		m.state = intake.Reduce(m.state, intake.Previous{})

		return m, m.enterStep()
	}

	return m, nil
}

func (m IntakeModel) editCreditor() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.state.Creditors) {
		return m, nil
	}

	m.values.creditor = m.state.Creditors[m.cursor]
	c := &m.values.creditor

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Creditor").Value(&c.Name),
			huh.NewInput().Title("Account / reference").Value(&c.AccountRef),
			huh.NewInput().Title("Balance").Value(&c.Balance),
			huh.NewInput().Title("Instalment").Value(&c.Amount),
		),
	).WithWidth(45).WithShowHelp(false)
	m.mode = intakeModeCreditorEdit

	return m, m.form.Init()
}

func (m IntakeModel) updateCreditorEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = intakeModeCreditors
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	c := m.values.creditor
	for field, value := range map[intake.CreditorField]string{
		intake.CreditorName:       c.Name,
		intake.CreditorAccountRef: c.AccountRef,
		intake.CreditorBalance:    c.Balance,
		intake.CreditorAmount:     c.Amount,
	} {
		m.state = intake.Reduce(m.state, intake.SetCreditorField{Index: m.cursor, Field: field, Value: value})
	}

	m.mode = intakeModeCreditors
	m.form = nil

	return m, nil
}

type creditorsImportedMsg struct {
	creditors []application.Creditor
	err       error
}

func (m IntakeModel) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = intakeModeCreditors
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.notice, m.noticeErr = fmt.Sprintf("Importing from %s...", path), false
		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m IntakeModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return creditorsImportedMsg{err: err}
		}
		defer f.Close()

		creditors, err := m.imports.Import(importer.FormatCreditorStatement, f)

		return creditorsImportedMsg{creditors: creditors, err: err}
	}
}

func (m IntakeModel) viewCreditors() string {
	var b strings.Builder

	fmt.Fprintf(&b, "   %-24s %-18s %12s %12s\n", "Creditor", "Account / ref", "Balance", "Instalment")

	for i, c := range m.state.Creditors {
		cursor := "  "
		if i == m.cursor {
			cursor = activeStyle("> ")
		}

		row := fmt.Sprintf("%-24s %-18s %12s %12s", truncate(c.Name, 24), truncate(c.AccountRef, 18), c.Balance, c.Amount)

		if hasCreditorError(m.state.Errors, i) {
			row = errorStyle.Render(row)
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, row)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(strings.TrimRight(b.String(), "\n"))
}

func hasCreditorError(errs map[string]string, index int) bool {
	prefix := fmt.Sprintf("creditor_%d_", index)

	for k := range errs {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}

	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
