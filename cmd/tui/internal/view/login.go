package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
)

// LoggedInMsg carries the identity of the user who signed in.
type LoggedInMsg struct {
	Identity *auth.Identity
}

type credentials struct {
	username string
	password string
}

type LoginModel struct {
	CommonModel
	users auth.Authenticator

	form  *huh.Form
	creds *credentials
	busy  bool
	err   string
}

func NewLoginModel(users auth.Authenticator) LoginModel {
	m := LoginModel{users: users, creds: &credentials{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string     { return "Sign in" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.creds.username),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.password),
		),
	).WithWidth(40).WithShowHelp(false)
}

type loginResultMsg struct {
	identity *auth.Identity
	err      error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.busy = false

		if result.err != nil {
			m.err = "Server error during login."
			if errors.Is(result.err, auth.ErrInvalidCredentials) {
				m.err = "Invalid username or password."
			}

			m.creds.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Identity: result.identity} }
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	username := strings.TrimSpace(m.creds.username)
	password := m.creds.password

	if username == "" || password == "" {
		m.err = "Username and password are required."
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	m.busy = true
	m.err = ""

	return m, m.loginCmd(username, password)
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		id, err := m.users.Authenticate(ctx, username, password)

		return loginResultMsg{identity: id, err: err}
	}
}

func (m LoginModel) View() string {
	body := headerStyle.Render("Khusela") + "\n\n"

	if m.busy {
		body += "Signing in..."
	} else {
		body += m.form.View()
	}

	if m.err != "" {
		body += "\n\n" + errorStyle.Render(m.err)
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}
