package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/khusela/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/khusela/internal/application"
	appStore "github.com/MrJamesThe3rd/khusela/internal/application/store"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/config"
	"github.com/MrJamesThe3rd/khusela/internal/database"
	"github.com/MrJamesThe3rd/khusela/internal/export"
	"github.com/MrJamesThe3rd/khusela/internal/importer"
	"github.com/MrJamesThe3rd/khusela/internal/notify"
	"github.com/MrJamesThe3rd/khusela/internal/user"
	userStore "github.com/MrJamesThe3rd/khusela/internal/user/store"
)

type model struct {
	userService        *user.Service
	applicationService *application.Service
	importService      *importer.Service
	exportService      *export.Service

	identity    *auth.Identity
	currentView View

	loginView        view.LoginModel
	intakeView       view.IntakeModel
	applicationsView view.ApplicationsModel
	exportView       view.ExportModel
}

type View int

const (
	ViewLogin        View = 0
	ViewMenu         View = 1
	ViewIntake       View = 2
	ViewApplications View = 3
	ViewExport       View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var notifier application.Notifier = notify.Noop{}

	if cfg.Notify.Enabled {
		n, err := notify.NewAWS(context.Background(), cfg.Notify.AWSRegion, cfg.Notify.FromEmail)
		if err != nil {
			slog.Error("failed to configure notifications", "error", err)
			os.Exit(1)
		}

		notifier = n
	}

	userSvc := user.NewService(userStore.New(db))
	appSvc := application.NewService(appStore.New(db), notifier)

	return model{
		userService:        userSvc,
		applicationService: appSvc,
		importService:      importer.NewService(),
		exportService:      export.NewService(appSvc),
		currentView:        ViewLogin,
		loginView:          view.NewLoginModel(userSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) canExport() bool {
	return m.identity.Can(auth.RoleAdmin, auth.RoleHR)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewIntake
				m.intakeView = view.NewIntakeModel(m.applicationService, m.importService, m.identity)

				return m, m.intakeView.Init()
			case "2":
				m.currentView = ViewApplications
				m.applicationsView = view.NewApplicationsModel(m.applicationService, m.identity)

				return m, m.applicationsView.Init()
			case "3":
				if !m.canExport() {
					return m, nil
				}

				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		m.identity = msg.Identity
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.ApplicationCreatedMsg:
		m.currentView = ViewApplications
		m.applicationsView = view.NewApplicationsModel(m.applicationService, m.identity).WithNotice(msg.Notice)

		return m, m.applicationsView.Init()
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewIntake:
		var newModel tea.Model
		newModel, cmd = m.intakeView.Update(msg)
		m.intakeView = newModel.(view.IntakeModel)
	case ViewApplications:
		var newModel tea.Model
		newModel, cmd = m.applicationsView.Update(msg)
		m.applicationsView = newModel.(view.ApplicationsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		menu := fmt.Sprintf("Khusela: signed in as %s (%s)\n\n", m.identity.Username, m.identity.Role) +
			"1. New Application\n" +
			"2. Applications\n"
		if m.canExport() {
			menu += "3. Export Applications\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(menu + "\nq. Quit")
	case ViewIntake:
		return m.intakeView.View()
	case ViewApplications:
		return m.applicationsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
