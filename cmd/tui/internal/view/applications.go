package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateDetail
)

type ApplicationsModel struct {
	CommonModel
	applications *application.Service
	identity     *auth.Identity

	state  listState
	table  table.Model
	apps   []*application.Application
	detail *application.Application

	// 0 is "All", then one entry per status.
	statusFilterIdx int

	filter  application.ListFilter
	loading bool
	err     error
	status  string
}

func NewApplicationsModel(apps *application.Service, identity *auth.Identity) ApplicationsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Client", Width: 24},
		{Title: "ID Number", Width: 15},
		{Title: "Cell", Width: 13},
		{Title: "Status", Width: 13},
		{Title: "Franchise", Width: 20},
		{Title: "Nett Salary", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ApplicationsModel{
		applications: apps,
		identity:     identity,
		table:        t,
		loading:      true,
	}
}

// WithNotice shows msg above the list until the next status message replaces it.
func (m ApplicationsModel) WithNotice(msg string) ApplicationsModel {
	m.status = msg
	return m
}

func (m ApplicationsModel) Title() string { return "Applications" }

func (m ApplicationsModel) ShortHelp() string {
	if m.state == listStateDetail {
		return "Esc: back to list"
	}

	help := "Esc: back | Enter: details | f: status filter | r: refresh"
	if m.canChangeStatus() {
		help += " | s: next status"
	}

	return help
}

func (m ApplicationsModel) canChangeStatus() bool {
	return m.identity.Can(auth.RoleAdmin, auth.RoleHR)
}

func (m ApplicationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ApplicationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.apps = msg.apps
		m.refreshTable()

		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading application: %v", msg.err)
			return m, nil
		}

		m.detail = msg.app
		m.state = listStateDetail
		m.table.Blur()

		return m, nil

	case statusSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error updating status: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Status set to %s.", msg.status)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == listStateDetail {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.detail = nil
			m.table.Focus()
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m ApplicationsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % (len(application.Statuses) + 1)
			m.applyFilter()
			m.loading = true

			return m, m.loadCmd()
		case "enter":
			if app := m.selected(); app != nil {
				return m, m.detailCmd(app)
			}

			return m, nil
		case "s":
			app := m.selected()
			if app == nil || !m.canChangeStatus() {
				return m, nil
			}

			return m, m.saveStatusCmd(app, app.Status.Next())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ApplicationsModel) selected() *application.Application {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.apps) {
		return nil
	}

	return m.apps[idx]
}

func (m *ApplicationsModel) applyFilter() {
	if m.statusFilterIdx == 0 {
		m.filter.Status = nil
		return
	}

	m.filter.Status = new(application.Statuses[m.statusFilterIdx-1])
}

func (m ApplicationsModel) filterLabel() string {
	if m.statusFilterIdx == 0 {
		return "All"
	}

	return string(application.Statuses[m.statusFilterIdx-1])
}

func (m *ApplicationsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.apps))

	for _, a := range m.apps {
		var name, idNumber, cell string
		if a.Client != nil {
			name, idNumber, cell = a.Client.FullName(), a.Client.IDNumber, a.Client.Cell
		}

		rows = append(rows, table.Row{
			FormatDate(a.Date),
			name,
			idNumber,
			cell,
			string(a.Status),
			a.FranchiseName,
			FormatAmount(a.NettSalary),
		})
	}

	m.table.SetRows(rows)
}

func (m ApplicationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading applications...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == listStateDetail && m.detail != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.viewDetail())
	}

	header := fmt.Sprintf("Filter: [f] Status: %s | %d applications", activeStyle(m.filterLabel()), len(m.apps))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ApplicationsModel) viewDetail() string {
	a := m.detail

	var b strings.Builder

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-20s %s\n", label+":", value)
		}
	}

	if c := a.Client; c != nil {
		b.WriteString(headerStyle.Render(c.FullName()) + "\n\n")
		line("ID number", c.IDNumber)
		line("Cell", c.Cell)
		line("WhatsApp", c.WhatsApp)
		line("Email", c.Email)
		line("Address", c.Address)
		line("Employer", c.Employer)
		line("Marital status", c.MaritalStatus)
		b.WriteString("\n")
	}

	line("Status", string(a.Status))
	line("Date", FormatDate(a.Date)+" "+a.TimeOfCall)
	line("Extension", a.ExtNumber)
	line("Branch", a.Branch)
	line("Consultant", a.ConsultantName)
	line("Franchise", a.FranchiseName)
	line("Types", typeLabels(a.Types))
	b.WriteString("\n")

	line("Gross salary", FormatAmount(a.GrossSalary))
	line("Nett salary", FormatAmount(a.NettSalary))
	line("Spouse salary", FormatAmount(a.SpouseSalary))
	line("Total expenses", FormatAmount(a.TotalExpenses))
	line("Bank", strings.TrimSpace(a.Bank+" "+a.AccountNo+" "+a.AccountType))
	line("Debt review", a.DebtReviewStatus)
	line("Debit order", strings.TrimSpace(a.DebitOrderDate+" "+FormatAmount(a.DebitOrderAmount)))
	line("Documents", documentLabels(a.Documents))

	if len(a.Creditors) > 0 {
		b.WriteString("\n" + headerStyle.Render("Creditors") + "\n")

		for _, c := range a.Creditors {
			fmt.Fprintf(&b, "  %-24s %-18s %14s %14s\n",
				truncate(c.Name, 24), truncate(c.AccountRef, 18), FormatAmount(c.Balance), FormatAmount(c.Amount))
		}
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n" + faintStyle.Render(m.ShortHelp())
}

func typeLabels(t application.Types) string {
	flags := []struct {
		label string
		on    bool
	}{
		{"MED", t.MED},
		{"Debt review", t.DebtReview},
		{"DRR", t.DRR},
		{"3 in 1", t.ThreeInOne},
		{"Rent to", t.RentTo},
	}

	var out []string

	for _, f := range flags {
		if f.on {
			out = append(out, f.label)
		}
	}

	if t.Other != "" {
		out = append(out, t.Other)
	}

	return strings.Join(out, ", ")
}

func documentLabels(c application.Checklist) string {
	var out []string

	if c.IDCopy {
		out = append(out, "ID copy")
	}

	if c.Payslip {
		out = append(out, "Payslip")
	}

	if c.ProofOfAddress {
		out = append(out, "Proof of address")
	}

	return strings.Join(out, ", ")
}

// Messages

type loadListMsg struct {
	apps []*application.Application
	err  error
}

func (m ApplicationsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		apps, err := m.applications.List(ctx, filter)

		return loadListMsg{apps: apps, err: err}
	}
}

type detailMsg struct {
	app *application.Application
	err error
}

func (m ApplicationsModel) detailCmd(app *application.Application) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		full, err := m.applications.Get(ctx, app.ID)

		return detailMsg{app: full, err: err}
	}
}

type statusSavedMsg struct {
	status application.Status
	err    error
}

func (m ApplicationsModel) saveStatusCmd(app *application.Application, status application.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.applications.UpdateStatus(ctx, app.ID, status)

		return statusSavedMsg{status: status, err: err}
	}
}
