package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/importer"
	"github.com/MrJamesThe3rd/khusela/internal/intake"
)

const submitTimeout = 30 * time.Second

type intakeMode int

const (
	intakeModeForm intakeMode = iota
	intakeModeCreditors
	intakeModeCreditorEdit
	intakeModeCreditorImport
	intakeModeSubmitting
)

// Text and flag fields owned by each form-driven step, in display order.
var (
	stepTextFields = map[intake.Step][]intake.Field{
		intake.StepCallInfo: {intake.FieldExtNumber, intake.FieldBranch, intake.FieldOtherType},
		intake.StepApplicant: {
			intake.FieldClientFirstName, intake.FieldClientLastName, intake.FieldClientIDNumber,
			intake.FieldClientCell, intake.FieldClientWhatsApp, intake.FieldClientEmail,
			intake.FieldClientAddress, intake.FieldClientEmployer, intake.FieldClientMaritalStatus,
		},
		intake.StepFinancials: {
			intake.FieldGrossSalary, intake.FieldNettSalary, intake.FieldSpouseSalary,
			intake.FieldExpGroceries, intake.FieldExpRentBond, intake.FieldExpTransport,
			intake.FieldExpSchoolFees, intake.FieldExpRates, intake.FieldExpWaterElec,
			intake.FieldBank, intake.FieldAccountNo, intake.FieldAccountType,
			intake.FieldDebtReviewStatus, intake.FieldDebitOrderDate, intake.FieldDebitOrderAmount,
		},
		intake.StepDocuments: {intake.FieldStatus},
	}

	typeFields = []intake.Field{
		intake.FieldIsMED, intake.FieldIsDReview, intake.FieldIsDRR, intake.FieldIs3in1, intake.FieldIsRentTo,
	}

	documentFields = []intake.Field{intake.FieldHasIDCopy, intake.FieldHasPayslip, intake.FieldHasProofOfAddress}
)

// formValues is what the huh fields write into. It lives on the heap so the
// bindings survive the model being copied between updates.
type formValues struct {
	form      intake.Form
	types     []string
	documents []string
	creditor  intake.CreditorLine
}

type IntakeModel struct {
	CommonModel
	applications *application.Service
	imports      *importer.Service
	identity     *auth.Identity

	state  intake.State
	mode   intakeMode
	form   *huh.Form
	values *formValues

	cursor     int
	filePicker filepicker.Model
	notice     string
	noticeErr  bool
}

func NewIntakeModel(apps *application.Service, imports *importer.Service, identity *auth.Identity) IntakeModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	m := IntakeModel{
		applications: apps,
		imports:      imports,
		identity:     identity,
		state:        intake.New(),
		values:       &formValues{},
		filePicker:   fp,
	}

	m.enterStep()

	return m
}

func (m IntakeModel) Title() string { return "New Application" }

func (m IntakeModel) ShortHelp() string {
	switch m.mode {
	case intakeModeCreditors:
		return "↑/↓: select | a: add | d: remove | e: edit | i: import | n: next | p: previous"
	case intakeModeCreditorEdit, intakeModeCreditorImport:
		return "Esc: cancel"
	case intakeModeSubmitting:
		return "Saving..."
	}

	if m.state.Step == intake.StepCallInfo {
		return "Enter: next | Esc: back to menu"
	}

	return "Enter: next | Esc: previous step"
}

func (m IntakeModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}

	return nil
}

// enterStep prepares the screen for the current step from the wizard state.
func (m *IntakeModel) enterStep() tea.Cmd {
	m.values.form = m.state.Form
	m.values.types = checkedFields(m.state.Form, typeFields)
	m.values.documents = checkedFields(m.state.Form, documentFields)

	if m.state.Step == intake.StepCreditors {
		m.mode = intakeModeCreditors
		m.form = nil
		m.cursor = min(m.cursor, len(m.state.Creditors)-1)

		return nil
	}

	m.mode = intakeModeForm
	m.form = m.buildStepForm(m.state.Step)

	return m.form.Init()
}

func checkedFields(f intake.Form, fields []intake.Field) []string {
	var out []string

	for _, field := range fields {
		if f.Flag(field) {
			out = append(out, string(field))
		}
	}

	return out
}

// commit replays the bound form values into the wizard state.
func (m *IntakeModel) commit() {
	step := m.state.Step

	for _, field := range stepTextFields[step] {
		m.state = intake.Reduce(m.state, intake.SetText{Field: field, Value: m.values.form.Text(field)})
	}

	var flags []intake.Field

	var checked []string

	switch step {
	case intake.StepCallInfo:
		flags, checked = typeFields, m.values.types
	case intake.StepDocuments:
		flags, checked = documentFields, m.values.documents
	}

	for _, field := range flags {
		m.state = intake.Reduce(m.state, intake.SetFlag{Field: field, On: slices.Contains(checked, string(field))})
	}
}

func (m IntakeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case creditorsImportedMsg:
		m.mode = intakeModeCreditors

		if msg.err != nil {
			m.notice, m.noticeErr = fmt.Sprintf("Import failed: %v", msg.err), true
			return m, nil
		}

		m.state = intake.Reduce(m.state, intake.ImportCreditors{Lines: intake.CreditorLines(msg.creditors)})
		m.notice, m.noticeErr = fmt.Sprintf("Imported %d creditors.", len(msg.creditors)), false

		return m, nil
	}

	switch m.mode {
	case intakeModeForm:
		return m.updateForm(msg)
	case intakeModeCreditors:
		return m.updateCreditors(msg)
	case intakeModeCreditorEdit:
		return m.updateCreditorEdit(msg)
	case intakeModeCreditorImport:
		return m.updateImport(msg)
	}

	return m, nil
}

func (m IntakeModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.state.Step == intake.StepCallInfo {
			return m, Back
		}

		m.commit()
		m.state = intake.Reduce(m.state, intake.Previous{})

		return m, m.enterStep()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.commit()
	m.notice = ""

	if !m.state.Step.Last() {
		m.state = intake.Reduce(m.state, intake.Next{})
		return m, m.enterStep()
	}

	m.state = intake.Reduce(m.state, intake.Submit{})
	if !m.state.Submitting {
		return m, m.enterStep()
	}

	m.mode = intakeModeSubmitting

	return m, m.submitCmd()
}

type submitResultMsg struct {
	app *application.Application
	err error
}

func (m IntakeModel) submitCmd() tea.Cmd {
	params := m.state.Payload()
	if m.identity != nil {
		params.Application.FranchiseID = m.identity.FranchiseID
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		app, err := m.applications.Create(ctx, params)

		return submitResultMsg{app: app, err: err}
	}
}

func (m IntakeModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		text := "Failed to create application."

		var vErr *application.ValidationError
		if errors.As(msg.err, &vErr) {
			text = vErr.Message
		}

		m.state = intake.Reduce(m.state, intake.SubmitFailed{Message: text})

		return m, m.enterStep()
	}

	name := ""
	if msg.app.Client != nil {
		name = msg.app.Client.FullName()
	}

	m.state = intake.Reduce(m.state, intake.SubmitSucceeded{})
	m.notice = ""
	m.cursor = 0
	m.enterStep()

	notice := fmt.Sprintf("Application created for %s.", name)

	return m, func() tea.Msg { return ApplicationCreatedMsg{Notice: notice} }
}

func (m IntakeModel) buildStepForm(step intake.Step) *huh.Form {
	v := m.values

	var group *huh.Group

	switch step {
	case intake.StepCallInfo:
		group = huh.NewGroup(
			huh.NewInput().Title("Extension number").Value(&v.form.ExtNumber),
			huh.NewInput().Title("Branch").Value(&v.form.Branch),
			huh.NewMultiSelect[string]().
				Title("Application type").
				Options(
					huh.NewOption("MED", string(intake.FieldIsMED)),
					huh.NewOption("Debt review", string(intake.FieldIsDReview)),
					huh.NewOption("DRR", string(intake.FieldIsDRR)),
					huh.NewOption("3 in 1", string(intake.FieldIs3in1)),
					huh.NewOption("Rent to", string(intake.FieldIsRentTo)),
				).
				Value(&v.types),
			huh.NewInput().Title("Other type").Value(&v.form.OtherType),
		)

	case intake.StepApplicant:
		group = huh.NewGroup(
			huh.NewInput().Title("First name").Value(&v.form.ClientFirstName),
			huh.NewInput().Title("Last name").Value(&v.form.ClientLastName),
			huh.NewInput().Title("ID number").Placeholder("13 digits").Value(&v.form.ClientIDNumber),
			huh.NewInput().Title("Cell").Placeholder("0821234567").Value(&v.form.ClientCell),
			huh.NewInput().Title("WhatsApp").Value(&v.form.ClientWhatsApp),
			huh.NewInput().Title("Email").Value(&v.form.ClientEmail),
			huh.NewInput().Title("Address").Value(&v.form.ClientAddress),
			huh.NewInput().Title("Employer").Value(&v.form.ClientEmployer),
			huh.NewSelect[string]().
				Title("Marital status").
				Options(huh.NewOptions(append([]string{""}, intake.MaritalStatuses...)...)...).
				Value(&v.form.ClientMaritalStatus),
		)

	case intake.StepFinancials:
		group = huh.NewGroup(
			huh.NewInput().Title("Gross salary").Value(&v.form.GrossSalary),
			huh.NewInput().Title("Nett salary").Value(&v.form.NettSalary),
			huh.NewInput().Title("Spouse salary").Value(&v.form.SpouseSalary),
			huh.NewInput().Title("Groceries").Value(&v.form.ExpGroceries),
			huh.NewInput().Title("Rent / bond").Value(&v.form.ExpRentBond),
			huh.NewInput().Title("Transport").Value(&v.form.ExpTransport),
			huh.NewInput().Title("School fees").Value(&v.form.ExpSchoolFees),
			huh.NewInput().Title("Rates").Value(&v.form.ExpRates),
			huh.NewInput().Title("Water & electricity").Value(&v.form.ExpWaterElec),
			huh.NewInput().Title("Bank").Value(&v.form.Bank),
			huh.NewInput().Title("Account number").Value(&v.form.AccountNo),
			huh.NewSelect[string]().
				Title("Account type").
				Options(huh.NewOptions(append([]string{""}, intake.AccountTypes...)...)...).
				Value(&v.form.AccountType),
			huh.NewInput().Title("Debt review status").Value(&v.form.DebtReviewStatus),
			huh.NewInput().Title("Debit order date").Value(&v.form.DebitOrderDate),
			huh.NewInput().Title("Debit order amount").Value(&v.form.DebitOrderAmount),
		)

	default:
		group = huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Documents received").
				Options(
					huh.NewOption("ID copy", string(intake.FieldHasIDCopy)),
					huh.NewOption("Payslip", string(intake.FieldHasPayslip)),
					huh.NewOption("Proof of address", string(intake.FieldHasProofOfAddress)),
				).
				Value(&v.documents),
			huh.NewSelect[string]().
				Title("Status").
				Options(huh.NewOptions(intake.InitialStatuses...)...).
				Value(&v.form.Status),
		)
	}

	return huh.NewForm(group).WithWidth(50).WithShowHelp(false)
}

func (m IntakeModel) View() string {
	step := m.state.Step

	header := headerStyle.Render(fmt.Sprintf("Step %d/%d: %s", int(step)+1, len(intake.Steps), step))

	var body string

	switch m.mode {
	case intakeModeSubmitting:
		body = "Saving application..."
	case intakeModeCreditors:
		body = m.viewCreditors()
	case intakeModeCreditorEdit:
		body = panelStyle.Render(fmt.Sprintf("Creditor %d\n\n%s", m.cursor+1, m.form.View()))
	case intakeModeCreditorImport:
		body = "Pick a creditor statement (CSV)\n\n" + m.filePicker.View()
	default:
		body = m.form.View()

		if step == intake.StepFinancials {
			total := intake.State{Form: m.values.form}.TotalExpenses()
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", activeStyle("Total expenses: R "+total))
		}
	}

	parts := []string{header, "", body}

	if errs := m.errorLines(); errs != "" {
		parts = append(parts, "", errs)
	}

	if m.state.SubmitError != "" {
		parts = append(parts, "", errorStyle.Render(m.state.SubmitError))
	}

	if m.notice != "" {
		style := okStyle
		if m.noticeErr {
			style = errorStyle
		}

		parts = append(parts, "", style.Render(m.notice))
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// errorLines lists the current errors in form order, then any row or group errors.
func (m IntakeModel) errorLines() string {
	if len(m.state.Errors) == 0 {
		return ""
	}

	var keys []string

	for _, field := range stepTextFields[m.state.Step] {
		if _, ok := m.state.Errors[string(field)]; ok {
			keys = append(keys, string(field))
		}
	}

	var rest []string

	for k := range m.state.Errors {
		if !slices.Contains(keys, k) {
			rest = append(rest, k)
		}
	}

	slices.Sort(rest)
	keys = append(keys, rest...)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = "• " + m.state.Errors[k]
	}

	return errorStyle.Render(strings.Join(lines, "\n"))
}
