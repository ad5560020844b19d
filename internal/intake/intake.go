// Package intake holds the application intake wizard as a value type plus a
// reducer. Front ends render State and feed user input back as Actions.
package intake

import (
	"maps"
	"slices"
	"strings"
)

type Step int

const (
	StepCallInfo Step = iota
	StepApplicant
	StepFinancials
	StepCreditors
	StepDocuments
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepCallInfo, StepApplicant, StepFinancials, StepCreditors, StepDocuments}

func (s Step) String() string {
	switch s {
	case StepCallInfo:
		return "Call info"
	case StepApplicant:
		return "Applicant"
	case StepFinancials:
		return "Financials"
	case StepCreditors:
		return "Creditors"
	case StepDocuments:
		return "Documents"
	}

	return "Unknown"
}

func (s Step) Last() bool {
	return s == StepDocuments
}

var (
	MaritalStatuses = []string{"Single", "Married", "Divorced", "Widowed"}
	AccountTypes    = []string{"Cheque", "Savings", "Transmission"}
	InitialStatuses = []string{"Draft", "Submitted", "Pending Docs"}
)

// Form is the shared record filled in across the steps. Values are kept as
// typed so a half-entered number survives until it is corrected.
type Form struct {
	ExtNumber string
	Branch    string
	IsMED     bool
	IsDReview bool
	IsDRR     bool
	Is3in1    bool
	IsRentTo  bool
	OtherType string

	ClientFirstName     string
	ClientLastName      string
	ClientIDNumber      string
	ClientCell          string
	ClientWhatsApp      string
	ClientEmail         string
	ClientAddress       string
	ClientEmployer      string
	ClientMaritalStatus string

	GrossSalary      string
	NettSalary       string
	SpouseSalary     string
	ExpGroceries     string
	ExpRentBond      string
	ExpTransport     string
	ExpSchoolFees    string
	ExpRates         string
	ExpWaterElec     string
	Bank             string
	AccountNo        string
	AccountType      string
	DebtReviewStatus string
	DebitOrderDate   string
	DebitOrderAmount string

	HasIDCopy         bool
	HasPayslip        bool
	HasProofOfAddress bool
	Status            string
}

// CreditorLine is one editable row on the creditors step.
type CreditorLine struct {
	Name       string
	AccountRef string
	Balance    string
	Amount     string
}

func (c CreditorLine) blank() bool {
	return strings.TrimSpace(c.Name+c.AccountRef+c.Balance+c.Amount) == ""
}

// State is one immutable snapshot of the wizard.
type State struct {
	Step        Step
	Form        Form
	Creditors   []CreditorLine
	Errors      map[string]string
	SubmitError string
	Submitting  bool
}

// New returns the wizard on its first step with an empty form and one creditor row.
func New() State {
	return State{
		Step:      StepCallInfo,
		Form:      Form{Status: "Draft"},
		Creditors: []CreditorLine{{}},
		Errors:    map[string]string{},
	}
}

func (s State) clone() State {
	s.Creditors = slices.Clone(s.Creditors)
	s.Errors = maps.Clone(s.Errors)

	if s.Errors == nil {
		s.Errors = map[string]string{}
	}

	return s
}

// TotalExpenses is the sum of the six expense fields, formatted to two decimals.
// Empty or non-numeric fields count as zero.
func (s State) TotalExpenses() string {
	return s.Form.totalExpenses().StringFixed(2)
}

// Action is an input to Reduce.
type Action interface {
	apply(s State) State
}

// Reduce returns the state that follows s after a. The input state is never modified.
func Reduce(s State, a Action) State {
	return a.apply(s.clone())
}

// SetText edits one text field and clears its error.
type SetText struct {
	Field Field
	Value string
}

func (a SetText) apply(s State) State {
	p := s.Form.text(a.Field)
	if p == nil {
		return s
	}

	*p = a.Value
	delete(s.Errors, string(a.Field))

	if a.Field == FieldOtherType && s.Form.anyType() {
		delete(s.Errors, KeyAppType)
	}

	return s
}

// SetFlag toggles one boolean field and clears its error.
type SetFlag struct {
	Field Field
	On    bool
}

func (a SetFlag) apply(s State) State {
	p := s.Form.flag(a.Field)
	if p == nil {
		return s
	}

	*p = a.On
	delete(s.Errors, string(a.Field))

	if s.Form.anyType() {
		delete(s.Errors, KeyAppType)
	}

	return s
}

// Next advances one step when the current step validates.
type Next struct{}

func (Next) apply(s State) State {
	if errs := ValidateStep(s.Step, s.Form, s.Creditors); len(errs) > 0 {
		s.Errors = errs
		return s
	}

	if !s.Step.Last() {
		s.Step++
	}

	s.Errors = map[string]string{}

	return s
}

// Previous goes back one step without validating.
type Previous struct{}

func (Previous) apply(s State) State {
	if s.Step > StepCallInfo {
		s.Step--
	}

	s.Errors = map[string]string{}

	return s
}

// AddCreditor appends a blank creditor row.
type AddCreditor struct{}

func (AddCreditor) apply(s State) State {
	if s.Step != StepCreditors {
		return s
	}

	s.Creditors = append(s.Creditors, CreditorLine{})

	return s
}

// RemoveCreditor drops one row. The last remaining row cannot be removed.
type RemoveCreditor struct {
	Index int
}

func (a RemoveCreditor) apply(s State) State {
	if s.Step != StepCreditors || len(s.Creditors) <= 1 || a.Index < 0 || a.Index >= len(s.Creditors) {
		return s
	}

	s.Creditors = slices.Delete(s.Creditors, a.Index, a.Index+1)
	clearCreditorErrors(s.Errors)

	return s
}

// SetCreditorField edits one cell of a creditor row.
type SetCreditorField struct {
	Index int
	Field CreditorField
	Value string
}

func (a SetCreditorField) apply(s State) State {
	if a.Index < 0 || a.Index >= len(s.Creditors) {
		return s
	}

	line := &s.Creditors[a.Index]

	switch a.Field {
	case CreditorName:
		line.Name = a.Value
	case CreditorAccountRef:
		line.AccountRef = a.Value
	case CreditorBalance:
		line.Balance = a.Value
	case CreditorAmount:
		line.Amount = a.Value
	default:
		return s
	}

	delete(s.Errors, CreditorKey(a.Index, a.Field))

	return s
}

// ImportCreditors adds rows read from a statement. A single blank row is replaced.
type ImportCreditors struct {
	Lines []CreditorLine
}

func (a ImportCreditors) apply(s State) State {
	if s.Step != StepCreditors || len(a.Lines) == 0 {
		return s
	}

	if len(s.Creditors) == 1 && s.Creditors[0].blank() {
		s.Creditors = nil
	}

	s.Creditors = append(s.Creditors, a.Lines...)
	clearCreditorErrors(s.Errors)

	return s
}

// Submit asks to send the form. It is honoured only on the last step and only
// when every step validates; otherwise the wizard moves to the first failing step.
// On success the state is marked Submitting and the caller sends Payload().
type Submit struct{}

func (Submit) apply(s State) State {
	if !s.Step.Last() || s.Submitting {
		return s
	}

	for _, step := range Steps {
		if errs := ValidateStep(step, s.Form, s.Creditors); len(errs) > 0 {
			s.Step = step
			s.Errors = errs

			return s
		}
	}

	s.Errors = map[string]string{}
	s.SubmitError = ""
	s.Submitting = true

	return s
}

// SubmitFailed records the server's message and keeps everything entered.
type SubmitFailed struct {
	Message string
}

func (a SubmitFailed) apply(s State) State {
	s.Submitting = false
	s.SubmitError = a.Message

	return s
}

// SubmitSucceeded resets the wizard.
type SubmitSucceeded struct{}

func (SubmitSucceeded) apply(State) State {
	return New()
}

func clearCreditorErrors(errs map[string]string) {
	maps.DeleteFunc(errs, func(k, _ string) bool {
		return strings.HasPrefix(k, "creditor_")
	})
}
