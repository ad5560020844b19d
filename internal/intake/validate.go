package intake

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{13}$`)
	cellPattern       = regexp.MustCompile(`^(0|\+27)[6-8]\d{8}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateStep checks the fields owned by step. An empty map means the step passes.
func ValidateStep(step Step, f Form, creditors []CreditorLine) map[string]string {
	errs := map[string]string{}

	switch step {
	case StepCallInfo:
		validateCallInfo(f, errs)
	case StepApplicant:
		validateApplicant(f, errs)
	case StepFinancials:
		validateFinancials(f, errs)
	case StepCreditors:
		validateCreditors(creditors, errs)
	case StepDocuments:
	}

	return errs
}

func validateCallInfo(f Form, errs map[string]string) {
	required(errs, FieldExtNumber, f.ExtNumber, "Extension number is required.")
	required(errs, FieldBranch, f.Branch, "Branch is required.")

	if !f.anyType() {
		errs[KeyAppType] = "Select at least one application type."
	}
}

func validateApplicant(f Form, errs map[string]string) {
	required(errs, FieldClientFirstName, f.ClientFirstName, "First name is required.")
	required(errs, FieldClientLastName, f.ClientLastName, "Last name is required.")

	if v := strings.TrimSpace(f.ClientIDNumber); v != "" && !nationalIDPattern.MatchString(v) {
		errs[string(FieldClientIDNumber)] = "ID number must be exactly 13 digits."
	}

	if v := compact(f.ClientCell); v != "" && !cellPattern.MatchString(v) {
		errs[string(FieldClientCell)] = "Enter a valid cell number."
	}

	if v := compact(f.ClientWhatsApp); v != "" && !cellPattern.MatchString(v) {
		errs[string(FieldClientWhatsApp)] = "Enter a valid WhatsApp number."
	}

	if v := strings.TrimSpace(f.ClientEmail); v != "" && !emailPattern.MatchString(v) {
		errs[string(FieldClientEmail)] = "Enter a valid email address."
	}

	required(errs, FieldClientEmployer, f.ClientEmployer, "Employer is required.")
}

func validateFinancials(f Form, errs map[string]string) {
	gross, grossOK := positive(errs, FieldGrossSalary, f.GrossSalary, "Gross salary")
	nett, nettOK := positive(errs, FieldNettSalary, f.NettSalary, "Nett salary")

	if grossOK && nettOK && nett.GreaterThan(gross) {
		errs[string(FieldNettSalary)] = "Nett salary cannot exceed gross salary."
	}

	for _, field := range ExpenseFields {
		if v := strings.TrimSpace(f.Text(field)); v != "" && !nonNegative(v) {
			errs[string(field)] = "Must be a non-negative number."
		}
	}

	required(errs, FieldBank, f.Bank, "Bank name is required.")
	required(errs, FieldAccountNo, f.AccountNo, "Account number is required.")
	required(errs, FieldAccountType, f.AccountType, "Account type is required.")
}

func validateCreditors(creditors []CreditorLine, errs map[string]string) {
	for i, c := range creditors {
		if strings.TrimSpace(c.Name) == "" {
			errs[CreditorKey(i, CreditorName)] = "Creditor name is required."
		}

		if v := strings.TrimSpace(c.Balance); v != "" && !nonNegative(v) {
			errs[CreditorKey(i, CreditorBalance)] = "Must be a non-negative number."
		}

		if v := strings.TrimSpace(c.Amount); v != "" && !nonNegative(v) {
			errs[CreditorKey(i, CreditorAmount)] = "Must be a non-negative number."
		}
	}
}

func required(errs map[string]string, field Field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[string(field)] = msg
	}
}

func positive(errs map[string]string, field Field, value, label string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		errs[string(field)] = label + " is required."
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsPositive() {
		errs[string(field)] = label + " must be a positive number."
		return decimal.Zero, false
	}

	return d, true
}

func nonNegative(v string) bool {
	d, err := decimal.NewFromString(v)

	return err == nil && !d.IsNegative()
}

// compact strips the spaces people type inside phone numbers.
func compact(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
