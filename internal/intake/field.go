package intake

import (
	"fmt"
	"strings"
)

// Field names a form field. Values match the JSON names of the create request.
type Field string

const (
	FieldExtNumber Field = "ext_number"
	FieldBranch    Field = "branch"
	FieldIsMED     Field = "is_med"
	FieldIsDReview Field = "is_dreview"
	FieldIsDRR     Field = "is_drr"
	FieldIs3in1    Field = "is_3in1"
	FieldIsRentTo  Field = "is_rent_to"
	FieldOtherType Field = "other_type"

	FieldClientFirstName     Field = "client_first_name"
	FieldClientLastName      Field = "client_last_name"
	FieldClientIDNumber      Field = "client_id_number"
	FieldClientCell          Field = "client_cell"
	FieldClientWhatsApp      Field = "client_whatsapp"
	FieldClientEmail         Field = "client_email"
	FieldClientAddress       Field = "client_address"
	FieldClientEmployer      Field = "client_employer"
	FieldClientMaritalStatus Field = "client_marital_status"

	FieldGrossSalary      Field = "gross_salary"
	FieldNettSalary       Field = "nett_salary"
	FieldSpouseSalary     Field = "spouse_salary"
	FieldExpGroceries     Field = "exp_groceries"
	FieldExpRentBond      Field = "exp_rent_bond"
	FieldExpTransport     Field = "exp_transport"
	FieldExpSchoolFees    Field = "exp_school_fees"
	FieldExpRates         Field = "exp_rates"
	FieldExpWaterElec     Field = "exp_water_elec"
	FieldBank             Field = "bank"
	FieldAccountNo        Field = "account_no"
	FieldAccountType      Field = "account_type"
	FieldDebtReviewStatus Field = "debt_review_status"
	FieldDebitOrderDate   Field = "debit_order_date"
	FieldDebitOrderAmount Field = "debit_order_amount"

	FieldHasIDCopy         Field = "has_id_copy"
	FieldHasPayslip        Field = "has_payslip"
	FieldHasProofOfAddress Field = "has_proof_of_address"
	FieldStatus            Field = "status"
)

// KeyAppType is the error key used when no application type is chosen.
const KeyAppType = "app_type"

// ExpenseFields are the six monthly expense categories.
var ExpenseFields = []Field{
	FieldExpGroceries,
	FieldExpRentBond,
	FieldExpTransport,
	FieldExpSchoolFees,
	FieldExpRates,
	FieldExpWaterElec,
}

func (f *Form) text(field Field) *string {
	switch field {
	case FieldExtNumber:
		return &f.ExtNumber
	case FieldBranch:
		return &f.Branch
	case FieldOtherType:
		return &f.OtherType
	case FieldClientFirstName:
		return &f.ClientFirstName
	case FieldClientLastName:
		return &f.ClientLastName
	case FieldClientIDNumber:
		return &f.ClientIDNumber
	case FieldClientCell:
		return &f.ClientCell
	case FieldClientWhatsApp:
		return &f.ClientWhatsApp
	case FieldClientEmail:
		return &f.ClientEmail
	case FieldClientAddress:
		return &f.ClientAddress
	case FieldClientEmployer:
		return &f.ClientEmployer
	case FieldClientMaritalStatus:
		return &f.ClientMaritalStatus
	case FieldGrossSalary:
		return &f.GrossSalary
	case FieldNettSalary:
		return &f.NettSalary
	case FieldSpouseSalary:
		return &f.SpouseSalary
	case FieldExpGroceries:
		return &f.ExpGroceries
	case FieldExpRentBond:
		return &f.ExpRentBond
	case FieldExpTransport:
		return &f.ExpTransport
	case FieldExpSchoolFees:
		return &f.ExpSchoolFees
	case FieldExpRates:
		return &f.ExpRates
	case FieldExpWaterElec:
		return &f.ExpWaterElec
	case FieldBank:
		return &f.Bank
	case FieldAccountNo:
		return &f.AccountNo
	case FieldAccountType:
		return &f.AccountType
	case FieldDebtReviewStatus:
		return &f.DebtReviewStatus
	case FieldDebitOrderDate:
		return &f.DebitOrderDate
	case FieldDebitOrderAmount:
		return &f.DebitOrderAmount
	case FieldStatus:
		return &f.Status
	}

	return nil
}

func (f *Form) flag(field Field) *bool {
	switch field {
	case FieldIsMED:
		return &f.IsMED
	case FieldIsDReview:
		return &f.IsDReview
	case FieldIsDRR:
		return &f.IsDRR
	case FieldIs3in1:
		return &f.Is3in1
	case FieldIsRentTo:
		return &f.IsRentTo
	case FieldHasIDCopy:
		return &f.HasIDCopy
	case FieldHasPayslip:
		return &f.HasPayslip
	case FieldHasProofOfAddress:
		return &f.HasProofOfAddress
	}

	return nil
}

// Text returns the current value of a text field.
func (f Form) Text(field Field) string {
	if p := f.text(field); p != nil {
		return *p
	}

	return ""
}

// Flag returns the current value of a boolean field.
func (f Form) Flag(field Field) bool {
	if p := f.flag(field); p != nil {
		return *p
	}

	return false
}

func (f Form) anyType() bool {
	return f.IsMED || f.IsDReview || f.IsDRR || f.Is3in1 || f.IsRentTo || strings.TrimSpace(f.OtherType) != ""
}

// CreditorField names a column of a creditor row.
type CreditorField string

const (
	CreditorName       CreditorField = "name"
	CreditorAccountRef CreditorField = "account_ref"
	CreditorBalance    CreditorField = "balance"
	CreditorAmount     CreditorField = "amount"
)

// CreditorKey is the error key for one cell of a creditor row.
func CreditorKey(index int, field CreditorField) string {
	return fmt.Sprintf("creditor_%d_%s", index, field)
}
