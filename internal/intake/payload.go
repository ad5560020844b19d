package intake

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/khusela/internal/application"
)

func amount(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

func (f Form) totalExpenses() decimal.Decimal {
	total := decimal.Zero

	for _, field := range ExpenseFields {
		if v := amount(f.Text(field)); v.Valid {
			total = total.Add(v.Decimal)
		}
	}

	return total.Round(2)
}

// Payload converts the wizard into the composite create request. Consultant and
// franchise are filled in by the caller from the acting identity.
func (s State) Payload() application.CreateParams {
	f := s.Form

	params := application.CreateParams{
		Client: application.Client{
			FirstName:     strings.TrimSpace(f.ClientFirstName),
			LastName:      strings.TrimSpace(f.ClientLastName),
			IDNumber:      strings.TrimSpace(f.ClientIDNumber),
			Cell:          compact(f.ClientCell),
			WhatsApp:      compact(f.ClientWhatsApp),
			Email:         strings.TrimSpace(f.ClientEmail),
			Address:       strings.TrimSpace(f.ClientAddress),
			Employer:      strings.TrimSpace(f.ClientEmployer),
			MaritalStatus: f.ClientMaritalStatus,
		},
		Application: application.Application{
			ExtNumber: strings.TrimSpace(f.ExtNumber),
			Branch:    strings.TrimSpace(f.Branch),
			Types: application.Types{
				MED:        f.IsMED,
				DebtReview: f.IsDReview,
				DRR:        f.IsDRR,
				ThreeInOne: f.Is3in1,
				RentTo:     f.IsRentTo,
				Other:      strings.TrimSpace(f.OtherType),
			},
			GrossSalary:  amount(f.GrossSalary),
			NettSalary:   amount(f.NettSalary),
			SpouseSalary: amount(f.SpouseSalary),
			Expenses: application.Expenses{
				Groceries:  amount(f.ExpGroceries),
				RentBond:   amount(f.ExpRentBond),
				Transport:  amount(f.ExpTransport),
				SchoolFees: amount(f.ExpSchoolFees),
				Rates:      amount(f.ExpRates),
				WaterElec:  amount(f.ExpWaterElec),
			},
			TotalExpenses:    decimal.NewNullDecimal(f.totalExpenses()),
			Bank:             strings.TrimSpace(f.Bank),
			AccountNo:        strings.TrimSpace(f.AccountNo),
			AccountType:      f.AccountType,
			DebtReviewStatus: strings.TrimSpace(f.DebtReviewStatus),
			DebitOrderDate:   strings.TrimSpace(f.DebitOrderDate),
			DebitOrderAmount: amount(f.DebitOrderAmount),
			Documents: application.Checklist{
				IDCopy:         f.HasIDCopy,
				Payslip:        f.HasPayslip,
				ProofOfAddress: f.HasProofOfAddress,
			},
			Status: application.Status(f.Status),
		},
	}

	for _, c := range s.Creditors {
		if c.blank() {
			continue
		}

		params.Creditors = append(params.Creditors, application.Creditor{
			Name:       strings.TrimSpace(c.Name),
			AccountRef: strings.TrimSpace(c.AccountRef),
			Balance:    amount(c.Balance),
			Amount:     amount(c.Amount),
		})
	}

	return params
}

// CreditorLines turns imported creditors into editable wizard rows.
func CreditorLines(creditors []application.Creditor) []CreditorLine {
	lines := make([]CreditorLine, 0, len(creditors))

	for _, c := range creditors {
		lines = append(lines, CreditorLine{
			Name:       c.Name,
			AccountRef: c.AccountRef,
			Balance:    fixed(c.Balance),
			Amount:     fixed(c.Amount),
		})
	}

	return lines
}

func fixed(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return d.Decimal.StringFixed(2)
}
