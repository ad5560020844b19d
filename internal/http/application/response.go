package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/khusela/internal/application"
)

type creditorJSON struct {
	ID         *uuid.UUID          `json:"id,omitempty"`
	Name       string              `json:"creditor_name"`
	AccountRef string              `json:"account_num_ref"`
	Balance    decimal.NullDecimal `json:"balance_of_acc"`
	Amount     decimal.NullDecimal `json:"amount"`
	CreatedAt  *time.Time          `json:"created_at,omitempty"`
}

func toCreditorJSON(c *application.Creditor) creditorJSON {
	return creditorJSON{
		ID:         &c.ID,
		Name:       c.Name,
		AccountRef: c.AccountRef,
		Balance:    c.Balance,
		Amount:     c.Amount,
		CreatedAt:  &c.CreatedAt,
	}
}

type creditorRequest struct {
	Name       string       `json:"creditor_name"`
	AccountRef string       `json:"account_num_ref"`
	Balance    blankDecimal `json:"balance_of_acc"`
	Amount     blankDecimal `json:"amount"`
}

// createRequest is the composite body accepted by POST; field names follow
// the table columns, with client fields prefixed. Blank optional values
// arrive as "" and are stored as null.
type createRequest struct {
	ClientFirstName     string `json:"client_first_name"`
	ClientLastName      string `json:"client_last_name"`
	ClientIDNumber      string `json:"client_id_number"`
	ClientCell          string `json:"client_cell"`
	ClientWhatsApp      string `json:"client_whatsapp"`
	ClientEmail         string `json:"client_email"`
	ClientAddress       string `json:"client_address"`
	ClientEmployer      string `json:"client_employer"`
	ClientMaritalStatus string `json:"client_marital_status"`

	ConsultantID blankUUID `json:"consultant_id"`
	FranchiseID  blankUUID `json:"franchise_id"`

	ExtNumber string `json:"ext_number"`
	Branch    string `json:"branch"`
	IsMED     bool   `json:"is_med"`
	IsDReview bool   `json:"is_dreview"`
	IsDRR     bool   `json:"is_drr"`
	Is3in1    bool   `json:"is_3in1"`
	IsRentTo  bool   `json:"is_rent_to"`
	OtherType string `json:"other_type"`

	GrossSalary   blankDecimal `json:"gross_salary"`
	NettSalary    blankDecimal `json:"nett_salary"`
	SpouseSalary  blankDecimal `json:"spouse_salary"`
	ExpGroceries  blankDecimal `json:"exp_groceries"`
	ExpRentBond   blankDecimal `json:"exp_rent_bond"`
	ExpTransport  blankDecimal `json:"exp_transport"`
	ExpSchoolFees blankDecimal `json:"exp_school_fees"`
	ExpRates      blankDecimal `json:"exp_rates"`
	ExpWaterElec  blankDecimal `json:"exp_water_elec"`
	TotalExpenses blankDecimal `json:"total_expenses"`

	Bank             string       `json:"bank"`
	AccountNo        string       `json:"account_no"`
	AccountType      string       `json:"account_type"`
	DebtReviewStatus string       `json:"debt_review_status"`
	DebitOrderDate   string       `json:"debit_order_date"`
	DebitOrderAmount blankDecimal `json:"debit_order_amount"`

	HasIDCopy         bool `json:"has_id_copy"`
	HasPayslip        bool `json:"has_payslip"`
	HasProofOfAddress bool `json:"has_proof_of_address"`

	Status string `json:"status"`

	Creditors []creditorRequest `json:"creditors"`
}

func (req createRequest) params() application.CreateParams {
	params := application.CreateParams{
		Client: application.Client{
			FirstName:     req.ClientFirstName,
			LastName:      req.ClientLastName,
			IDNumber:      req.ClientIDNumber,
			Cell:          req.ClientCell,
			WhatsApp:      req.ClientWhatsApp,
			Email:         req.ClientEmail,
			Address:       req.ClientAddress,
			Employer:      req.ClientEmployer,
			MaritalStatus: req.ClientMaritalStatus,
		},
		Application: application.Application{
			ConsultantID: req.ConsultantID.id,
			FranchiseID:  req.FranchiseID.id,
			ExtNumber:    req.ExtNumber,
			Branch:       req.Branch,
			Types: application.Types{
				MED:        req.IsMED,
				DebtReview: req.IsDReview,
				DRR:        req.IsDRR,
				ThreeInOne: req.Is3in1,
				RentTo:     req.IsRentTo,
				Other:      req.OtherType,
			},
			GrossSalary:  req.GrossSalary.NullDecimal,
			NettSalary:   req.NettSalary.NullDecimal,
			SpouseSalary: req.SpouseSalary.NullDecimal,
			Expenses: application.Expenses{
				Groceries:  req.ExpGroceries.NullDecimal,
				RentBond:   req.ExpRentBond.NullDecimal,
				Transport:  req.ExpTransport.NullDecimal,
				SchoolFees: req.ExpSchoolFees.NullDecimal,
				Rates:      req.ExpRates.NullDecimal,
				WaterElec:  req.ExpWaterElec.NullDecimal,
			},
			TotalExpenses:    req.TotalExpenses.NullDecimal,
			Bank:             req.Bank,
			AccountNo:        req.AccountNo,
			AccountType:      req.AccountType,
			DebtReviewStatus: req.DebtReviewStatus,
			DebitOrderDate:   req.DebitOrderDate,
			DebitOrderAmount: req.DebitOrderAmount.NullDecimal,
			Documents: application.Checklist{
				IDCopy:         req.HasIDCopy,
				Payslip:        req.HasPayslip,
				ProofOfAddress: req.HasProofOfAddress,
			},
			Status: application.Status(req.Status),
		},
	}

	for _, c := range req.Creditors {
		params.Creditors = append(params.Creditors, application.Creditor{
			Name:       c.Name,
			AccountRef: c.AccountRef,
			Balance:    c.Balance.NullDecimal,
			Amount:     c.Amount.NullDecimal,
		})
	}

	return params
}

type applicationResponse struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     uuid.UUID  `json:"client_id"`
	ConsultantID *uuid.UUID `json:"consultant_id"`
	FranchiseID  *uuid.UUID `json:"franchise_id"`

	Date       string `json:"date"`
	TimeOfCall string `json:"time_of_call"`
	ExtNumber  string `json:"ext_number"`
	Branch     string `json:"branch"`
	IsMED      bool   `json:"is_med"`
	IsDReview  bool   `json:"is_dreview"`
	IsDRR      bool   `json:"is_drr"`
	Is3in1     bool   `json:"is_3in1"`
	IsRentTo   bool   `json:"is_rent_to"`
	OtherType  string `json:"other_type"`

	GrossSalary   decimal.NullDecimal `json:"gross_salary"`
	NettSalary    decimal.NullDecimal `json:"nett_salary"`
	SpouseSalary  decimal.NullDecimal `json:"spouse_salary"`
	ExpGroceries  decimal.NullDecimal `json:"exp_groceries"`
	ExpRentBond   decimal.NullDecimal `json:"exp_rent_bond"`
	ExpTransport  decimal.NullDecimal `json:"exp_transport"`
	ExpSchoolFees decimal.NullDecimal `json:"exp_school_fees"`
	ExpRates      decimal.NullDecimal `json:"exp_rates"`
	ExpWaterElec  decimal.NullDecimal `json:"exp_water_elec"`
	TotalExpenses decimal.NullDecimal `json:"total_expenses"`

	Bank             string              `json:"bank"`
	AccountNo        string              `json:"account_no"`
	AccountType      string              `json:"account_type"`
	DebtReviewStatus string              `json:"debt_review_status"`
	DebitOrderDate   string              `json:"debit_order_date"`
	DebitOrderAmount decimal.NullDecimal `json:"debit_order_amount"`

	HasIDCopy         bool `json:"has_id_copy"`
	HasPayslip        bool `json:"has_payslip"`
	HasProofOfAddress bool `json:"has_proof_of_address"`

	Status    application.Status `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	ClientFirstName string `json:"first_name,omitempty"`
	ClientLastName  string `json:"last_name,omitempty"`
	ClientIDNumber  string `json:"id_number,omitempty"`
	ClientCell      string `json:"cell,omitempty"`
	ClientEmail     string `json:"email,omitempty"`
	ConsultantName  string `json:"consultant_name,omitempty"`
	FranchiseName   string `json:"franchise_name,omitempty"`
}

func toApplicationResponse(a *application.Application) applicationResponse {
	resp := applicationResponse{
		ID:                a.ID,
		ClientID:          a.ClientID,
		ConsultantID:      a.ConsultantID,
		FranchiseID:       a.FranchiseID,
		TimeOfCall:        a.TimeOfCall,
		ExtNumber:         a.ExtNumber,
		Branch:            a.Branch,
		IsMED:             a.Types.MED,
		IsDReview:         a.Types.DebtReview,
		IsDRR:             a.Types.DRR,
		Is3in1:            a.Types.ThreeInOne,
		IsRentTo:          a.Types.RentTo,
		OtherType:         a.Types.Other,
		GrossSalary:       a.GrossSalary,
		NettSalary:        a.NettSalary,
		SpouseSalary:      a.SpouseSalary,
		ExpGroceries:      a.Expenses.Groceries,
		ExpRentBond:       a.Expenses.RentBond,
		ExpTransport:      a.Expenses.Transport,
		ExpSchoolFees:     a.Expenses.SchoolFees,
		ExpRates:          a.Expenses.Rates,
		ExpWaterElec:      a.Expenses.WaterElec,
		TotalExpenses:     a.TotalExpenses,
		Bank:              a.Bank,
		AccountNo:         a.AccountNo,
		AccountType:       a.AccountType,
		DebtReviewStatus:  a.DebtReviewStatus,
		DebitOrderDate:    a.DebitOrderDate,
		DebitOrderAmount:  a.DebitOrderAmount,
		HasIDCopy:         a.Documents.IDCopy,
		HasPayslip:        a.Documents.Payslip,
		HasProofOfAddress: a.Documents.ProofOfAddress,
		Status:            a.Status,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
		ConsultantName:    a.ConsultantName,
		FranchiseName:     a.FranchiseName,
	}

	if !a.Date.IsZero() {
		resp.Date = a.Date.Format(time.DateOnly)
	}

	if c := a.Client; c != nil {
		resp.ClientFirstName = c.FirstName
		resp.ClientLastName = c.LastName
		resp.ClientIDNumber = c.IDNumber
		resp.ClientCell = c.Cell
		resp.ClientEmail = c.Email
	}

	return resp
}
