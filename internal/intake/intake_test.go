package intake_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/intake"
)

func apply(s intake.State, actions ...intake.Action) intake.State {
	for _, a := range actions {
		s = intake.Reduce(s, a)
	}

	return s
}

func text(f intake.Field, v string) intake.Action {
	return intake.SetText{Field: f, Value: v}
}

// janeDoe fills every step with the values of a typical valid call.
func janeDoe() intake.State {
	return apply(intake.New(),
		text(intake.FieldExtNumber, "101"),
		text(intake.FieldBranch, "Main"),
		intake.SetFlag{Field: intake.FieldIsMED, On: true},
		intake.Next{},
		text(intake.FieldClientFirstName, "Jane"),
		text(intake.FieldClientLastName, "Doe"),
		text(intake.FieldClientEmployer, "Acme"),
		intake.Next{},
		text(intake.FieldGrossSalary, "10000"),
		text(intake.FieldNettSalary, "8000"),
		text(intake.FieldBank, "ABC Bank"),
		text(intake.FieldAccountNo, "123"),
		text(intake.FieldAccountType, "Savings"),
		intake.Next{},
		intake.SetCreditorField{Index: 0, Field: intake.CreditorName, Value: "Store Card"},
		intake.SetCreditorField{Index: 0, Field: intake.CreditorAmount, Value: "200"},
		intake.Next{},
	)
}

func TestNew(t *testing.T) {
	s := intake.New()

	assert.Equal(t, intake.StepCallInfo, s.Step)
	assert.Len(t, s.Creditors, 1)
	assert.Empty(t, s.Errors)
	assert.Equal(t, "Draft", s.Form.Status)
}

func TestNext_BlockedWithoutApplicationType(t *testing.T) {
	s := apply(intake.New(),
		text(intake.FieldExtNumber, "101"),
		text(intake.FieldBranch, "Main"),
		intake.Next{},
	)

	assert.Equal(t, intake.StepCallInfo, s.Step)
	assert.Contains(t, s.Errors, intake.KeyAppType)

	flags := []intake.Field{
		intake.FieldIsMED, intake.FieldIsDReview, intake.FieldIsDRR, intake.FieldIs3in1, intake.FieldIsRentTo,
	}

	for _, f := range flags {
		t.Run(string(f), func(t *testing.T) {
			got := intake.Reduce(s, intake.SetFlag{Field: f, On: true})
			assert.NotContains(t, got.Errors, intake.KeyAppType)

			got = intake.Reduce(got, intake.Next{})
			assert.Equal(t, intake.StepApplicant, got.Step)
		})
	}

	t.Run("other_type", func(t *testing.T) {
		got := intake.Reduce(s, text(intake.FieldOtherType, "Consolidation"))
		assert.NotContains(t, got.Errors, intake.KeyAppType)
	})

	t.Run("blank_other_type", func(t *testing.T) {
		got := apply(s, text(intake.FieldOtherType, "   "), intake.Next{})

		assert.Equal(t, intake.StepCallInfo, got.Step)
		assert.Contains(t, got.Errors, intake.KeyAppType)
	})
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := apply(intake.New(), intake.Next{})
	require.NotEmpty(t, s.Errors)

	before := len(s.Errors)

	_ = intake.Reduce(s, text(intake.FieldExtNumber, "101"))

	assert.Len(t, s.Errors, before)
	assert.Empty(t, s.Form.ExtNumber)
}

func TestSetText_ClearsFieldError(t *testing.T) {
	s := apply(intake.New(), intake.Next{})
	require.Contains(t, s.Errors, string(intake.FieldExtNumber))

	s = intake.Reduce(s, text(intake.FieldExtNumber, "101"))

	assert.NotContains(t, s.Errors, string(intake.FieldExtNumber))
	assert.Contains(t, s.Errors, string(intake.FieldBranch))
}

func TestPrevious_DoesNotValidate(t *testing.T) {
	s := apply(intake.New(),
		text(intake.FieldExtNumber, "101"),
		text(intake.FieldBranch, "Main"),
		intake.SetFlag{Field: intake.FieldIsDRR, On: true},
		intake.Next{},
		intake.Next{},
	)
	require.Equal(t, intake.StepApplicant, s.Step)
	require.NotEmpty(t, s.Errors)

	s = intake.Reduce(s, intake.Previous{})

	assert.Equal(t, intake.StepCallInfo, s.Step)
	assert.Empty(t, s.Errors)

	s = intake.Reduce(s, intake.Previous{})
	assert.Equal(t, intake.StepCallInfo, s.Step)
}

func TestCreditors_AddRemove(t *testing.T) {
	s := janeDoe()
	s = intake.Reduce(s, intake.Previous{})
	require.Equal(t, intake.StepCreditors, s.Step)

	s = apply(s, intake.AddCreditor{}, intake.AddCreditor{})
	assert.Len(t, s.Creditors, 3)

	s = apply(s,
		intake.SetCreditorField{Index: 2, Field: intake.CreditorName, Value: "Bank Loan"},
		intake.RemoveCreditor{Index: 1},
	)
	require.Len(t, s.Creditors, 2)
	assert.Equal(t, "Bank Loan", s.Creditors[1].Name)

	s = apply(s, intake.RemoveCreditor{Index: 0}, intake.RemoveCreditor{Index: 0})
	assert.Len(t, s.Creditors, 1)
}

func TestCreditors_OnlyEditableOnCreditorsStep(t *testing.T) {
	s := intake.Reduce(intake.New(), intake.AddCreditor{})

	assert.Len(t, s.Creditors, 1)
}

func TestImportCreditors(t *testing.T) {
	lines := []intake.CreditorLine{
		{Name: "Store Card", Balance: "1500.00", Amount: "200.00"},
		{Name: "Bank Loan", Amount: "950.00"},
	}

	t.Run("ReplacesBlankRow", func(t *testing.T) {
		s := apply(janeDoe(), intake.Previous{})
		s.Creditors = []intake.CreditorLine{{}}

		s = intake.Reduce(s, intake.ImportCreditors{Lines: lines})

		assert.Equal(t, lines, s.Creditors)
	})

	t.Run("Appends", func(t *testing.T) {
		s := apply(janeDoe(), intake.Previous{})

		s = intake.Reduce(s, intake.ImportCreditors{Lines: lines})

		require.Len(t, s.Creditors, 3)
		assert.Equal(t, "Store Card", s.Creditors[0].Name)
		assert.Equal(t, "Bank Loan", s.Creditors[2].Name)
	})
}

func TestSubmit(t *testing.T) {
	s := janeDoe()
	require.Equal(t, intake.StepDocuments, s.Step)

	s = intake.Reduce(s, intake.Submit{})
	require.True(t, s.Submitting)

	p := s.Payload()

	assert.Equal(t, "Jane", p.Client.FirstName)
	assert.Equal(t, "Doe", p.Client.LastName)
	assert.Equal(t, application.StatusDraft, p.Application.Status)
	assert.True(t, p.Application.Types.MED)
	assert.Equal(t, "0.00", p.Application.TotalExpenses.Decimal.StringFixed(2))
	require.Len(t, p.Creditors, 1)
	assert.Equal(t, "Store Card", p.Creditors[0].Name)
	assert.Equal(t, "200", p.Creditors[0].Amount.Decimal.String())
	assert.False(t, p.Creditors[0].Balance.Valid)
}

func TestSubmit_RevalidatesEveryStep(t *testing.T) {
	s := janeDoe()
	s.Form.NettSalary = "12000"

	s = intake.Reduce(s, intake.Submit{})

	assert.False(t, s.Submitting)
	assert.Equal(t, intake.StepFinancials, s.Step)
	assert.Contains(t, s.Errors, string(intake.FieldNettSalary))
}

func TestSubmit_OnlyFromLastStep(t *testing.T) {
	s := apply(janeDoe(), intake.Previous{}, intake.Submit{})

	assert.False(t, s.Submitting)
	assert.Equal(t, intake.StepCreditors, s.Step)
}

func TestSubmitFailed_KeepsData(t *testing.T) {
	s := apply(janeDoe(), intake.Submit{}, intake.SubmitFailed{Message: "Failed to create application."})

	assert.False(t, s.Submitting)
	assert.Equal(t, "Failed to create application.", s.SubmitError)
	assert.Equal(t, "Jane", s.Form.ClientFirstName)
	assert.Equal(t, intake.StepDocuments, s.Step)
}

func TestSubmitSucceeded_Resets(t *testing.T) {
	s := apply(janeDoe(), intake.Submit{}, intake.SubmitSucceeded{})

	assert.Equal(t, intake.New(), s)
}

func TestTotalExpenses(t *testing.T) {
	a := apply(intake.New(),
		text(intake.FieldExpGroceries, "1000"),
		text(intake.FieldExpTransport, "500"),
	)
	b := apply(intake.New(),
		text(intake.FieldExpTransport, "500"),
		text(intake.FieldExpGroceries, "1000"),
		text(intake.FieldExpRates, "abc"),
	)

	assert.Equal(t, "1500.00", a.TotalExpenses())
	assert.Equal(t, a.TotalExpenses(), b.TotalExpenses())
	assert.Equal(t, "0.00", intake.New().TotalExpenses())
}

func TestCreditorLines(t *testing.T) {
	lines := intake.CreditorLines([]application.Creditor{
		{Name: "Edgars", AccountRef: "E1", Balance: decimal.NewNullDecimal(decimal.RequireFromString("1234.5"))},
	})

	require.Len(t, lines, 1)
	assert.Equal(t, intake.CreditorLine{Name: "Edgars", AccountRef: "E1", Balance: "1234.50"}, lines[0])
}

func TestForm_TextAndFlag(t *testing.T) {
	s := intake.Reduce(intake.New(), intake.SetFlag{Field: intake.FieldHasPayslip, On: true})
	s = intake.Reduce(s, intake.SetText{Field: intake.FieldBranch, Value: "Durban"})

	assert.True(t, s.Form.Flag(intake.FieldHasPayslip))
	assert.False(t, s.Form.Flag(intake.FieldBranch))
	assert.Equal(t, "Durban", s.Form.Text(intake.FieldBranch))
	assert.Empty(t, s.Form.Text(intake.FieldIsMED))
}
