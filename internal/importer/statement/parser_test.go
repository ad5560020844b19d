package statement_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/khusela/internal/importer/statement"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestParser_Semicolon(t *testing.T) {
	csv := `Statement for;JANE DOE
ID number;9001015009087

Creditor;Reference;Balance;Instalment
Edgars;ED-1234;1 234,56;350,00
Capitec Bank;CAP 77;R 18 500,00;1 250,5
;;;
Totals;;19 734,56;1 600,50
`

	got, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Edgars", got[0].Name)
	assert.Equal(t, "ED-1234", got[0].AccountRef)
	assert.True(t, amount("1234.56").Decimal.Equal(got[0].Balance.Decimal))
	assert.True(t, amount("350").Decimal.Equal(got[0].Amount.Decimal))

	assert.Equal(t, "Capitec Bank", got[1].Name)
	assert.True(t, amount("18500").Decimal.Equal(got[1].Balance.Decimal))
	assert.True(t, amount("1250.50").Decimal.Equal(got[1].Amount.Decimal))
}

func TestParser_Comma(t *testing.T) {
	csv := "creditor,reference,balance,instalment\n" +
		"Woolworths,WW-9,\"1,234.56\",450.00\n" +
		"Truworths,,2000,\n"

	got, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, amount("1234.56").Decimal.Equal(got[0].Balance.Decimal))
	assert.Equal(t, "", got[1].AccountRef)
	assert.False(t, got[1].Amount.Valid)
}

func TestParser_BureauLayout(t *testing.T) {
	csv := `Credit Provider;Account Number;Outstanding Balance;Monthly Instalment
African Bank;AB001;5.000,00;500,00
`

	got, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "African Bank", got[0].Name)
	assert.True(t, amount("5000").Decimal.Equal(got[0].Balance.Decimal))
}

func TestParser_Windows1252(t *testing.T) {
	latin, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Creditor;Reference;Balance;Instalment\nCrédit Agricolé;X1;100,00;10,00\n"))
	require.NoError(t, err)

	got, err := statement.NewParser().Parse(bytes.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Crédit Agricolé", got[0].Name)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "NoHeader",
			csv:     "Name;Amount\nEdgars;100\n",
			wantErr: "no creditor header found",
		},
		{
			name:    "InvalidBalance",
			csv:     "Creditor;Reference;Balance;Instalment\nEdgars;E1;abc;10\n",
			wantErr: "row 2: invalid balance",
		},
		{
			name:    "NegativeInstalment",
			csv:     "Creditor;Reference;Balance;Instalment\nEdgars;E1;100;-10\n",
			wantErr: "row 2: invalid instalment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := statement.NewParser().Parse(strings.NewReader(tt.csv))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
