package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	enc "github.com/MrJamesThe3rd/khusela/internal/encoding"
)

var ErrNoHeader = errors.New("no creditor header found: expected Creditor, Reference, Balance and Instalment columns")

// delimiters are tried in order. Excel in a South African locale writes ';'.
var delimiters = []rune{';', ','}

// Parser reads creditor statements exported as CSV.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]application.Creditor, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("creditor statement detected", "profile", profile.Name, "charset", charset, "delimiter", string(comma))

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.columns() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a creditor name and total rows. headerRowNum is 0-based.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]application.Creditor, error) {
	var out []application.Creditor

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		name := cellValue(row, cols[p.NameCol])
		if name == "" || isTotal(name) {
			continue
		}

		balance, err := amountCell(row, cols[p.BalanceCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid balance: %w", rowNum, err)
		}

		amount, err := amountCell(row, cols[p.AmountCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid instalment: %w", rowNum, err)
		}

		out = append(out, application.Creditor{
			Name:       name,
			AccountRef: cellValue(row, cols[p.RefCol]),
			Balance:    balance,
			Amount:     amount,
		})
	}

	return out, nil
}

// amountCell leaves blank cells unset and rejects negative values.
func amountCell(row []string, idx int) (decimal.NullDecimal, error) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := parseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%q: %w", s, err)
	}

	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%q is negative", s)
	}

	return decimal.NewNullDecimal(d), nil
}

func isTotal(name string) bool {
	return strings.EqualFold(name, "total") || strings.EqualFold(name, "totals")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
