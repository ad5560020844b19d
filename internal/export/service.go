package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/khusela/internal/application"
)

const (
	SheetApplications = "Applications"
	SheetSummary      = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var applicationHeader = []any{
	"Date", "Client", "ID Number", "Cell", "Email", "Consultant", "Franchise", "Branch", "Status",
	"Gross Salary", "Nett Salary", "Total Expenses", "Bank", "Debit Order Amount",
}

// Source is the part of the application service the export reads from.
type Source interface {
	List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error)
	Summary(ctx context.Context) ([]application.StatusCount, error)
}

// Service writes application workbooks.
type Service struct {
	applications Source
	now          func() time.Time
}

func NewService(applications Source) *Service {
	return &Service{applications: applications, now: time.Now}
}

// Write streams a workbook with one row per application on the first sheet
// and the per-status counts on the second.
func (s *Service) Write(ctx context.Context, w io.Writer, filter application.ListFilter) error {
	apps, err := s.applications.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing applications: %w", err)
	}

	counts, err := s.applications.Summary(ctx)
	if err != nil {
		return fmt.Errorf("counting applications: %w", err)
	}

	f, err := build(apps, counts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// Export writes the workbook into outputDir and returns its path.
func (s *Service) Export(ctx context.Context, filter application.ListFilter, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(s.now()))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if err := s.Write(ctx, out, filter); err != nil {
		return "", err
	}

	return path, nil
}

// Filename is applications_YYYYMMDD_HHMMSS.xlsx.
func Filename(t time.Time) string {
	return "applications_" + t.Format("20060102_150405") + ".xlsx"
}

func build(apps []*application.Application, counts []application.StatusCount) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetApplications); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("adding summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRow(f, SheetApplications, 1, applicationHeader); err != nil {
		return nil, err
	}

	for i, a := range apps {
		if err := writeRow(f, SheetApplications, i+2, applicationRow(a)); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetSummary, 1, []any{"Status", "Count"}); err != nil {
		return nil, err
	}

	total := 0

	for i, c := range counts {
		total += c.Count

		if err := writeRow(f, SheetSummary, i+2, []any{string(c.Status), c.Count}); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetSummary, len(counts)+2, []any{"Total", total}); err != nil {
		return nil, err
	}

	for _, sheet := range []string{SheetApplications, SheetSummary} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("styling %s header: %w", sheet, err)
		}
	}

	if err := f.SetColWidth(SheetApplications, "A", "N", 18); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}

	return nil
}

func applicationRow(a *application.Application) []any {
	var client application.Client
	if a.Client != nil {
		client = *a.Client
	}

	return []any{
		a.Date.Format("2006-01-02"),
		client.FullName(),
		client.IDNumber,
		client.Cell,
		client.Email,
		a.ConsultantName,
		a.FranchiseName,
		a.Branch,
		string(a.Status),
		number(a.GrossSalary),
		number(a.NettSalary),
		number(a.TotalExpenses),
		a.Bank,
		number(a.DebitOrderAmount),
	}
}

// number leaves empty money cells blank instead of writing zero.
func number(d decimal.NullDecimal) any {
	if !d.Valid {
		return ""
	}

	return d.Decimal.InexactFloat64()
}
