package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the ledger as workbooks, CSV statements and printable receipts
type ExportService struct {
	*Ledger
}

// NewExportService creates a new export service
func NewExportService(ledger *Ledger) *ExportService {
	return &ExportService{Ledger: ledger}
}

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func workbookSheets(snap *models.Snapshot) []sheet {
	sheets := []sheet{
		{name: "Summary", headers: []string{"Metric", "Value"}, rows: [][]interface{}{
			{"Total Collected", money(snap.TotalCollected)},
			{"Total Expenditure", money(snap.TotalExpenditure)},
			{"Records", snap.RecordCount()},
		}},
		{name: "Payments", headers: []string{"ID", "Name", "Class", "Stream", "House", "Type", "Term", "Amount", "Required", "Balance", "Date", "Time"}},
		{name: "Expenditures", headers: []string{"ID", "Description", "Amount", "Date", "Time"}},
		{name: "Loans", headers: []string{"ID", "Name", "Principal", "Interest %", "Total", "Remaining", "Status", "Date", "Due Date"}},
		{name: "Repayments", headers: []string{"ID", "Loan ID", "Name", "Paid", "Balance", "Date"}},
		{name: "Savings", headers: []string{"ID", "Name", "Amount", "Saved On", "Scheduled", "Term Weeks", "Interest %", "Interest If Held", "Withdrawn"}},
		{name: "Minister Payments", headers: []string{"ID", "Name", "Type", "Required", "Paid", "Balance", "Date"}},
		{name: "Incomes", headers: []string{"ID", "Source", "Amount", "Date", "Time"}},
		{name: "Attendance", headers: []string{"ID", "Name", "Role", "Date", "Time", "Status", "Fine"}},
		{name: "Duties", headers: []string{"ID", "Name", "Role", "Task", "Week"}},
		{name: "Students", headers: []string{"ID", "Name", "Class", "Stream", "House", "Date"}},
	}

	for _, p := range snap.Payments {
		sheets[1].rows = append(sheets[1].rows, []interface{}{p.ID, p.Name, p.Class, p.Stream, p.House, p.Type, p.Term, money(p.Amount), money(p.Required), money(p.Balance), p.Date, p.Time})
	}
	for _, e := range snap.Expenditures {
		sheets[2].rows = append(sheets[2].rows, []interface{}{e.ID, e.Description, money(e.Amount), e.Date, e.Time})
	}
	for _, l := range snap.Loans {
		sheets[3].rows = append(sheets[3].rows, []interface{}{l.ID, l.Name, money(l.Principal), money(l.InterestPct), money(l.Total), money(l.TotalRemaining), l.Status, l.Date, l.DueDate})
	}
	for _, r := range snap.Repayments {
		sheets[4].rows = append(sheets[4].rows, []interface{}{r.ID, r.LoanID, r.Name, money(r.Paid), money(r.Balance), r.Date})
	}
	for _, s := range snap.Savings {
		sheets[5].rows = append(sheets[5].rows, []interface{}{s.ID, s.Name, money(s.Amount), s.DateSaved, s.Scheduled, s.TermWeeks, money(s.InterestPct.Shift(2)), money(s.InterestIfHeld), bool(s.Withdrawn)})
	}
	for _, m := range snap.MinisterPayments {
		sheets[6].rows = append(sheets[6].rows, []interface{}{m.ID, m.Name, m.Type, money(m.Required), money(m.Paid), money(m.Balance), m.Date})
	}
	for _, i := range snap.Incomes {
		sheets[7].rows = append(sheets[7].rows, []interface{}{i.ID, i.Source, money(i.Amount), i.Date, i.Time})
	}
	for _, a := range snap.Attendance {
		sheets[8].rows = append(sheets[8].rows, []interface{}{a.ID, a.Name, a.Role, a.Date, a.Time, a.Status, money(a.Fine)})
	}
	for _, d := range snap.Duties {
		sheets[9].rows = append(sheets[9].rows, []interface{}{d.ID, d.Name, d.Role, d.Task, d.Week})
	}
	for _, s := range snap.Students {
		sheets[10].rows = append(sheets[10].rows, []interface{}{s.ID, s.Name, s.Class, s.Stream, s.House, s.Date})
	}
	return sheets
}

// Workbook exports every ledger table to one XLSX sheet each
func (s *ExportService) Workbook(ctx context.Context, id access.Identity) ([]byte, string, error) {
	if err := s.authorize(id); err != nil {
		return nil, "", err
	}
	snap, err := s.dump(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, sh := range workbookSheets(snap) {
		if i == 0 {
			_ = f.SetSheetName("Sheet1", sh.name)
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, "", fmt.Errorf("failed to add sheet %s: %w", sh.name, err)
		}

		for col, header := range sh.headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(sh.name, cell, header)
		}
		last, _ := excelize.CoordinatesToCellName(len(sh.headers), 1)
		_ = f.SetCellStyle(sh.name, "A1", last, headerStyle)

		for r, row := range sh.rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				_ = f.SetCellValue(sh.name, cell, value)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("cabinet_ledger_%s.xlsx", s.today())
	return buf.Bytes(), filename, nil
}

type cashbookLine struct {
	date, time, kind, detail string
	in, out                  decimal.Decimal
}

// CashbookCSV exports incomes, payments and expenditures in date order with a running balance
func (s *ExportService) CashbookCSV(ctx context.Context, id access.Identity) ([]byte, string, error) {
	if err := s.authorize(id); err != nil {
		return nil, "", err
	}
	snap, err := s.dump(ctx)
	if err != nil {
		return nil, "", err
	}

	var lines []cashbookLine
	for _, p := range snap.Payments {
		lines = append(lines, cashbookLine{p.Date, p.Time, "Payment", fmt.Sprintf("%s %s (%s)", p.Type, p.Name, p.House), p.Amount, decimal.Zero})
	}
	for _, m := range snap.MinisterPayments {
		lines = append(lines, cashbookLine{m.Date, "", "Minister Payment", fmt.Sprintf("%s %s", m.Type, m.Name), m.Paid, decimal.Zero})
	}
	for _, i := range snap.Incomes {
		lines = append(lines, cashbookLine{i.Date, i.Time, "Income", i.Source, i.Amount, decimal.Zero})
	}
	for _, e := range snap.Expenditures {
		lines = append(lines, cashbookLine{e.Date, e.Time, "Expenditure", e.Description, decimal.Zero, e.Amount})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].date != lines[j].date {
			return lines[i].date < lines[j].date
		}
		return lines[i].time < lines[j].time
	})

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	_ = writer.Write([]string{"Date", "Time", "Kind", "Detail", "In", "Out", "Running Balance"})

	running := decimal.Zero
	for _, l := range lines {
		running = running.Add(l.in).Sub(l.out)
		_ = writer.Write([]string{l.date, l.time, l.kind, l.detail, l.in.String(), l.out.String(), running.String()})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("cabinet_cashbook_%s.csv", s.today())
	return buf.Bytes(), filename, nil
}

// ReceiptPDF prints a receipt text, one line per text line. A valid amount is also spelled out.
func (s *ExportService) ReceiptPDF(text string, amount decimal.NullDecimal) ([]byte, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", invalid("Receipt text is required")
	}
	lines := strings.Split(text, "\n")

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr(lines[0]))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, line := range lines[1:] {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}

	if amount.Valid {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("Amount in words: "+AmountInWords(amount.Decimal)), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 5, "Printed "+s.stamp())

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipt_%s.pdf", s.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
