package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_Workbook(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)

	data, filename, err := env.svc.Export.Workbook(ctx, finance)
	require.NoError(t, err)
	assert.Equal(t, "cabinet_ledger_2025-01-15.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Len(t, sheets, 11)
	assert.Equal(t, "Summary", sheets[0])

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amina", rows[1][1])
	assert.Equal(t, "35000", rows[1][8])

	rows, err = f.GetRows("Loans")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "L1", rows[1][0])
}

func TestExportService_CashbookCSV(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)
	_, err := env.svc.Income.Add(ctx, finance, "Bake sale", d(4000), "2025-01-10")
	require.NoError(t, err)

	data, filename, err := env.svc.Export.CashbookCSV(ctx, finance)
	require.NoError(t, err)
	assert.Equal(t, "cabinet_cashbook_2025-01-15.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// header, income, payment, two expenditures
	require.Len(t, records, 5)
	assert.Equal(t, "Running Balance", records[0][6])
	assert.Equal(t, "Bake sale", records[1][3])
	assert.Equal(t, "4000", records[1][6])
	assert.Equal(t, "11000", records[4][6])
}

func TestExportService_ReceiptPDF(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Income.Add(ctx, finance, "Bake sale", d(115500), "")
	require.NoError(t, err)

	data, filename, err := env.svc.Export.ReceiptPDF(receipt.Text(), decimal.NewNullDecimal(d(115500)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "receipt_20250115_103000.pdf", filename)

	_, _, err = env.svc.Export.ReceiptPDF("  ", decimal.NullDecimal{})
	assert.EqualError(t, err, "Receipt text is required")
}
