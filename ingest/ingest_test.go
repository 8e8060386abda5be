package ingest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/receivables-engine/ingest"
	"github.com/warp/receivables-engine/ledger"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Particulars,Date,Debit,Credit,180 Days Due
Opening Balance,,500.00,,
Sale to ACME,01-01-2024,,"1,000.00",29-06-2024
Payment received,15-02-2024,400.00,,
garbage row,not-a-date,1.00,,
Closing Balance,,,"1,100.00",
`

func TestReadCSV_SniffsColumnsAndBalances(t *testing.T) {
	res, err := ingest.ReadCSV(strings.NewReader(sampleCSV), ingest.Options{})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, 1, res.Skipped)

	sale := res.Transactions[0]
	assert.True(t, sale.Credit.Equal(ledger.NewMoney(1000)), "credit = %v", sale.Credit)
	assert.Equal(t, "01-01-2024", sale.OriginalDate)
	assert.Equal(t, "29-06-2024", sale.OriginalDueDate)
	assert.Equal(t, 180, ledger.DaysBetween(sale.Date, sale.DueDate))

	payment := res.Transactions[1]
	assert.True(t, payment.Debit.Equal(ledger.NewMoney(400)), "debit = %v", payment.Debit)

	require.NotNil(t, res.OpeningBalance)
	assert.True(t, res.OpeningBalance.Equal(ledger.NewMoney(500)))
	require.NotNil(t, res.ClosingBalance)
	assert.True(t, res.ClosingBalance.Equal(ledger.NewMoney(1100)))
}

func TestReadCSV_EmptyBalanceCells_LeaveBalancesUnset(t *testing.T) {
	csv := `Particulars,Date,Debit,Credit
Opening Balance,,,
Sale,01-01-2024,,1000
Closing Balance,,,
`
	res, err := ingest.ReadCSV(strings.NewReader(csv), ingest.Options{})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.Nil(t, res.OpeningBalance, "empty opening balance cell must not capture zero")
	assert.Nil(t, res.ClosingBalance, "empty closing balance cell must not capture zero")
}

func TestReadCSV_MissingDueColumn_AppliesDefaultPolicy(t *testing.T) {
	csv := "Date,Debit,Credit\n01-01-2024,,1000\n"
	res, err := ingest.ReadCSV(strings.NewReader(csv), ingest.Options{})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	tx := res.Transactions[0]
	assert.Equal(t, ingest.DefaultDueDays, ledger.DaysBetween(tx.Date, tx.DueDate))
}

func TestReadCSV_CustomDuePolicy(t *testing.T) {
	csv := "Date,Debit,Credit\n01-01-2024,,1000\n"
	res, err := ingest.ReadCSV(strings.NewReader(csv), ingest.Options{DueDays: 90})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, 90, ledger.DaysBetween(res.Transactions[0].Date, res.Transactions[0].DueDate))
}

func TestReadCSV_NoDateColumn_Fails(t *testing.T) {
	_, err := ingest.ReadCSV(strings.NewReader("Foo,Bar\n1,2\n"), ingest.Options{})
	require.Error(t, err)
}

func TestReadCSV_CustomMapping(t *testing.T) {
	csv := "Posted,Paid Out,Invoiced\n01-01-2024,,1000\n"
	mapping := ingest.Mapping{
		Date:   ingest.Contains("posted"),
		Debit:  ingest.Contains("paid out"),
		Credit: ingest.Contains("invoiced"),
	}
	res, err := ingest.ReadCSV(strings.NewReader(csv), ingest.Options{Mapping: &mapping})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.True(t, res.Transactions[0].Credit.Equal(ledger.NewMoney(1000)))
}

func TestReadWorkbook_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Particulars", "Date", "Debit", "Credit", "180 Days"},
		{"Sale", "01-01-2024", "", 1000, "29-06-2024"},
		{"Payment", "15-02-2024", 400, "", ""},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := ingest.ReadWorkbook(bytes.NewReader(buf.Bytes()), ingest.Options{})
	require.NoError(t, err)

	require.Len(t, res.Transactions, 2)
	assert.True(t, res.Transactions[0].Credit.Equal(ledger.NewMoney(1000)))
	assert.True(t, res.Transactions[1].Debit.Equal(ledger.NewMoney(400)))
}
