package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finance-tracker/internal/domain"
)

func sampleEntries() []domain.Entry {
	registered := time.Date(2021, 5, 6, 0, 0, 0, 0, time.UTC)
	salary := domain.NewEntry(1, "Salary", 5, 2021, decimal.RequireFromString("1000.50"), domain.EntryTypeIncome)
	salary.ID = 1
	salary.Status = domain.EntryStatusSettled
	salary.RegisteredAt = &registered

	rent := domain.NewEntry(1, "Rent, flat", 5, 2021, decimal.NewFromInt(700), domain.EntryTypeExpense)
	rent.ID = 2
	rent.Status = domain.EntryStatusPending
	return []domain.Entry{salary, rent}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "xlsx", f.Extension())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleEntries()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"1", "Salary", "5", "2021", "1000.5", "INCOME", "SETTLED", "2021-05-06"}, rows[1])
	assert.Equal(t, []string{"2", "Rent, flat", "5", "2021", "700", "EXPENSE", "PENDING", ""}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Rent, flat", rows[2][1])
	assert.Equal(t, "700", rows[2][4])
}
