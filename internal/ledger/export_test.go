package ledger

import (
	"strings"
	"testing"

	"kuyumcu-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVPivot(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{Pivot: true})

	want := "date,Ali,Sara\n" +
		"1/2/2024,0,30\n" +
		"1/1/2024,150,0\n"
	assert.Equal(t, want, ExportCSV(view))
}

func TestExportCSVFlat(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{})

	want := "date,name,amount\n" +
		"1/1/2024,Ali,100\n" +
		"1/1/2024,ali,50\n" +
		"1/2/2024,Sara,30\n"
	assert.Equal(t, want, ExportCSV(view))
}

// CSV çıktısı alıntılama yapmaz: isimdeki virgül olduğu gibi yazılır.
// Bilinen sınırlama, davranış test ile sabit.
func TestExportCSVDoesNotQuote(t *testing.T) {
	entries := []models.LedgerEntry{
		{ID: 1, Name: "Ali, Veli", Amount: 10, Date: day(2024, 1, 1)},
	}
	view := BuildView(entries, Filters{})

	assert.Equal(t, "date,name,amount\n1/1/2024,Ali, Veli,10\n", ExportCSV(view))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "150", formatAmount(150))
	assert.Equal(t, "12.5", formatAmount(12.5))
	assert.Equal(t, "-20", formatAmount(-20))
}

func TestExportXLSXPivot(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{Pivot: true})

	f, err := ExportXLSX(view)
	require.NoError(t, err)
	sheet := f.GetSheetName(0)

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "date", cell("A1"))
	assert.Equal(t, "Ali", cell("B1"))
	assert.Equal(t, "Sara", cell("C1"))

	assert.Equal(t, "1/2/2024", cell("A2"))
	assert.Equal(t, "0", cell("B2"))
	assert.Equal(t, "30", cell("C2"))

	assert.Equal(t, "1/1/2024", cell("A3"))
	assert.Equal(t, "150", cell("B3"))
	assert.Equal(t, "0", cell("C3"))
}

func TestExportXLSXFlat(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{})

	f, err := ExportXLSX(view)
	require.NoError(t, err)
	sheet := f.GetSheetName(0)

	v, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ali", v)

	v, err = f.GetCellValue(sheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "30", v)

	// Bellekte yazılabilir olmalı (handler WriteToBuffer kullanır)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestExportFileName(t *testing.T) {
	name := exportFileName("csv")
	assert.True(t, strings.HasPrefix(name, "defter-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.Len(t, name, len("defter-")+8+len(".csv"))
}
