package ledger

import (
	"testing"
	"time"

	"kuyumcu-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func sampleEntries() []models.LedgerEntry {
	return []models.LedgerEntry{
		{ID: 1, Name: "Ali", Amount: 100, Date: day(2024, 1, 1)},
		{ID: 2, Name: "ali", Amount: 50, Date: day(2024, 1, 1)},
		{ID: 3, Name: "Sara", Amount: 30, Date: day(2024, 1, 2)},
	}
}

// "Ali" ve "ali" tek kolonda toplanır, etiket ilk görülen yazımdır.
// Satırlar tarihe göre azalan, eksik hücreler 0.
func TestPivotGroupsByDayAndNormalizedName(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{Pivot: true})

	assert.Equal(t, []string{"Ali", "Sara"}, view.Columns)
	require.Len(t, view.Rows, 2)

	assert.Equal(t, "1/2/2024", view.Rows[0].Date)
	assert.Equal(t, map[string]float64{"Ali": 0, "Sara": 30}, view.Rows[0].Cells)

	assert.Equal(t, "1/1/2024", view.Rows[1].Date)
	assert.Equal(t, map[string]float64{"Ali": 150, "Sara": 0}, view.Rows[1].Cells)

	assert.Equal(t, 180.0, view.Total)
}

func TestPivotLabelUsesFirstSeenCasing(t *testing.T) {
	entries := []models.LedgerEntry{
		{ID: 1, Name: " ALI ", Amount: 10, Date: day(2024, 1, 1)},
		{ID: 2, Name: "ali", Amount: 5, Date: day(2024, 1, 1)},
	}

	view := BuildView(entries, Filters{Pivot: true})
	assert.Equal(t, []string{"ALI"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 15.0, view.Rows[0].Cells["ALI"])
}

// Pivot modda isim filtresi kolon etiketlerine bakar: eşleşen kolonu olmayan
// satırlar düşer.
func TestPivotNameFilter(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{Pivot: true, Name: "sar"})

	assert.Equal(t, []string{"Sara"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "1/2/2024", view.Rows[0].Date)
	assert.Equal(t, map[string]float64{"Sara": 30}, view.Rows[0].Cells)
	assert.Equal(t, 30.0, view.Total)
}

// Düz modda isim filtresi kayıt adına bakar.
func TestFlatNameFilter(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{Name: "sar"})

	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Sara", view.Entries[0].Name)
	assert.Equal(t, 30.0, view.Total)
}

// Tek taraflı tarih filtresi aralık DEĞİL, tam gün eşitliğidir.
// Davranış bilinçli olarak korunuyor; değişirse bu test yakalar.
func TestSingleSidedDateFilterMatchesExactDay(t *testing.T) {
	entries := sampleEntries()

	view := BuildView(entries, Filters{StartDate: dayPtr(2024, 1, 1)})
	require.Len(t, view.Entries, 2)
	assert.Equal(t, 150.0, view.Total)

	view = BuildView(entries, Filters{EndDate: dayPtr(2024, 1, 2)})
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Sara", view.Entries[0].Name)
}

func TestDateRangeInclusive(t *testing.T) {
	entries := append(sampleEntries(), models.LedgerEntry{
		ID: 4, Name: "Veli", Amount: 70, Date: day(2024, 1, 5),
	})

	view := BuildView(entries, Filters{
		StartDate: dayPtr(2024, 1, 1),
		EndDate:   dayPtr(2024, 1, 2),
	})
	require.Len(t, view.Entries, 3)
	assert.Equal(t, 180.0, view.Total)

	// Gün içi saatler de aralığa girer (bitiş günü 23:59:59'a kadar)
	entries = append(entries, models.LedgerEntry{
		ID: 5, Name: "Sara", Amount: 1,
		Date: time.Date(2024, 1, 2, 18, 30, 0, 0, time.UTC),
	})
	view = BuildView(entries, Filters{
		StartDate: dayPtr(2024, 1, 1),
		EndDate:   dayPtr(2024, 1, 2),
	})
	assert.Equal(t, 181.0, view.Total)
}

// Gruplama tutarları yeniden dağıtır, asla düşürmez veya çoğaltmaz:
// aynı filtre için pivot toplamı == düz toplam.
func TestPivotTotalPreservation(t *testing.T) {
	entries := append(sampleEntries(),
		models.LedgerEntry{ID: 4, Name: "Veli", Amount: -20, Date: day(2024, 1, 1)},
		models.LedgerEntry{ID: 5, Name: "sara", Amount: 12.5, Date: day(2024, 1, 2)},
	)

	filterStates := []Filters{
		{},
		{StartDate: dayPtr(2024, 1, 1)},
		{StartDate: dayPtr(2024, 1, 1), EndDate: dayPtr(2024, 1, 2)},
	}

	for _, f := range filterStates {
		flat := f
		flat.Pivot = false
		pivot := f
		pivot.Pivot = true

		flatView := BuildView(entries, flat)
		pivotView := BuildView(entries, pivot)

		assert.InDelta(t, flatView.Total, pivotView.Total, 1e-9)

		// Hücre toplamı da aynı olmalı
		cellSum := 0.0
		for _, row := range pivotView.Rows {
			for _, v := range row.Cells {
				cellSum += v
			}
		}
		assert.InDelta(t, flatView.Total, cellSum, 1e-9)
	}
}

func TestEmptyFilteredSet(t *testing.T) {
	view := BuildView(sampleEntries(), Filters{
		Pivot:     true,
		StartDate: dayPtr(2030, 1, 1),
	})
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.Columns)
	assert.Equal(t, 0.0, view.Total)

	view = BuildView(nil, Filters{Pivot: true})
	assert.Empty(t, view.Rows)
	assert.Equal(t, 0.0, view.Total)
}

func TestDayLabelFormat(t *testing.T) {
	assert.Equal(t, "1/2/2024", dayLabel(day(2024, 1, 2)))
	assert.Equal(t, "12/31/2023", dayLabel(day(2023, 12, 31)))
}
