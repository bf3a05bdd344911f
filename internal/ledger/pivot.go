package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kuyumcu-backend/internal/models"
)

type Filters struct {
	Name      string // isim alt dizesi, büyük/küçük harf duyarsız
	StartDate *time.Time
	EndDate   *time.Time
	Pivot     bool
}

// PivotRow - bir takvim günü; Cells anahtarı kolon etiketi (ilk görülen yazım)
type PivotRow struct {
	Date  string
	Cells map[string]float64

	day time.Time // sıralama için
}

type View struct {
	Pivot   bool
	Columns []string
	Rows    []PivotRow
	Entries []models.LedgerEntry
	Total   float64
}

// dayLabel: gün bazlı gruplama anahtarı, "1/2/2024" biçiminde (ay/gün/yıl,
// sıfır dolgusuz). Gerçek bir tarih tipi değil, görüntü anahtarı.
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Tarih filtresi: iki tarih de verilirse [başlangıç 00:00:00, bitiş 23:59:59]
// aralığı. Tek taraflı verilirse SADECE o güne eşit kayıtlar geçer ("o günden
// itibaren" DEĞİL) - bilinçli olarak korunan davranış, test ile sabitlenmiştir.
func matchDate(t time.Time, f Filters) bool {
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		start := dayStart(*f.StartDate)
		endExcl := dayStart(*f.EndDate).AddDate(0, 0, 1)
		return !t.Before(start) && t.Before(endExcl)
	case f.StartDate != nil:
		return sameDay(t, *f.StartDate)
	case f.EndDate != nil:
		return sameDay(t, *f.EndDate)
	default:
		return true
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildView - düz kayıt listesini filtrelenmiş görünüme dönüştürür (saf fonksiyon).
// Pivot modda kayıtlar (gün, normalize isim) bazında toplanır: satır = gün,
// kolon = isim, hücre = tutar toplamı. Kolon etiketi ilk görülen yazımdır
// ("Ali", "ali", " ALI " tek kolonda toplanır). Satırlar tarihe göre azalan sıralı.
func BuildView(entries []models.LedgerEntry, f Filters) View {
	sub := normalizeName(f.Name)

	filtered := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !matchDate(e.Date, f) {
			continue
		}
		filtered = append(filtered, e)
	}

	if !f.Pivot {
		// Düz mod: isim filtresi kayıt adına uygulanır
		out := make([]models.LedgerEntry, 0, len(filtered))
		total := 0.0
		for _, e := range filtered {
			if sub != "" && !strings.Contains(strings.ToLower(e.Name), sub) {
				continue
			}
			out = append(out, e)
			total += e.Amount
		}
		return View{Entries: out, Total: total}
	}

	// Pivot mod: önce grupla
	type rowAgg struct {
		day   time.Time
		cells map[string]float64 // normalize isim -> toplam
	}
	rows := make(map[string]*rowAgg)
	rowOrder := make([]string, 0)
	labels := make(map[string]string) // normalize isim -> ilk görülen yazım
	colOrder := make([]string, 0)

	for _, e := range filtered {
		key := dayLabel(e.Date)
		r, ok := rows[key]
		if !ok {
			r = &rowAgg{day: dayStart(e.Date), cells: make(map[string]float64)}
			rows[key] = r
			rowOrder = append(rowOrder, key)
		}

		norm := normalizeName(e.Name)
		if _, seen := labels[norm]; !seen {
			labels[norm] = strings.TrimSpace(e.Name)
			colOrder = append(colOrder, norm)
		}
		r.cells[norm] += e.Amount
	}

	// Pivot modda isim filtresi kolon ETİKETLERİNE uygulanır (düz moddan farklı
	// şekil, bilinçli olarak ayrı tutuluyor). Sıfır doldurma filtre SONRASI
	// yapılır: o gün eşleşen hiçbir kaydı olmayan satırlar düşer.
	keptCols := make([]string, 0, len(colOrder))
	for _, norm := range colOrder {
		if sub == "" || strings.Contains(strings.ToLower(labels[norm]), sub) {
			keptCols = append(keptCols, norm)
		}
	}

	outRows := make([]PivotRow, 0, len(rowOrder))
	total := 0.0
	for _, key := range rowOrder {
		r := rows[key]

		if sub != "" {
			has := false
			for _, norm := range keptCols {
				if _, ok := r.cells[norm]; ok {
					has = true
					break
				}
			}
			if !has {
				continue
			}
		}

		cells := make(map[string]float64, len(keptCols))
		for _, norm := range keptCols {
			v := r.cells[norm] // eksik hücre 0
			cells[labels[norm]] = v
			total += v
		}
		outRows = append(outRows, PivotRow{Date: key, Cells: cells, day: r.day})
	}

	// Tarihe göre azalan
	sort.Slice(outRows, func(i, j int) bool {
		return outRows[j].day.Before(outRows[i].day)
	})

	columns := make([]string, 0, len(keptCols))
	for _, norm := range keptCols {
		columns = append(columns, labels[norm])
	}

	return View{Pivot: true, Columns: columns, Rows: outRows, Total: total}
}
