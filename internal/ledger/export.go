package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ExportCSV - ekranda gösterilen görünümü (pivot veya düz) CSV'ye çevirir:
// başlık satırı + kayıt başına bir satır, virgülle birleştirilmiş. Sayılar düz
// yazılır, pivot modda eksik hücre "0". Alanlar tırnaklanmaz; virgül içeren
// isimler kolonları kaydırır (bilinen sınırlama).
func ExportCSV(v View) string {
	var b strings.Builder

	if v.Pivot {
		b.WriteString("date")
		for _, col := range v.Columns {
			b.WriteString(",")
			b.WriteString(col)
		}
		b.WriteString("\n")

		for _, row := range v.Rows {
			b.WriteString(row.Date)
			for _, col := range v.Columns {
				b.WriteString(",")
				b.WriteString(formatAmount(row.Cells[col]))
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString("date,name,amount\n")
	for _, e := range v.Entries {
		b.WriteString(dayLabel(e.Date))
		b.WriteString(",")
		b.WriteString(e.Name)
		b.WriteString(",")
		b.WriteString(formatAmount(e.Amount))
		b.WriteString("\n")
	}
	return b.String()
}

// ExportXLSX - aynı görünümü tek sayfalık Excel dosyasına yazar
func ExportXLSX(v View) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if v.Pivot {
		if err := setCell(1, 1, "date"); err != nil {
			return nil, err
		}
		for i, col := range v.Columns {
			if err := setCell(i+2, 1, col); err != nil {
				return nil, err
			}
		}
		for r, row := range v.Rows {
			if err := setCell(1, r+2, row.Date); err != nil {
				return nil, err
			}
			for i, col := range v.Columns {
				if err := setCell(i+2, r+2, row.Cells[col]); err != nil {
					return nil, err
				}
			}
		}
		return f, nil
	}

	headers := []string{"date", "name", "amount"}
	for i, h := range headers {
		if err := setCell(i+1, 1, h); err != nil {
			return nil, err
		}
	}
	for r, e := range v.Entries {
		if err := setCell(1, r+2, dayLabel(e.Date)); err != nil {
			return nil, err
		}
		if err := setCell(2, r+2, e.Name); err != nil {
			return nil, err
		}
		if err := setCell(3, r+2, e.Amount); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Export dosya adı, örn. "defter-20240102.csv"
func exportFileName(ext string) string {
	return fmt.Sprintf("defter-%s.%s", time.Now().Format("20060102"), ext)
}
