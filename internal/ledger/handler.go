package ledger

import (
	"fmt"
	"strings"
	"time"

	"kuyumcu-backend/internal/audit"
	"kuyumcu-backend/internal/auth"
	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateLedgerEntryRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   *string `json:"date"` // "2006-01-02" formatında, boşsa bugün
}

type UpdateLedgerEntryRequest struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
	Date   *string  `json:"date"`
}

type LedgerEntryResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func entryResponse(e models.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:     e.ID,
		Name:   e.Name,
		Amount: e.Amount,
		Date:   e.Date.Format("2006-01-02"),
	}
}

// Yardımcı: audit log için kullanıcı bilgilerini al
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fmt.Errorf("kullanıcı bilgisi yok")
	}
	userName, _ := c.Locals(auth.CtxUserNameKey).(string)
	return userID, userName, nil
}

func writeEntryAudit(c *fiber.Ctx, e models.LedgerEntry, action models.AuditAction, desc string) {
	userID, userName, err := getUserInfo(c)
	if err != nil {
		return
	}

	data := map[string]interface{}{
		"id":     e.ID,
		"name":   e.Name,
		"amount": e.Amount,
		"date":   e.Date.Format("2006-01-02"),
	}

	opts := audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  "ledger_entry",
		EntityID:    e.ID,
		Action:      action,
		Description: desc,
	}
	if action == models.AuditActionDelete {
		opts.Before = data
	} else {
		opts.After = data
	}

	if logErr := audit.WriteLog(opts); logErr != nil {
		fmt.Printf("Audit log yazılamadı: %v\n", logErr)
	}
}

// -------------------------------------------------
// POST /api/ledger-entries
// -------------------------------------------------
func CreateLedgerEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLedgerEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Cari adı boş olamaz")
		}
		if body.Amount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0 olamaz")
		}

		// tarih
		var date time.Time
		if body.Date == nil || *body.Date == "" {
			// sadece tarih kısmını kullanmak için bugün 00:00
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		entry := models.LedgerEntry{
			Name:   body.Name,
			Amount: body.Amount,
			Date:   date,
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		writeEntryAudit(c, entry, models.AuditActionCreate,
			fmt.Sprintf("Defter kaydı eklendi: %s - %.2f", entry.Name, entry.Amount))

		return c.Status(fiber.StatusCreated).JSON(entryResponse(entry))
	}
}

// -------------------------------------------------
// GET /api/ledger-entries
// Tüm kayıtlar; filtreleme/pivot client tarafında veya pivot endpoint'inde
// -------------------------------------------------
func ListLedgerEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.LedgerEntry
		if err := database.DB.Order("date asc, id asc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		resp := make([]LedgerEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, entryResponse(e))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/ledger-entries/:id
// -------------------------------------------------
func UpdateLedgerEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.LedgerEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}

		var body UpdateLedgerEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Cari adı boş olamaz")
			}
			entry.Name = name
		}

		if body.Amount != nil {
			if *body.Amount == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tutar 0 olamaz")
			}
			entry.Amount = *body.Amount
		}

		if body.Date != nil && *body.Date != "" {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
			entry.Date = d
		}

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt güncellenemedi")
		}

		return c.JSON(entryResponse(entry))
	}
}

// -------------------------------------------------
// DELETE /api/ledger-entries/:id
// -------------------------------------------------
func DeleteLedgerEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.LedgerEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt silinemedi")
		}

		writeEntryAudit(c, entry, models.AuditActionDelete,
			fmt.Sprintf("Defter kaydı silindi: %s - %.2f", entry.Name, entry.Amount))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Query parametrelerinden filtre oluştur
func parseFilters(c *fiber.Ctx) (Filters, error) {
	f := Filters{
		Name:  c.Query("name"),
		Pivot: c.QueryBool("pivot", false),
	}

	if s := c.Query("start_date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "start_date geçersiz, 'YYYY-MM-DD' olmalı")
		}
		f.StartDate = &d
	}

	if s := c.Query("end_date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "end_date geçersiz, 'YYYY-MM-DD' olmalı")
		}
		f.EndDate = &d
	}

	return f, nil
}

func loadEntries() ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := database.DB.Order("date asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// -------------------------------------------------
// GET /api/ledger-entries/pivot?name=ali&start_date=2024-01-01&end_date=2024-01-31&pivot=true
// -------------------------------------------------
func PivotLedgerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := parseFilters(c)
		if err != nil {
			return err
		}

		entries, err := loadEntries()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar okunamadı")
		}

		view := BuildView(entries, filters)

		if view.Pivot {
			rows := make([]fiber.Map, 0, len(view.Rows))
			for _, row := range view.Rows {
				m := fiber.Map{"date": row.Date}
				for _, col := range view.Columns {
					m[col] = row.Cells[col]
				}
				rows = append(rows, m)
			}
			return c.JSON(fiber.Map{
				"pivot":   true,
				"columns": view.Columns,
				"rows":    rows,
				"total":   view.Total,
			})
		}

		resp := make([]LedgerEntryResponse, 0, len(view.Entries))
		for _, e := range view.Entries {
			resp = append(resp, entryResponse(e))
		}
		return c.JSON(fiber.Map{
			"pivot":   false,
			"entries": resp,
			"total":   view.Total,
		})
	}
}

// -------------------------------------------------
// GET /api/ledger-entries/export?format=csv|xlsx + pivot filtreleri
// Ekranda gösterilen görünümün aynısını dosya olarak döndürür
// -------------------------------------------------
func ExportLedgerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := parseFilters(c)
		if err != nil {
			return err
		}

		entries, err := loadEntries()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar okunamadı")
		}

		view := BuildView(entries, filters)

		format := c.Query("format", "csv")
		switch format {
		case "csv":
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFileName("csv")+`"`)
			return c.SendString(ExportCSV(view))

		case "xlsx":
			file, err := ExportXLSX(view)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
			}
			buf, err := file.WriteToBuffer()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFileName("xlsx")+`"`)
			return c.Send(buf.Bytes())

		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz format (csv|xlsx)")
		}
	}
}
