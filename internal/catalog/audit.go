package catalog

import (
	"fmt"

	"kuyumcu-backend/internal/audit"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Audit log yazımı best-effort: kullanıcı bilgisi yoksa veya yazım başarısızsa
// istek yine de başarılı sayılır.
func writeProductAudit(c *fiber.Ctx, p models.Product, action models.AuditAction, desc string) {
	userID, userName, err := getUserInfo(c)
	if err != nil {
		return
	}

	data := map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"sku":         p.SKU,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"category_id": p.CategoryID,
		"vendor_id":   p.VendorID,
		"status":      p.Status,
	}

	opts := audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  "product",
		EntityID:    p.ID,
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
