package dashboard

import (
	"time"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	ProductCount       int64   `json:"product_count"`
	ActiveProductCount int64   `json:"active_product_count"`
	TotalStock         int64   `json:"total_stock"`
	StoreCount         int64   `json:"store_count"`
	VendorCount        int64   `json:"vendor_count"`
	CategoryCount      int64   `json:"category_count"`
	StoneCount         int64   `json:"stone_count"`
	LedgerEntryCount   int64   `json:"ledger_entry_count"`
	LedgerTotal30Days  float64 `json:"ledger_total_30_days"`
}

// GET /api/dashboard/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res SummaryResponse

		database.DB.Model(&models.Product{}).Count(&res.ProductCount)
		database.DB.Model(&models.Product{}).
			Where("status = ?", models.ProductStatusActive).
			Count(&res.ActiveProductCount)
		database.DB.Model(&models.Store{}).Count(&res.StoreCount)
		database.DB.Model(&models.Vendor{}).Count(&res.VendorCount)
		database.DB.Model(&models.Category{}).Count(&res.CategoryCount)
		database.DB.Model(&models.Stone{}).Count(&res.StoneCount)
		database.DB.Model(&models.LedgerEntry{}).Count(&res.LedgerEntryCount)

		// Toplam stok adedi
		var totalStock *int64
		if err := database.DB.Model(&models.Product{}).
			Select("SUM(quantity)").
			Scan(&totalStock).Error; err == nil && totalStock != nil {
			res.TotalStock = *totalStock
		}

		// Son 30 günün defter toplamı
		since := time.Now().AddDate(0, 0, -30)
		var total *float64
		if err := database.DB.Model(&models.LedgerEntry{}).
			Select("SUM(amount)").
			Where("date >= ?", since).
			Scan(&total).Error; err == nil && total != nil {
			res.LedgerTotal30Days = *total
		}

		return c.JSON(res)
	}
}
