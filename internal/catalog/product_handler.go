package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kuyumcu-backend/internal/auth"
	"kuyumcu-backend/internal/config"
	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Aynı öneke eş zamanlı iki ürün girilirse ikisi de aynı sayacı hesaplayabilir;
// unique index insert'i reddeder, biz de SKU'yu yeniden üretip tekrar deneriz.
const skuInsertAttempts = 3

type ProductResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Quantity    int                  `json:"quantity"`
	CategoryID  uint                 `json:"category_id"`
	Category    string               `json:"category"`
	StoneID     *uint                `json:"stone_id"`
	Stone       string               `json:"stone"`
	VendorID    *uint                `json:"vendor_id"`
	Vendor      string               `json:"vendor"`
	Status      models.ProductStatus `json:"status"`
	SKU         string               `json:"sku"`
	Images      []string             `json:"images"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  uint    `json:"category_id"`
	StoneID     *uint   `json:"stone_id"`
	VendorID    uint    `json:"vendor_id"` // SKU ön eki bu tedarikçiden türetilir
}

type UpdateProductRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Price       *float64              `json:"price"`
	Quantity    *int                  `json:"quantity"`
	CategoryID  *uint                 `json:"category_id"`
	StoneID     *uint                 `json:"stone_id"`
	Status      *models.ProductStatus `json:"status"`
	// SKU ve tedarikçi güncellenemez; SKU bir kez üretilir ve asla değişmez
}

func productResponse(p models.Product) ProductResponse {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.FileName)
	}

	res := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CategoryID:  p.CategoryID,
		Category:    p.Category.Name,
		StoneID:     p.StoneID,
		VendorID:    p.VendorID,
		Status:      p.Status,
		SKU:         p.SKU,
		Images:      images,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.Stone != nil {
		res.Stone = p.Stone.Name
	}
	if p.Vendor != nil {
		res.Vendor = strings.TrimSpace(p.Vendor.FirstName + " " + p.Vendor.LastName)
	}
	return res
}

func preloadProduct(dbq *gorm.DB) *gorm.DB {
	return dbq.
		Preload("Category").
		Preload("Stone").
		Preload("Vendor").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

// Yardımcı: audit log için kullanıcı bilgilerini al (locals boşsa hata döner,
// audit bu durumda atlanır)
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fmt.Errorf("kullanıcı bilgisi yok")
	}
	userName, _ := c.Locals(auth.CtxUserNameKey).(string)
	return userID, userName, nil
}

// -------------------------------------------------
// POST /api/products
// -------------------------------------------------
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Description = strings.TrimSpace(body.Description)

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Adet negatif olamaz")
		}
		if body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "category_id zorunlu")
		}
		if body.VendorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "vendor_id zorunlu")
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		if body.StoneID != nil {
			var stone models.Stone
			if err := database.DB.First(&stone, "id = ?", *body.StoneID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
		}

		var product models.Product
		for attempt := 0; attempt < skuInsertAttempts; attempt++ {
			sku, err := AllocateSKU(body.VendorID)
			if err != nil {
				if errors.Is(err, ErrVendorNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "SKU üretilemedi")
			}

			vendorID := body.VendorID
			product = models.Product{
				Name:        body.Name,
				Description: body.Description,
				Price:       body.Price,
				Quantity:    body.Quantity,
				CategoryID:  body.CategoryID,
				StoneID:     body.StoneID,
				VendorID:    &vendorID,
				Status:      models.ProductStatusActive,
				SKU:         sku,
			}

			err = database.DB.Create(&product).Error
			if err == nil {
				break
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// SKU yarışı: sayacı tekrar hesapla
				product = models.Product{}
				continue
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}
		if product.ID == 0 {
			return fiber.NewError(fiber.StatusConflict, "SKU çakışması çözülemedi, tekrar deneyin")
		}

		writeProductAudit(c, product, models.AuditActionCreate,
			fmt.Sprintf("Ürün eklendi: %s (%s)", product.Name, product.SKU))

		var created models.Product
		if err := preloadProduct(database.DB).First(&created, product.ID).Error; err == nil {
			product = created
		}

		return c.Status(fiber.StatusCreated).JSON(productResponse(product))
	}
}

// -------------------------------------------------
// GET /api/products?status=active&category_id=1&vendor_id=2&q=yüzük
// -------------------------------------------------
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := preloadProduct(database.DB.Model(&models.Product{}))

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if cid := c.QueryInt("category_id"); cid > 0 {
			dbq = dbq.Where("category_id = ?", cid)
		}
		if vid := c.QueryInt("vendor_id"); vid > 0 {
			dbq = dbq.Where("vendor_id = ?", vid)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
		}

		var products []models.Product
		if err := dbq.Order("created_at desc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// GET /api/products/:id
// -------------------------------------------------
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := preloadProduct(database.DB).First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(productResponse(product))
	}
}

// -------------------------------------------------
// PUT /api/products/:id
// -------------------------------------------------
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			product.Name = name
		}

		if body.Description != nil {
			product.Description = strings.TrimSpace(*body.Description)
		}

		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			product.Price = *body.Price
		}

		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Adet negatif olamaz")
			}
			product.Quantity = *body.Quantity
		}

		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
			}
			product.CategoryID = *body.CategoryID
		}

		if body.StoneID != nil {
			var stone models.Stone
			if err := database.DB.First(&stone, "id = ?", *body.StoneID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
			}
			product.StoneID = body.StoneID
		}

		if body.Status != nil {
			switch *body.Status {
			case models.ProductStatusActive, models.ProductStatusInactive:
				product.Status = *body.Status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz status (active|inactive)")
			}
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		var updated models.Product
		if err := preloadProduct(database.DB).First(&updated, product.ID).Error; err == nil {
			product = updated
		}

		return c.JSON(productResponse(product))
	}
}

// -------------------------------------------------
// DELETE /api/products/:id
// -------------------------------------------------
func DeleteProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := preloadProduct(database.DB).First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		// Önce fotoğrafları temizle (disk + DB)
		for _, img := range product.Images {
			_ = os.Remove(filepath.Join(cfg.ProductImagePath, img.FileName))
		}
		if err := database.DB.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün fotoğrafları silinemedi")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		writeProductAudit(c, product, models.AuditActionDelete,
			fmt.Sprintf("Ürün silindi: %s (%s)", product.Name, product.SKU))

		return c.SendStatus(fiber.StatusNoContent)
	}
}
