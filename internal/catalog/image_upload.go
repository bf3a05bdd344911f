package catalog

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kuyumcu-backend/internal/config"
	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Upload politikası: istek başına en fazla 5 dosya, sadece image/* MIME,
// dosya başına 4MB
const (
	maxImageFiles = 5
	maxImageSize  = 4 << 20
)

func validateImageFile(file *multipart.FileHeader) error {
	if file.Size > maxImageSize {
		return fmt.Errorf("dosya 4MB'den büyük: %s", file.Filename)
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("sadece görsel dosyaları yüklenebilir: %s", file.Filename)
	}
	return nil
}

// saveImageFile: dosyayı diske kaydeder, üretilen dosya adını döndürür
func saveImageFile(c *fiber.Ctx, file *multipart.FileHeader, productID uint, savePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	fileName := fmt.Sprintf("%d_%d%s", productID, time.Now().UnixNano(), ext)

	if err := os.MkdirAll(savePath, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveFile(file, filepath.Join(savePath, fileName)); err != nil {
		return "", err
	}
	return fileName, nil
}

// -------------------------------------------------
// POST /api/products/:id/images
// Multipart "images" alanındaki dosyaları mevcut listenin sonuna ekler
// -------------------------------------------------
func UploadProductImagesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Multipart form okunamadı")
		}

		files := form.File["images"]
		if len(files) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir dosya gönderilmeli")
		}
		if len(files) > maxImageFiles {
			return fiber.NewError(fiber.StatusBadRequest, "En fazla 5 dosya yüklenebilir")
		}

		for _, file := range files {
			if err := validateImageFile(file); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		// Mevcut son pozisyonu bul
		var lastPos int
		database.DB.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&lastPos)

		saved := make([]string, 0, len(files))
		for i, file := range files {
			fileName, err := saveImageFile(c, file, product.ID, cfg.ProductImagePath)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
			}

			img := models.ProductImage{
				ProductID: product.ID,
				FileName:  fileName,
				Position:  lastPos + 1 + i,
			}
			if err := database.DB.Create(&img).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fotoğraf kaydı oluşturulamadı")
			}
			saved = append(saved, fileName)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"product_id": product.ID,
			"images":     saved,
		})
	}
}

// -------------------------------------------------
// PUT /api/products/:id/images
// "existing_images" form alanı: korunacak dosya adlarının JSON dizisi (sıralı).
// Listede olmayan mevcut dosyalar disk + DB'den silinir, yeni yüklenen dosyalar
// listenin sonuna eklenir.
// -------------------------------------------------
func ReplaceProductImagesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Multipart form okunamadı")
		}

		var keep []string
		if vals := form.Value["existing_images"]; len(vals) > 0 && vals[0] != "" {
			if err := json.Unmarshal([]byte(vals[0]), &keep); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "existing_images geçerli bir JSON dizisi olmalı")
			}
		}

		files := form.File["images"]
		if len(files) > maxImageFiles {
			return fiber.NewError(fiber.StatusBadRequest, "En fazla 5 dosya yüklenebilir")
		}
		for _, file := range files {
			if err := validateImageFile(file); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		var current []models.ProductImage
		if err := database.DB.Where("product_id = ?", product.ID).
			Order("position asc").Find(&current).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mevcut fotoğraflar okunamadı")
		}

		keepSet := make(map[string]bool, len(keep))
		for _, name := range keep {
			keepSet[name] = true
		}

		// Listede olmayanları sil
		byName := make(map[string]models.ProductImage, len(current))
		for _, img := range current {
			byName[img.FileName] = img
			if !keepSet[img.FileName] {
				_ = os.Remove(filepath.Join(cfg.ProductImagePath, img.FileName))
				database.DB.Delete(&models.ProductImage{}, img.ID)
			}
		}

		// Korunanları istenen sıraya göre yeniden numaralandır
		final := make([]string, 0, len(keep)+len(files))
		pos := 0
		for _, name := range keep {
			img, ok := byName[name]
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Bilinmeyen dosya adı: "+name)
			}
			img.Position = pos
			if err := database.DB.Save(&img).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fotoğraf sırası güncellenemedi")
			}
			final = append(final, name)
			pos++
		}

		// Yeni dosyaları sona ekle
		for _, file := range files {
			fileName, err := saveImageFile(c, file, product.ID, cfg.ProductImagePath)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
			}

			img := models.ProductImage{
				ProductID: product.ID,
				FileName:  fileName,
				Position:  pos,
			}
			if err := database.DB.Create(&img).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fotoğraf kaydı oluşturulamadı")
			}
			final = append(final, fileName)
			pos++
		}

		return c.JSON(fiber.Map{
			"product_id": product.ID,
			"images":     final,
		})
	}
}
