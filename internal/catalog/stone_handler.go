package catalog

import (
	"strings"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StoneResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateStoneRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateStoneRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// POST /api/stones
func CreateStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Taş adı boş olamaz")
		}

		var existing models.Stone
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu taş zaten kayıtlı")
		}

		stone := models.Stone{
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
		}
		if err := database.DB.Create(&stone).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(StoneResponse{
			ID:          stone.ID,
			Name:        stone.Name,
			Description: stone.Description,
		})
	}
}

// GET /api/stones
func ListStonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stones []models.Stone
		if err := database.DB.Order("name asc").Find(&stones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taşlar listelenemedi")
		}

		res := make([]StoneResponse, 0, len(stones))
		for _, s := range stones {
			res = append(res, StoneResponse{ID: s.ID, Name: s.Name, Description: s.Description})
		}
		return c.JSON(res)
	}
}

// PUT /api/stones/:id
func UpdateStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stone models.Stone
		if err := database.DB.First(&stone, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
		}

		var body UpdateStoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Taş adı boş olamaz")
			}
			var existing models.Stone
			if err := database.DB.Where("name = ? AND id != ?", name, id).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Bu taş adı zaten kullanılıyor")
			}
			stone.Name = name
		}

		if body.Description != nil {
			stone.Description = strings.TrimSpace(*body.Description)
		}

		if err := database.DB.Save(&stone).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş güncellenemedi")
		}

		return c.JSON(StoneResponse{ID: stone.ID, Name: stone.Name, Description: stone.Description})
	}
}

// DELETE /api/stones/:id
func DeleteStoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stone models.Stone
		if err := database.DB.First(&stone, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Taş bulunamadı")
		}

		// Taşa bağlı ürün var mı kontrol et
		var count int64
		database.DB.Model(&models.Product{}).Where("stone_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu taşa ait ürünler var, önce ürünleri güncelleyin")
		}

		if err := database.DB.Delete(&stone).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taş silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
