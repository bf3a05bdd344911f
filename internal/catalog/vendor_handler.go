package catalog

import (
	"strings"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VendorResponse struct {
	ID        uint                `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Status    models.VendorStatus `json:"status"`
	CreatedAt string              `json:"created_at"`
}

type CreateVendorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateVendorRequest struct {
	FirstName *string              `json:"first_name"`
	LastName  *string              `json:"last_name"`
	Status    *models.VendorStatus `json:"status"`
}

func vendorResponse(v models.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Status:    v.Status,
		CreatedAt: v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/vendors
func CreateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVendorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)

		if body.FirstName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
		}

		vendor := models.Vendor{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Status:    models.VendorStatusActive,
		}

		if err := database.DB.Create(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(vendorResponse(vendor))
	}
}

// GET /api/vendors?status=active
func ListVendorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Vendor{})

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var vendors []models.Vendor
		if err := dbq.Order("first_name asc").Find(&vendors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		res := make([]VendorResponse, 0, len(vendors))
		for _, v := range vendors {
			res = append(res, vendorResponse(v))
		}

		return c.JSON(res)
	}
}

// GET /api/vendors/:id
func GetVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		return c.JSON(vendorResponse(vendor))
	}
}

// PUT /api/vendors/:id
// Tedarikçi silinmez, pasife alınır (status=inactive). SKU ön eki ilk kayıttaki
// isimden türediği için isim değişse bile mevcut SKU'lar değişmez.
func UpdateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateVendorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			vendor.FirstName = name
		}

		if body.LastName != nil {
			vendor.LastName = strings.TrimSpace(*body.LastName)
		}

		if body.Status != nil {
			switch *body.Status {
			case models.VendorStatusActive, models.VendorStatusInactive:
				vendor.Status = *body.Status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz status (active|inactive)")
			}
		}

		if err := database.DB.Save(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(vendorResponse(vendor))
	}
}
