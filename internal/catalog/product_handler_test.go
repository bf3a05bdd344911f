package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/api/admin/products", CreateProductHandler())
	app.Get("/api/products/:id", GetProductHandler())
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	return resp.StatusCode, decoded
}

func TestCreateProductAssignsSKU(t *testing.T) {
	setupTestDB(t)
	vendor := createTestVendor(t, "Yousef")
	cat := createTestCategory(t, "Yüzük")
	app := newTestApp()

	status, body := postJSON(t, app, "/api/admin/products", fiber.Map{
		"name":        "Pırlanta yüzük",
		"price":       12500.0,
		"quantity":    3,
		"category_id": cat.ID,
		"vendor_id":   vendor.ID,
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "yo0001", body["sku"])
	assert.Equal(t, "Pırlanta yüzük", body["name"])
	assert.Equal(t, "active", body["status"])

	// İkinci ürün sayacı bir artırır
	status, body = postJSON(t, app, "/api/admin/products", fiber.Map{
		"name":        "Altın yüzük",
		"price":       8000.0,
		"quantity":    1,
		"category_id": cat.ID,
		"vendor_id":   vendor.ID,
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "yo0002", body["sku"])
}

func TestCreateProductVendorNotFound(t *testing.T) {
	setupTestDB(t)
	cat := createTestCategory(t, "Kolye")
	app := newTestApp()

	status, body := postJSON(t, app, "/api/admin/products", fiber.Map{
		"name":        "Kolye",
		"price":       100.0,
		"category_id": cat.ID,
		"vendor_id":   999,
	})
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Tedarikçi bulunamadı", body["error"])
}

func TestCreateProductValidation(t *testing.T) {
	setupTestDB(t)
	vendor := createTestVendor(t, "Yousef")
	cat := createTestCategory(t, "Kolye")
	app := newTestApp()

	cases := []struct {
		name string
		body fiber.Map
	}{
		{"isim eksik", fiber.Map{"price": 10.0, "category_id": cat.ID, "vendor_id": vendor.ID}},
		{"negatif fiyat", fiber.Map{"name": "x", "price": -5.0, "category_id": cat.ID, "vendor_id": vendor.ID}},
		{"kategori eksik", fiber.Map{"name": "x", "price": 10.0, "vendor_id": vendor.ID}},
		{"tedarikçi eksik", fiber.Map{"name": "x", "price": 10.0, "category_id": cat.ID}},
	}

	for _, tc := range cases {
		status, _ := postJSON(t, app, "/api/admin/products", tc.body)
		assert.Equal(t, fiber.StatusBadRequest, status, tc.name)
	}
}

func TestGetProductIncludesOrderedImages(t *testing.T) {
	setupTestDB(t)
	vendor := createTestVendor(t, "Yousef")
	cat := createTestCategory(t, "Bilezik")
	app := newTestApp()

	status, body := postJSON(t, app, "/api/admin/products", fiber.Map{
		"name":        "Bilezik",
		"price":       500.0,
		"category_id": cat.ID,
		"vendor_id":   vendor.ID,
	})
	require.Equal(t, fiber.StatusCreated, status)
	productID := uint(body["id"].(float64))

	// Fotoğrafları elle, sırayı bozarak ekle
	for i, name := range []string{"b.jpg", "a.jpg", "c.jpg"} {
		img := models.ProductImage{ProductID: productID, FileName: name, Position: i}
		require.NoError(t, database.DB.Create(&img).Error)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/products/%d", productID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	images, ok := decoded["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 3)
	assert.Equal(t, "b.jpg", images[0])
	assert.Equal(t, "a.jpg", images[1])
	assert.Equal(t, "c.jpg", images[2])
}
