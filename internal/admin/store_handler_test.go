package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: her bağlantıda ayrı veritabanı açar, tek bağlantıya sabitle
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Store{},
		&models.User{},
	))

	database.DB = db
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	setupTestDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Post("/api/admin/stores", CreateStoreHandler())
	app.Get("/api/admin/stores", ListStoresHandler())
	app.Get("/api/admin/stores/:id", GetStoreHandler())
	app.Put("/api/admin/stores/:id", UpdateStoreHandler())
	app.Delete("/api/admin/stores/:id", DeleteStoreHandler())
	app.Post("/api/admin/stores/:id/admins", CreateStoreAdminHandler())
	app.Get("/api/admin/stores/:id/admins", ListStoreAdminsHandler())

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return resp.StatusCode, body
}

func TestCreateAndGetStore(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{
		"name":    "  Merkez Şube  ",
		"address": "İstanbul",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Merkez Şube", body["name"])
	assert.Equal(t, "İstanbul", body["address"])

	status, body = doJSON(t, app, http.MethodGet, "/api/admin/stores/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Merkez Şube", body["name"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/stores/99", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCreateStoreValidation(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{
		"name": "   ",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateStore(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{
		"name": "Merkez", "address": "İstanbul",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPut, "/api/admin/stores/1", map[string]any{
		"phone": "0212 000 00 00",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "0212 000 00 00", body["phone"])
	assert.Equal(t, "Merkez", body["name"]) // isim dokunulmadı
}

func TestDeleteStoreGuardsAttachedUsers(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{
		"name": "Merkez",
	})
	require.Equal(t, fiber.StatusCreated, status)

	// Mağazaya admin ekle
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/stores/1/admins", map[string]any{
		"name":     "Mağaza Admini",
		"username": "magaza1",
		"password": "gizli123",
	})
	require.Equal(t, fiber.StatusCreated, status)

	// Bağlı kullanıcı varken silme engellenir
	status, body := doJSON(t, app, http.MethodDelete, "/api/admin/stores/1", nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "bağlı kullanıcılar")

	// Kullanıcı silinince mağaza silinebilir
	require.NoError(t, database.DB.Where("store_id = ?", 1).Delete(&models.User{}).Error)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/admin/stores/1", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestCreateStoreAdmin(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{
		"name": "Merkez",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/stores/1/admins", map[string]any{
		"name":     "Mağaza Admini",
		"username": "  MAGAZA1  ",
		"password": "gizli123",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "magaza1", body["username"])
	assert.Equal(t, string(models.RoleStoreAdmin), body["role"])
	assert.Equal(t, 1.0, body["store_id"])

	// Aynı kullanıcı adı reddedilir
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/stores/1/admins", map[string]any{
		"name":     "Başka Admin",
		"username": "magaza1",
		"password": "gizli123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Olmayan mağaza
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/stores/99/admins", map[string]any{
		"name":     "Admin",
		"username": "baska",
		"password": "gizli123",
	})
	assert.Equal(t, fiber.StatusNotFound, status)

	// Listeleme
	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/stores/1/admins", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestListStoresSortedByName(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{"Zeytinburnu", "Ankara", "Merkez"} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/admin/stores", map[string]any{"name": name})
		require.Equal(t, fiber.StatusCreated, status)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stores", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stores []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stores))
	require.Len(t, stores, 3)
	assert.Equal(t, "Ankara", stores[0]["name"])
	assert.Equal(t, "Merkez", stores[1]["name"])
	assert.Equal(t, "Zeytinburnu", stores[2]["name"])
}
