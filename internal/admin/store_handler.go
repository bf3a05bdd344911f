package admin

import (
	"strings"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type StoreResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type CreateStoreRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"` // Opsiyonel
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"` // Opsiyonel
}

type CreateStoreAdminRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ----------------------------------------
// MAĞAZA CRUD
// ----------------------------------------

func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
		}

		store := models.Store{
			Name:    body.Name,
			Address: body.Address,
		}
		if body.Phone != nil {
			store.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(StoreResponse{
			ID:        store.ID,
			Name:      store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			CreatedAt: store.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		var stores []models.Store
		if err := database.DB.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		res := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			res = append(res, StoreResponse{
				ID:        s.ID,
				Name:      s.Name,
				Address:   s.Address,
				Phone:     s.Phone,
				CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		return c.JSON(StoreResponse{
			ID:        store.ID,
			Name:      store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			CreatedAt: store.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
			}
			store.Name = name
		}

		if body.Address != nil {
			store.Address = *body.Address
		}

		if body.Phone != nil {
			store.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza güncellenemedi")
		}

		return c.JSON(StoreResponse{
			ID:        store.ID,
			Name:      store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			CreatedAt: store.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		// Mağazaya bağlı kullanıcı var mı kontrol et
		var count int64
		database.DB.Model(&models.User{}).Where("store_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu mağazaya bağlı kullanıcılar var, önce kullanıcıları silin")
		}

		if err := database.DB.Delete(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ----------------------------------------
// MAĞAZA ADMİNİ OLUŞTURMA
// ----------------------------------------

func CreateStoreAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		storeID := c.Params("id")

		// Mağaza kontrolü
		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body CreateStoreAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Username = strings.ToLower(strings.TrimSpace(body.Username))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, kullanıcı adı ve şifre zorunlu")
		}

		// Kullanıcı adı kontrolü
		var exist models.User
		if err := database.DB.Where("username = ?", body.Username).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kayıtlı")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			Name:         body.Name,
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         models.RoleStoreAdmin,
			StoreID:      &store.ID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza admini oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"role":     user.Role,
			"store_id": user.StoreID,
		})
	}
}

func ListStoreAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var users []models.User
		if err := database.DB.Where("store_id = ?", store.ID).Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		res := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			res = append(res, fiber.Map{
				"id":       u.ID,
				"name":     u.Name,
				"username": u.Username,
				"role":     u.Role,
				"store_id": u.StoreID,
			})
		}

		return c.JSON(res)
	}
}
