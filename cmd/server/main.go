package main

import (
	"log"
	"strings"

	"kuyumcu-backend/internal/admin"
	"kuyumcu-backend/internal/audit"
	"kuyumcu-backend/internal/auth"
	"kuyumcu-backend/internal/catalog"
	"kuyumcu-backend/internal/config"
	"kuyumcu-backend/internal/dashboard"
	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/ledger"
	"kuyumcu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // 5 fotoğraf x 4MB + form alanları
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Ürün fotoğrafları statik servis edilir
	app.Static("/product-images", cfg.ProductImagePath)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Mağaza yönetimi
	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())
	adminRoutes.Post("/stores/:id/admin", admin.CreateStoreAdminHandler())
	adminRoutes.Get("/stores/:id/admins", admin.ListStoreAdminsHandler())

	// Ürün yönetimi (yazma işlemleri super admin)
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler(cfg))
	adminRoutes.Post("/products/:id/images", catalog.UploadProductImagesHandler(cfg))
	adminRoutes.Put("/products/:id/images", catalog.ReplaceProductImagesHandler(cfg))

	// Tedarikçi yönetimi
	adminRoutes.Post("/vendors", catalog.CreateVendorHandler())
	adminRoutes.Put("/vendors/:id", catalog.UpdateVendorHandler())

	// Kategori ve taş yönetimi
	adminRoutes.Post("/categories", catalog.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", catalog.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", catalog.DeleteCategoryHandler())
	adminRoutes.Post("/stones", catalog.CreateStoneHandler())
	adminRoutes.Put("/stones/:id", catalog.UpdateStoneHandler())
	adminRoutes.Delete("/stones/:id", catalog.DeleteStoneHandler())

	// Ortak (auth gerektiren) route'lar

	// Katalog listeleri
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Get("/vendors", catalog.ListVendorsHandler())
	protected.Get("/vendors/:id", catalog.GetVendorHandler())
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Get("/stones", catalog.ListStonesHandler())

	// Cari defter
	protected.Post("/ledger-entries", ledger.CreateLedgerEntryHandler())
	protected.Get("/ledger-entries", ledger.ListLedgerEntriesHandler())
	protected.Put("/ledger-entries/:id", ledger.UpdateLedgerEntryHandler())
	protected.Delete("/ledger-entries/:id", ledger.DeleteLedgerEntryHandler())
	protected.Get("/ledger-entries/pivot", ledger.PivotLedgerHandler())
	protected.Get("/ledger-entries/export", ledger.ExportLedgerHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
