package database

import (
	"log"

	"kuyumcu-backend/internal/config"
	"kuyumcu-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError: unique ihlallerini gorm.ErrDuplicatedKey olarak almak için
	// (SKU çakışmasında retry bu hataya bakıyor)
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Vendor{},
		&models.Stone{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.LedgerEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
