package models

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:200;not null"`
	Description string  `gorm:"size:1000"`
	Price       float64 `gorm:"not null"`
	Quantity    int     `gorm:"not null;default:0"`
	CategoryID  uint    `gorm:"index;not null"`
	Category    Category
	StoneID     *uint
	Stone       *Stone
	VendorID    *uint
	Vendor      *Vendor
	Status      ProductStatus `gorm:"size:20;not null;default:active"`
	SKU         string        `gorm:"size:20;uniqueIndex;not null"` // üretimden sonra asla değişmez
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage - Ürün fotoğrafı (Position ile sıralı)
type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	Position  int    `gorm:"not null"`
	CreatedAt time.Time
}
