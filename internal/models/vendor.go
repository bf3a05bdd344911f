package models

import "time"

type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor - Tedarikçi (SKU ön eki FirstName'in ilk 2 harfinden üretilir)
type Vendor struct {
	ID        uint         `gorm:"primaryKey"`
	FirstName string       `gorm:"size:100;not null"`
	LastName  string       `gorm:"size:100"` // Opsiyonel
	Status    VendorStatus `gorm:"size:20;not null;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
