package models

import "time"

// LedgerEntry - Cari defter kaydı. Name serbest metin (ödeme alan/yapan kişi),
// gruplama pivot tarafında küçük harf + trim ile yapılır.
type LedgerEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:200;not null;index"`
	Amount    float64   `gorm:"not null"`
	Date      time.Time `gorm:"index;not null"` // gün bazlı
	CreatedAt time.Time
	UpdatedAt time.Time
}
