package models

import "time"

// Stone - Taş cinsi (pırlanta, zümrüt vs.)
type Stone struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"size:500"` // Açıklama (opsiyonel)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
