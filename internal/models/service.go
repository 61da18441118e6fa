package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Servicio del catálogo (corte, barba, combos).
type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`
	ImageURL    string          `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
