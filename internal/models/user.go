package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'barbero'" json:"role"`

	// Configuración de comisión: porcentaje sobre el subtotal bruto de cada
	// venta y periodo de liquidación.
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"commission_rate"`
	CommissionPeriod string          `gorm:"size:20;default:'quincenal'" json:"commission_period"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
