package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta registrada al finalizar una cita. Siempre nace completa: sin items no
// hay venta.
type Sale struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Receipt string `gorm:"size:36;uniqueIndex;not null" json:"receipt"`

	BarbershopID  uint `json:"barbershop_id"`
	BarberID      uint `json:"barber_id"`
	ClientID      uint `json:"client_id"`
	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`

	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	Notes         string `gorm:"size:255" json:"notes"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Commission decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission"`

	BonusApplied bool `gorm:"default:false" json:"bonus_applied"`

	// Referencia del pago en Mercado Pago cuando el método es transferencia
	// y la pasarela está configurada.
	ProviderPaymentID string `gorm:"size:64" json:"provider_payment_id"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	Kind  string `gorm:"size:10;not null" json:"kind"` // service | product
	RefID uint   `gorm:"not null" json:"ref_id"`
	Name  string `gorm:"size:100;not null" json:"name"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	// Item principal: el servicio reservado en la cita, no removible.
	Principal bool `gorm:"default:false" json:"principal"`
}
