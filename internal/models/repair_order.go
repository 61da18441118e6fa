package models

import "time"

// Orden de reparación de equipos (máquinas, clippers) del panel admin.
type RepairOrder struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	Equipment string `gorm:"size:100;not null" json:"equipment"`
	Issue     string `gorm:"size:255" json:"issue"`

	Status string `gorm:"size:20;default:'recibido'" json:"status"` // recibido | en_taller | listo | entregado

	ReceivedAt  time.Time  `json:"received_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
