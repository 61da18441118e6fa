package models

import "time"

// Cliente sin login, identificado por teléfono dentro de la barbería.
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// Cortes gratis acumulados por fidelidad. El bono solo aplica cuando la
	// cita lo marca y el cliente todavía tiene créditos.
	FreeCutCredits int `gorm:"default:0" json:"free_cut_credits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
