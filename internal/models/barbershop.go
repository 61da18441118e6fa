package models

import "time"

type Barbershop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50;default:'America/Bogota'" json:"timezone"`

	// Ventana fija de atención; la agenda se corta en bloques de media hora.
	OpeningTime string `gorm:"size:5;default:'08:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;default:'20:00'" json:"closing_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
