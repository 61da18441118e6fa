package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StageEntry es una entrada del historial de etapas de cola.
type StageEntry struct {
	Stage string    `json:"stage"`
	At    time.Time `json:"at"`
}

// StageHistory es un log append-only; las entradas nunca se eliminan y sus
// timestamps son no decrecientes.
type StageHistory []StageEntry

func (h StageHistory) Value() (driver.Value, error) {
	if h == nil {
		h = StageHistory{}
	}
	return json.Marshal(h)
}

func (h *StageHistory) Scan(value any) error {
	if value == nil {
		*h = StageHistory{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("stage_history: unsupported type %T", value)
	}

	return json.Unmarshal(raw, h)
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Proyección fina del estado para auditoría de cola. Vacío mientras la
	// cita no entra a la cola del día.
	QueueStage    string       `gorm:"size:20" json:"queue_stage"`
	QueuePosition int          `gorm:"default:0" json:"queue_position"`
	StageHistory  StageHistory `gorm:"type:jsonb;default:'[]'" json:"stage_history"`

	// Desenlace terminal, se escribe una sola vez.
	FinalOutcome   string     `gorm:"size:20" json:"final_outcome"`
	FinalOutcomeAt *time.Time `json:"final_outcome_at"`

	// Bono de fidelidad marcado para esta cita en particular.
	LoyaltyBonus bool `gorm:"default:false" json:"loyalty_bonus"`

	Notes        string     `gorm:"size:255" json:"notes"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
