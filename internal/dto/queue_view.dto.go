package dto

import (
	"time"

	"github.com/corteexpress/barberia-api/internal/models"
)

type QueueAppointmentDTO struct {
	ID            uint       `json:"id"`
	ClientName    string     `json:"client_name"`
	ClientPhone   string     `json:"client_phone"`
	ServiceName   string     `json:"service_name"`
	StartTime     time.Time  `json:"start_time"`
	Status        string     `json:"status"`
	QueueStage    string     `json:"queue_stage"`
	QueuePosition int        `json:"queue_position"`
	LoyaltyBonus  bool       `json:"loyalty_bonus"`
	FinalOutcome  string     `json:"final_outcome,omitempty"`
	OutcomeAt     *time.Time `json:"final_outcome_at,omitempty"`
}

type QueueViewDTO struct {
	Cola         []QueueAppointmentDTO `json:"cola"`
	EnSilla      *QueueAppointmentDTO  `json:"en_silla"`
	Finalizadas  []QueueAppointmentDTO `json:"finalizadas"`
	Rechazadas   []QueueAppointmentDTO `json:"rechazadas"`
}

func NewQueueAppointmentDTO(ap models.Appointment) QueueAppointmentDTO {
	return QueueAppointmentDTO{
		ID:            ap.ID,
		ClientName:    ap.Client.Name,
		ClientPhone:   ap.Client.Phone,
		ServiceName:   ap.Service.Name,
		StartTime:     ap.StartTime,
		Status:        ap.Status,
		QueueStage:    ap.QueueStage,
		QueuePosition: ap.QueuePosition,
		LoyaltyBonus:  ap.LoyaltyBonus,
		FinalOutcome:  ap.FinalOutcome,
		OutcomeAt:     ap.FinalOutcomeAt,
	}
}
